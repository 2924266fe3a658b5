package userseed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	usernamePromptConstant               = "Enter username (or 'done' to finish): "
	passwordPromptTemplateConstant       = "Enter password for '%s': "
	terminatorWordConstant               = "done"
	emptyUsernameMessageConstant         = "Username cannot be empty"
	emptyPasswordMessageConstant         = "Password cannot be empty"
	duplicateUsernameTemplateConstant    = "User '%s' already exists; choose a different username"
	userCreatedTemplateConstant          = "User '%s' created"
	noUsersCreatedMessageConstant        = "No users were created"
	setupCompleteMessageConstant         = "User setup complete"
	createdCountTemplateConstant         = "Created %d user(s):"
	usernameLineTemplateConstant         = "  - %s"
	environmentVariableHeadingConstant   = "Add this environment variable to the Vercel project:"
	environmentVariableTemplateConstant  = "USERS=%s"
	dashboardInstructionHeadingConstant  = "Instructions:"
	configurationSavedTemplateConstant   = "User configuration saved to %s"
	usersConfigurationFileNameConstant   = "users_config.json"
	usersConfigurationPermissionConstant = 0o600
	payloadEncodeErrorTemplateConstant   = "unable to encode user payload: %w"
	configurationWriteTemplateConstant   = "unable to write %s: %w"
	jsonIndentConstant                   = "  "
	seederReaderRequiredConstant         = "seeder requires a credential reader"
	seederConsoleRequiredConstant        = "seeder requires a console"
)

// dashboardInstructionLines walk the operator through the Vercel environment-variable screen.
var dashboardInstructionLines = []string{
	"1. Open the Vercel project dashboard",
	"2. Navigate to Settings > Environment Variables",
	"3. Add a variable named USERS with the value printed above",
	"4. Save and redeploy the project",
}

// Sentinel errors for misconstructed seeders.
var (
	ErrCredentialReaderNotConfigured = errors.New(seederReaderRequiredConstant)
	ErrSeederConsoleNotConfigured    = errors.New(seederConsoleRequiredConstant)
)

// Console receives leveled user-facing messages during seeding.
type Console interface {
	Info(message string)
	Success(message string)
	Warning(message string)
	Plain(message string)
}

// FileWriter persists the reference configuration file.
type FileWriter interface {
	WriteFile(path string, content []byte, permissions fs.FileMode) error
}

// OSFileWriter implements FileWriter using the operating system facilities.
type OSFileWriter struct{}

// WriteFile writes the content to the provided path.
func (OSFileWriter) WriteFile(path string, content []byte, permissions fs.FileMode) error {
	return os.WriteFile(path, content, permissions)
}

// Seeder runs the interactive credential collection loop.
type Seeder struct {
	credentialReader CredentialReader
	console          Console
	fileWriter       FileWriter
	randomSource     io.Reader
}

// NewSeeder validates the collaborators and constructs a Seeder. The file
// writer defaults to the operating system and the random source to the
// cryptographic default.
func NewSeeder(credentialReader CredentialReader, console Console, fileWriter FileWriter, randomSource io.Reader) (*Seeder, error) {
	if credentialReader == nil {
		return nil, ErrCredentialReaderNotConfigured
	}
	if console == nil {
		return nil, ErrSeederConsoleNotConfigured
	}
	if fileWriter == nil {
		fileWriter = OSFileWriter{}
	}
	return &Seeder{
		credentialReader: credentialReader,
		console:          console,
		fileWriter:       fileWriter,
		randomSource:     randomSource,
	}, nil
}

// Run collects credentials until the terminator word or end of input, then
// prints the USERS payload and writes the reference configuration file.
func (seeder *Seeder) Run(workingDirectory string) error {
	hashedUsers := map[string]string{}
	orderedUsernames := []string{}

	for {
		username, usernameError := seeder.credentialReader.ReadLine(usernamePromptConstant)
		if errors.Is(usernameError, io.EOF) {
			break
		}
		if usernameError != nil {
			return usernameError
		}

		if strings.EqualFold(username, terminatorWordConstant) {
			break
		}
		if len(username) == 0 {
			seeder.console.Warning(emptyUsernameMessageConstant)
			continue
		}
		if _, alreadyExists := hashedUsers[username]; alreadyExists {
			seeder.console.Warning(fmt.Sprintf(duplicateUsernameTemplateConstant, username))
			continue
		}

		password, passwordError := seeder.credentialReader.ReadSecret(fmt.Sprintf(passwordPromptTemplateConstant, username))
		if errors.Is(passwordError, io.EOF) {
			break
		}
		if passwordError != nil {
			return passwordError
		}
		if len(password) == 0 {
			seeder.console.Warning(emptyPasswordMessageConstant)
			continue
		}

		hashedPassword, hashError := HashPassword(seeder.randomSource, password)
		if hashError != nil {
			return hashError
		}

		hashedUsers[username] = hashedPassword
		orderedUsernames = append(orderedUsernames, username)
		seeder.console.Success(fmt.Sprintf(userCreatedTemplateConstant, username))
	}

	if len(orderedUsernames) == 0 {
		seeder.console.Info(noUsersCreatedMessageConstant)
		return nil
	}

	payloadBytes, encodeError := json.Marshal(hashedUsers)
	if encodeError != nil {
		return fmt.Errorf(payloadEncodeErrorTemplateConstant, encodeError)
	}

	seeder.console.Success(setupCompleteMessageConstant)
	seeder.console.Info(fmt.Sprintf(createdCountTemplateConstant, len(orderedUsernames)))
	for _, username := range orderedUsernames {
		seeder.console.Plain(fmt.Sprintf(usernameLineTemplateConstant, username))
	}

	seeder.console.Info(environmentVariableHeadingConstant)
	seeder.console.Plain(fmt.Sprintf(environmentVariableTemplateConstant, string(payloadBytes)))

	seeder.console.Info(dashboardInstructionHeadingConstant)
	for _, instructionLine := range dashboardInstructionLines {
		seeder.console.Plain(instructionLine)
	}

	configurationBytes, indentError := json.MarshalIndent(hashedUsers, "", jsonIndentConstant)
	if indentError != nil {
		return fmt.Errorf(payloadEncodeErrorTemplateConstant, indentError)
	}

	configurationPath := filepath.Join(workingDirectory, usersConfigurationFileNameConstant)
	if writeError := seeder.fileWriter.WriteFile(configurationPath, configurationBytes, usersConfigurationPermissionConstant); writeError != nil {
		return fmt.Errorf(configurationWriteTemplateConstant, configurationPath, writeError)
	}

	seeder.console.Info(fmt.Sprintf(configurationSavedTemplateConstant, configurationPath))
	return nil
}

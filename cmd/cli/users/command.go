// Package users assembles the interactive credential seeding command.
package users

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/temirov/preflight/internal/ui"
	"github.com/temirov/preflight/internal/userseed"
	"github.com/temirov/preflight/internal/utils"
)

const (
	commandUseConstant                  = "users"
	commandShortDescriptionConstant     = "Create platform users and emit the USERS environment payload"
	commandLongDescriptionConstant      = "users collects username and password pairs interactively, hashes each password with a per-user salt, prints the USERS environment variable for the Vercel dashboard, and saves users_config.json."
	directoryFlagNameConstant           = "directory"
	directoryFlagDescriptionConstant    = "Directory receiving users_config.json"
	directoryFlagDefaultConstant        = "."
	seederCreationErrorTemplateConstant = "unable to construct user seeder: %w"
)

// CommandBuilder assembles the users command.
type CommandBuilder struct {
	CredentialReader userseed.CredentialReader
	FileWriter       userseed.FileWriter
}

// Build constructs the users command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(directoryFlagNameConstant, directoryFlagDefaultConstant, directoryFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	console := ui.NewConsoleWriter(command.OutOrStdout())

	credentialReader := builder.CredentialReader
	if credentialReader == nil {
		credentialReader = userseed.NewTerminalCredentialReader(os.Stdin, utils.NewFlushingWriter(command.OutOrStdout()))
	}

	seeder, creationError := userseed.NewSeeder(credentialReader, console, builder.FileWriter, nil)
	if creationError != nil {
		return fmt.Errorf(seederCreationErrorTemplateConstant, creationError)
	}

	workingDirectory, _ := command.Flags().GetString(directoryFlagNameConstant)
	return seeder.Run(workingDirectory)
}

package preflight

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	environmentFilePermissionsConstant   fs.FileMode = 0o644
	environmentTemplateHeaderConstant                = "# Legal Strategy Infographics Platform configuration"
	placeholderSecretKeyConstant                     = "your-secret-key-change-this-in-production"
	secretKeyNameConstant                            = "SECRET_KEY"
)

// EnvironmentEntry is one key-value line of the default environment file.
type EnvironmentEntry struct {
	Key   string
	Value string
}

// DefaultEnvironmentTemplate mirrors the platform settings with their documented defaults.
// The secret key is a deliberately non-secure placeholder and must be replaced by the operator.
func DefaultEnvironmentTemplate() []EnvironmentEntry {
	return []EnvironmentEntry{
		{Key: "APP_NAME", Value: "\"Legal Strategy Infographics\""},
		{Key: "DEBUG", Value: "false"},
		{Key: "HOST", Value: "0.0.0.0"},
		{Key: "PORT", Value: "8000"},
		{Key: secretKeyNameConstant, Value: placeholderSecretKeyConstant},
		{Key: "ALGORITHM", Value: "HS256"},
		{Key: "ACCESS_TOKEN_EXPIRE_MINUTES", Value: "30"},
		{Key: "REFRESH_TOKEN_EXPIRE_DAYS", Value: "7"},
		{Key: "CORS_ORIGINS", Value: "http://localhost:3000"},
		{Key: "CORS_ALLOW_CREDENTIALS", Value: "true"},
		{Key: "RATE_LIMIT_REQUESTS", Value: "100"},
		{Key: "RATE_LIMIT_WINDOW", Value: "900"},
		{Key: "LOG_LEVEL", Value: "INFO"},
	}
}

// RenderEnvironmentFile produces the textual content of the default environment file.
func RenderEnvironmentFile(entries []EnvironmentEntry) string {
	contentLines := []string{environmentTemplateHeaderConstant}
	for _, entry := range entries {
		contentLines = append(contentLines, entry.Key+"="+entry.Value)
	}
	return strings.Join(contentLines, "\n") + "\n"
}

// FileSystem exposes the filesystem operations required by the orchestrator.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	WriteFile(path string, content []byte, permissions fs.FileMode) error
}

// OSFileSystem implements FileSystem using the operating system facilities.
type OSFileSystem struct{}

// Stat delegates to os.Stat.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// WriteFile delegates to os.WriteFile.
func (OSFileSystem) WriteFile(path string, content []byte, permissions fs.FileMode) error {
	return os.WriteFile(path, content, permissions)
}

// EnsureEnvironmentFile writes the default environment file when absent.
// Existing files are never rewritten, regardless of content.
func EnsureEnvironmentFile(fileSystem FileSystem, workingDirectory string, environmentFilePath string) (bool, error) {
	resolvedPath := filepath.Join(workingDirectory, environmentFilePath)
	if _, statError := fileSystem.Stat(resolvedPath); statError == nil {
		return false, nil
	}

	renderedContent := RenderEnvironmentFile(DefaultEnvironmentTemplate())
	if writeError := fileSystem.WriteFile(resolvedPath, []byte(renderedContent), environmentFilePermissionsConstant); writeError != nil {
		return false, writeError
	}
	return true, nil
}

// Package verify assembles the read-only deployment readiness command.
package verify

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/preflight/internal/ui"
	verifycore "github.com/temirov/preflight/internal/verify"
)

const (
	commandUseConstant                    = "verify"
	commandShortDescriptionConstant       = "Check the deployment setup without changing anything"
	commandLongDescriptionConstant        = "verify audits the project file structure, the infographic content, the Vercel configuration, and the Python requirements, reporting every failed check."
	directoryFlagNameConstant             = "directory"
	directoryFlagDescriptionConstant      = "Project directory to audit"
	directoryFlagDefaultConstant          = "."
	verifierCreationErrorTemplateConstant = "unable to construct verifier: %w"
)

// CommandBuilder assembles the verify command.
type CommandBuilder struct {
	FileReader verifycore.FileReader
}

// Build constructs the verify command.
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

	verifier, creationError := verifycore.NewVerifier(builder.FileReader, console)
	if creationError != nil {
		return fmt.Errorf(verifierCreationErrorTemplateConstant, creationError)
	}

	workingDirectory, _ := command.Flags().GetString(directoryFlagNameConstant)
	return verifier.Run(workingDirectory)
}

// Package deploy assembles the deployment preparation command.
package deploy

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/preflight/internal/execshell"
	"github.com/temirov/preflight/internal/githubcli"
	"github.com/temirov/preflight/internal/gitrepo"
	"github.com/temirov/preflight/internal/preflight"
	"github.com/temirov/preflight/internal/ui"
)

const (
	commandUseConstant                      = "deploy"
	commandShortDescriptionConstant         = "Prepare the project for a Vercel deployment"
	commandLongDescriptionConstant          = "deploy verifies the required artifacts, initializes the repository and remote, materializes the environment file, commits pending changes, and publishes the current branch."
	directoryFlagNameConstant               = "directory"
	directoryFlagDescriptionConstant        = "Project directory to prepare"
	manifestFlagNameConstant                = "manifest"
	manifestFlagDescriptionConstant         = "Optional path to a project manifest (YAML)"
	verboseFlagNameConstant                 = "verbose"
	verboseFlagDescriptionConstant          = "Print every git and gh invocation"
	executorCreationErrorTemplateConstant   = "unable to construct shell executor: %w"
	managerCreationErrorTemplateConstant    = "unable to construct repository manager: %w"
	clientCreationErrorTemplateConstant     = "unable to construct GitHub client: %w"
	dependenciesCreationErrorTemplate       = "unable to construct preflight executor: %w"
	manifestLoadErrorTemplateConstant       = "unable to load project manifest: %w"
	ignoredArgumentsWarningTemplateConstant = "Ignoring unrecognized arguments: %s"
	argumentSeparatorConstant               = " "
)

// CommandBuilder assembles the deploy command.
type CommandBuilder struct {
	LoggerProvider               func() *zap.Logger
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() preflight.Configuration
	CommandRunner                execshell.CommandRunner
}

// Build constructs the deploy command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ArbitraryArgs,
		RunE:  builder.run,
	}

	command.Flags().String(directoryFlagNameConstant, "", directoryFlagDescriptionConstant)
	command.Flags().String(manifestFlagNameConstant, "", manifestFlagDescriptionConstant)
	command.Flags().Bool(verboseFlagNameConstant, false, verboseFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	console := ui.NewConsoleWriter(command.OutOrStdout())

	configuration, configurationError := builder.resolveConfiguration(command)
	if configurationError != nil {
		return configurationError
	}

	if len(arguments) > 0 {
		console.Warning(fmt.Sprintf(ignoredArgumentsWarningTemplateConstant, strings.Join(arguments, argumentSeparatorConstant)))
	}

	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner)
	if executorError != nil {
		return fmt.Errorf(executorCreationErrorTemplateConstant, executorError)
	}

	verboseEnabled, _ := command.Flags().GetBool(verboseFlagNameConstant)
	shellExecutor.SetCommandEventObserver(ui.NewCommandEventConsoleObserver(console, verboseEnabled))

	repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
	if managerError != nil {
		return fmt.Errorf(managerCreationErrorTemplateConstant, managerError)
	}

	repositoryCreator, clientError := githubcli.NewClient(shellExecutor)
	if clientError != nil {
		return fmt.Errorf(clientCreationErrorTemplateConstant, clientError)
	}

	preflightExecutor, dependenciesError := preflight.NewExecutor(preflight.Dependencies{
		RepositoryManager: repositoryManager,
		RepositoryCreator: repositoryCreator,
		Console:           console,
		Logger:            logger,
	})
	if dependenciesError != nil {
		return fmt.Errorf(dependenciesCreationErrorTemplate, dependenciesError)
	}

	return preflightExecutor.Execute(command.Context(), configuration)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider != nil {
		if providedLogger := builder.LoggerProvider(); providedLogger != nil {
			return providedLogger
		}
	}
	return zap.NewNop()
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) (preflight.Configuration, error) {
	configuration := preflight.DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider().MergeDefaults()
	}

	manifestPath, _ := command.Flags().GetString(manifestFlagNameConstant)
	if command.Flags().Changed(manifestFlagNameConstant) {
		manifestConfiguration, manifestError := preflight.LoadManifest(manifestPath)
		if manifestError != nil {
			return preflight.Configuration{}, fmt.Errorf(manifestLoadErrorTemplateConstant, manifestError)
		}
		configuration = manifestConfiguration
	}

	if command.Flags().Changed(directoryFlagNameConstant) {
		directoryValue, _ := command.Flags().GetString(directoryFlagNameConstant)
		configuration.WorkingDirectory = directoryValue
	}

	return configuration, nil
}

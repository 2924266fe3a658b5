package execshell

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	gitToolNameConstant                       = "git"
	githubCLIToolNameConstant                 = "gh"
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell command runner not configured"
	commandFailedTemplateConstant             = "%s exited with code %d"
	commandFailedWithStderrTemplateConstant   = "%s exited with code %d: %s"
	commandExecutionFailedTemplateConstant    = "%s could not be executed: %s"
	commandStartedLogMessageConstant          = "external command started"
	commandCompletedLogMessageConstant        = "external command completed"
	commandFailedLogMessageConstant           = "external command failed"
	logFieldCommandConstant                   = "command"
	logFieldExitCodeConstant                  = "exit_code"
	logFieldWorkingDirectoryConstant          = "working_directory"
	logFieldFailureConstant                   = "failure"
)

// CommandName identifies a supported executable.
type CommandName string

// Supported executable enumerations.
const (
	CommandGit       CommandName = CommandName(gitToolNameConstant)
	CommandGitHubCLI CommandName = CommandName(githubCLIToolNameConstant)
)

// CommandDetails describes the arguments and environment of a tool invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand combines a CommandName with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outputs of a completed command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes prepared shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Sentinel construction errors.
var (
	// ErrLoggerNotConfigured indicates a ShellExecutor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates a ShellExecutor was constructed without a runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including captured standard error output.
func (failedError CommandFailedError) Error() string {
	commandLabel := describeCommand(failedError.Command)
	if len(failedError.Result.StandardError) == 0 {
		return fmt.Sprintf(commandFailedTemplateConstant, commandLabel, failedError.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedWithStderrTemplateConstant, commandLabel, failedError.Result.ExitCode, failedError.Result.StandardError)
}

// CommandExecutionError reports a command that could not be launched at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionFailedTemplateConstant, describeCommand(executionError.Command), executionError.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor coordinates external tool invocations with logging and observer notifications.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor from the provided logger and runner.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	return &ShellExecutor{
		logger:   logger,
		runner:   runner,
		observer: noopCommandEventObserver{},
	}, nil
}

// SetCommandEventObserver installs an observer receiving command lifecycle notifications.
func (executor *ShellExecutor) SetCommandEventObserver(observer CommandEventObserver) {
	if observer == nil {
		executor.observer = noopCommandEventObserver{}
		return
	}
	executor.observer = observer
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// ExecuteGitHubCLI runs the GitHub CLI with the provided details.
func (executor *ShellExecutor) ExecuteGitHubCLI(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGitHubCLI, Details: details})
}

// Execute runs an arbitrary shell command through the configured runner.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldCommandConstant, describeCommand(command)),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)
	executor.observer.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Debug(
			commandFailedLogMessageConstant,
			zap.String(logFieldCommandConstant, describeCommand(command)),
			zap.String(logFieldFailureConstant, runError.Error()),
		)
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Debug(
			commandFailedLogMessageConstant,
			zap.String(logFieldCommandConstant, describeCommand(command)),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
		)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(
		commandCompletedLogMessageConstant,
		zap.String(logFieldCommandConstant, describeCommand(command)),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)

	return executionResult, nil
}

package ui

import (
	"github.com/temirov/preflight/internal/execshell"
)

// CommandEventConsoleObserver relays execshell lifecycle events to a console writer.
type CommandEventConsoleObserver struct {
	console   *ConsoleWriter
	formatter execshell.CommandMessageFormatter
	verbose   bool
}

// NewCommandEventConsoleObserver constructs an observer targeting the provided console writer.
func NewCommandEventConsoleObserver(console *ConsoleWriter, verbose bool) *CommandEventConsoleObserver {
	return &CommandEventConsoleObserver{console: console, verbose: verbose}
}

// CommandStarted prints the start message for verbose runs.
func (observer *CommandEventConsoleObserver) CommandStarted(command execshell.ShellCommand) {
	if observer.console == nil || !observer.verbose {
		return
	}
	observer.console.Info(observer.formatter.BuildStartedMessage(command))
}

// CommandCompleted prints the outcome message for the finished command.
func (observer *CommandEventConsoleObserver) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if observer.console == nil || !observer.verbose {
		return
	}
	if result.ExitCode == 0 {
		observer.console.Success(observer.formatter.BuildSuccessMessage(command))
		return
	}
	observer.console.Info(observer.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed prints the failure message for commands that never produced a result.
func (observer *CommandEventConsoleObserver) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if observer.console == nil {
		return
	}
	observer.console.Error(observer.formatter.BuildExecutionFailureMessage(command, failure))
}

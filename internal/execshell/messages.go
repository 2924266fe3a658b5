package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
)

const (
	gitInitSubcommandNameConstant      = "init"
	gitRemoteSubcommandNameConstant    = "remote"
	gitRemoteGetURLSubcommandConstant  = "get-url"
	gitRemoteAddSubcommandConstant     = "add"
	gitAddSubcommandNameConstant       = "add"
	gitDiffSubcommandNameConstant      = "diff"
	gitCommitSubcommandNameConstant    = "commit"
	gitRevParseSubcommandNameConstant  = "rev-parse"
	gitPushSubcommandNameConstant      = "push"
	githubAuthSubcommandNameConstant   = "auth"
	githubRepoSubcommandNameConstant   = "repo"
	githubCreateSubcommandNameConstant = "create"
)

const (
	gitInitStartTemplateConstant               = "Initializing repository in %s"
	gitInitSuccessTemplateConstant             = "Repository initialized in %s"
	gitInitFailureTemplateConstant             = "Failed to initialize repository in %s (exit code %d%s)"
	gitInitExecutionFailureTemplateConstant    = "Unable to initialize repository in %s: %s"
	gitRemoteLookupStartTemplateConstant       = "Checking remote configuration in %s"
	gitRemoteLookupSuccessTemplateConstant     = "Inspected remote configuration in %s"
	gitRemoteLookupFailureTemplateConstant     = "No matching remote configured in %s (exit code %d%s)"
	gitRemoteAddStartTemplateConstant          = "Adding remote in %s"
	gitRemoteAddSuccessTemplateConstant        = "Remote added in %s"
	gitRemoteAddFailureTemplateConstant        = "Failed to add remote in %s (exit code %d%s)"
	gitRemoteExecutionFailureTemplateConstant  = "Unable to manage remotes in %s: %s"
	gitStageStartTemplateConstant              = "Staging changes in %s"
	gitStageSuccessTemplateConstant            = "Staged changes in %s"
	gitStageFailureTemplateConstant            = "Failed to stage changes in %s (exit code %d%s)"
	gitStageExecutionFailureTemplateConstant   = "Unable to stage changes in %s: %s"
	gitDiffStartTemplateConstant               = "Checking staged changes in %s"
	gitDiffSuccessTemplateConstant             = "No staged changes in %s"
	gitDiffFailureTemplateConstant             = "Staged changes present in %s"
	gitDiffExecutionFailureTemplateConstant    = "Unable to check staged changes in %s: %s"
	gitCommitStartTemplateConstant             = "Creating commit in %s"
	gitCommitSuccessTemplateConstant           = "Commit created in %s"
	gitCommitFailureTemplateConstant           = "Failed to create commit in %s (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant  = "Unable to create commit in %s: %s"
	gitBranchStartTemplateConstant             = "Identifying current branch in %s"
	gitBranchSuccessTemplateConstant           = "Identified current branch in %s"
	gitBranchFailureTemplateConstant           = "Failed to identify current branch in %s (exit code %d%s)"
	gitBranchExecutionFailureTemplateConstant  = "Unable to identify current branch in %s: %s"
	gitPushStartTemplateConstant               = "Pushing branch from %s"
	gitPushSuccessTemplateConstant             = "Pushed branch from %s"
	gitPushFailureTemplateConstant             = "Failed to push branch from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant    = "Unable to push branch from %s: %s"
	githubAuthStartTemplateConstant            = "Checking GitHub CLI authentication"
	githubAuthSuccessTemplateConstant          = "GitHub CLI is authenticated"
	githubAuthFailureTemplateConstant          = "GitHub CLI is not authenticated (exit code %d%s)"
	githubAuthExecutionFailureTemplateConstant = "Unable to check GitHub CLI authentication: %s"
	githubRepoCreateStartTemplateConstant      = "Creating GitHub repository from %s"
	githubRepoCreateSuccessTemplateConstant    = "Created GitHub repository from %s"
	githubRepoCreateFailureTemplateConstant    = "Failed to create GitHub repository from %s (exit code %d%s)"
	githubRepoCreateExecutionTemplateConstant  = "Unable to create GitHub repository from %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHubCLI:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	subcommand := formatter.argumentAtIndex(command.Details.Arguments, 0)
	workingDirectory := formatter.describeWorkingDirectory(command)
	standardErrorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)

	switch subcommand {
	case gitInitSubcommandNameConstant:
		return formatter.stageMessage(stage,
			fmt.Sprintf(gitInitStartTemplateConstant, workingDirectory),
			fmt.Sprintf(gitInitSuccessTemplateConstant, workingDirectory),
			fmt.Sprintf(gitInitFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix),
			fmt.Sprintf(gitInitExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure)))
	case gitRemoteSubcommandNameConstant:
		remoteOperation := formatter.argumentAtIndex(command.Details.Arguments, 1)
		if remoteOperation == gitRemoteAddSubcommandConstant {
			return formatter.stageMessage(stage,
				fmt.Sprintf(gitRemoteAddStartTemplateConstant, workingDirectory),
				fmt.Sprintf(gitRemoteAddSuccessTemplateConstant, workingDirectory),
				fmt.Sprintf(gitRemoteAddFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix),
				fmt.Sprintf(gitRemoteExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure)))
		}
		return formatter.stageMessage(stage,
			fmt.Sprintf(gitRemoteLookupStartTemplateConstant, workingDirectory),
			fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, workingDirectory),
			fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix),
			fmt.Sprintf(gitRemoteExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure)))
	case gitAddSubcommandNameConstant:
		return formatter.stageMessage(stage,
			fmt.Sprintf(gitStageStartTemplateConstant, workingDirectory),
			fmt.Sprintf(gitStageSuccessTemplateConstant, workingDirectory),
			fmt.Sprintf(gitStageFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix),
			fmt.Sprintf(gitStageExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure)))
	case gitDiffSubcommandNameConstant:
		return formatter.stageMessage(stage,
			fmt.Sprintf(gitDiffStartTemplateConstant, workingDirectory),
			fmt.Sprintf(gitDiffSuccessTemplateConstant, workingDirectory),
			fmt.Sprintf(gitDiffFailureTemplateConstant, workingDirectory),
			fmt.Sprintf(gitDiffExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure)))
	case gitCommitSubcommandNameConstant:
		return formatter.stageMessage(stage,
			fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory),
			fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory),
			fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix),
			fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure)))
	case gitRevParseSubcommandNameConstant:
		return formatter.stageMessage(stage,
			fmt.Sprintf(gitBranchStartTemplateConstant, workingDirectory),
			fmt.Sprintf(gitBranchSuccessTemplateConstant, workingDirectory),
			fmt.Sprintf(gitBranchFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix),
			fmt.Sprintf(gitBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure)))
	case gitPushSubcommandNameConstant:
		return formatter.stageMessage(stage,
			fmt.Sprintf(gitPushStartTemplateConstant, workingDirectory),
			fmt.Sprintf(gitPushSuccessTemplateConstant, workingDirectory),
			fmt.Sprintf(gitPushFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix),
			fmt.Sprintf(gitPushExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure)))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	subcommand := formatter.argumentAtIndex(command.Details.Arguments, 0)
	workingDirectory := formatter.describeWorkingDirectory(command)
	standardErrorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)

	switch subcommand {
	case githubAuthSubcommandNameConstant:
		return formatter.stageMessage(stage,
			githubAuthStartTemplateConstant,
			githubAuthSuccessTemplateConstant,
			fmt.Sprintf(githubAuthFailureTemplateConstant, result.ExitCode, standardErrorSuffix),
			fmt.Sprintf(githubAuthExecutionFailureTemplateConstant, formatter.describeFailure(failure)))
	case githubRepoSubcommandNameConstant:
		if formatter.argumentAtIndex(command.Details.Arguments, 1) == githubCreateSubcommandNameConstant {
			return formatter.stageMessage(stage,
				fmt.Sprintf(githubRepoCreateStartTemplateConstant, workingDirectory),
				fmt.Sprintf(githubRepoCreateSuccessTemplateConstant, workingDirectory),
				fmt.Sprintf(githubRepoCreateFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix),
				fmt.Sprintf(githubRepoCreateExecutionTemplateConstant, workingDirectory, formatter.describeFailure(failure)))
		}
		return formatter.buildGenericMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) stageMessage(stage messageStage, startMessage string, successMessage string, failureMessage string, executionFailureMessage string) string {
	switch stage {
	case messageStageStart:
		return startMessage
	case messageStageSuccess:
		return successMessage
	case messageStageFailure:
		return failureMessage
	default:
		return executionFailureMessage
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return emptyStringConstant
	}
	return arguments[index]
}

func describeCommand(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	commandParts = append(commandParts, command.Details.Arguments...)
	return strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
}

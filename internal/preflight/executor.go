package preflight

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/preflight/internal/gitrepo"
)

const (
	gitMetadataDirectoryNameConstant         = ".git"
	missingFilesMessageConstant              = "Required files are missing; restore them before deploying:"
	missingFileLineTemplateConstant          = "  - %s"
	repositoryInitializedMessageConstant     = "Repository initialized"
	repositoryPresentMessageConstant         = "Repository already initialized"
	remoteAddedTemplateConstant              = "Remote %q added pointing at %s"
	remotePresentTemplateConstant            = "Remote %q already configured: %s"
	environmentCreatedTemplateConstant       = "Created %s with default settings"
	environmentPresentTemplateConstant       = "Found existing %s; leaving it untouched"
	secretKeyWarningMessageConstant          = "The generated SECRET_KEY is a placeholder; replace it before production use"
	nothingToCommitMessageConstant           = "Nothing to commit; working tree unchanged"
	commitCreatedTemplateConstant            = "Committed pending changes: %s"
	pushSucceededTemplateConstant            = "Pushed branch %q to %q with upstream tracking"
	pushFailedTemplateConstant               = "Push to %q failed; attempting to create the repository"
	githubCLIMissingMessageConstant          = "GitHub CLI (gh) is not installed; install it from https://cli.github.com and re-run, or create the repository manually"
	githubCLIUnauthenticatedMessageConstant  = "GitHub CLI is not authenticated; run 'gh auth login' and re-run"
	repositoryCreatedTemplateConstant        = "Created repository %s and pushed branch %q"
	creationFailedMessageConstant            = "Repository creation failed; create the repository manually on GitHub and push again"
	stepFailedErrorTemplateConstant          = "step %q failed: %w"
	stepStartedLogMessageConstant            = "preflight step started"
	stepCompletedLogMessageConstant          = "preflight step completed"
	stepFailedLogMessageConstant             = "preflight step failed"
	logFieldStepNameConstant                 = "step"
	logFieldFailureConstant                  = "failure"
	missingRequiredFilesErrorMessageConstant = "required files missing"
	dependencyMissingErrorTemplateConstant   = "preflight executor requires a %s"
	checkFilesStepNameConstant               = "check-required-files"
	initRepositoryStepNameConstant           = "ensure-repository"
	ensureRemoteStepNameConstant             = "ensure-remote"
	ensureEnvironmentStepNameConstant        = "ensure-environment-file"
	commitChangesStepNameConstant            = "commit-changes"
	publishBranchStepNameConstant            = "publish-branch"
	printSummaryStepNameConstant             = "print-summary"
)

// RepositoryManager exposes the git operations the orchestrator depends on.
type RepositoryManager interface {
	InitializeRepository(executionContext context.Context, repositoryPath string) error
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	StageAll(executionContext context.Context, repositoryPath string) error
	HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	PushWithUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
}

// RepositoryCreator exposes the GitHub CLI operations used when the push fallback runs.
type RepositoryCreator interface {
	CheckInstalled() error
	CheckAuthenticated(executionContext context.Context) error
	CreateRepositoryWithPush(executionContext context.Context, ownerRepository string, sourceDirectory string, remoteName string) error
}

// Console receives leveled user-facing messages during the run.
type Console interface {
	Info(message string)
	Success(message string)
	Warning(message string)
	Error(message string)
	Plain(message string)
}

// Dependencies captures the collaborators required by the orchestrator.
type Dependencies struct {
	RepositoryManager RepositoryManager
	RepositoryCreator RepositoryCreator
	FileSystem        FileSystem
	Console           Console
	Logger            *zap.Logger
}

// MissingFilesError reports every required file absent from the working directory.
type MissingFilesError struct {
	MissingPaths []string
}

// Error summarizes the batch of missing paths.
func (missingError MissingFilesError) Error() string {
	return missingRequiredFilesErrorMessageConstant + ": " + strings.Join(missingError.MissingPaths, ", ")
}

// Sentinel errors surfaced by the publish fallback.
var (
	// ErrCreationToolMissing indicates the repository-creation tool is not installed.
	ErrCreationToolMissing = errors.New(githubCLIMissingMessageConstant)
	// ErrCreationToolUnauthenticated indicates the repository-creation tool has no session.
	ErrCreationToolUnauthenticated = errors.New(githubCLIUnauthenticatedMessageConstant)
)

// Executor runs the deployment preparation steps in their mandatory order.
type Executor struct {
	dependencies Dependencies
}

// namedStep pairs a step identifier with its body; the run stops at the first failing step.
type namedStep struct {
	name string
	run  func(executionContext context.Context, configuration Configuration) error
}

// NewExecutor validates the dependencies and constructs an Executor.
func NewExecutor(dependencies Dependencies) (*Executor, error) {
	if dependencies.RepositoryManager == nil {
		return nil, fmt.Errorf(dependencyMissingErrorTemplateConstant, "repository manager")
	}
	if dependencies.RepositoryCreator == nil {
		return nil, fmt.Errorf(dependencyMissingErrorTemplateConstant, "repository creator")
	}
	if dependencies.FileSystem == nil {
		dependencies.FileSystem = OSFileSystem{}
	}
	if dependencies.Console == nil {
		return nil, fmt.Errorf(dependencyMissingErrorTemplateConstant, "console")
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &Executor{dependencies: dependencies}, nil
}

// Execute runs every preparation step, stopping at the first fatal failure.
func (executor *Executor) Execute(executionContext context.Context, configuration Configuration) error {
	mergedConfiguration := configuration.MergeDefaults()

	orderedSteps := []namedStep{
		{name: checkFilesStepNameConstant, run: executor.checkRequiredFiles},
		{name: initRepositoryStepNameConstant, run: executor.ensureRepository},
		{name: ensureRemoteStepNameConstant, run: executor.ensureRemote},
		{name: ensureEnvironmentStepNameConstant, run: executor.ensureEnvironmentFile},
		{name: commitChangesStepNameConstant, run: executor.commitChanges},
		{name: publishBranchStepNameConstant, run: executor.publishBranch},
		{name: printSummaryStepNameConstant, run: executor.printSummary},
	}

	for _, step := range orderedSteps {
		executor.dependencies.Logger.Debug(stepStartedLogMessageConstant, zap.String(logFieldStepNameConstant, step.name))

		if stepError := step.run(executionContext, mergedConfiguration); stepError != nil {
			executor.dependencies.Logger.Error(
				stepFailedLogMessageConstant,
				zap.String(logFieldStepNameConstant, step.name),
				zap.String(logFieldFailureConstant, stepError.Error()),
			)
			return fmt.Errorf(stepFailedErrorTemplateConstant, step.name, stepError)
		}

		executor.dependencies.Logger.Debug(stepCompletedLogMessageConstant, zap.String(logFieldStepNameConstant, step.name))
	}

	return nil
}

// checkRequiredFiles verifies every deployment artifact exists, reporting the full batch of missing paths.
func (executor *Executor) checkRequiredFiles(executionContext context.Context, configuration Configuration) error {
	missingPaths := []string{}
	for _, requiredFile := range configuration.RequiredFiles {
		resolvedPath := filepath.Join(configuration.WorkingDirectory, requiredFile)
		if _, statError := executor.dependencies.FileSystem.Stat(resolvedPath); statError != nil {
			missingPaths = append(missingPaths, requiredFile)
		}
	}

	if len(missingPaths) == 0 {
		return nil
	}

	executor.dependencies.Console.Error(missingFilesMessageConstant)
	for _, missingPath := range missingPaths {
		executor.dependencies.Console.Plain(fmt.Sprintf(missingFileLineTemplateConstant, missingPath))
	}
	return MissingFilesError{MissingPaths: missingPaths}
}

func (executor *Executor) ensureRepository(executionContext context.Context, configuration Configuration) error {
	metadataPath := filepath.Join(configuration.WorkingDirectory, gitMetadataDirectoryNameConstant)
	if _, statError := executor.dependencies.FileSystem.Stat(metadataPath); statError == nil {
		executor.dependencies.Console.Info(repositoryPresentMessageConstant)
		return nil
	}

	if initializationError := executor.dependencies.RepositoryManager.InitializeRepository(executionContext, configuration.WorkingDirectory); initializationError != nil {
		return initializationError
	}
	executor.dependencies.Console.Success(repositoryInitializedMessageConstant)
	return nil
}

func (executor *Executor) ensureRemote(executionContext context.Context, configuration Configuration) error {
	currentRemoteURL, lookupError := executor.dependencies.RepositoryManager.GetRemoteURL(executionContext, configuration.WorkingDirectory, configuration.RemoteName)
	switch {
	case lookupError == nil:
		executor.dependencies.Console.Info(fmt.Sprintf(remotePresentTemplateConstant, configuration.RemoteName, currentRemoteURL))
		return nil
	case errors.Is(lookupError, gitrepo.ErrRemoteNotConfigured):
		if addError := executor.dependencies.RepositoryManager.AddRemote(executionContext, configuration.WorkingDirectory, configuration.RemoteName, configuration.RemoteURL); addError != nil {
			return addError
		}
		executor.dependencies.Console.Success(fmt.Sprintf(remoteAddedTemplateConstant, configuration.RemoteName, configuration.RemoteURL))
		return nil
	default:
		return lookupError
	}
}

func (executor *Executor) ensureEnvironmentFile(executionContext context.Context, configuration Configuration) error {
	created, creationError := EnsureEnvironmentFile(executor.dependencies.FileSystem, configuration.WorkingDirectory, configuration.EnvironmentFilePath)
	if creationError != nil {
		return creationError
	}

	if created {
		executor.dependencies.Console.Success(fmt.Sprintf(environmentCreatedTemplateConstant, configuration.EnvironmentFilePath))
		executor.dependencies.Console.Warning(secretKeyWarningMessageConstant)
		return nil
	}

	executor.dependencies.Console.Info(fmt.Sprintf(environmentPresentTemplateConstant, configuration.EnvironmentFilePath))
	return nil
}

func (executor *Executor) commitChanges(executionContext context.Context, configuration Configuration) error {
	if stagingError := executor.dependencies.RepositoryManager.StageAll(executionContext, configuration.WorkingDirectory); stagingError != nil {
		return stagingError
	}

	stagedChanges, stagedError := executor.dependencies.RepositoryManager.HasStagedChanges(executionContext, configuration.WorkingDirectory)
	if stagedError != nil {
		return stagedError
	}

	if !stagedChanges {
		executor.dependencies.Console.Info(nothingToCommitMessageConstant)
		return nil
	}

	if commitError := executor.dependencies.RepositoryManager.CreateCommit(executionContext, configuration.WorkingDirectory, configuration.CommitMessage); commitError != nil {
		return commitError
	}
	executor.dependencies.Console.Success(fmt.Sprintf(commitCreatedTemplateConstant, configuration.CommitMessage))
	return nil
}

func (executor *Executor) publishBranch(executionContext context.Context, configuration Configuration) error {
	branchName, branchError := executor.dependencies.RepositoryManager.GetCurrentBranch(executionContext, configuration.WorkingDirectory)
	if branchError != nil {
		return branchError
	}

	pushError := executor.dependencies.RepositoryManager.PushWithUpstream(executionContext, configuration.WorkingDirectory, configuration.RemoteName, branchName)
	if pushError == nil {
		executor.dependencies.Console.Success(fmt.Sprintf(pushSucceededTemplateConstant, branchName, configuration.RemoteName))
		return nil
	}

	executor.dependencies.Console.Warning(fmt.Sprintf(pushFailedTemplateConstant, configuration.RemoteName))

	if installationError := executor.dependencies.RepositoryCreator.CheckInstalled(); installationError != nil {
		executor.dependencies.Console.Error(githubCLIMissingMessageConstant)
		return ErrCreationToolMissing
	}

	if authenticationError := executor.dependencies.RepositoryCreator.CheckAuthenticated(executionContext); authenticationError != nil {
		executor.dependencies.Console.Error(githubCLIUnauthenticatedMessageConstant)
		return ErrCreationToolUnauthenticated
	}

	parsedRemote, parseError := gitrepo.ParseRemoteURL(configuration.RemoteURL)
	if parseError != nil {
		return parseError
	}

	creationError := executor.dependencies.RepositoryCreator.CreateRepositoryWithPush(executionContext, parsedRemote.OwnerRepository(), configuration.WorkingDirectory, configuration.RemoteName)
	if creationError != nil {
		executor.dependencies.Console.Error(creationFailedMessageConstant)
		return creationError
	}

	executor.dependencies.Console.Success(fmt.Sprintf(repositoryCreatedTemplateConstant, parsedRemote.OwnerRepository(), branchName))
	return nil
}

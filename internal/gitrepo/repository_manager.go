package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/preflight/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "git executor not configured"
	remoteNotConfiguredMessageConstant   = "remote not configured"
	initSubcommandConstant               = "init"
	remoteSubcommandConstant             = "remote"
	remoteGetURLSubcommandConstant       = "get-url"
	remoteAddSubcommandConstant          = "add"
	addSubcommandConstant                = "add"
	stageAllFlagConstant                 = "-A"
	diffSubcommandConstant               = "diff"
	diffCachedFlagConstant               = "--cached"
	diffQuietFlagConstant                = "--quiet"
	commitSubcommandConstant             = "commit"
	commitMessageFlagConstant            = "-m"
	revParseSubcommandConstant           = "rev-parse"
	abbreviatedReferenceFlagConstant     = "--abbrev-ref"
	headReferenceConstant                = "HEAD"
	pushSubcommandConstant               = "push"
	pushSetUpstreamFlagConstant          = "-u"
	stagedChangesPresentExitCodeConstant = 1
)

// GitExecutor exposes the subset of shell execution required by the manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Sentinel errors surfaced by RepositoryManager operations.
var (
	// ErrExecutorNotConfigured indicates the manager was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrRemoteNotConfigured indicates the queried remote does not exist in the repository.
	ErrRemoteNotConfigured = errors.New(remoteNotConfiguredMessageConstant)
)

// RepositoryManager coordinates git operations for a single repository.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// InitializeRepository creates version-control metadata in the provided directory.
func (manager *RepositoryManager) InitializeRepository(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{initSubcommandConstant},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// GetRemoteURL resolves the URL of the named remote, returning ErrRemoteNotConfigured when absent.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{remoteSubcommandConstant, remoteGetURLSubcommandConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		failedError := execshell.CommandFailedError{}
		if errors.As(executionError, &failedError) {
			return "", ErrRemoteNotConfigured
		}
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// AddRemote registers a named remote pointing at the provided URL.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{remoteSubcommandConstant, remoteAddSubcommandConstant, remoteName, remoteURL},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// StageAll stages every working-directory change for the next commit.
func (manager *RepositoryManager) StageAll(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{addSubcommandConstant, stageAllFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// HasStagedChanges reports whether anything is staged for commit.
func (manager *RepositoryManager) HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{diffSubcommandConstant, diffCachedFlagConstant, diffQuietFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError == nil {
		return false, nil
	}

	failedError := execshell.CommandFailedError{}
	if errors.As(executionError, &failedError) && failedError.Result.ExitCode == stagedChangesPresentExitCodeConstant {
		return true, nil
	}
	return false, executionError
}

// CreateCommit records the staged changes with the provided message.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{commitSubcommandConstant, commitMessageFlagConstant, commitMessage},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// GetCurrentBranch resolves the name of the active branch.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{revParseSubcommandConstant, abbreviatedReferenceFlagConstant, headReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// PushWithUpstream publishes the branch to the named remote with upstream tracking.
func (manager *RepositoryManager) PushWithUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{pushSubcommandConstant, pushSetUpstreamFlagConstant, remoteName, branchName},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

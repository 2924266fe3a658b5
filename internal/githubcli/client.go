package githubcli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/temirov/preflight/internal/execshell"
)

const (
	githubCLIBinaryNameConstant             = "gh"
	authSubcommandConstant                  = "auth"
	statusSubcommandConstant                = "status"
	repoSubcommandConstant                  = "repo"
	createSubcommandConstant                = "create"
	sourceFlagConstant                      = "--source"
	remoteFlagConstant                      = "--remote"
	pushFlagConstant                        = "--push"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	notInstalledMessageConstant             = "github cli not installed"
	notAuthenticatedMessageConstant         = "github cli not authenticated"
	requiredValueMessageConstant            = "value required"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	ownerRepositoryFieldNameConstant        = "owner_repository"
	sourceDirectoryFieldNameConstant        = "source_directory"
	createRepositoryOperationNameConstant   = OperationName("CreateRepositoryWithPush")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// BinaryLocator resolves whether an executable is present on the system path.
type BinaryLocator interface {
	LookPath(binaryName string) (string, error)
}

// SystemBinaryLocator resolves executables through os/exec.
type SystemBinaryLocator struct{}

// LookPath delegates to exec.LookPath.
func (SystemBinaryLocator) LookPath(binaryName string) (string, error) {
	return exec.LookPath(binaryName)
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Sentinel errors surfaced by Client operations.
var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrNotInstalled indicates the GitHub CLI binary is absent from the system path.
	ErrNotInstalled = errors.New(notInstalledMessageConstant)
	// ErrNotAuthenticated indicates the GitHub CLI has no active authentication session.
	ErrNotAuthenticated = errors.New(notAuthenticatedMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the failed operation.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
	locator  BinaryLocator
}

// NewClient constructs a Client from the provided executor and a system binary locator.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	return NewClientWithLocator(executor, SystemBinaryLocator{})
}

// NewClientWithLocator constructs a Client with an explicit binary locator, used by tests.
func NewClientWithLocator(executor GitHubCommandExecutor, locator BinaryLocator) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if locator == nil {
		locator = SystemBinaryLocator{}
	}
	return &Client{executor: executor, locator: locator}, nil
}

// CheckInstalled verifies the GitHub CLI binary is present on the system path.
func (client *Client) CheckInstalled() error {
	if _, lookupError := client.locator.LookPath(githubCLIBinaryNameConstant); lookupError != nil {
		return ErrNotInstalled
	}
	return nil
}

// CheckAuthenticated verifies the GitHub CLI holds an active authentication session.
func (client *Client) CheckAuthenticated(executionContext context.Context) error {
	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{
		Arguments: []string{authSubcommandConstant, statusSubcommandConstant},
	})
	if executionError != nil {
		failedError := execshell.CommandFailedError{}
		if errors.As(executionError, &failedError) {
			return ErrNotAuthenticated
		}
		return executionError
	}
	return nil
}

// CreateRepositoryWithPush creates the named repository, wires it as the remote, and pushes in one operation.
func (client *Client) CreateRepositoryWithPush(executionContext context.Context, ownerRepository string, sourceDirectory string, remoteName string) error {
	trimmedOwnerRepository := strings.TrimSpace(ownerRepository)
	if len(trimmedOwnerRepository) == 0 {
		return InvalidInputError{FieldName: ownerRepositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedSourceDirectory := strings.TrimSpace(sourceDirectory)
	if len(trimmedSourceDirectory) == 0 {
		return InvalidInputError{FieldName: sourceDirectoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			createSubcommandConstant,
			trimmedOwnerRepository,
			sourceFlagConstant, trimmedSourceDirectory,
			remoteFlagConstant, remoteName,
			pushFlagConstant,
		},
		WorkingDirectory: trimmedSourceDirectory,
	})
	if executionError != nil {
		return OperationError{Operation: createRepositoryOperationNameConstant, Cause: executionError}
	}
	return nil
}

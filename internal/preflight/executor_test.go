package preflight_test

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/preflight/internal/gitrepo"
	"github.com/temirov/preflight/internal/preflight"
)

const (
	executorTestWorkingDirectoryConstant = "/tmp/project"
	executorTestRemoteURLConstant        = "https://github.com/example/legal-infographics.git"
	executorTestCustomRemoteURLConstant  = "git@github.com:someone/else.git"
	executorTestBranchNameConstant       = "main"
)

type fakeFileSystem struct {
	files        map[string]string
	writtenPaths []string
	writeError   error
}

func newFakeFileSystem(existingPaths ...string) *fakeFileSystem {
	files := map[string]string{}
	for _, existingPath := range existingPaths {
		files[existingPath] = ""
	}
	return &fakeFileSystem{files: files}
}

func (fileSystem *fakeFileSystem) Stat(path string) (fs.FileInfo, error) {
	if _, exists := fileSystem.files[path]; exists {
		return nil, nil
	}
	return nil, fs.ErrNotExist
}

func (fileSystem *fakeFileSystem) WriteFile(path string, content []byte, permissions fs.FileMode) error {
	if fileSystem.writeError != nil {
		return fileSystem.writeError
	}
	fileSystem.files[path] = string(content)
	fileSystem.writtenPaths = append(fileSystem.writtenPaths, path)
	return nil
}

type fakeRepositoryManager struct {
	remoteURL         string
	remoteLookupError error
	stagedChanges     bool
	stagedError       error
	branchName        string
	pushError         error
	initializedPaths  []string
	addedRemotes      []string
	stagedPaths       []string
	commitMessages    []string
	pushedBranches    []string
}

func (manager *fakeRepositoryManager) InitializeRepository(executionContext context.Context, repositoryPath string) error {
	manager.initializedPaths = append(manager.initializedPaths, repositoryPath)
	return nil
}

func (manager *fakeRepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	if manager.remoteLookupError != nil {
		return "", manager.remoteLookupError
	}
	return manager.remoteURL, nil
}

func (manager *fakeRepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	manager.addedRemotes = append(manager.addedRemotes, remoteURL)
	return nil
}

func (manager *fakeRepositoryManager) StageAll(executionContext context.Context, repositoryPath string) error {
	manager.stagedPaths = append(manager.stagedPaths, repositoryPath)
	return nil
}

func (manager *fakeRepositoryManager) HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	return manager.stagedChanges, manager.stagedError
}

func (manager *fakeRepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	manager.commitMessages = append(manager.commitMessages, commitMessage)
	return nil
}

func (manager *fakeRepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	if len(manager.branchName) == 0 {
		return executorTestBranchNameConstant, nil
	}
	return manager.branchName, nil
}

func (manager *fakeRepositoryManager) PushWithUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	manager.pushedBranches = append(manager.pushedBranches, branchName)
	return manager.pushError
}

type fakeRepositoryCreator struct {
	installationError   error
	authenticationError error
	creationError       error
	createdRepositories []string
}

func (creator *fakeRepositoryCreator) CheckInstalled() error {
	return creator.installationError
}

func (creator *fakeRepositoryCreator) CheckAuthenticated(executionContext context.Context) error {
	return creator.authenticationError
}

func (creator *fakeRepositoryCreator) CreateRepositoryWithPush(executionContext context.Context, ownerRepository string, sourceDirectory string, remoteName string) error {
	if creator.creationError != nil {
		return creator.creationError
	}
	creator.createdRepositories = append(creator.createdRepositories, ownerRepository)
	return nil
}

type recordingConsole struct {
	infoMessages    []string
	successMessages []string
	warningMessages []string
	errorMessages   []string
	plainMessages   []string
}

func (console *recordingConsole) Info(message string) {
	console.infoMessages = append(console.infoMessages, message)
}

func (console *recordingConsole) Success(message string) {
	console.successMessages = append(console.successMessages, message)
}

func (console *recordingConsole) Warning(message string) {
	console.warningMessages = append(console.warningMessages, message)
}

func (console *recordingConsole) Error(message string) {
	console.errorMessages = append(console.errorMessages, message)
}

func (console *recordingConsole) Plain(message string) {
	console.plainMessages = append(console.plainMessages, message)
}

func testConfiguration() preflight.Configuration {
	configuration := preflight.DefaultConfiguration()
	configuration.WorkingDirectory = executorTestWorkingDirectoryConstant
	configuration.RemoteURL = executorTestRemoteURLConstant
	return configuration
}

func fileSystemWithRequiredFiles() *fakeFileSystem {
	requiredPaths := []string{}
	for _, requiredFile := range preflight.DefaultConfiguration().RequiredFiles {
		requiredPaths = append(requiredPaths, filepath.Join(executorTestWorkingDirectoryConstant, requiredFile))
	}
	return newFakeFileSystem(requiredPaths...)
}

func newTestExecutor(testInstance *testing.T, fileSystem *fakeFileSystem, manager *fakeRepositoryManager, creator *fakeRepositoryCreator, console *recordingConsole) *preflight.Executor {
	testInstance.Helper()
	executor, creationError := preflight.NewExecutor(preflight.Dependencies{
		RepositoryManager: manager,
		RepositoryCreator: creator,
		FileSystem:        fileSystem,
		Console:           console,
	})
	require.NoError(testInstance, creationError)
	return executor
}

func TestExecutorReportsEveryMissingFileBeforeMutating(testInstance *testing.T) {
	fileSystem := newFakeFileSystem(
		filepath.Join(executorTestWorkingDirectoryConstant, "public/infographic.html"),
		filepath.Join(executorTestWorkingDirectoryConstant, "vercel.json"),
	)
	manager := &fakeRepositoryManager{remoteLookupError: gitrepo.ErrRemoteNotConfigured}
	console := &recordingConsole{}
	executor := newTestExecutor(testInstance, fileSystem, manager, &fakeRepositoryCreator{}, console)

	executionError := executor.Execute(context.Background(), testConfiguration())

	require.Error(testInstance, executionError)
	missingFiles := preflight.MissingFilesError{}
	require.ErrorAs(testInstance, executionError, &missingFiles)
	require.ElementsMatch(testInstance, []string{"legal_infographics/main.py", "requirements.txt"}, missingFiles.MissingPaths)
	require.Contains(testInstance, console.plainMessages, "  - legal_infographics/main.py")
	require.Contains(testInstance, console.plainMessages, "  - requirements.txt")

	require.Empty(testInstance, manager.initializedPaths)
	require.Empty(testInstance, manager.addedRemotes)
	require.Empty(testInstance, fileSystem.writtenPaths)
}

func TestExecutorFreshDirectoryRunsFullSequence(testInstance *testing.T) {
	fileSystem := fileSystemWithRequiredFiles()
	manager := &fakeRepositoryManager{
		remoteLookupError: gitrepo.ErrRemoteNotConfigured,
		stagedChanges:     true,
	}
	creator := &fakeRepositoryCreator{}
	console := &recordingConsole{}
	executor := newTestExecutor(testInstance, fileSystem, manager, creator, console)

	configuration := testConfiguration()
	require.NoError(testInstance, executor.Execute(context.Background(), configuration))

	require.Equal(testInstance, []string{executorTestWorkingDirectoryConstant}, manager.initializedPaths)
	require.Equal(testInstance, []string{executorTestRemoteURLConstant}, manager.addedRemotes)
	require.Equal(testInstance, []string{filepath.Join(executorTestWorkingDirectoryConstant, ".env")}, fileSystem.writtenPaths)
	require.Equal(testInstance, []string{configuration.CommitMessage}, manager.commitMessages)
	require.Equal(testInstance, []string{executorTestBranchNameConstant}, manager.pushedBranches)
	require.Empty(testInstance, creator.createdRepositories)
	require.Contains(testInstance, console.warningMessages, "The generated SECRET_KEY is a placeholder; replace it before production use")
	require.Contains(testInstance, console.successMessages, "Deployment preparation complete")
}

func TestExecutorSecondRunIsIdempotent(testInstance *testing.T) {
	fileSystem := fileSystemWithRequiredFiles()
	fileSystem.files[filepath.Join(executorTestWorkingDirectoryConstant, ".git")] = ""
	fileSystem.files[filepath.Join(executorTestWorkingDirectoryConstant, ".env")] = "SECRET_KEY=custom\n"
	manager := &fakeRepositoryManager{
		remoteURL:     executorTestRemoteURLConstant,
		stagedChanges: false,
	}
	console := &recordingConsole{}
	executor := newTestExecutor(testInstance, fileSystem, manager, &fakeRepositoryCreator{}, console)

	require.NoError(testInstance, executor.Execute(context.Background(), testConfiguration()))

	require.Empty(testInstance, manager.initializedPaths)
	require.Empty(testInstance, manager.addedRemotes)
	require.Empty(testInstance, fileSystem.writtenPaths)
	require.Empty(testInstance, manager.commitMessages)
	require.Contains(testInstance, console.infoMessages, "Nothing to commit; working tree unchanged")
	require.Equal(testInstance, "SECRET_KEY=custom\n", fileSystem.files[filepath.Join(executorTestWorkingDirectoryConstant, ".env")])
}

func TestExecutorNeverRewritesForeignRemote(testInstance *testing.T) {
	fileSystem := fileSystemWithRequiredFiles()
	fileSystem.files[filepath.Join(executorTestWorkingDirectoryConstant, ".git")] = ""
	manager := &fakeRepositoryManager{
		remoteURL:     executorTestCustomRemoteURLConstant,
		stagedChanges: false,
	}
	console := &recordingConsole{}
	executor := newTestExecutor(testInstance, fileSystem, manager, &fakeRepositoryCreator{}, console)

	require.NoError(testInstance, executor.Execute(context.Background(), testConfiguration()))

	require.Empty(testInstance, manager.addedRemotes)
	require.Contains(testInstance, console.infoMessages, "Remote \"origin\" already configured: "+executorTestCustomRemoteURLConstant)
}

func TestExecutorPublishFallback(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		creator               *fakeRepositoryCreator
		expectedError         error
		expectedRepositories  []string
		expectCreationAttempt bool
	}{
		{
			name:          "creation_tool_missing",
			creator:       &fakeRepositoryCreator{installationError: errors.New("not found")},
			expectedError: preflight.ErrCreationToolMissing,
		},
		{
			name:          "creation_tool_unauthenticated",
			creator:       &fakeRepositoryCreator{authenticationError: errors.New("no session")},
			expectedError: preflight.ErrCreationToolUnauthenticated,
		},
		{
			name:                  "creation_succeeds",
			creator:               &fakeRepositoryCreator{},
			expectedRepositories:  []string{"example/legal-infographics"},
			expectCreationAttempt: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			fileSystem := fileSystemWithRequiredFiles()
			fileSystem.files[filepath.Join(executorTestWorkingDirectoryConstant, ".git")] = ""
			manager := &fakeRepositoryManager{
				remoteURL:     executorTestRemoteURLConstant,
				stagedChanges: false,
				pushError:     errors.New("remote repository not found"),
			}
			console := &recordingConsole{}
			executor := newTestExecutor(testInstance, fileSystem, manager, testCase.creator, console)

			executionError := executor.Execute(context.Background(), testConfiguration())

			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, executionError, testCase.expectedError)
				require.Empty(testInstance, testCase.creator.createdRepositories)
				require.NotEmpty(testInstance, console.errorMessages)
				return
			}

			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedRepositories, testCase.creator.createdRepositories)
		})
	}
}

func TestExecutorCreationFailurePointsAtManualSteps(testInstance *testing.T) {
	fileSystem := fileSystemWithRequiredFiles()
	fileSystem.files[filepath.Join(executorTestWorkingDirectoryConstant, ".git")] = ""
	manager := &fakeRepositoryManager{
		remoteURL:     executorTestRemoteURLConstant,
		stagedChanges: false,
		pushError:     errors.New("remote repository not found"),
	}
	creator := &fakeRepositoryCreator{creationError: errors.New("name already taken")}
	console := &recordingConsole{}
	executor := newTestExecutor(testInstance, fileSystem, manager, creator, console)

	executionError := executor.Execute(context.Background(), testConfiguration())

	require.Error(testInstance, executionError)
	require.Contains(testInstance, console.errorMessages, "Repository creation failed; create the repository manually on GitHub and push again")
}

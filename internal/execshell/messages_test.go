package execshell_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/preflight/internal/execshell"
)

func TestCommandMessageFormatterDescribesKnownOperations(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         execshell.ShellCommand
		expectedStart   string
		expectedSuccess string
	}{
		{
			name: "git_init",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"init"}, WorkingDirectory: "/tmp/project"},
			},
			expectedStart:   "Initializing repository in /tmp/project",
			expectedSuccess: "Repository initialized in /tmp/project",
		},
		{
			name: "git_remote_add",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"remote", "add", "origin", "https://github.com/example/project.git"}, WorkingDirectory: "/tmp/project"},
			},
			expectedStart:   "Adding remote in /tmp/project",
			expectedSuccess: "Remote added in /tmp/project",
		},
		{
			name: "git_push",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"push", "-u", "origin", "main"}, WorkingDirectory: "/tmp/project"},
			},
			expectedStart:   "Pushing branch from /tmp/project",
			expectedSuccess: "Pushed branch from /tmp/project",
		},
		{
			name: "github_auth_status",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGitHubCLI,
				Details: execshell.CommandDetails{Arguments: []string{"auth", "status"}},
			},
			expectedStart:   "Checking GitHub CLI authentication",
			expectedSuccess: "GitHub CLI is authenticated",
		},
		{
			name: "generic_fallback",
			command: execshell.ShellCommand{
				Name:    execshell.CommandGit,
				Details: execshell.CommandDetails{Arguments: []string{"gc"}},
			},
			expectedStart:   "Running git gc",
			expectedSuccess: "Completed git gc",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedStart, formatter.BuildStartedMessage(testCase.command))
			require.Equal(testInstance, testCase.expectedSuccess, formatter.BuildSuccessMessage(testCase.command))
		})
	}
}

func TestCommandMessageFormatterIncludesStandardError(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	pushCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"push", "-u", "origin", "main"}, WorkingDirectory: "/tmp/project"},
	}
	failureResult := execshell.ExecutionResult{ExitCode: 128, StandardError: "repository not found"}

	failureMessage := formatter.BuildFailureMessage(pushCommand, failureResult)
	require.Equal(testInstance, "Failed to push branch from /tmp/project (exit code 128: repository not found)", failureMessage)
}

package verify_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	verifycmd "github.com/temirov/preflight/cmd/cli/verify"
	verifycore "github.com/temirov/preflight/internal/verify"
)

const directoryFlagArgumentConstant = "--directory"

func TestVerifyCommandFailsOnEmptyDirectory(testInstance *testing.T) {
	projectDirectory := testInstance.TempDir()

	builder := verifycmd.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs([]string{directoryFlagArgumentConstant, projectDirectory})

	executionError := command.Execute()

	require.Error(testInstance, executionError)
	checksFailed := verifycore.ChecksFailedError{}
	require.ErrorAs(testInstance, executionError, &checksFailed)
	require.Equal(testInstance, 4, checksFailed.FailedCount)
	require.Contains(testInstance, outputBuffer.String(), "file-structure: failed")
}

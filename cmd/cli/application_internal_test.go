package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	helpSubcommandListEntryConstant = "deploy"
	logLevelOverrideValueConstant   = "debug"
	logLevelOverrideFlagConstant    = "--log-level"
)

func TestApplicationRootCommandPrintsSubcommands(testInstance *testing.T) {
	application := NewApplication()

	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(outputBuffer)
	application.rootCommand.SetArgs([]string{})

	require.NoError(testInstance, application.Execute())

	helpOutput := outputBuffer.String()
	require.Contains(testInstance, helpOutput, helpSubcommandListEntryConstant)
	require.Contains(testInstance, helpOutput, "verify")
	require.Contains(testInstance, helpOutput, "users")
}

func TestApplicationLogLevelFlagOverridesConfiguration(testInstance *testing.T) {
	application := NewApplication()

	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(outputBuffer)
	application.rootCommand.SetArgs([]string{logLevelOverrideFlagConstant, logLevelOverrideValueConstant})

	require.NoError(testInstance, application.Execute())
	require.Equal(testInstance, logLevelOverrideValueConstant, application.configuration.Common.LogLevel)
}

func TestPersistentFlagChangedHandlesNilCommand(testInstance *testing.T) {
	application := NewApplication()
	require.False(testInstance, application.persistentFlagChanged(nil, logLevelFlagNameConstant))
}

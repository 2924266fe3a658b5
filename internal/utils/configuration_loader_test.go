package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/preflight/internal/utils"
)

const (
	testEnvironmentPrefixConstant       = "TESTPREFLIGHT"
	testLogLevelKeyConstant             = "common.log_level"
	testDefaultLogLevelConstant         = "info"
	testFileLogLevelConstant            = "warn"
	testEnvironmentLogLevelConstant     = "error"
	testEmbeddedLogLevelConstant        = "debug"
	testConfigFileNameConstant          = "config.yaml"
	testConfigContentTemplateConstant   = "common:\n  log_level: %s\n"
	testConfigurationNameConstant       = "config"
	testConfigurationTypeConstant       = "yaml"
	testLogLevelEnvironmentNameConstant = "TESTPREFLIGHT_COMMON_LOG_LEVEL"
)

type loaderTestConfiguration struct {
	Common struct {
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"common"`
}

func newTestConfigurationLoader(searchPaths []string) *utils.ConfigurationLoader {
	return utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		searchPaths,
	)
}

func TestConfigurationLoaderAppliesDefaults(testInstance *testing.T) {
	loader := newTestConfigurationLoader([]string{testInstance.TempDir()})

	loadedTarget := loaderTestConfiguration{}
	_, loadError := loader.LoadConfiguration("", map[string]any{testLogLevelKeyConstant: testDefaultLogLevelConstant}, &loadedTarget)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testDefaultLogLevelConstant, loadedTarget.Common.LogLevel)
}

func TestConfigurationLoaderMergesEmbeddedConfiguration(testInstance *testing.T) {
	loader := newTestConfigurationLoader([]string{testInstance.TempDir()})
	loader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testEmbeddedLogLevelConstant)), testConfigurationTypeConstant)

	loadedTarget := loaderTestConfiguration{}
	_, loadError := loader.LoadConfiguration("", nil, &loadedTarget)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testEmbeddedLogLevelConstant, loadedTarget.Common.LogLevel)
}

func TestConfigurationLoaderFileOverridesDefaults(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(temporaryDirectory, testConfigFileNameConstant)
	configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testFileLogLevelConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o644))

	loader := newTestConfigurationLoader([]string{temporaryDirectory})

	loadedTarget := loaderTestConfiguration{}
	loadedMetadata, loadError := loader.LoadConfiguration(configurationFilePath, map[string]any{testLogLevelKeyConstant: testDefaultLogLevelConstant}, &loadedTarget)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testFileLogLevelConstant, loadedTarget.Common.LogLevel)
	require.Equal(testInstance, configurationFilePath, loadedMetadata.ConfigFileUsed)
}

func TestConfigurationLoaderEnvironmentOverridesFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(temporaryDirectory, testConfigFileNameConstant)
	configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testFileLogLevelConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o644))

	testInstance.Setenv(testLogLevelEnvironmentNameConstant, testEnvironmentLogLevelConstant)

	loader := newTestConfigurationLoader([]string{temporaryDirectory})

	loadedTarget := loaderTestConfiguration{}
	_, loadError := loader.LoadConfiguration(configurationFilePath, map[string]any{testLogLevelKeyConstant: testDefaultLogLevelConstant}, &loadedTarget)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testEnvironmentLogLevelConstant, loadedTarget.Common.LogLevel)
}

package verify_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/preflight/internal/verify"
)

const (
	verifierTestWorkingDirectoryConstant = "/srv/platform"
	validVercelConfigurationConstant     = `{"version": 2, "builds": [], "routes": []}`
	validInfographicContentConstant      = "<html><body>Plaintiff's Strategic Case Analysis</body></html>"
	validRequirementsContentConstant     = "fastapi==0.104.1\nuvicorn==0.24.0\npydantic==2.5.0\nsqlalchemy==2.0.23\npasslib==1.7.4\npython-jose==3.3.0\n"
)

type fakeFileReader struct {
	files map[string]string
}

func newFakeFileReader() *fakeFileReader {
	return &fakeFileReader{files: map[string]string{}}
}

func (reader *fakeFileReader) Stat(path string) (os.FileInfo, error) {
	if _, exists := reader.files[path]; exists {
		return nil, nil
	}
	return nil, fs.ErrNotExist
}

func (reader *fakeFileReader) ReadFile(path string) ([]byte, error) {
	content, exists := reader.files[path]
	if !exists {
		return nil, fs.ErrNotExist
	}
	return []byte(content), nil
}

func (reader *fakeFileReader) addFile(relativePath string, content string) {
	reader.files[filepath.Join(verifierTestWorkingDirectoryConstant, relativePath)] = content
}

type recordingVerifyConsole struct {
	infoMessages    []string
	successMessages []string
	errorMessages   []string
	plainMessages   []string
}

func (console *recordingVerifyConsole) Info(message string) {
	console.infoMessages = append(console.infoMessages, message)
}

func (console *recordingVerifyConsole) Success(message string) {
	console.successMessages = append(console.successMessages, message)
}

func (console *recordingVerifyConsole) Error(message string) {
	console.errorMessages = append(console.errorMessages, message)
}

func (console *recordingVerifyConsole) Plain(message string) {
	console.plainMessages = append(console.plainMessages, message)
}

func completeProjectReader() *fakeFileReader {
	reader := newFakeFileReader()
	inventoryPaths := []string{
		"public/infographic.html",
		"legal_infographics/main.py",
		"legal_infographics/config.py",
		"legal_infographics/database.py",
		"legal_infographics/api/__init__.py",
		"legal_infographics/api/auth.py",
		"legal_infographics/api/infographics.py",
		"legal_infographics/api/cases.py",
		"legal_infographics/api/users.py",
		"legal_infographics/api/audit.py",
		"legal_infographics/middleware/__init__.py",
		"legal_infographics/middleware/rate_limit.py",
		"legal_infographics/middleware/audit.py",
		"legal_infographics/middleware/security.py",
		"legal_infographics/utils/__init__.py",
		"legal_infographics/utils/security.py",
		"legal_infographics/utils/logging.py",
	}
	for _, inventoryPath := range inventoryPaths {
		reader.addFile(inventoryPath, "content")
	}
	reader.addFile("public/infographic.html", validInfographicContentConstant)
	reader.addFile("vercel.json", validVercelConfigurationConstant)
	reader.addFile("requirements.txt", validRequirementsContentConstant)
	return reader
}

func newTestVerifier(testInstance *testing.T, reader *fakeFileReader, console *recordingVerifyConsole) *verify.Verifier {
	testInstance.Helper()
	verifier, creationError := verify.NewVerifier(reader, console)
	require.NoError(testInstance, creationError)
	return verifier
}

func TestVerifierRequiresConsole(testInstance *testing.T) {
	_, creationError := verify.NewVerifier(newFakeFileReader(), nil)
	require.ErrorIs(testInstance, creationError, verify.ErrConsoleNotConfigured)
}

func TestVerifierPassesOnCompleteProject(testInstance *testing.T) {
	console := &recordingVerifyConsole{}
	verifier := newTestVerifier(testInstance, completeProjectReader(), console)

	require.NoError(testInstance, verifier.Run(verifierTestWorkingDirectoryConstant))
	require.Contains(testInstance, console.infoMessages, "Checks passed: 4/4")
	require.Contains(testInstance, console.successMessages, "Deployment setup is ready")
	require.Empty(testInstance, console.errorMessages)
}

func TestVerifierReportsEveryFailure(testInstance *testing.T) {
	testCases := []struct {
		name            string
		mutateReader    func(reader *fakeFileReader)
		expectedFailed  int
		expectedDetails []string
	}{
		{
			name: "missing_api_module",
			mutateReader: func(reader *fakeFileReader) {
				delete(reader.files, filepath.Join(verifierTestWorkingDirectoryConstant, "legal_infographics/api/audit.py"))
			},
			expectedFailed:  1,
			expectedDetails: []string{"  - missing legal_infographics/api/audit.py"},
		},
		{
			name: "infographic_without_expected_title",
			mutateReader: func(reader *fakeFileReader) {
				reader.addFile("public/infographic.html", "<html></html>")
			},
			expectedFailed:  1,
			expectedDetails: []string{"  - infographic.html does not mention \"Plaintiff's Strategic Case Analysis\""},
		},
		{
			name: "empty_infographic",
			mutateReader: func(reader *fakeFileReader) {
				reader.addFile("public/infographic.html", "   \n")
			},
			expectedFailed:  1,
			expectedDetails: []string{"  - infographic.html is empty"},
		},
		{
			name: "vercel_configuration_missing_routes",
			mutateReader: func(reader *fakeFileReader) {
				reader.addFile("vercel.json", `{"version": 2, "builds": []}`)
			},
			expectedFailed:  1,
			expectedDetails: []string{"  - vercel.json missing required key \"routes\""},
		},
		{
			name: "vercel_configuration_malformed",
			mutateReader: func(reader *fakeFileReader) {
				reader.addFile("vercel.json", "{not json")
			},
			expectedFailed: 1,
		},
		{
			name: "requirements_missing_packages",
			mutateReader: func(reader *fakeFileReader) {
				reader.addFile("requirements.txt", "fastapi==0.104.1\n")
			},
			expectedFailed: 1,
			expectedDetails: []string{
				"  - requirements.txt missing package uvicorn",
				"  - requirements.txt missing package pydantic",
				"  - requirements.txt missing package sqlalchemy",
				"  - requirements.txt missing package passlib",
				"  - requirements.txt missing package python-jose",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			reader := completeProjectReader()
			testCase.mutateReader(reader)
			console := &recordingVerifyConsole{}
			verifier := newTestVerifier(testInstance, reader, console)

			runError := verifier.Run(verifierTestWorkingDirectoryConstant)

			require.Error(testInstance, runError)
			checksFailed := verify.ChecksFailedError{}
			require.ErrorAs(testInstance, runError, &checksFailed)
			require.Equal(testInstance, testCase.expectedFailed, checksFailed.FailedCount)
			require.Equal(testInstance, 4, checksFailed.TotalCount)
			for _, expectedDetail := range testCase.expectedDetails {
				require.Contains(testInstance, console.plainMessages, expectedDetail)
			}
			require.Contains(testInstance, console.errorMessages, "Fix the reported issues before deploying")
		})
	}
}

package verify

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	fileStructureCheckNameConstant       = "file-structure"
	infographicContentCheckNameConstant  = "infographic-content"
	vercelConfigurationCheckNameConstant = "vercel-configuration"
	requirementsCheckNameConstant        = "requirements"
	infographicRelativePathConstant      = "public/infographic.html"
	vercelConfigurationPathConstant      = "vercel.json"
	requirementsRelativePathConstant     = "requirements.txt"
	expectedInfographicTitleConstant     = "Plaintiff's Strategic Case Analysis"
	checkPassedTemplateConstant          = "%s: ok"
	checkFailedTemplateConstant          = "%s: failed"
	checkDetailLineTemplateConstant      = "  - %s"
	missingFileDetailTemplateConstant    = "missing %s"
	emptyInfographicDetailConstant       = "infographic.html is empty"
	missingTitleDetailTemplateConstant   = "infographic.html does not mention %q"
	unreadableFileDetailTemplateConstant = "unable to read %s: %v"
	invalidJSONDetailTemplateConstant    = "vercel.json is not valid JSON: %v"
	missingKeyDetailTemplateConstant     = "vercel.json missing required key %q"
	missingPackageDetailTemplate         = "requirements.txt missing package %s"
	resultSummaryTemplateConstant        = "Checks passed: %d/%d"
	readyMessageConstant                 = "Deployment setup is ready"
	notReadyMessageConstant              = "Fix the reported issues before deploying"
	checksFailedErrorTemplateConstant    = "%d of %d readiness checks failed"
	verifierConsoleRequiredConstant      = "verifier requires a console"
)

// deploymentFileInventory is the full artifact list the deployed application ships with.
var deploymentFileInventory = []string{
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
	"requirements.txt",
	"vercel.json",
}

// requiredVercelConfigurationKeys are the top-level keys a deployable vercel.json carries.
var requiredVercelConfigurationKeys = []string{"version", "builds", "routes"}

// requiredPythonPackages are the runtime dependencies the platform cannot start without.
var requiredPythonPackages = []string{"fastapi", "uvicorn", "pydantic", "sqlalchemy", "passlib", "python-jose"}

// ErrConsoleNotConfigured indicates a Verifier was constructed without a console.
var ErrConsoleNotConfigured = errors.New(verifierConsoleRequiredConstant)

// Console receives leveled user-facing messages during verification.
type Console interface {
	Info(message string)
	Success(message string)
	Error(message string)
	Plain(message string)
}

// FileReader abstracts the filesystem reads verification depends on.
type FileReader interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// OSFileReader implements FileReader using the operating system facilities.
type OSFileReader struct{}

// Stat reports metadata for the provided path.
func (OSFileReader) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile returns the full content of the provided path.
func (OSFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// CheckResult captures the outcome of a single readiness check.
type CheckResult struct {
	Name    string
	Passed  bool
	Details []string
}

// ChecksFailedError reports how many readiness checks did not pass.
type ChecksFailedError struct {
	FailedCount int
	TotalCount  int
}

// Error summarizes the failed check counts.
func (checksError ChecksFailedError) Error() string {
	return fmt.Sprintf(checksFailedErrorTemplateConstant, checksError.FailedCount, checksError.TotalCount)
}

// Verifier runs the readiness checks against a working directory.
type Verifier struct {
	fileReader FileReader
	console    Console
}

// NewVerifier constructs a Verifier, defaulting the file reader to the operating system.
func NewVerifier(fileReader FileReader, console Console) (*Verifier, error) {
	if fileReader == nil {
		fileReader = OSFileReader{}
	}
	if console == nil {
		return nil, ErrConsoleNotConfigured
	}
	return &Verifier{fileReader: fileReader, console: console}, nil
}

// Run executes every readiness check, reports each outcome, and returns
// ChecksFailedError when at least one check fails.
func (verifier *Verifier) Run(workingDirectory string) error {
	checkResults := []CheckResult{
		verifier.checkFileStructure(workingDirectory),
		verifier.checkInfographicContent(workingDirectory),
		verifier.checkVercelConfiguration(workingDirectory),
		verifier.checkRequirements(workingDirectory),
	}

	passedCount := 0
	for _, checkResult := range checkResults {
		if checkResult.Passed {
			passedCount++
			verifier.console.Success(fmt.Sprintf(checkPassedTemplateConstant, checkResult.Name))
			continue
		}

		verifier.console.Error(fmt.Sprintf(checkFailedTemplateConstant, checkResult.Name))
		for _, detail := range checkResult.Details {
			verifier.console.Plain(fmt.Sprintf(checkDetailLineTemplateConstant, detail))
		}
	}

	verifier.console.Info(fmt.Sprintf(resultSummaryTemplateConstant, passedCount, len(checkResults)))

	if passedCount == len(checkResults) {
		verifier.console.Success(readyMessageConstant)
		return nil
	}

	verifier.console.Error(notReadyMessageConstant)
	return ChecksFailedError{FailedCount: len(checkResults) - passedCount, TotalCount: len(checkResults)}
}

func (verifier *Verifier) checkFileStructure(workingDirectory string) CheckResult {
	checkResult := CheckResult{Name: fileStructureCheckNameConstant, Passed: true}
	for _, inventoryPath := range deploymentFileInventory {
		resolvedPath := filepath.Join(workingDirectory, inventoryPath)
		if _, statError := verifier.fileReader.Stat(resolvedPath); statError != nil {
			checkResult.Passed = false
			checkResult.Details = append(checkResult.Details, fmt.Sprintf(missingFileDetailTemplateConstant, inventoryPath))
		}
	}
	return checkResult
}

func (verifier *Verifier) checkInfographicContent(workingDirectory string) CheckResult {
	checkResult := CheckResult{Name: infographicContentCheckNameConstant}

	infographicContent, readError := verifier.fileReader.ReadFile(filepath.Join(workingDirectory, infographicRelativePathConstant))
	if readError != nil {
		checkResult.Details = append(checkResult.Details, fmt.Sprintf(unreadableFileDetailTemplateConstant, infographicRelativePathConstant, readError))
		return checkResult
	}

	trimmedContent := strings.TrimSpace(string(infographicContent))
	if len(trimmedContent) == 0 {
		checkResult.Details = append(checkResult.Details, emptyInfographicDetailConstant)
		return checkResult
	}

	if !strings.Contains(trimmedContent, expectedInfographicTitleConstant) {
		checkResult.Details = append(checkResult.Details, fmt.Sprintf(missingTitleDetailTemplateConstant, expectedInfographicTitleConstant))
		return checkResult
	}

	checkResult.Passed = true
	return checkResult
}

func (verifier *Verifier) checkVercelConfiguration(workingDirectory string) CheckResult {
	checkResult := CheckResult{Name: vercelConfigurationCheckNameConstant}

	configurationContent, readError := verifier.fileReader.ReadFile(filepath.Join(workingDirectory, vercelConfigurationPathConstant))
	if readError != nil {
		checkResult.Details = append(checkResult.Details, fmt.Sprintf(unreadableFileDetailTemplateConstant, vercelConfigurationPathConstant, readError))
		return checkResult
	}

	parsedConfiguration := map[string]any{}
	if unmarshalError := json.Unmarshal(configurationContent, &parsedConfiguration); unmarshalError != nil {
		checkResult.Details = append(checkResult.Details, fmt.Sprintf(invalidJSONDetailTemplateConstant, unmarshalError))
		return checkResult
	}

	checkResult.Passed = true
	for _, requiredKey := range requiredVercelConfigurationKeys {
		if _, keyPresent := parsedConfiguration[requiredKey]; !keyPresent {
			checkResult.Passed = false
			checkResult.Details = append(checkResult.Details, fmt.Sprintf(missingKeyDetailTemplateConstant, requiredKey))
		}
	}
	return checkResult
}

func (verifier *Verifier) checkRequirements(workingDirectory string) CheckResult {
	checkResult := CheckResult{Name: requirementsCheckNameConstant}

	requirementsContent, readError := verifier.fileReader.ReadFile(filepath.Join(workingDirectory, requirementsRelativePathConstant))
	if readError != nil {
		checkResult.Details = append(checkResult.Details, fmt.Sprintf(unreadableFileDetailTemplateConstant, requirementsRelativePathConstant, readError))
		return checkResult
	}

	checkResult.Passed = true
	requirementsText := string(requirementsContent)
	for _, requiredPackage := range requiredPythonPackages {
		if !strings.Contains(requirementsText, requiredPackage) {
			checkResult.Passed = false
			checkResult.Details = append(checkResult.Details, fmt.Sprintf(missingPackageDetailTemplate, requiredPackage))
		}
	}
	return checkResult
}

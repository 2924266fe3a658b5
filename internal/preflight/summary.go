package preflight

import "context"

const (
	summaryHeadingConstant = "Deployment preparation complete"
)

// summaryLines is the fixed checklist of manual follow-up steps printed after a successful run.
var summaryLines = []string{
	"",
	"Next steps:",
	"  1. Open the Vercel dashboard: https://vercel.com/dashboard",
	"  2. Import the GitHub repository into a new Vercel project",
	"  3. Configure environment variables in Project Settings:",
	"       SECRET_KEY   (replace the placeholder from .env)",
	"       USERS        (generate with 'preflight users')",
	"       CORS_ORIGINS (your production origin)",
	"  4. Build settings: Framework Preset 'Other', no build command,",
	"     output directory 'public'",
	"  5. Deploy and verify https://<project>.vercel.app/infographic.html",
}

// printSummary emits the fixed human-readable checklist and completes the run.
func (executor *Executor) printSummary(executionContext context.Context, configuration Configuration) error {
	executor.dependencies.Console.Success(summaryHeadingConstant)
	for _, summaryLine := range summaryLines {
		executor.dependencies.Console.Plain(summaryLine)
	}
	return nil
}

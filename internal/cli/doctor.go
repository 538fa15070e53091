package cli

import (
	"fmt"
	"os"

	"github.com/amterp/ra"

	"github.com/swatchly/swatch/internal/service"
)

func registerDoctor(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("doctor")
	cmd.SetDescription("Check palette data for consistency issues. Exit 0 if healthy, 1 if errors found.")

	ctx.DoctorUsed, _ = parent.RegisterCmd(cmd)
}

func runDoctor(jsonOutput bool) {
	app, err := NewApp(false)
	if err != nil {
		Fatal(err)
	}

	if err := app.RequireSwatch(); err != nil {
		Fatal(err)
	}

	issues, err := app.DoctorService.Check()
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewDoctorOutput(issues)); err != nil {
			Fatal(err)
		}
	} else {
		printDoctorReport(issues)
	}

	// Exit with status 1 if there are errors
	for _, issue := range issues {
		if issue.Severity == service.SeverityError {
			os.Exit(1)
		}
	}
}

func printDoctorReport(issues []service.Issue) {
	if len(issues) == 0 {
		PrintSuccess("No issues found")
		return
	}

	// Errors first, then warnings
	var errors, warnings []service.Issue
	for _, issue := range issues {
		if issue.Severity == service.SeverityError {
			errors = append(errors, issue)
		} else {
			warnings = append(warnings, issue)
		}
	}

	for _, issue := range errors {
		printIssue(issue)
	}
	for _, issue := range warnings {
		printIssue(issue)
	}

	fmt.Println()
	summary := ""
	if len(errors) > 0 {
		summary += StyleError.Render(fmt.Sprintf("%d error(s)", len(errors)))
	}
	if len(warnings) > 0 {
		if summary != "" {
			summary += ", "
		}
		summary += StyleWarning.Render(fmt.Sprintf("%d warning(s)", len(warnings)))
	}
	fmt.Printf("Summary: %s\n", summary)
}

func printIssue(issue service.Issue) {
	var icon string
	if issue.Severity == service.SeverityError {
		icon = StyleError.Render(IconError)
	} else {
		icon = StyleWarning.Render(IconWarning)
	}

	location := ""
	if issue.PaletteID != "" {
		location = fmt.Sprintf(" %s", RenderID(issue.PaletteID))
		if issue.PaletteTitle != "" {
			location += fmt.Sprintf(" %s", RenderMuted(fmt.Sprintf("(%s)", issue.PaletteTitle)))
		}
	}

	fmt.Printf("%s%s %s\n", icon, location, issue.Message)
}

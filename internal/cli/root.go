package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	JsonOutput     *bool

	// init command
	InitUsed     *bool
	InitName     *string
	InitGridSize *int

	// save command
	SaveUsed     *bool
	SaveTitle    *string
	SaveGridSize *int
	SaveColors   *[]string

	// list command
	ListUsed *bool

	// show command
	ShowUsed    *bool
	ShowPalette *string
	ShowWidth   *int

	// edit command
	EditUsed     *bool
	EditPalette  *string
	EditTitle    *string
	EditAlias    *string
	EditGridSize *int
	EditSet      *[]string
	EditClear    *[]string

	// delete command
	DeleteUsed    *bool
	DeletePalette *string
	DeleteForce   *bool

	// share command
	ShareUsed    *bool
	SharePalette *string
	ShareFormat  *string

	// load command
	LoadUsed    *bool
	LoadPalette *string

	// menu command
	MenuUsed    *bool
	MenuPalette *string

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool

	// doctor command
	DoctorUsed *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("swatch")
	cmd.SetDescription("File-based color palette manager")

	// Global flags
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.JsonOutput, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output machine-readable JSON").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerInit(cmd, ctx)
	registerSave(cmd, ctx)
	registerList(cmd, ctx)
	registerShow(cmd, ctx)
	registerEdit(cmd, ctx)
	registerDelete(cmd, ctx)
	registerShare(cmd, ctx)
	registerLoad(cmd, ctx)
	registerMenu(cmd, ctx)
	registerServe(cmd, ctx)
	registerDoctor(cmd, ctx)
	registerCompletion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	switch {
	case *ctx.InitUsed:
		runInit(*ctx.InitName, *ctx.InitGridSize)

	case *ctx.SaveUsed:
		runSave(*ctx.SaveTitle, *ctx.SaveGridSize, *ctx.SaveColors, *ctx.NonInteractive, *ctx.JsonOutput)

	case *ctx.ListUsed:
		runList(*ctx.JsonOutput)

	case *ctx.ShowUsed:
		runShow(*ctx.ShowPalette, *ctx.ShowWidth, *ctx.NonInteractive, *ctx.JsonOutput)

	case *ctx.EditUsed:
		runEdit(*ctx.EditPalette, *ctx.EditTitle, *ctx.EditAlias, *ctx.EditGridSize,
			*ctx.EditSet, *ctx.EditClear, *ctx.NonInteractive)

	case *ctx.DeleteUsed:
		runDelete(*ctx.DeletePalette, *ctx.DeleteForce, *ctx.NonInteractive)

	case *ctx.ShareUsed:
		runShare(*ctx.SharePalette, *ctx.ShareFormat, *ctx.NonInteractive)

	case *ctx.LoadUsed:
		runLoad(*ctx.LoadPalette, *ctx.NonInteractive)

	case *ctx.MenuUsed:
		runMenu(*ctx.MenuPalette)

	case *ctx.ServeUsed:
		runServe(*ctx.ServePort, *ctx.ServeNoOpen)

	case *ctx.DoctorUsed:
		runDoctor(*ctx.JsonOutput)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)
	}
}

package cli

import (
	"github.com/amterp/ra"
)

func registerLoad(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("load")
	cmd.SetDescription("Make a palette the library's active palette")

	ctx.LoadPalette, _ = ra.NewString("palette").
		SetOptional(true).
		SetUsage("Palette ID or alias (prompted if omitted)").
		SetCompletionFunc(completePalettes).
		Register(cmd)

	ctx.LoadUsed, _ = parent.RegisterCmd(cmd)
}

func runLoad(idOrAlias string, nonInteractive bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}

	if err := app.RequireSwatch(); err != nil {
		Fatal(err)
	}

	palette, err := app.PaletteResolver.Resolve(idOrAlias, !nonInteractive)
	if err != nil {
		Fatal(err)
	}

	if _, err := app.PaletteService.Load(palette.ID); err != nil {
		Fatal(err)
	}

	PrintSuccess("Loaded palette %q (%s)", palette.Title, palette.Alias)
}

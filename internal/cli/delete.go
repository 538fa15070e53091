package cli

import (
	"fmt"

	"github.com/amterp/ra"
)

func registerDelete(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("delete")
	cmd.SetDescription("Delete a palette")

	ctx.DeletePalette, _ = ra.NewString("palette").
		SetUsage("Palette ID or alias").
		SetCompletionFunc(completePalettes).
		Register(cmd)

	ctx.DeleteForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip confirmation (required in non-interactive mode)").
		Register(cmd)

	ctx.DeleteUsed, _ = parent.RegisterCmd(cmd)
}

func runDelete(idOrAlias string, force, nonInteractive bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}

	if err := app.RequireSwatch(); err != nil {
		Fatal(err)
	}

	palette, err := app.PaletteResolver.FindByIDOrAlias(idOrAlias)
	if err != nil {
		Fatal(err)
	}

	if !force {
		if nonInteractive {
			Fatal(fmt.Errorf("deleting palette %q (%s) requires --force in non-interactive mode", palette.Title, palette.ID))
		}

		confirmed, err := app.Prompter.Confirm(
			fmt.Sprintf("Delete palette %q (%s)?", palette.Title, palette.ID),
			false,
		)
		if err != nil {
			Fatal(err)
		}
		if !confirmed {
			PrintInfo("Cancelled")
			return
		}
	}

	if err := app.PaletteService.Delete(palette.ID); err != nil {
		Fatal(err)
	}

	PrintSuccess("Deleted palette %q (%s)", palette.Title, palette.ID)
}

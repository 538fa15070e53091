package cli

import (
	"fmt"

	"github.com/amterp/ra"

	"github.com/swatchly/swatch/internal/service"
)

func registerShare(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("share")
	cmd.SetDescription("Export a palette as shareable text")

	ctx.SharePalette, _ = ra.NewString("palette").
		SetOptional(true).
		SetUsage("Palette ID or alias (default: active palette)").
		SetCompletionFunc(completePalettes).
		Register(cmd)

	ctx.ShareFormat, _ = ra.NewString("format").
		SetShort("f").
		SetOptional(true).
		SetDefault(string(service.ShareFormatHex)).
		SetFlagOnly(true).
		SetEnumConstraint([]string{"hex", "css", "json"}).
		SetUsage("Export format").
		Register(cmd)

	ctx.ShareUsed, _ = parent.RegisterCmd(cmd)
}

func runShare(idOrAlias, format string, nonInteractive bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}

	if err := app.RequireSwatch(); err != nil {
		Fatal(err)
	}

	shareFormat, err := service.ParseShareFormat(format)
	if err != nil {
		Fatal(err)
	}

	palette, err := app.PaletteResolver.Resolve(idOrAlias, !nonInteractive)
	if err != nil {
		Fatal(err)
	}

	output, err := app.ShareService.Export(palette.ID, shareFormat)
	if err != nil {
		Fatal(err)
	}

	fmt.Print(output)
}

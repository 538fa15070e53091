package cli

import (
	"fmt"

	"github.com/amterp/ra"

	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/service"
)

func registerMenu(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("menu")
	cmd.SetDescription("Open the interactive action menu for a palette")

	ctx.MenuPalette, _ = ra.NewString("palette").
		SetOptional(true).
		SetUsage("Palette ID or alias (default: active palette)").
		SetCompletionFunc(completePalettes).
		Register(cmd)

	ctx.MenuUsed, _ = parent.RegisterCmd(cmd)
}

func runMenu(idOrAlias string) {
	// The menu is inherently interactive
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	if err := app.RequireSwatch(); err != nil {
		Fatal(err)
	}

	palette, err := app.PaletteResolver.Resolve(idOrAlias, true)
	if err != nil {
		Fatal(err)
	}

	labels := make([]string, len(model.Actions))
	byLabel := make(map[string]model.Action, len(model.Actions))
	for i, a := range model.Actions {
		labels[i] = a.Label()
		byLabel[a.Label()] = a
	}

	selected, err := app.Prompter.Select(fmt.Sprintf("Palette %q", palette.Title), labels)
	if err != nil {
		Fatal(err)
	}

	// Dispatch on the action tag, carrying the palette's stored ID through
	dispatchAction(app, byLabel[selected], palette.ID)
}

func dispatchAction(app *App, action model.Action, paletteID string) {
	palette, err := app.PaletteService.Get(paletteID)
	if err != nil {
		Fatal(err)
	}

	switch action {
	case model.ActionLoad:
		if _, err := app.PaletteService.Load(palette.ID); err != nil {
			Fatal(err)
		}
		PrintSuccess("Loaded palette %q (%s)", palette.Title, palette.Alias)

	case model.ActionEyePreview:
		printPalette(palette, defaultPreviewWidth)

	case model.ActionShare:
		formats := make([]string, len(service.ShareFormats))
		for i, f := range service.ShareFormats {
			formats[i] = string(f)
		}
		selected, err := app.Prompter.Select("Export format", formats)
		if err != nil {
			Fatal(err)
		}
		output, err := app.ShareService.Export(palette.ID, service.ShareFormat(selected))
		if err != nil {
			Fatal(err)
		}
		fmt.Print(output)

	case model.ActionDelete:
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
		if err := app.PaletteService.Delete(palette.ID); err != nil {
			Fatal(err)
		}
		PrintSuccess("Deleted palette %q (%s)", palette.Title, palette.ID)

	default:
		Fatal(fmt.Errorf("unknown action %q", action))
	}
}

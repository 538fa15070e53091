package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/amterp/ra"

	"github.com/swatchly/swatch/internal/editor"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/service"
)

func registerEdit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("edit")
	cmd.SetDescription("Edit an existing palette")

	ctx.EditPalette, _ = ra.NewString("palette").
		SetOptional(true).
		SetUsage("Palette ID or alias (default: active palette)").
		SetCompletionFunc(completePalettes).
		Register(cmd)

	ctx.EditTitle, _ = ra.NewString("title").
		SetShort("t").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New title").
		Register(cmd)

	ctx.EditAlias, _ = ra.NewString("alias").
		SetShort("a").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New alias").
		Register(cmd)

	ctx.EditGridSize, _ = ra.NewInt("grid-size").
		SetShort("g").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("New grid size").
		Register(cmd)

	ctx.EditSet, _ = ra.NewStringSlice("set").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Assign a color to a cell (INDEX=HEX format, repeatable)").
		Register(cmd)

	ctx.EditClear, _ = ra.NewStringSlice("clear").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Clear a cell (repeatable)").
		Register(cmd)

	ctx.EditUsed, _ = parent.RegisterCmd(cmd)
}

func runEdit(idOrAlias, title, alias string, gridSize int, setColors []string, clearCells []string, nonInteractive bool) {
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

	hasFlagEdits := title != "" || alias != "" || gridSize != 0 || len(setColors) > 0 || len(clearCells) > 0
	if !hasFlagEdits {
		// No flags: open the palette file in $EDITOR
		editInEditor(app, palette)
		return
	}

	input := service.EditInput{}
	if title != "" {
		input.Title = &title
	}
	if alias != "" {
		input.Alias = &alias
	}
	if gridSize != 0 {
		input.GridSize = &gridSize
	}

	palette, err = app.PaletteService.Edit(palette.ID, input)
	if err != nil {
		Fatal(err)
	}

	for _, v := range setColors {
		index, entry, err := parseColorAssignment(v)
		if err != nil {
			Fatal(err)
		}
		if palette, err = app.PaletteService.SetColor(palette.ID, index, entry); err != nil {
			Fatal(err)
		}
	}

	for _, v := range clearCells {
		index, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			Fatal(fmt.Errorf("invalid cell index %q", v))
		}
		if palette, err = app.PaletteService.ClearColor(palette.ID, index); err != nil {
			Fatal(err)
		}
	}

	PrintSuccess("Updated palette %s (%s)", RenderID(palette.ID), palette.Alias)
}

// editInEditor round-trips the palette JSON through the user's editor.
func editInEditor(app *App, palette *model.Palette) {
	globalCfg, _ := app.GlobalStore.Load()
	ed := editor.NewEditor(globalCfg)

	original, err := json.MarshalIndent(palette, "", "  ")
	if err != nil {
		Fatal(err)
	}

	edited, err := ed.Edit(string(original))
	if err != nil {
		Fatal(err)
	}

	if strings.TrimSpace(edited) == strings.TrimSpace(string(original)) {
		fmt.Println("No changes made")
		return
	}

	var updated model.Palette
	if err := json.Unmarshal([]byte(edited), &updated); err != nil {
		Fatal(fmt.Errorf("edited palette is not valid JSON: %w", err))
	}

	// ID is the file identity; silently restoring it beats a confusing
	// not-found error after the editor closes.
	updated.ID = palette.ID

	if err := app.PaletteStore.Update(&updated); err != nil {
		Fatal(err)
	}

	PrintSuccess("Updated palette %s (%s)", RenderID(updated.ID), updated.Alias)
}

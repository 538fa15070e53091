package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amterp/ra"

	"github.com/swatchly/swatch/internal/color"
	"github.com/swatchly/swatch/internal/grid"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/service"
)

func registerSave(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("save")
	cmd.SetDescription("Save a new palette")

	ctx.SaveTitle, _ = ra.NewString("title").
		SetOptional(true).
		SetUsage("Palette title (prompted if omitted)").
		Register(cmd)

	ctx.SaveGridSize, _ = ra.NewInt("grid-size").
		SetShort("g").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Grid size (default: library setting)").
		Register(cmd)

	ctx.SaveColors, _ = ra.NewStringSlice("color").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Assign a color to a cell (INDEX=HEX format, repeatable)").
		Register(cmd)

	ctx.SaveUsed, _ = parent.RegisterCmd(cmd)
}

// parseColorAssignments parses repeated INDEX=HEX[:EFFECT] flag values.
func parseColorAssignments(values []string) ([]model.ColorAssignment, error) {
	assignments := make([]model.ColorAssignment, 0, len(values))
	for _, v := range values {
		index, entry, err := parseColorAssignment(v)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, model.ColorAssignment{Index: index, Color: entry})
	}
	return assignments, nil
}

func parseColorAssignment(value string) (int, model.ColorEntry, error) {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return 0, model.ColorEntry{}, fmt.Errorf("invalid color %q (expected INDEX=HEX, e.g. '0=#ff0000')", value)
	}

	index, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, model.ColorEntry{}, fmt.Errorf("invalid cell index %q in %q", parts[0], value)
	}

	hex := strings.TrimSpace(parts[1])
	var effect string
	if i := strings.Index(hex, ":"); i >= 0 {
		effect = hex[i+1:]
		hex = hex[:i]
	}
	if !color.IsValidHex(hex) {
		return 0, model.ColorEntry{}, fmt.Errorf("invalid hex color %q in %q", hex, value)
	}

	return index, model.ColorEntry{Background: color.Normalize(hex), Effect: effect}, nil
}

func runSave(title string, gridSize int, colors []string, nonInteractive bool, jsonOutput bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}

	if err := app.RequireSwatch(); err != nil {
		Fatal(err)
	}

	assignments, err := parseColorAssignments(colors)
	if err != nil {
		Fatal(err)
	}

	// Save dialog: prompt for anything not given on the command line
	if title == "" {
		title, err = app.Prompter.Input("Palette title", "")
		if err != nil {
			Fatal(err)
		}
	}

	if gridSize == 0 {
		library, err := app.LibraryStore.Load()
		if err != nil {
			Fatal(err)
		}
		if library.DefaultGridSize > 0 {
			gridSize = library.DefaultGridSize
		} else if !nonInteractive {
			gridSize, err = app.Prompter.SelectInt("Grid size", model.GridSizeOptions)
			if err != nil {
				Fatal(err)
			}
		} else {
			gridSize = grid.DefaultSize
		}
	}

	// Reject assignments that would never render
	totalCells := grid.ResolveSize(gridSize) * grid.ResolveSize(gridSize)
	for _, a := range assignments {
		if a.Index < 0 || a.Index >= totalCells {
			Fatal(fmt.Errorf("cell index %d is out of range for a %d-cell grid", a.Index, totalCells))
		}
	}

	creatorName, err := app.GetCreator()
	if err != nil {
		Fatal(err)
	}

	palette, err := app.PaletteService.Save(service.SaveInput{
		Title:    title,
		GridSize: gridSize,
		Colors:   assignments,
		Creator:  creatorName,
	})
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewPaletteOutput(palette)); err != nil {
			Fatal(err)
		}
		return
	}

	PrintSuccess("Saved palette %s (%s)", RenderID(palette.ID), palette.Alias)
}

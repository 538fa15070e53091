package cli

import (
	"fmt"

	"github.com/amterp/ra"

	"github.com/swatchly/swatch/internal/grid"
	"github.com/swatchly/swatch/internal/model"
)

func registerList(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("List palettes")

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

func runList(jsonOutput bool) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	if err := app.RequireSwatch(); err != nil {
		Fatal(err)
	}

	palettes, err := app.PaletteService.List()
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(NewListOutput(palettes)); err != nil {
			Fatal(err)
		}
		return
	}

	if len(palettes) == 0 {
		PrintInfo("No palettes found")
		return
	}

	library, err := app.LibraryStore.Load()
	if err != nil {
		Fatal(err)
	}

	for _, p := range palettes {
		printPaletteLine(p, library.IsActive(p.ID))
	}
}

func printPaletteLine(p *model.Palette, active bool) {
	swatches := ""
	for _, cell := range grid.Build(p) {
		if cell != nil {
			swatches += ColorSwatch(cell.Background)
		}
	}

	marker := " "
	if active {
		marker = StyleSuccess.Render("*")
	}

	size := grid.ResolveSize(p.GridSize)
	fmt.Printf("%s %s  %-24s %s %s\n",
		marker,
		RenderID(p.ID),
		p.Title,
		RenderMuted(fmt.Sprintf("%dx%d", size, size)),
		swatches,
	)
}

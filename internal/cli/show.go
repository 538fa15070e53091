package cli

import (
	"fmt"

	"github.com/amterp/ra"
	"github.com/charmbracelet/lipgloss"

	"github.com/swatchly/swatch/internal/grid"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/util"
)

// defaultPreviewWidth is the overall width of the rendered preview tile in
// terminal columns. Cell width is derived from it the same way the grid is
// built, so an invalid stored grid size falls back consistently.
const defaultPreviewWidth = 48

func registerShow(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("show")
	cmd.SetDescription("Display a palette with its preview grid")

	ctx.ShowPalette, _ = ra.NewString("palette").
		SetOptional(true).
		SetUsage("Palette ID or alias (default: active palette)").
		SetCompletionFunc(completePalettes).
		Register(cmd)

	ctx.ShowWidth, _ = ra.NewInt("width").
		SetShort("w").
		SetOptional(true).
		SetDefault(defaultPreviewWidth).
		SetFlagOnly(true).
		SetUsage("Preview width in terminal columns").
		Register(cmd)

	ctx.ShowUsed, _ = parent.RegisterCmd(cmd)
}

func runShow(idOrAlias string, width int, nonInteractive bool, jsonOutput bool) {
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

	if jsonOutput {
		if err := printJson(NewGridOutput(palette)); err != nil {
			Fatal(err)
		}
		return
	}

	printPalette(palette, width)
}

func printPalette(palette *model.Palette, width int) {
	const labelWidth = 10

	fmt.Println(TitleBox(palette.Title))
	fmt.Println()

	fmt.Println(renderPreview(palette, width))
	fmt.Println()

	size := grid.ResolveSize(palette.GridSize)
	fmt.Println(LabelValue("ID", RenderID(palette.ID), labelWidth))
	fmt.Println(LabelValue("Alias", palette.Alias, labelWidth))
	fmt.Println(LabelValue("Grid", fmt.Sprintf("%dx%d", size, size), labelWidth))
	if palette.GridSize != size {
		fmt.Println(LabelValue("", RenderMuted(fmt.Sprintf("(stored grid size %d is invalid, using %d)", palette.GridSize, size)), labelWidth))
	}

	fmt.Println()
	fmt.Println(LabelValue("Creator", palette.Creator, labelWidth))
	fmt.Println(LabelValue("Created", RenderMuted(util.FormatMillis(palette.CreatedAtMillis)), labelWidth))
	fmt.Println(LabelValue("Updated", RenderMuted(util.FormatMillis(palette.UpdatedAtMillis)), labelWidth))
}

// renderPreview draws the palette's dense grid as colored tiles. Cell width
// comes from TileSize so the preview and the grid share size resolution.
func renderPreview(palette *model.Palette, width int) string {
	size := grid.ResolveSize(palette.GridSize)
	cellWidth := grid.TileSize(width, palette.GridSize)
	cells := grid.Build(palette)

	rows := make([]string, 0, size)
	for y := 0; y < size; y++ {
		row := make([]string, 0, size)
		for x := 0; x < size; x++ {
			cell := cells[y*size+x]
			if cell == nil {
				row = append(row, GridCell("", "", cellWidth))
			} else {
				row = append(row, GridCell(cell.Background, cell.Background, cellWidth))
			}
		}
		rows = append(rows, JoinGridRow(row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/swatchly/swatch/internal/grid"
	"github.com/swatchly/swatch/internal/model"
	"github.com/swatchly/swatch/internal/service"
)

// paletteJson represents a palette for JSON output.
// Note: Version (_v) is intentionally omitted - it's an internal schema version.
type paletteJson struct {
	ID              string                  `json:"id"`
	Alias           string                  `json:"alias"`
	AliasExplicit   bool                    `json:"alias_explicit"`
	Title           string                  `json:"title"`
	GridSize        int                     `json:"grid_size"`
	Colors          []model.ColorAssignment `json:"colors"`
	Creator         string                  `json:"creator"`
	CreatedAtMillis int64                   `json:"created_at_millis"`
	UpdatedAtMillis int64                   `json:"updated_at_millis"`
}

func paletteToJson(p *model.Palette) paletteJson {
	colors := p.Colors
	if colors == nil {
		colors = []model.ColorAssignment{}
	}
	return paletteJson{
		ID:              p.ID,
		Alias:           p.Alias,
		AliasExplicit:   p.AliasExplicit,
		Title:           p.Title,
		GridSize:        p.GridSize,
		Colors:          colors,
		Creator:         p.Creator,
		CreatedAtMillis: p.CreatedAtMillis,
		UpdatedAtMillis: p.UpdatedAtMillis,
	}
}

// PaletteOutput wraps a single palette for JSON output.
type PaletteOutput struct {
	Palette paletteJson `json:"palette"`
}

// NewPaletteOutput creates a PaletteOutput from a model.Palette.
func NewPaletteOutput(palette *model.Palette) PaletteOutput {
	return PaletteOutput{Palette: paletteToJson(palette)}
}

// GridOutput wraps a palette with its rendered dense grid for JSON output.
// Cells is always resolved_size squared long; empty cells are null.
type GridOutput struct {
	Palette      paletteJson         `json:"palette"`
	ResolvedSize int                 `json:"resolved_size"`
	Cells        []*model.ColorEntry `json:"cells"`
}

// NewGridOutput creates a GridOutput from a model.Palette.
func NewGridOutput(palette *model.Palette) GridOutput {
	return GridOutput{
		Palette:      paletteToJson(palette),
		ResolvedSize: grid.ResolveSize(palette.GridSize),
		Cells:        grid.Build(palette),
	}
}

// ListOutput wraps a list of palettes for JSON output.
type ListOutput struct {
	Palettes []paletteJson `json:"palettes"`
}

// NewListOutput creates a ListOutput from a slice of model.Palette.
// Always returns an empty array (not null) when there are no palettes.
func NewListOutput(palettes []*model.Palette) ListOutput {
	result := make([]paletteJson, 0, len(palettes))
	for _, p := range palettes {
		result = append(result, paletteToJson(p))
	}
	return ListOutput{Palettes: result}
}

// issueJson represents a doctor finding for JSON output.
type issueJson struct {
	PaletteID    string `json:"palette_id,omitempty"`
	PaletteTitle string `json:"palette_title,omitempty"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
}

// DoctorOutput wraps doctor findings for JSON output.
type DoctorOutput struct {
	Issues []issueJson `json:"issues"`
}

// NewDoctorOutput creates a DoctorOutput from doctor findings.
// Always returns an empty array (not null) when there are no issues.
func NewDoctorOutput(issues []service.Issue) DoctorOutput {
	result := make([]issueJson, 0, len(issues))
	for _, issue := range issues {
		result = append(result, issueJson{
			PaletteID:    issue.PaletteID,
			PaletteTitle: issue.PaletteTitle,
			Severity:     string(issue.Severity),
			Message:      issue.Message,
		})
	}
	return DoctorOutput{Issues: result}
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

package model

import (
	"encoding/json"
	"testing"
)

func TestPalette_UnmarshalRoundTrip(t *testing.T) {
	p := Palette{
		Version:  1,
		ID:       "pal123",
		Alias:    "sunset",
		Title:    "Sunset",
		GridSize: 3,
		Colors: []ColorAssignment{
			{Index: 0, Color: ColorEntry{Background: "#ef4444"}},
			{Index: 4, Color: ColorEntry{Background: "#f59e0b", Effect: "glow"}},
		},
		Creator:         "tester",
		CreatedAtMillis: 1704307200000,
		UpdatedAtMillis: 1704307200000,
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got Palette
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got.ID != p.ID || got.Title != p.Title || got.GridSize != 3 {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if len(got.Colors) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(got.Colors))
	}
	if got.Colors[1].Color.Effect != "glow" {
		t.Errorf("effect tag lost in round trip: %+v", got.Colors[1])
	}
}

func TestPalette_UnmarshalToleratesBadGridSize(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int
	}{
		{"missing", `{"id":"p"}`, 0},
		{"null", `{"id":"p","grid_size":null}`, 0},
		{"string", `{"id":"p","grid_size":"four"}`, 0},
		{"fractional", `{"id":"p","grid_size":3.7}`, 0},
		{"negative", `{"id":"p","grid_size":-2}`, -2},
		{"valid", `{"id":"p","grid_size":4}`, 4},
		{"whole float", `{"id":"p","grid_size":4.0}`, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Palette
			if err := json.Unmarshal([]byte(tt.json), &p); err != nil {
				t.Fatalf("Unmarshal should not fail on stale grid_size: %v", err)
			}
			if p.GridSize != tt.want {
				t.Errorf("GridSize = %d, want %d", p.GridSize, tt.want)
			}
		})
	}
}

func TestPalette_HasColorAt(t *testing.T) {
	p := Palette{
		GridSize: 2,
		Colors: []ColorAssignment{
			{Index: 1, Color: ColorEntry{Background: "#ffffff"}},
		},
	}

	if !p.HasColorAt(1) {
		t.Error("expected assignment at index 1")
	}
	if p.HasColorAt(0) {
		t.Error("did not expect assignment at index 0")
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseAction(string(a))
		if err != nil {
			t.Errorf("ParseAction(%q) failed: %v", a, err)
		}
		if got != a {
			t.Errorf("ParseAction(%q) = %q", a, got)
		}
	}

	if _, err := ParseAction("explode"); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestLibraryConfig_ActivePalette(t *testing.T) {
	cfg := LibraryConfig{Name: "main"}

	cfg.SetActive("pal1")
	if !cfg.IsActive("pal1") {
		t.Error("pal1 should be active")
	}
	if cfg.IsActive("pal2") {
		t.Error("pal2 should not be active")
	}

	// Clearing a different ID leaves the active palette alone
	cfg.ClearActive("pal2")
	if !cfg.IsActive("pal1") {
		t.Error("clearing an inactive ID should not unset the active palette")
	}

	cfg.ClearActive("pal1")
	if cfg.ActivePalette != "" {
		t.Errorf("expected cleared active palette, got %q", cfg.ActivePalette)
	}
}

func TestNextSeedColor_Cycles(t *testing.T) {
	if NextSeedColor(0) != SeedColors[0] {
		t.Error("position 0 should yield the first seed color")
	}
	if NextSeedColor(len(SeedColors)) != SeedColors[0] {
		t.Error("seed colors should cycle")
	}
	if NextSeedColor(-1) != SeedColors[0] {
		t.Error("negative position should clamp to the first color")
	}
}

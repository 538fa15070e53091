package model

// SeedColors is a palette of colors used to fill the starter palette
// created by `swatch init`. Colors cycle through this list.
var SeedColors = []string{
	"#ef4444", // red
	"#f59e0b", // amber
	"#10b981", // green
	"#3b82f6", // blue
	"#9333ea", // purple
	"#ec4899", // pink
	"#06b6d4", // cyan
	"#6b7280", // gray
}

// NextSeedColor returns the seed color for the given cell position,
// cycling through the palette.
func NextSeedColor(position int) string {
	if position < 0 {
		position = 0
	}
	return SeedColors[position%len(SeedColors)]
}

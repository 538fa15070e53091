// Package id produces short, time-sortable palette identifiers.
package id

import (
	"time"

	fid "github.com/amterp/flexid"
)

// Epoch anchors IDs to the project's first release year; IDs sort by
// creation time from there.
var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

var generator = fid.MustNewGenerator(
	fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3),
)

// Generate returns a new unique palette ID.
func Generate() string {
	return generator.MustGenerate()
}

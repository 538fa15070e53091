package cli

import (
	"fmt"
	"path/filepath"

	"github.com/amterp/ra"

	"github.com/swatchly/swatch/internal/model"
)

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Initialize a palette library in the current directory")

	ctx.InitName, _ = ra.NewString("name").
		SetShort("n").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Library name (default: git repo or directory name)").
		Register(cmd)

	ctx.InitGridSize, _ = ra.NewInt("grid-size").
		SetShort("g").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage(fmt.Sprintf("Default grid size for new palettes (one of %v)", model.GridSizeOptions)).
		Register(cmd)

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

func runInit(name string, gridSize int) {
	// Init always targets the current directory. Skipping discovery also
	// handles the case where the user deleted .swatch/ and wants to re-init
	// despite a stale global config entry.
	app, err := newAppForCwd()
	if err != nil {
		Fatal(err)
	}

	// Prefer the git repo name when no explicit name was given
	if name == "" {
		if root, err := app.GitClient.RepoRoot(); err == nil {
			name = filepath.Base(root)
		}
	}

	creatorName, err := app.GetCreator()
	if err != nil {
		Fatal(err)
	}

	result, err := app.InitService.Initialize(name, gridSize, creatorName)
	if err != nil {
		Fatal(err)
	}

	PrintSuccess("Initialized library %q", result.LibraryName)
	if result.StarterPalette != nil {
		PrintInfo("Created starter palette %s (%s)", RenderID(result.StarterPalette.ID), result.StarterPalette.Alias)
	}
}

package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/amterp/ra"

	"github.com/swatchly/swatch/internal/config"
	"github.com/swatchly/swatch/internal/discovery"
	"github.com/swatchly/swatch/internal/store"
)

// completionCtx provides lightweight store access for shell completion.
// Completion functions run during ParseOrExit, before NewApp() is called,
// so we can't use the full App. This initializes just enough to list
// palettes and their aliases.
type completionCtx struct {
	once         sync.Once
	paths        *config.Paths
	paletteStore *store.FilePaletteStore
	err          error
}

var compCtx completionCtx

func initCompletionCtx() {
	compCtx.once.Do(func() {
		globalStore := store.NewGlobalStore()
		globalCfg, err := globalStore.Load()
		if err != nil {
			// Graceful degradation: no completions if global config is broken
			globalCfg = nil
		}

		result, err := discovery.DiscoverLibrary(globalCfg)
		if err != nil || result == nil {
			compCtx.err = fmt.Errorf("no library found")
			return
		}

		compCtx.paths = config.NewPaths(result.LibraryRoot, result.DataLocation)
		compCtx.paletteStore = store.NewPaletteStore(compCtx.paths)
	})
}

// completePalettes returns palette IDs and aliases matching the given prefix.
func completePalettes(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	if compCtx.err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}

	palettes, err := compCtx.paletteStore.List()
	if err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}

	var result []string
	for _, p := range palettes {
		if strings.HasPrefix(p.ID, toComplete) {
			result = append(result, p.ID)
		}
		if p.Alias != "" && strings.HasPrefix(p.Alias, toComplete) {
			result = append(result, p.Alias)
		}
	}
	return result, ra.CompletionDirectiveNoFileComp
}

// registerCompletion adds the "swatch completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}

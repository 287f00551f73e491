package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/soundctl/internal/audio"
	"github.com/zjrosen/soundctl/internal/library"
	"github.com/zjrosen/soundctl/internal/paths"
	"github.com/zjrosen/soundctl/internal/ui/styles"
)

var assetsCmd = &cobra.Command{
	Use:   "assets [dir]",
	Short: "List the movies and exports of a content directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAssets,
}

func init() {
	rootCmd.AddCommand(assetsCmd)
}

func runAssets(cmd *cobra.Command, args []string) error {
	dir := cfg.ContentDir
	if len(args) == 1 {
		dir = args[0]
	}
	dir = paths.ResolveContentDir(dir)

	// Sounds are decoded for their durations but never played.
	lib, err := library.NewLoader(audio.NewNullBackend(), uint8(cfg.Version)).Load(dir)
	if err != nil {
		return err
	}

	root, _ := lib.Root()
	t := styles.NewTable("MOVIE", "VERSION", "EXPORT", "KIND", "DURATION", "SOURCE")
	for _, m := range lib.Movies() {
		name := m.Name()
		if m == root {
			name += " (root)"
		}
		exports := m.Exports()
		if len(exports) == 0 {
			t.Row(name, fmt.Sprint(m.Version()), "", "", "", "")
			continue
		}
		for _, a := range exports {
			t.Row(append([]string{name, fmt.Sprint(m.Version())}, assetColumns(a)...)...)
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return err
}

func assetColumns(a library.Asset) []string {
	switch v := a.(type) {
	case *library.SoundAsset:
		return []string{v.Export, "sound", styles.FormatDuration(v.Duration, v.Duration > 0), v.Source}
	case *library.SymbolAsset:
		return []string{v.Export, v.Kind, "", ""}
	default:
		return []string{a.ExportName(), "?", "", ""}
	}
}

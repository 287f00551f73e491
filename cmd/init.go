package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/soundctl/democontent"
	"github.com/zjrosen/soundctl/internal/config"
	"github.com/zjrosen/soundctl/internal/paths"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a config file and demo content",
	Long: `Creates ` + paths.LocalConfigFile + ` and a content/ directory with demo
sounds and scripts in dir (default: current directory). With --global the
config is written to ` + paths.DefaultConfigPath() + ` instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("global", false, "write the user-level config file")
	initCmd.Flags().Bool("no-content", false, "only write the config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	global, _ := cmd.Flags().GetBool("global")
	noContent, _ := cmd.Flags().GetBool("no-content")
	out := cmd.OutOrStdout()

	configPath := filepath.Join(dir, paths.LocalConfigFile)
	if global {
		configPath = paths.DefaultConfigPath()
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}
	if err := config.WriteDefaultConfig(configPath); err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Created %s\n", configPath)

	if noContent {
		return nil
	}
	contentDir := filepath.Join(dir, paths.ContentSubdir)
	written, err := democontent.WriteTo(contentDir)
	if err != nil {
		return fmt.Errorf("writing demo content: %w", err)
	}
	for _, f := range written {
		_, _ = fmt.Fprintf(out, "Created %s\n", f)
	}
	_, _ = fmt.Fprintf(out, "\nTry: soundctl run %s\n", filepath.Join(contentDir, "intro.lua"))
	return nil
}

// Package paths resolves the filesystem locations soundctl reads and writes.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Well-known names.
const (
	ManifestFile      = "library.yaml"
	ContentSubdir     = "content"
	AppDir            = "soundctl"
	ConfigFileName    = "config.yaml"
	LocalConfigFile   = ".soundctl.yaml"
	JournalFileName   = "journal.db"
	homeDataDirName   = ".soundctl"
	xdgConfigHomeEnv  = "XDG_CONFIG_HOME"
	defaultConfigBase = ".config"
)

// ResolveContentDir normalizes a user-supplied content location.
//
// A path naming the manifest itself resolves to its directory. A directory
// without a manifest but with a content/ subdirectory that has one resolves
// to the subdirectory, which is where `soundctl init` writes demo content.
// Empty means the current directory.
func ResolveContentDir(p string) string {
	if p == "" {
		p = "."
	}
	p = filepath.Clean(p)

	if filepath.Base(p) == ManifestFile {
		return filepath.Dir(p)
	}
	if hasManifest(p) {
		return p
	}
	if sub := filepath.Join(p, ContentSubdir); hasManifest(sub) {
		return sub
	}
	return p
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestFile))
	return err == nil && !info.IsDir()
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// ConfigDir returns $XDG_CONFIG_HOME/soundctl, falling back to ~/.config/soundctl.
func ConfigDir() string {
	if xdg := os.Getenv(xdgConfigHomeEnv); xdg != "" {
		return filepath.Join(xdg, AppDir)
	}
	return filepath.Join(ExpandHome("~"), defaultConfigBase, AppDir)
}

// DefaultConfigPath returns the user-level config file path.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// DataDir returns ~/.soundctl.
func DataDir() string {
	return filepath.Join(ExpandHome("~"), homeDataDirName)
}

// DefaultJournalPath returns the default playback journal database path.
func DefaultJournalPath() string {
	return filepath.Join(DataDir(), JournalFileName)
}

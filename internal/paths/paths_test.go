package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveContentDir_TableDriven(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", "."},
		{"current dir", ".", "."},
		{"absolute dir", "/srv/content", "/srv/content"},
		{"trailing slash", "/srv/content/", "/srv/content"},
		{"manifest file", "/srv/content/library.yaml", "/srv/content"},
		{"relative manifest", "library.yaml", "."},
		{"relative dir", "./demo", "demo"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := filepath.FromSlash(tc.input)
			expected := filepath.FromSlash(tc.expected)
			require.Equal(t, expected, ResolveContentDir(input))
		})
	}
}

func TestResolveContentDir_PrefersContentSubdir(t *testing.T) {
	project := t.TempDir()
	content := filepath.Join(project, ContentSubdir)
	require.NoError(t, os.MkdirAll(content, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(content, ManifestFile), []byte("movies: []"), 0644))

	require.Equal(t, content, ResolveContentDir(project))
}

func TestResolveContentDir_OwnManifestWins(t *testing.T) {
	project := t.TempDir()
	content := filepath.Join(project, ContentSubdir)
	require.NoError(t, os.MkdirAll(content, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(content, ManifestFile), []byte("movies: []"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(project, ManifestFile), []byte("movies: []"), 0644))

	require.Equal(t, project, ResolveContentDir(project))
}

func TestResolveContentDir_ManifestDirectoryIgnored(t *testing.T) {
	project := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(project, ContentSubdir, ManifestFile), 0755))

	require.Equal(t, project, ResolveContentDir(project))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	require.Equal(t, home, ExpandHome("~"))
	require.Equal(t, filepath.Join(home, "x", "y"), ExpandHome("~/x/y"))
	require.Equal(t, "/abs/~/x", ExpandHome("/abs/~/x"))
	require.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.FromSlash("/tmp/xdg"))
	require.Equal(t, filepath.FromSlash("/tmp/xdg/soundctl"), ConfigDir())
	require.Equal(t, filepath.FromSlash("/tmp/xdg/soundctl/config.yaml"), DefaultConfigPath())
}

func TestDefaultJournalPath(t *testing.T) {
	require.Equal(t, filepath.Join(DataDir(), "journal.db"), DefaultJournalPath())
	require.Equal(t, ".soundctl", filepath.Base(DataDir()))
}

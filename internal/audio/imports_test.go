package audio

import (
	"go/parser"
	"go/token"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The backends must build without cgo; only speakerout may touch the speaker.
func TestPackage_DoesNotImportSpeaker(t *testing.T) {
	entries, err := os.ReadDir(".")
	require.NoError(t, err)

	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			require.NoError(t, err)
			require.NotEqual(t, "github.com/gopxl/beep/speaker", path, "%s imports the speaker", name)
			require.False(t, strings.HasPrefix(path, "github.com/ebitengine/oto"), "%s imports oto", name)
		}
	}
}

package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var prefabsFS embed.FS

// Load reads a prefab spec. A copy under prefabs/ on disk wins over the
// embedded one so edits are picked up on reload.
func Load(name string) ([]byte, error) {
	return readDiskFirst(cleanPrefabPath(name))
}

// LoadScript reads a hook script from prefabs/scripts.
func LoadScript(name string) ([]byte, error) {
	return readDiskFirst(cleanScriptPath(name))
}

// Names lists the embedded prefab specs.
func Names() ([]string, error) {
	return fs.Glob(prefabsFS, "*.yaml")
}

func readDiskFirst(clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return prefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	s := strings.TrimPrefix(cleanPrefabPath(path), "scripts/")
	return "scripts/" + s
}

package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed graphs/*.yaml widgets.yaml
var assetsFS embed.FS

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// Load reads an embedded prefab asset, preferring an on-disk copy under
// prefabs/ when one exists so edits show up without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return assetsFS.ReadFile(clean)
}

// LoadScript reads a behavior script, disk-first like Load.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return scriptsFS.ReadFile(clean)
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if !strings.ContainsRune(s, '/') && s != "widgets.yaml" {
		s = "graphs/" + s
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if !strings.HasPrefix(s, "scripts/") {
		s = "scripts/" + s
	}
	return s
}

func diskPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}

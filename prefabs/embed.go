package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Loader reads prefab files from Dir on disk, falling back to FS. An empty
// Dir disables the disk lookup.
type Loader struct {
	Dir string
	FS  fs.FS
}

// NewLoader reads from dir with the embedded prefabs as fallback.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir, FS: PrefabsFS}
}

func (l *Loader) Load(name string) ([]byte, error) {
	if l == nil {
		return nil, errors.New("prefabs: loader is nil")
	}
	clean := cleanPrefabPath(name)
	if l.Dir != "" {
		if data, err := os.ReadFile(l.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	if l.FS == nil {
		return nil, fs.ErrNotExist
	}
	return fs.ReadFile(l.FS, clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func (l *Loader) diskPath(clean string) string {
	return filepath.Join(l.Dir, filepath.FromSlash(clean))
}

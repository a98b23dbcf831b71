package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Parse decodes a YAML level set. It does not validate; call Set.Validate.
func Parse(data []byte) (Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Set{}, fmt.Errorf("levels: cannot parse set: %w", err)
	}
	return s, nil
}

// Builtin returns the embedded set for a biome id.
func Builtin(id string) (Set, error) {
	data, err := builtinFS.ReadFile("builtin/" + id + ".yaml")
	if err != nil {
		return Set{}, fmt.Errorf("levels: no built-in set %q: %w", id, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Set{}, err
	}
	if s.ID == "" {
		s.ID = id
	}
	s.Source = "builtin"
	return s, nil
}

// BuiltinIDs lists the embedded sets, sorted.
func BuiltinIDs() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if isSupportedExtension(filepath.Ext(e.Name())) {
			ids = append(ids, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		}
	}
	sort.Strings(ids)
	return ids
}

// Loader resolves level sets from a directory, falling back to the built-ins.
type Loader struct {
	Root string
	Grid Grid
}

// NewLoader creates a new level loader. An empty root means built-ins only.
func NewLoader(root string, g Grid) *Loader {
	return &Loader{Root: root, Grid: g}
}

// Load returns the validated set for a biome. A file <root>/<id>.yaml (or .yml)
// overrides the built-in; a broken override is an error rather than a silent fallback.
func (l *Loader) Load(id string) (Set, error) {
	if l.Root != "" {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(l.Root, id+ext)
			s, err := l.LoadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return Set{}, err
			}
			if s.ID == "" {
				s.ID = id
			}
			return s, nil
		}
	}

	s, err := Builtin(id)
	if err != nil {
		return Set{}, err
	}
	if err := s.Validate(l.Grid); err != nil {
		return Set{}, err
	}
	return s, nil
}

// LoadFile loads and validates a single set file.
func (l *Loader) LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Set{}, fmt.Errorf("levels: file %s: %w", path, err)
	}
	if s.ID == "" {
		s.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	s.Source = path
	if err := s.Validate(l.Grid); err != nil {
		return Set{}, err
	}
	return s, nil
}

// LoadAll scans the root directory and returns every valid set sorted by ID.
// Invalid files are skipped.
func (l *Loader) LoadAll() ([]Set, error) {
	var sets []Set

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}
		s, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		sets = append(sets, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(sets, func(i, j int) bool {
		return sets[i].ID < sets[j].ID
	})
	return sets, nil
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Package loader discovers module descriptor files on disk. Modules are JSON
// files grouped by the top-level subfolder they live under; callers decode each
// file either as a whole (positional mode) or as a single named export (keyed
// mode). Bad files and unreadable directories are logged and skipped — a scan
// never aborts because of one broken entry.
package loader

import (
	"encoding/json"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExt is the extension module files are expected to carry.
const DefaultExt = ".json"

// Scan walks base recursively and returns every regular file and every
// directory under it (base itself excluded), in traversal order. Errors on
// individual entries are logged and the walk continues.
func Scan(base string) (files, dirs []string) {
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("[WARN] Failed to read %s: %v", path, err)
			return nil
		}
		if path == base {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		log.Printf("[WARN] Scan of %s stopped early: %v", base, err)
	}
	return files, dirs
}

// Group is a top-level subfolder of the scanned base directory together with
// the module files assigned to it.
type Group struct {
	Name  string
	Dir   string
	Files []string
}

// Groups assigns files to the top-level subfolders of base. A file belongs to
// a group when its path starts with the group's directory path; nested
// subfolders feed the top-level group of their ancestor. Folders with no
// matching files still appear as empty groups. Files sitting directly under
// base belong to the unnamed group "".
//
// Membership is a plain string-prefix test, so a folder whose name is a
// prefix of a sibling ("mod" next to "mods") claims the sibling's files too.
// Callers rely on the existing behavior; do not tighten it to exact segment
// matching.
func Groups(base, ext string) []Group {
	if ext == "" {
		ext = DefaultExt
	}
	files, dirs := Scan(base)

	clean := filepath.Clean(base)
	var groups []Group
	for _, d := range dirs {
		if filepath.Dir(d) != clean {
			continue
		}
		groups = append(groups, Group{Name: filepath.Base(d), Dir: d})
	}

	for i := range groups {
		for _, f := range files {
			if !strings.HasSuffix(f, ext) {
				continue
			}
			if strings.HasPrefix(f, groups[i].Dir) {
				groups[i].Files = append(groups[i].Files, f)
			}
		}
	}

	var root []string
	for _, f := range files {
		if strings.HasSuffix(f, ext) && filepath.Dir(f) == clean {
			root = append(root, f)
		}
	}
	if len(root) > 0 {
		groups = append(groups, Group{Name: "", Dir: clean, Files: root})
	}
	return groups
}

// Loaded is one group's payloads in discovery order.
type Loaded[T any] struct {
	Group string
	Items []T
}

// LoadOrdered decodes every module file as a whole document (positional mode)
// and returns one entry per group, payloads in traversal order. Files that
// fail to decode are logged and skipped.
func LoadOrdered[T any](base, ext string) []Loaded[T] {
	var out []Loaded[T]
	for _, g := range Groups(base, ext) {
		l := Loaded[T]{Group: g.Name}
		for _, f := range g.Files {
			var v T
			if err := decodeFile(f, &v); err != nil {
				log.Printf("[WARN] Skipping module %s: %v", f, err)
				continue
			}
			l.Items = append(l.Items, v)
		}
		out = append(out, l)
	}
	return out
}

// LoadKeyed decodes every module file as a single named export (keyed mode):
// the document must be an object with exactly one top-level key, which becomes
// the export name. An export named "default" collides with the positional slot
// and is rejected with an error log; the rest of the batch still loads.
func LoadKeyed[T any](base, ext string) map[string]map[string]T {
	out := make(map[string]map[string]T)
	for _, g := range Groups(base, ext) {
		items := make(map[string]T)
		for _, f := range g.Files {
			var raw map[string]json.RawMessage
			if err := decodeFile(f, &raw); err != nil {
				log.Printf("[WARN] Skipping module %s: %v", f, err)
				continue
			}
			if len(raw) != 1 {
				log.Printf("[ERR] Module %s must contain exactly one named export, found %d", f, len(raw))
				continue
			}
			for name, msg := range raw {
				if name == "default" {
					log.Printf("[ERR] Module %s exports the reserved name \"default\", skipping", f)
					continue
				}
				var v T
				if err := json.Unmarshal(msg, &v); err != nil {
					log.Printf("[WARN] Skipping export %q in %s: %v", name, f, err)
					continue
				}
				if _, dup := items[name]; dup {
					log.Printf("[WARN] Duplicate export %q in group %q, keeping the latest (%s)", name, g.Name, f)
				}
				items[name] = v
			}
		}
		out[g.Name] = items
	}
	return out
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type prefNode map[string]interface{}

// EncodePreferences renders dotted preference keys as the nested JSON document Chromium-based
// browsers read from a profile's Default/Preferences file. Keys are written in sorted order so
// the output is stable.
func EncodePreferences(prefs map[string]interface{}) ([]byte, error) {
	root := prefNode{}
	for _, key := range sortedKeys(prefs) {
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(prefNode)
			if !ok {
				if _, isLeaf := node[part]; isLeaf {
					return nil, fmt.Errorf("preference %q conflicts with a value at %q", key, part)
				}
				child = prefNode{}
				node[part] = child
			}
			node = child
		}
		leaf := parts[len(parts)-1]
		if _, exists := node[leaf]; exists {
			return nil, fmt.Errorf("preference %q conflicts with a nested preference", key)
		}
		node[leaf] = prefs[key]
	}

	w := jwriter.NewWriter()
	if err := writePrefNode(&w, root); err != nil {
		return nil, err
	}
	if err := w.Error(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func writePrefNode(w *jwriter.Writer, node prefNode) error {
	obj := w.Object()
	for _, name := range sortedKeys(node) {
		switch v := node[name].(type) {
		case prefNode:
			if err := writePrefNode(obj.Name(name), v); err != nil {
				return err
			}
		case string:
			obj.Name(name).String(v)
		case bool:
			obj.Name(name).Bool(v)
		case int:
			obj.Name(name).Int(v)
		default:
			return fmt.Errorf("unsupported preference value type %T for %q", v, name)
		}
	}
	obj.End()
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// WritePreferences writes the preferences file into a profile directory, creating the Default
// profile folder if needed.
func WritePreferences(profileDir string, prefs map[string]interface{}) error {
	data, err := EncodePreferences(prefs)
	if err != nil {
		return err
	}
	dir := filepath.Join(profileDir, "Default")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "Preferences"), data, 0o600)
}

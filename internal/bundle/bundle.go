// Package bundle reads a deployment bundle directory into the raw
// artifact-set form the engine validates at its boundary.
//
// A bundle is laid out as one subdirectory per component group
// (classes/, triggers/, pages/, components/), each holding source files
// named <ComponentName><suffix>.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
)

// knownGroups mirrors the group keys the component package accepts.
var knownGroups = []string{"classes", "triggers", "pages", "components"}

// Read loads every artifact file under dir, keyed by group then file
// name. Groups without a subdirectory are simply absent; an empty
// bundle is an error because deploying nothing is always a mistake.
func Read(dir string) (map[string]map[string]string, error) {
	out := map[string]map[string]string{}

	for _, group := range knownGroups {
		groupDir := filepath.Join(dir, group)

		entries, err := os.ReadDir(groupDir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", groupDir, err)
		}

		files := map[string]string{}
		for _, ent := range entries {
			if ent.IsDir() {
				continue
			}
			data, err := os.ReadFile(filepath.Join(groupDir, ent.Name()))
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", filepath.Join(groupDir, ent.Name()), err)
			}
			files[ent.Name()] = string(data)
		}

		if len(files) > 0 {
			out[group] = files
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("bundle %s contains no artifacts", dir)
	}

	return out, nil
}

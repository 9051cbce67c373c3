// Package component defines the deployable unit model shared by the
// capture and restore paths. An artifact set produced by the code
// generation stage is validated here, at the boundary, before anything
// touches the snapshot store or a remote org.
package component

import (
	"fmt"
	"sort"
	"strings"
)

// Type identifies a Salesforce metadata type.
type Type string

const (
	ApexClass     Type = "ApexClass"
	ApexTrigger   Type = "ApexTrigger"
	ApexPage      Type = "ApexPage"
	ApexComponent Type = "ApexComponent"
)

// groups maps artifact-set group keys to metadata types and the file
// suffix stripped to obtain the component name.
var groups = map[string]struct {
	Type   Type
	Suffix string
}{
	"classes":    {ApexClass, ".cls"},
	"triggers":   {ApexTrigger, ".trigger"},
	"pages":      {ApexPage, ".page"},
	"components": {ApexComponent, ".component"},
}

// Suffix returns the source file suffix for t, or "" if t is unknown.
func (t Type) Suffix() string {
	for _, g := range groups {
		if g.Type == t {
			return g.Suffix
		}
	}
	return ""
}

// Descriptor is one named, typed deployable unit with its new content.
type Descriptor struct {
	Type    Type
	Name    string
	Content string
}

// Key returns the "Type/Name" form used in logs and manifests.
func (d Descriptor) Key() string {
	return string(d.Type) + "/" + d.Name
}

// ParseArtifactSet turns a raw artifact set (group -> file name -> content)
// into validated descriptors. Unknown groups, files without the group's
// suffix, and duplicate components are all rejected; nothing downstream
// re-checks these.
func ParseArtifactSet(artifacts map[string]map[string]string) ([]Descriptor, error) {
	seen := map[string]bool{}
	var out []Descriptor

	for group, files := range artifacts {
		g, ok := groups[group]
		if !ok {
			return nil, fmt.Errorf("unknown component group %q", group)
		}

		for fileName, content := range files {
			if !strings.HasSuffix(fileName, g.Suffix) {
				return nil, fmt.Errorf("file %q in group %q: expected suffix %q", fileName, group, g.Suffix)
			}

			name := strings.TrimSuffix(fileName, g.Suffix)
			if name == "" {
				return nil, fmt.Errorf("file %q in group %q has an empty component name", fileName, group)
			}

			d := Descriptor{Type: g.Type, Name: name, Content: content}
			if seen[d.Key()] {
				return nil, fmt.Errorf("duplicate component %s", d.Key())
			}
			seen[d.Key()] = true

			out = append(out, d)
		}
	}

	// Map iteration order is random; capture processes components in a
	// stable order so logs and manifests are reproducible.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}

package sfcli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DevinBristol/salesforce-org-analysis/internal/component"
	"github.com/DevinBristol/salesforce-org-analysis/internal/platform"
)

// metadata-format directory name per component type
var mdapiDir = map[component.Type]string{
	component.ApexClass:     "classes",
	component.ApexTrigger:   "triggers",
	component.ApexPage:      "pages",
	component.ApexComponent: "components",
}

// stageBundle writes a metadata-format project for the bundle into a
// temp directory. The returned cleanup removes the whole directory.
func stageBundle(bundle []platform.BundleItem, defaultAPIVersion string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "orgsnap-deploy-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	members := map[component.Type][]string{}
	maxVersion := defaultAPIVersion

	for _, item := range bundle {
		sub, ok := mdapiDir[item.Type]
		if !ok {
			cleanup()
			return "", nil, fmt.Errorf("no metadata directory for type %s", item.Type)
		}

		typeDir := filepath.Join(dir, sub)
		if err := os.MkdirAll(typeDir, 0o755); err != nil {
			cleanup()
			return "", nil, err
		}

		version := item.APIVersion
		if version == "" {
			version = defaultAPIVersion
		}
		if version > maxVersion {
			maxVersion = version
		}

		src := filepath.Join(typeDir, item.Name+item.Type.Suffix())
		if err := os.WriteFile(src, []byte(item.Content), 0o644); err != nil {
			cleanup()
			return "", nil, err
		}

		meta := fmt.Sprintf(
			"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"+
				"<%s xmlns=\"http://soap.sforce.com/2006/04/metadata\">\n"+
				"    <apiVersion>%s</apiVersion>\n"+
				"</%s>\n",
			item.Type, version, item.Type)
		if err := os.WriteFile(src+"-meta.xml", []byte(meta), 0o644); err != nil {
			cleanup()
			return "", nil, err
		}

		members[item.Type] = append(members[item.Type], item.Name)
	}

	if err := os.WriteFile(filepath.Join(dir, "package.xml"), packageXML(members, maxVersion), 0o644); err != nil {
		cleanup()
		return "", nil, err
	}

	return dir, cleanup, nil
}

func packageXML(members map[component.Type][]string, version string) []byte {
	var b []byte
	b = append(b, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"...)
	b = append(b, "<Package xmlns=\"http://soap.sforce.com/2006/04/metadata\">\n"...)

	for typ, names := range members {
		b = append(b, "    <types>\n"...)
		for _, n := range names {
			b = append(b, fmt.Sprintf("        <members>%s</members>\n", n)...)
		}
		b = append(b, fmt.Sprintf("        <name>%s</name>\n", typ)...)
		b = append(b, "    </types>\n"...)
	}

	b = append(b, fmt.Sprintf("    <version>%s</version>\n", version)...)
	b = append(b, "</Package>\n"...)
	return b
}

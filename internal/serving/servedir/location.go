package servedir

import (
	"path/filepath"
	"strings"
)

// location is a filesystem path split into its root (volume name and
// leading separator, if any) and its components.
type location struct {
	root       string
	components []string
}

func parseLocation(path string) location {
	path = filepath.Clean(path)

	root := filepath.VolumeName(path)
	path = path[len(root):]
	if strings.HasPrefix(path, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}

	var components []string
	for _, c := range strings.Split(path, string(filepath.Separator)) {
		if c != "" {
			components = append(components, c)
		}
	}

	return location{root: root, components: components}
}

// resolve lexically applies the slash separated requestPath to a copy of l.
// "." is skipped and ".." drops the last component, even when that climbs
// above the location resolve started from. The filesystem is not consulted.
func (l location) resolve(requestPath string) location {
	components := make([]string, len(l.components), len(l.components)+strings.Count(requestPath, "/")+1)
	copy(components, l.components)

	for _, segment := range strings.Split(requestPath, "/") {
		switch segment {
		case "", ".":
			continue
		case "..":
			if len(components) > 0 {
				components = components[:len(components)-1]
			}
		default:
			components = append(components, segment)
		}
	}

	return location{root: l.root, components: components}
}

// within reports whether l equals base or lies beneath it. The comparison is
// made component by component, so /srv/static-evil is not within /srv/static.
func (l location) within(base location) bool {
	if l.root != base.root || len(l.components) < len(base.components) {
		return false
	}

	for i, c := range base.components {
		if l.components[i] != c {
			return false
		}
	}

	// a segment carrying the host separator would be split again by the OS
	for _, c := range l.components[len(base.components):] {
		if strings.ContainsRune(c, filepath.Separator) {
			return false
		}
	}

	return true
}

func (l location) String() string {
	return l.root + strings.Join(l.components, string(filepath.Separator))
}

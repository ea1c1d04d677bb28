package navigator

import (
	"path/filepath"
	"strings"
)

// Crumb is one step of the breadcrumb trail.
type Crumb struct {
	Title string
	Path  string
}

// FindRoot returns the first root that is path itself or one of its
// ancestors. Matching is by whole path components: /a/b is not under /a/bc.
func FindRoot(path string, roots []string) (string, bool) {
	for _, root := range roots {
		if isUnder(path, root) {
			return root, true
		}
	}
	return "", false
}

func isUnder(path, root string) bool {
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// Breadcrumbs lists the folders from the matching root down to the current
// folder, both included. It is empty in the root view or when no root matches.
func (n *Navigator) Breadcrumbs(roots []string) []Crumb {
	current, ok := n.Current()
	if !ok {
		return nil
	}
	return Trail(current, roots)
}

// Trail is Breadcrumbs for an arbitrary path.
func Trail(path string, roots []string) []Crumb {
	root, ok := FindRoot(path, roots)
	if !ok {
		return nil
	}
	var crumbs []Crumb
	for p := path; ; p = filepath.Dir(p) {
		crumbs = append(crumbs, Crumb{Title: title(p), Path: p})
		if p == root || p == filepath.Dir(p) {
			break
		}
	}
	for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
		crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
	}
	return crumbs
}

func title(p string) string {
	base := filepath.Base(p)
	if base == string(filepath.Separator) || base == "." {
		return p
	}
	return base
}

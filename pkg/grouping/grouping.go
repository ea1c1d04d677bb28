// Package grouping buckets files into coarse media families ("virtual folders").
package grouping

import (
	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/sorting"
)

// Family names.
const (
	Images     = "Images"
	Videos     = "Videos"
	Audio      = "Audio"
	PDFs       = "PDFs"
	Documents  = "Documents"
	OtherFiles = "Other Files"
)

// Families lists every family in declaration order, OtherFiles last.
var Families = []string{Images, Videos, Audio, PDFs, Documents, OtherFiles}

// familyByExt maps lowercased extensions without the dot to a family.
var familyByExt = map[string]string{
	"jpg":  Images,
	"jpeg": Images,
	"png":  Images,
	"gif":  Images,
	"bmp":  Images,

	"mp4": Videos,
	"avi": Videos,
	"mov": Videos,
	"mkv": Videos,
	"flv": Videos,

	"mp3": Audio,
	"wav": Audio,
	"ogg": Audio,
	"aac": Audio,

	"pdf": PDFs,

	"doc":  Documents,
	"docx": Documents,
	"txt":  Documents,
	"rtf":  Documents,
}

// Family returns the family of a lowercased extension.
func Family(ext string) string {
	if family, ok := familyByExt[ext]; ok {
		return family
	}
	return OtherFiles
}

// Group is a synthetic folder of files from one family.
type Group struct {
	Name  string
	Files []*files.Entry
}

func (g *Group) Count() int {
	return len(g.Files)
}

func (g *Group) TotalSize() (total int64) {
	for _, f := range g.Files {
		if size := f.Size(); size.IsResolved() && size.Bytes > 0 {
			total += size.Bytes
		}
	}
	return
}

// GroupByFamily buckets the files of entries, skipping directories.
// Files keep their input order within a group. Empty families are dropped
// and groups come back in Families order.
func GroupByFamily(entries []*files.Entry) []*Group {
	byFamily := make(map[string]*Group, len(Families))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		family := Family(e.Ext())
		g, ok := byFamily[family]
		if !ok {
			g = &Group{Name: family}
			byFamily[family] = g
		}
		g.Files = append(g.Files, e)
	}
	groups := make([]*Group, 0, len(byFamily))
	for _, family := range Families {
		if g, ok := byFamily[family]; ok {
			groups = append(groups, g)
		}
	}
	return groups
}

// SortByName orders groups by name, ignoring case, in the given direction.
func SortByName(groups []*Group, dir sorting.Direction) []*Group {
	return sorting.MergeSort(groups, func(a, b *Group) int {
		c := sorting.CompareFold(a.Name, b.Name)
		if dir == sorting.Descending {
			return -c
		}
		return c
	})
}

// Find returns the group called name, or nil.
func Find(groups []*Group, name string) *Group {
	for _, g := range groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

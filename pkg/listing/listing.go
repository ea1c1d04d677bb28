// Package listing builds the ordered, typed items shown for a location.
package listing

import (
	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/grouping"
)

// Mode tells how a listing was built.
type Mode int

const (
	Normal Mode = iota
	// Grouped shows folders followed by extension-family groups.
	Grouped
	// Virtual shows the files of one group behind a back item.
	Virtual
)

func (m Mode) String() string {
	switch m {
	case Grouped:
		return "grouped"
	case Virtual:
		return "virtual"
	default:
		return "normal"
	}
}

type ItemKind int

const (
	ItemEntry ItemKind = iota
	ItemGroup
	ItemBack
)

// Item is one row. Entry is set for ItemEntry, Group for ItemGroup.
type Item struct {
	Kind  ItemKind
	Entry *files.Entry
	Group *grouping.Group
}

func EntryItem(e *files.Entry) Item {
	return Item{Kind: ItemEntry, Entry: e}
}

func GroupItem(g *grouping.Group) Item {
	return Item{Kind: ItemGroup, Group: g}
}

func BackItem() Item {
	return Item{Kind: ItemBack}
}

// Title is the text a front-end shows for the item.
func (i Item) Title() string {
	switch i.Kind {
	case ItemEntry:
		return i.Entry.Name()
	case ItemGroup:
		return i.Group.Name
	default:
		return ".."
	}
}

const (
	NoRootsMessage    = "No folders added yet"
	EmptyDirMessage   = "This folder is empty"
	EmptyGroupMessage = "No files in this group"
	UnreadableMessage = "This folder cannot be read"
)

// Listing is an immutable snapshot. Builders return new values; entries are
// shared so size updates show up in every listing holding them.
type Listing struct {
	Mode Mode
	// Dir is the listed folder, empty for the root view.
	Dir string
	// Group names the virtual group in Virtual mode.
	Group string
	Items []Item
	// EmptyMessage is set when there is nothing but a back item to show.
	EmptyMessage string
}

// IsRootView reports whether the listing shows registered roots.
func (l Listing) IsRootView() bool {
	return l.Dir == "" && l.Mode == Normal
}

func (l Listing) IsEmpty() bool {
	return l.EmptyMessage != ""
}

// Entries returns entry items in order.
func (l Listing) Entries() []*files.Entry {
	result := make([]*files.Entry, 0, len(l.Items))
	for _, item := range l.Items {
		if item.Kind == ItemEntry {
			result = append(result, item.Entry)
		}
	}
	return result
}

// Groups returns group items in order.
func (l Listing) Groups() []*grouping.Group {
	var result []*grouping.Group
	for _, item := range l.Items {
		if item.Kind == ItemGroup {
			result = append(result, item.Group)
		}
	}
	return result
}

// FindGroup returns the group called name, or nil.
func (l Listing) FindGroup(name string) *grouping.Group {
	return grouping.Find(l.Groups(), name)
}

// Clone copies the item slice so the copy can outlive later rebuilds.
func (l Listing) Clone() Listing {
	c := l
	c.Items = make([]Item, len(l.Items))
	copy(c.Items, l.Items)
	return c
}

// Equal reports whether both listings show the same items in the same order.
// Entries are compared by identity; groups by name and files.
func (l Listing) Equal(other Listing) bool {
	if l.Mode != other.Mode || l.Dir != other.Dir || l.Group != other.Group ||
		l.EmptyMessage != other.EmptyMessage || len(l.Items) != len(other.Items) {
		return false
	}
	for i, a := range l.Items {
		b := other.Items[i]
		if a.Kind != b.Kind || a.Entry != b.Entry {
			return false
		}
		if a.Kind == ItemGroup && !sameGroup(a.Group, b.Group) {
			return false
		}
	}
	return true
}

func sameGroup(a, b *grouping.Group) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Name != b.Name || len(a.Files) != len(b.Files) {
		return false
	}
	for i := range a.Files {
		if a.Files[i] != b.Files[i] {
			return false
		}
	}
	return true
}

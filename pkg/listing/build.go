package listing

import (
	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/grouping"
	"github.com/filetug/foldertug/pkg/sorting"
)

// RootView lists registered roots as folder entries in the active sort.
func RootView(roots []*files.Entry, s sorting.State) Listing {
	l := Listing{Mode: Normal, Items: entryItems(sorting.Sort(roots, s))}
	if len(l.Items) == 0 {
		l.EmptyMessage = NoRootsMessage
	}
	return l
}

// Build lists dir in Grouped mode when sorting by extension, Normal otherwise.
func Build(dir string, entries []*files.Entry, s sorting.State) Listing {
	if s.Key == sorting.ByExtension {
		return GroupedView(dir, entries, s)
	}
	return NormalView(dir, entries, s)
}

// NormalView lists folders then files, each sorted by s.
func NormalView(dir string, entries []*files.Entry, s sorting.State) Listing {
	l := Listing{Mode: Normal, Dir: dir, Items: entryItems(sorting.Sort(entries, s))}
	if len(l.Items) == 0 {
		l.EmptyMessage = EmptyDirMessage
	}
	return l
}

// GroupedView lists folders by name, then one group per extension family.
// Group contents follow s; groups are ordered by name in s.Direction.
func GroupedView(dir string, entries []*files.Entry, s sorting.State) Listing {
	var folders, regular []*files.Entry
	for _, e := range entries {
		if e.IsDir() {
			folders = append(folders, e)
		} else {
			regular = append(regular, e)
		}
	}
	folders = sorting.Sort(folders, sorting.State{Key: sorting.ByName, Direction: s.Direction})

	groups := grouping.GroupByFamily(regular)
	for i, g := range groups {
		groups[i] = &grouping.Group{Name: g.Name, Files: sorting.Sort(g.Files, s)}
	}
	groups = grouping.SortByName(groups, s.Direction)

	l := Listing{Mode: Grouped, Dir: dir, Items: entryItems(folders)}
	for _, g := range groups {
		l.Items = append(l.Items, GroupItem(g))
	}
	if len(l.Items) == 0 {
		l.EmptyMessage = EmptyDirMessage
	}
	return l
}

// VirtualView shows a back item then the group's files by name in dir.
func VirtualView(parent string, g *grouping.Group, dir sorting.Direction) Listing {
	sorted := sorting.Sort(g.Files, sorting.State{Key: sorting.ByName, Direction: dir})
	l := Listing{Mode: Virtual, Dir: parent, Group: g.Name, Items: []Item{BackItem()}}
	l.Items = append(l.Items, entryItems(sorted)...)
	if len(sorted) == 0 {
		l.EmptyMessage = EmptyGroupMessage
	}
	return l
}

// Resort re-orders a Normal listing after sizes changed.
// Other modes come back unchanged.
func Resort(l Listing, s sorting.State) Listing {
	if l.Mode != Normal {
		return l
	}
	resorted := l
	resorted.Items = entryItems(sorting.Sort(l.Entries(), s))
	return resorted
}

func entryItems(entries []*files.Entry) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = EntryItem(e)
	}
	return items
}

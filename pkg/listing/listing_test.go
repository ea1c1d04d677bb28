package listing

import (
	"testing"

	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/grouping"
	"github.com/filetug/foldertug/pkg/sorting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(name string, size int64) *files.Entry {
	return files.NewEntry("/w/"+name, false, size)
}

func dir(name string) *files.Entry {
	return files.NewEntry("/w/"+name, true, 0)
}

func titles(l Listing) []string {
	result := make([]string, len(l.Items))
	for i, item := range l.Items {
		result[i] = item.Title()
	}
	return result
}

func sample() []*files.Entry {
	return []*files.Entry{
		file("a.jpg", 5),
		dir("beta"),
		file("b.mp4", 4),
		file("c.pdf", 3),
		dir("Alpha"),
		file("d.xyz", 2),
		file("e.png", 1),
	}
}

func TestRootView(t *testing.T) {
	empty := RootView(nil, sorting.DefaultState())
	assert.True(t, empty.IsRootView())
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, NoRootsMessage, empty.EmptyMessage)

	roots := RootView([]*files.Entry{
		files.NewEntry("/srv/zeta", true, 0),
		files.NewEntry("/home/alpha", true, 0),
	}, sorting.DefaultState())
	assert.False(t, roots.IsEmpty())
	assert.Equal(t, []string{"alpha", "zeta"}, titles(roots))
}

func TestBuild_Normal(t *testing.T) {
	l := Build("/w", sample(), sorting.State{Key: sorting.BySize})
	assert.Equal(t, Normal, l.Mode)
	assert.Equal(t, "/w", l.Dir)
	assert.Equal(t, []string{"beta", "Alpha", "e.png", "d.xyz", "c.pdf", "b.mp4", "a.jpg"}, titles(l))

	empty := Build("/w/empty", nil, sorting.DefaultState())
	assert.Equal(t, EmptyDirMessage, empty.EmptyMessage)
	assert.Empty(t, empty.Items)
}

func TestBuild_Grouped(t *testing.T) {
	t.Run("ascending", func(t *testing.T) {
		l := Build("/w", sample(), sorting.State{Key: sorting.ByExtension})
		assert.Equal(t, Grouped, l.Mode)
		assert.Equal(t, []string{"Alpha", "beta", "Images", "Other Files", "PDFs", "Videos"}, titles(l))

		images := l.FindGroup(grouping.Images)
		require.NotNil(t, images)
		assert.Equal(t, "a.jpg", images.Files[0].Name())
		assert.Equal(t, "e.png", images.Files[1].Name())
		assert.Len(t, l.Entries(), 2)
		assert.Len(t, l.Groups(), 4)
	})

	t.Run("descending", func(t *testing.T) {
		l := Build("/w", sample(), sorting.State{Key: sorting.ByExtension, Direction: sorting.Descending})
		assert.Equal(t, []string{"beta", "Alpha", "Videos", "PDFs", "Other Files", "Images"}, titles(l))
		images := l.FindGroup(grouping.Images)
		require.NotNil(t, images)
		assert.Equal(t, "e.png", images.Files[0].Name())
	})

	t.Run("input_untouched", func(t *testing.T) {
		entries := sample()
		_ = GroupedView("/w", entries, sorting.State{Key: sorting.ByExtension, Direction: sorting.Descending})
		assert.Equal(t, "a.jpg", entries[0].Name())
	})
}

func TestVirtualView(t *testing.T) {
	g := &grouping.Group{Name: grouping.Images, Files: []*files.Entry{file("b.png", 1), file("A.jpg", 2)}}

	l := VirtualView("/w", g, sorting.Ascending)
	assert.Equal(t, Virtual, l.Mode)
	assert.Equal(t, grouping.Images, l.Group)
	assert.False(t, l.IsRootView())
	assert.Equal(t, ItemBack, l.Items[0].Kind)
	assert.Equal(t, []string{"..", "A.jpg", "b.png"}, titles(l))

	l = VirtualView("/w", g, sorting.Descending)
	assert.Equal(t, []string{"..", "b.png", "A.jpg"}, titles(l))

	empty := VirtualView("/w", &grouping.Group{Name: grouping.Audio}, sorting.Ascending)
	assert.Equal(t, EmptyGroupMessage, empty.EmptyMessage)
}

func TestResort(t *testing.T) {
	a, b := dir("a"), dir("b")
	s := sorting.State{Key: sorting.BySize}
	l := NormalView("/w", []*files.Entry{a, b}, s)
	assert.Equal(t, []string{"a", "b"}, titles(l))

	a.SetSize(files.ComputedSize(100))
	b.SetSize(files.ComputedSize(1))
	resorted := Resort(l, s)
	assert.Equal(t, []string{"b", "a"}, titles(resorted))
	assert.Equal(t, []string{"a", "b"}, titles(l), "original listing is immutable")

	grouped := GroupedView("/w", []*files.Entry{a}, sorting.State{Key: sorting.ByExtension})
	assert.True(t, grouped.Equal(Resort(grouped, s)))
}

func TestListing_Equal(t *testing.T) {
	entries := sample()
	s := sorting.State{Key: sorting.ByExtension}
	l1 := Build("/w", entries, s)
	l2 := Build("/w", entries, s)
	assert.True(t, l1.Equal(l2))
	assert.True(t, l1.Equal(l1.Clone()))

	other := Build("/w", sample(), s)
	assert.False(t, l1.Equal(other), "entries are compared by identity")

	assert.False(t, l1.Equal(Build("/w", entries, sorting.DefaultState())))
}

func TestSizeText(t *testing.T) {
	assert.Equal(t, CalculatingText, SizeText(files.PendingSize()))
	assert.Equal(t, UnknownText, SizeText(files.UnknownSize()))
	assert.Equal(t, "~3KB", SizeText(files.EstimatedSize(3*1024)))
	assert.Equal(t, "2MB", SizeText(files.ComputedSize(2*1024*1024)))
}

func TestGroupText(t *testing.T) {
	assert.Equal(t, "1 file", GroupText(&grouping.Group{Files: []*files.Entry{file("a", 1)}}))
	assert.Equal(t, "0 files", GroupText(&grouping.Group{}))
	assert.Equal(t, "..", BackItem().Title())
	assert.Equal(t, "normal", Normal.String())
	assert.Equal(t, "grouped", Grouped.String())
	assert.Equal(t, "virtual", Virtual.String())
}

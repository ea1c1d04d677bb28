package files

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockStore(t *testing.T) *MockStore {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockStore(ctrl)
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps_store_order", func(t *testing.T) {
		store := newMockStore(t)
		store.EXPECT().ReadDir(gomock.Any(), "/docs").Return([]os.DirEntry{
			NewDirEntry("zeta.txt", false, WithSize(3)),
			NewDirEntry("alpha", true),
			NewDirEntry("Beta.PNG", false, WithSize(10)),
		}, nil)

		entries, err := List(ctx, store, "/docs")
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, "/docs/zeta.txt", entries[0].Path())
		assert.Equal(t, ComputedSize(3), entries[0].Size())
		assert.Equal(t, "/docs/alpha", entries[1].Path())
		assert.True(t, entries[1].IsDir())
		assert.Equal(t, SizePending, entries[1].Size().State)
		assert.Equal(t, "png", entries[2].Ext())
	})

	t.Run("empty", func(t *testing.T) {
		store := newMockStore(t)
		store.EXPECT().ReadDir(gomock.Any(), "/empty").Return([]os.DirEntry{}, nil)
		entries, err := List(ctx, store, "/empty")
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("symlink_to_dir", func(t *testing.T) {
		store := newMockStore(t)
		store.EXPECT().ReadDir(gomock.Any(), "/docs").Return([]os.DirEntry{
			NewDirEntry("link", false, WithMode(os.ModeSymlink)),
		}, nil)
		store.EXPECT().Stat(gomock.Any(), "/docs/link").Return(NewFileInfo(NewDirEntry("link", true)), nil)

		entries, err := List(ctx, store, "/docs")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].IsDir())
	})

	t.Run("unreadable", func(t *testing.T) {
		store := newMockStore(t)
		store.EXPECT().ReadDir(gomock.Any(), "/locked").Return(nil, fs.ErrPermission)
		entries, err := List(ctx, store, "/locked")
		assert.Nil(t, entries)
		assert.True(t, errors.Is(err, ErrUnreadable))
		assert.True(t, errors.Is(err, fs.ErrPermission))
		var pathErr *PathError
		if assert.True(t, errors.As(err, &pathErr)) {
			assert.Equal(t, "/locked", pathErr.Path)
		}
	})

	t.Run("missing", func(t *testing.T) {
		store := newMockStore(t)
		store.EXPECT().ReadDir(gomock.Any(), "/gone").Return(nil, fs.ErrNotExist)
		_, err := List(ctx, store, "/gone")
		assert.True(t, errors.Is(err, ErrMissingPath))
	})
}

func TestStoreHelpers(t *testing.T) {
	ctx := context.Background()
	store := newMockStore(t)
	dirInfo := NewFileInfo(NewDirEntry("dir", true), WithSize(4096))
	fileInfo := NewFileInfo(NewDirEntry("a.txt", false), WithSize(12))
	store.EXPECT().Stat(gomock.Any(), "/dir").Return(dirInfo, nil).AnyTimes()
	store.EXPECT().Stat(gomock.Any(), "/dir/a.txt").Return(fileInfo, nil).AnyTimes()
	store.EXPECT().Stat(gomock.Any(), "/nope").Return(nil, fs.ErrNotExist).AnyTimes()

	assert.True(t, Exists(ctx, store, "/dir"))
	assert.False(t, Exists(ctx, store, "/nope"))
	assert.True(t, IsDir(ctx, store, "/dir"))
	assert.False(t, IsDir(ctx, store, "/dir/a.txt"))
	assert.Equal(t, int64(4096), Length(ctx, store, "/dir"))
	assert.Equal(t, int64(0), Length(ctx, store, "/nope"))

	assert.NoError(t, CheckDir(ctx, store, "/dir"))
	assert.ErrorIs(t, CheckDir(ctx, store, "/dir/a.txt"), ErrNotDir)
	assert.ErrorIs(t, CheckDir(ctx, store, "/nope"), ErrMissingPath)
}

package fsutils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDirExists(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("exists", func(t *testing.T) {
		exists, err := DirExists(tmpDir)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("not_exists", func(t *testing.T) {
		exists, err := DirExists(filepath.Join(tmpDir, "non_existent"))
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("is_file", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "file.txt")
		err := os.WriteFile(filePath, []byte("test"), 0644)
		assert.NoError(t, err)

		exists, err := DirExists(filePath)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("stat_error", func(t *testing.T) {
		origStat := osStat
		defer func() { osStat = origStat }()
		osStat = func(string) (os.FileInfo, error) {
			return nil, os.ErrPermission
		}
		_, err := DirExists(tmpDir)
		assert.Error(t, err)
	})
}

func TestExpandHome(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", ExpandHome(""))
	})
	t.Run("no_tilde", func(t *testing.T) {
		assert.Equal(t, "/some/path", ExpandHome("/some/path"))
	})
	t.Run("only_tilde", func(t *testing.T) {
		home, _ := os.UserHomeDir()
		assert.Equal(t, home, ExpandHome("~"))
	})
	t.Run("tilde_with_path", func(t *testing.T) {
		home, _ := os.UserHomeDir()
		assert.Equal(t, filepath.Join(home, "abc"), ExpandHome("~/abc"))
	})
	t.Run("home_unavailable", func(t *testing.T) {
		origHome := osUserHomeDir
		defer func() { osUserHomeDir = origHome }()
		osUserHomeDir = func() (string, error) {
			return "", errors.New("no home")
		}
		assert.Equal(t, "~/abc", ExpandHome("~/abc"))
	})
}

func TestCanonicalPath(t *testing.T) {
	t.Run("cleans_redundant_elements", func(t *testing.T) {
		p, err := CanonicalPath("/a/./b/../c/")
		assert.NoError(t, err)
		assert.Equal(t, "/a/c", p)
	})

	t.Run("relative", func(t *testing.T) {
		wd, err := os.Getwd()
		assert.NoError(t, err)
		p, err := CanonicalPath("sub")
		assert.NoError(t, err)
		assert.Equal(t, filepath.Join(wd, "sub"), p)
	})

	t.Run("tilde", func(t *testing.T) {
		origHome := osUserHomeDir
		defer func() { osUserHomeDir = origHome }()
		osUserHomeDir = func() (string, error) {
			return "/home/test", nil
		}
		p, err := CanonicalPath("~/Documents/")
		assert.NoError(t, err)
		assert.Equal(t, "/home/test/Documents", p)
	})

	t.Run("abs_error", func(t *testing.T) {
		origAbs := filepathAbs
		defer func() { filepathAbs = origAbs }()
		filepathAbs = func(string) (string, error) {
			return "", errors.New("no cwd")
		}
		_, err := CanonicalPath("rel")
		assert.Error(t, err)
	})
}

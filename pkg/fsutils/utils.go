package fsutils

import (
	"os"
	"path/filepath"
	"strings"
)

var osStat = os.Stat
var osUserHomeDir = os.UserHomeDir
var filepathAbs = filepath.Abs

func DirExists(path string) (bool, error) {
	info, err := osStat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err // some other error
	}
	return info.IsDir(), nil
}

// ExpandHome expands leading ~ to the user's home directory.
func ExpandHome(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := osUserHomeDir()
		if err == nil {
			if p == "~" {
				return home
			}
			return filepath.Join(home, strings.TrimPrefix(p, "~/"))
		}
	}
	return p
}

// CanonicalPath expands ~, makes p absolute and cleans it.
// Two spellings of the same directory map to the same string.
func CanonicalPath(p string) (string, error) {
	abs, err := filepathAbs(ExpandHome(p))
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

package relcell

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return path
		}
		path = filepath.Join(usr.HomeDir, (path)[2:])
	}

	return path
}

// ExpandPath expands ~ and environment variables in path and makes it
// absolute. Used on every path-valued flag so that all downstream file
// operations see one canonical form.
func ExpandPath(path string) (string, error) {
	expanded, err := filepath.Abs(os.ExpandEnv(ExpandHome(path)))
	if err != nil {
		return "", pfx.Err(err)
	}

	return expanded, nil
}

// MustExistingPath is ExpandPath for inputs: the expanded path must name an
// existing file or directory.
func MustExistingPath(path string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(expanded); err != nil {
		return "", pfx.Err(err)
	}

	return expanded, nil
}

package util

import (
	"errors"
	"os"
)

// CheckFileExists reports whether fpath names an existing file or directory.
// Any stat failure, including permission errors, counts as "does not exist".
func CheckFileExists(fpath string) bool {
	_, e := os.Stat(fpath)
	return e == nil
}

// IsNotExist reports whether err says a file is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

package fsops

import (
	"os"

	"github.com/petasbytes/gudang-bot/internal/safety"
)

// ReadFile reads a record file addressed by a name relative to the root.
// A missing file is reported with an error matching os.ErrNotExist so callers
// can fall back to an empty record.
func (r *Root) ReadFile(name string) ([]byte, error) {
	absPath, err := safety.ValidateRecordPath(r.dir, name)
	if err != nil {
		return nil, err // propagate StoreError unchanged
	}

	fi, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, safety.StoreError{Code: safety.CodeNotAFile, Message: "record path is a directory"}
	}

	return os.ReadFile(absPath)
}

package fsops

import (
	"os"
	"path/filepath"

	"github.com/petasbytes/gudang-bot/internal/safety"
)

// WriteFile replaces the record file addressed by name with data.
// The bytes go to a hidden temp file in the same directory first and are then
// renamed over the target, so readers see either the old or the new record.
func (r *Root) WriteFile(name string, data []byte) error {
	absPath, err := safety.ValidateRecordPath(r.dir, name)
	if err != nil {
		return err
	}

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, absPath)
}

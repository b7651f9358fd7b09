package fsops

import (
	"github.com/petasbytes/gudang-bot/internal/safety"
)

// Root is a data directory that record files are read from and written to.
type Root struct {
	dir string
}

// NewRoot resolves dir (empty means the working directory) and creates it when missing.
func NewRoot(dir string) (*Root, error) {
	abs, err := safety.InitDataRoot(dir)
	if err != nil {
		return nil, err
	}
	return &Root{dir: abs}, nil
}

// Dir returns the absolute, symlink-resolved data directory.
func (r *Root) Dir() string { return r.dir }

// Package safety resolves the data root and keeps record files inside it.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StoreError is a machine-readable error for path policy violations.
type StoreError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string so log lines stay greppable.
func (e StoreError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

const (
	CodeOutsideRoot = "ERR_PATH_OUTSIDE_ROOT"
	CodeNotAFile    = "ERR_NOT_A_FILE"
	CodeBadName     = "ERR_BAD_RECORD_NAME"
)

// InitDataRoot resolves an absolute data root. An empty dir means the working
// directory. The directory is created when missing.
func InitDataRoot(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = cwd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs(dataRoot): %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("mkdir data root: %w", err)
	}

	// Resolve symlinks so the boundary checks below compare like with like.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	return abs, nil
}

// ValidateRecordPath resolves name against absRoot and returns an absolute path
// inside the root. Names must be relative, must not traverse upwards and must
// not escape through a symlinked parent. Hidden files are rejected so temp files
// written next to a record can never be addressed as records.
func ValidateRecordPath(absRoot, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", StoreError{Code: CodeBadName, Message: "record name is empty"}
	}
	if filepath.IsAbs(name) {
		return "", StoreError{Code: CodeOutsideRoot, Message: "absolute paths are not allowed"}
	}

	cleaned := filepath.Clean(name)
	if strings.HasPrefix(filepath.Base(cleaned), ".") {
		return "", StoreError{Code: CodeBadName, Message: "hidden record names are not allowed"}
	}

	candidate := filepath.Join(absRoot, cleaned)

	// Resolve the whole candidate when it exists, otherwise its parent, which
	// reveals escapes through a symlinked directory for files not written yet.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else if resolvedParent, err := filepath.EvalSymlinks(filepath.Dir(candidate)); err == nil {
		candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
	}

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", StoreError{Code: CodeOutsideRoot, Message: "record path resolves outside the data root"}
	}

	return candidate, nil
}

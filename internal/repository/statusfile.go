package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sundial"
)

// Status is the parsed form of the line-oriented status file.
type Status struct {
	Temp     int
	Phase    string
	Target   int
	Progress float64
}

// StatusFile publishes runtime state as plain key=value lines at a well-known
// path. Writes go to a temporary file in the same directory and are renamed
// into place, so concurrent readers never observe a partial file.
type StatusFile struct {
	path string
}

const statusFilePermissions = 0o644

// NewStatusFile returns a status publisher for the given path.
func NewStatusFile(path string) *StatusFile {
	return &StatusFile{path: filepath.Clean(path)}
}

// Path returns the file location, for logging.
func (f *StatusFile) Path() string { return f.path }

// Write serializes the snapshot and publishes it atomically.
func (f *StatusFile) Write(s sundial.RuntimeState) error {
	content := fmt.Sprintf("temp=%d\nphase=%s\ntarget=%d\nprogress=%.2f\n",
		s.CurrentTemp, s.Phase, s.TargetTemp, s.Progress)

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".sundial-status-*")
	if err != nil {
		return fmt.Errorf("create status temp file: %w", err)
	}

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write status: %w", err)
	}
	if err := tmp.Chmod(statusFilePermissions); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("chmod status: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close status temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("publish status: %w", err)
	}
	return nil
}

// Read parses the status file. Unknown lines are ignored and malformed values
// keep their zero defaults, so a hand-edited or truncated file still yields a
// usable result.
func (f *StatusFile) Read() (Status, error) {
	contents, err := os.ReadFile(f.path)
	if err != nil {
		return Status{}, fmt.Errorf("read status file: %w", err)
	}

	st := Status{Phase: "unknown"}
	for _, line := range strings.Split(string(contents), "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found {
			continue
		}
		switch key {
		case "temp":
			if v, err := strconv.Atoi(value); err == nil {
				st.Temp = v
			}
		case "phase":
			st.Phase = value
		case "target":
			if v, err := strconv.Atoi(value); err == nil {
				st.Target = v
			}
		case "progress":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				st.Progress = v
			}
		}
	}
	return st, nil
}

package appstate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FilePersister stores the state as a YAML document.
type FilePersister struct {
	path string
}

// NewFilePersister stores the state at path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// DefaultPath is the state file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vet-office", "state.yaml"), nil
}

// Path returns the file location.
func (p *FilePersister) Path() string { return p.path }

// Load returns the zero state when the file does not exist.
func (p *FilePersister) Load(_ context.Context) (State, error) {
	raw, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, err
	}
	var state State
	if err := yaml.Unmarshal(raw, &state); err != nil {
		return State{}, fmt.Errorf("decode %s: %w", p.path, err)
	}
	return state, nil
}

// Save writes through a temporary file and renames it into place.
func (p *FilePersister) Save(_ context.Context, state State) error {
	raw, err := yaml.Marshal(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".state-*.yaml")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p.path)
}

// Clear removes the file. A missing file is not an error.
func (p *FilePersister) Clear(_ context.Context) error {
	if err := os.Remove(p.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

var _ Persister = (*FilePersister)(nil)

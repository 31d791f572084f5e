package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FilePersister keeps the store as one JSON document. Saves go through a temp file and a rename
// so a crash never leaves a half-written document behind.
type FilePersister struct {
	fs   afero.Fs
	path string
}

func NewFilePersister(fs afero.Fs, path string) *FilePersister {
	return &FilePersister{fs: fs, path: path}
}

// Load returns nil, nil when the file does not exist yet.
func (p *FilePersister) Load() (*State, error) {
	data, err := afero.ReadFile(p.fs, p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.path, err)
	}
	return &st, nil
}

func (p *FilePersister) Save(state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	if dir := filepath.Dir(p.path); dir != "." {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	tmp := p.path + ".tmp"
	if err := afero.WriteFile(p.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := p.fs.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// PersistenceError reports a failed read or write of the record file.
type PersistenceError struct {
	Op   string // "read", "decode" or "write"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// errMissingField is wrapped when the file parses but has no highScore.
var errMissingField = errors.New(`missing "highScore" field`)

// recordFile is the on-disk shape of the record.
type recordFile struct {
	HighScore *int `json:"highScore"`
}

// Record is the best score ever reached, stored as a small JSON file:
//
//	{
//	    "highScore": 12
//	}
//
// A Record is safe for concurrent use within one process. Separate
// processes sharing a file are last-writer-wins.
type Record struct {
	mu   sync.Mutex
	path string
}

// OpenRecord returns a record backed by path. A leading ~ is expanded.
// The file is not touched until the first read or write.
func OpenRecord(path string) (*Record, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	return &Record{path: path}, nil
}

// Path returns the expanded file path.
func (r *Record) Path() string {
	return r.path
}

// Read returns the stored best score. A missing file, malformed JSON or a
// missing or non-integer highScore is a *PersistenceError.
func (r *Record) Read() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// CommitIfHigher writes score if it is strictly greater than the stored
// best and reports whether it did. If the stored value cannot be read the
// file is left untouched.
func (r *Record) CommitIfHigher(score int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	best, err := r.read()
	if err != nil {
		return false, err
	}
	if score <= best {
		return false, nil
	}
	if err := r.write(score); err != nil {
		return false, err
	}
	return true, nil
}

// Seed creates the file with a best score of 0 unless it already exists.
// Parent directories are created as needed.
func (r *Record) Seed() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return &PersistenceError{Op: "read", Path: r.path, Err: err}
	}
	return r.write(0)
}

// Reset overwrites the stored best with 0.
func (r *Record) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(0)
}

func (r *Record) read() (int, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return 0, &PersistenceError{Op: "read", Path: r.path, Err: err}
	}

	var f recordFile
	if err := json.Unmarshal(data, &f); err != nil {
		return 0, &PersistenceError{Op: "decode", Path: r.path, Err: err}
	}
	if f.HighScore == nil {
		return 0, &PersistenceError{Op: "decode", Path: r.path, Err: errMissingField}
	}
	return *f.HighScore, nil
}

// write replaces the file atomically: the new content goes to a temporary
// file in the same directory, which is then renamed over the old one.
func (r *Record) write(score int) error {
	data, err := json.MarshalIndent(recordFile{HighScore: &score}, "", "    ")
	if err != nil {
		return &PersistenceError{Op: "write", Path: r.path, Err: err}
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "write", Path: r.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return &PersistenceError{Op: "write", Path: r.path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &PersistenceError{Op: "write", Path: r.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistenceError{Op: "write", Path: r.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return &PersistenceError{Op: "write", Path: r.path, Err: err}
	}
	return nil
}

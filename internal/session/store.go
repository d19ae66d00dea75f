package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists the two session entries: the bearer token and the
// serialized subject profile. Both are written together and removed
// together; nothing else lives in this store.
type Store interface {
	Load() (token string, subject []byte, err error)
	Save(token string, subject []byte) error
	Clear() error
}

const stateFileName = "session.json"

type stateFile struct {
	Token   string          `json:"token"`
	Subject json.RawMessage `json:"user"`
}

// FileStore keeps the session in a single file under the state directory,
// the terminal analogue of browser local storage.
type FileStore struct {
	dir string
}

// NewFileStore builds a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, stateFileName)
}

// Load reads the persisted entries. A missing file yields empty values and
// no error; a corrupt file yields an error the caller may tolerate.
func (s *FileStore) Load() (string, []byte, error) {
	raw, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, nil
		}
		return "", nil, err
	}

	var state stateFile
	if err := json.Unmarshal(raw, &state); err != nil {
		return "", nil, err
	}
	return state.Token, state.Subject, nil
}

// Save writes both entries atomically via a temp-file rename.
func (s *FileStore) Save(token string, subject []byte) error {
	payload, err := json.Marshal(stateFile{Token: token, Subject: subject})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, stateFileName+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path())
}

// Clear removes both entries.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

package newsletter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileList is the on-disk shape: {"emails": ["a@b.c", ...]}.
type fileList struct {
	Emails []string `json:"emails"`
}

// Store keeps the subscriber list in a JSON file. The list is small and
// append-mostly; a flat file beats a table here and survives restarts.
// Writes are serialized through a mutex since handlers run concurrently.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore builds a file-backed subscriber store.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("list path required")
	}
	return &Store{path: path}, nil
}

// Add appends the email if it is not already present. It reports whether
// the list changed.
func (s *Store) Add(email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read()
	if err != nil {
		return false, err
	}
	for _, existing := range list.Emails {
		if existing == email {
			return false, nil
		}
	}
	list.Emails = append(list.Emails, email)
	if err := s.write(list); err != nil {
		return false, err
	}
	return true, nil
}

// Emails returns a copy of the current subscriber list.
func (s *Store) Emails() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), list.Emails...), nil
}

func (s *Store) read() (*fileList, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileList{Emails: []string{}}, nil
		}
		return nil, fmt.Errorf("read subscriber list: %w", err)
	}
	if len(raw) == 0 {
		return &fileList{Emails: []string{}}, nil
	}
	var list fileList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode subscriber list: %w", err)
	}
	if list.Emails == nil {
		list.Emails = []string{}
	}
	return &list, nil
}

func (s *Store) write(list *fileList) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode subscriber list: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write subscriber list: %w", err)
	}
	return nil
}

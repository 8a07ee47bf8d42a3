package preferences

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vzahanych/weather-dashboard/internal/units"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileStore keeps preferences in a small YAML document keyed by storage key.
// Unrelated keys in the document are preserved on save.
type FileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences file: %w", err)
	}

	doc := map[string]string{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse preferences file: %w", err)
	}
	return doc, nil
}

func (s *FileStore) Load(ctx context.Context) (units.Units, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return units.Default, err
	}

	raw, ok := doc[Key]
	if !ok {
		return units.Default, nil
	}
	return decode(raw, s.logger), nil
}

func (s *FileStore) Save(ctx context.Context, u units.Units) error {
	if !u.Valid() {
		return fmt.Errorf("preferences: invalid units %q", u)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		// A corrupt file is replaced rather than blocking every save.
		s.logger.Warn("Rewriting unreadable preferences file", zap.String("path", s.path), zap.Error(err))
		doc = map[string]string{}
	}
	doc[Key] = u.String()

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace preferences file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

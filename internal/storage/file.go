package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"indexConfig/internal/model"
)

// StdoutPath selects the FileStorage writer instead of a file.
const StdoutPath = "-"

// FileStorage writes a resolved configuration as indented JSON.
// Files are replaced atomically through a temporary sibling.
type FileStorage struct {
	path   string
	stdout io.Writer
	logger *zap.Logger
	mu     sync.Mutex
}

func NewFileStorage(path string, stdout io.Writer, logger *zap.Logger) *FileStorage {
	if stdout == nil {
		stdout = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStorage{path: path, stdout: stdout, logger: logger}
}

// PutResolved encodes cfg and writes it to the configured destination.
func (s *FileStorage) PutResolved(cfg model.ResolvedConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal resolved config: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" || s.path == StdoutPath {
		if _, err := s.stdout.Write(data); err != nil {
			return fmt.Errorf("write resolved config: %w", err)
		}
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write output tmp: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}

	s.logger.Info("resolved config written",
		zap.String("path", s.path),
		zap.Int("bytes", len(data)),
		zap.Int("integrations", len(cfg.Integrations)),
	)
	return nil
}

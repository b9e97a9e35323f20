// Package fsio performs raw UTF-8 text file reads and writes on behalf of
// the UI layer. I/O errors are returned to the caller unmodified so the UI
// can present the underlying not-found or permission failure directly.
package fsio

import (
	"os"

	"quillpad/internal/logger"
)

type Service struct {
	log logger.Logger
}

func NewService(log logger.Logger) *Service {
	return &Service{log: log}
}

func (s *Service) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Error("FileIO", err, map[string]interface{}{"path": path, "op": "read"})
		return "", err
	}

	s.log.Debug("FileIO", "file read", map[string]interface{}{
		"path":  path,
		"bytes": len(data),
	})
	return string(data), nil
}

func (s *Service) WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		s.log.Error("FileIO", err, map[string]interface{}{"path": path, "op": "write"})
		return err
	}

	s.log.Debug("FileIO", "file written", map[string]interface{}{
		"path":  path,
		"bytes": len(content),
	})
	return nil
}

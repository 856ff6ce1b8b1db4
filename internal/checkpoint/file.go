// Package checkpoint persists the per-channel watermarks of the status update
// job in a plain-text file: one line per monitored channel, in configuration
// order, each line a message id.
package checkpoint

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

type fileStore struct {
	path     string
	channels int
}

// NewFileStore returns a store for the given number of channels.
func NewFileStore(path string, channels int) contract.CheckpointStore {
	return &fileStore{path: path, channels: channels}
}

// Load reads the checkpoint file. A missing or unreadable file yields an
// empty checkpoint together with the error; an unparsable line yields no
// watermark for that channel only.
func (s *fileStore) Load() (entity.Checkpoint, error) {
	cp := entity.NewCheckpoint(s.channels)

	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return cp, fmt.Errorf("%w: %w", entity.ErrNoWatermark, err)
	}
	if err != nil {
		return cp, fmt.Errorf("failed to read checkpoint file %s: %w", s.path, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for i := 0; i < s.channels && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if IsMessageID(line) {
			cp[i] = line
		}
	}
	if err := scanner.Err(); err != nil {
		return cp, fmt.Errorf("failed to parse checkpoint file %s: %w", s.path, err)
	}

	return cp, nil
}

// Save replaces the checkpoint file atomically.
func (s *fileStore) Save(cp entity.Checkpoint) error {
	if len(cp) != s.channels {
		return fmt.Errorf("checkpoint has %d entries, want %d", len(cp), s.channels)
	}

	var buf bytes.Buffer
	for _, watermark := range cp {
		buf.WriteString(watermark)
		buf.WriteByte('\n')
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp checkpoint file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write checkpoint file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync checkpoint file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close checkpoint file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace checkpoint file: %w", err)
	}
	return nil
}

// IsMessageID reports whether s looks like a decimal message id
// ("1712345678.123456" on Slack, a plain integer elsewhere).
func IsMessageID(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot && i > 0 && i < len(s)-1:
			dot = true
		default:
			return false
		}
	}
	return true
}

package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// maxLineBytes bounds a single JSONL record. Session logs with hundreds of
// rounds stay well under this.
const maxLineBytes = 1024 * 1024

// ReadAll parses newline-delimited JSON sessions from r. Blank lines are
// skipped. Sessions arriving without an id are assigned one.
func ReadAll(r io.Reader) ([]Session, error) {
	sessions, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return sessions, nil
}

// ReadFile parses one JSONL session log from disk.
func ReadFile(path string) ([]Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("session: open log: %w", err)
	}
	defer f.Close()

	sessions, err := readAll(f)
	if err != nil {
		return nil, fmt.Errorf("session: %s: %w", path, err)
	}
	return sessions, nil
}

func readAll(r io.Reader) ([]Session, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var sessions []Session
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}

		var s Session
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sessions = append(sessions, s)
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			// The scanner stopped on the line after the last good one
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		return nil, fmt.Errorf("read: %w", err)
	}
	return sessions, nil
}

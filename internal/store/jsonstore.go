package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/diamondstats/baseball-mcp/internal/table"
)

// JSONStore keeps recorded tables as JSON files under Root.
type JSONStore struct {
	Root string // e.g. "data/tables"
}

func NewJSONStore(root string) *JSONStore {
	return &JSONStore{Root: root}
}

func (s *JSONStore) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

func (s *JSONStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

func (s *JSONStore) WriteRaw(rel string, body []byte, pretty bool) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if pretty {
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			buf := &bytes.Buffer{}
			enc := json.NewEncoder(buf)
			enc.SetIndent("", "  ")
			_ = enc.Encode(v)
			body = buf.Bytes()
		}
	}

	return os.WriteFile(path, body, 0o644)
}

// ReadRaw returns the file body. A missing file yields an error matching
// os.ErrNotExist.
func (s *JSONStore) ReadRaw(rel string) ([]byte, error) {
	return os.ReadFile(s.Path(rel))
}

func (s *JSONStore) ReadTable(rel string) (*table.Table, error) {
	b, err := s.ReadRaw(rel)
	if err != nil {
		return nil, err
	}
	var t table.Table
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("decode %s: %w", rel, err)
	}
	return &t, nil
}

func (s *JSONStore) WriteTable(rel string, t *table.Table, pretty bool) error {
	b, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode %s: %w", rel, err)
	}
	return s.WriteRaw(rel, b, pretty)
}

// List returns the relative paths of recorded tables matching pattern, a
// slash-separated glob relative to Root, in sorted order.
func (s *JSONStore) List(pattern string) ([]string, error) {
	matches, err := filepath.Glob(s.Path(pattern))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(s.Root, m)
		if err != nil {
			return nil, err
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out, nil
}

// Keys for recorded tables. Every source query maps to exactly one file.

const RegisterKey = "people/register.json"

func BattingKey(season int) string  { return fmt.Sprintf("batting/%d.json", season) }
func PitchingKey(season int) string { return fmt.Sprintf("pitching/%d.json", season) }

func TeamBattingKey(season int) string { return fmt.Sprintf("team_batting/%d.json", season) }

func BattingRangeKey(start, end string) string {
	return fmt.Sprintf("batting_range/%s_%s.json", start, end)
}

func StatcastBatterKey(playerID int64, start, end string) string {
	return fmt.Sprintf("statcast/batter/%d/%s_%s.json", playerID, start, end)
}

// Kind names the table family of a key: its first path element.
func Kind(rel string) string {
	kind, _, _ := strings.Cut(rel, "/")
	return kind
}

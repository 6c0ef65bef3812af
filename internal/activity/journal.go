// Package activity keeps an append-only journal of edits made through the
// CLI, one JSON object per line.
package activity

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one journal line.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Graph     string    `json:"graph,omitempty"`
	Target    string    `json:"target,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Journal is a JSONL file of entries.
type Journal struct {
	path string
	now  func() time.Time
}

// Open returns the journal stored at path. The file is created on first write.
func Open(path string) *Journal {
	return &Journal{path: path, now: time.Now}
}

// Path returns the journal file location.
func (j *Journal) Path() string { return j.path }

// Record appends an entry stamped with the current time.
func (j *Journal) Record(action, graph, target, details string) error {
	return j.append(Entry{
		Timestamp: j.now().UTC(),
		Action:    action,
		Graph:     graph,
		Target:    target,
		Details:   details,
	})
}

func (j *Journal) append(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(e)
}

// Read returns the newest count entries, newest first. count <= 0 means all.
// Lines that do not decode are skipped.
func (j *Journal) Read(count int) ([]Entry, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if json.Unmarshal(sc.Bytes(), &e) == nil {
			entries = append(entries, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Timestamp.After(entries[b].Timestamp)
	})
	if count > 0 && len(entries) > count {
		entries = entries[:count]
	}
	return entries, nil
}

// Search returns up to count entries whose action, graph, target or details
// contain query, ignoring case.
func (j *Journal) Search(query string, count int) ([]Entry, error) {
	all, err := j.Read(0)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var results []Entry
	for _, e := range all {
		hay := strings.ToLower(strings.Join([]string{e.Action, e.Graph, e.Target, e.Details}, "\x00"))
		if strings.Contains(hay, q) {
			results = append(results, e)
			if count > 0 && len(results) >= count {
				break
			}
		}
	}
	return results, nil
}

// Clear removes the journal.
func (j *Journal) Clear() error {
	err := os.Remove(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Package activity records what the moneytrack CLI changed in a project:
// one CSV row per mutating command in logs/activity.csv.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Header is the CSV header of activity.csv.
const Header = "timestamp,action,entity_id,details,commit_hash"

const logFile = "logs/activity.csv"

const (
	colTime = iota
	colAction
	colEntityID
	colDetails
	colCommit
	numCols
)

// recordPrefix marks monthly record IDs, which carry no underscore.
const recordPrefix = "monthly-record-"

// idKinds are the prefixes the ledger gives entity IDs.
var idKinds = []string{"account", "alert", "budget", "exchange", "expense", "income"}

// Entry is one change made from the command line.
type Entry struct {
	Time     time.Time
	Action   string // command path below the root, e.g. "expense add"
	EntityID string
	Details  string
	Commit   string // snapshot commit, if the change was a snapshot
}

// Kind names the sort of entity the entry touched: the prefix of a
// ledger entity ID ("expense_3f1c..." is "expense", monthly record IDs
// are "record"), otherwise the action's command group.
func (e Entry) Kind() string {
	if strings.HasPrefix(e.EntityID, recordPrefix) {
		return "record"
	}
	if prefix, _, ok := strings.Cut(e.EntityID, "_"); ok && slices.Contains(idKinds, prefix) {
		return prefix
	}
	group, _, _ := strings.Cut(e.Action, " ")
	return group
}

func (e Entry) row() []string {
	row := make([]string, numCols)
	row[colTime] = e.Time.UTC().Format(time.RFC3339)
	row[colAction] = e.Action
	row[colEntityID] = e.EntityID
	row[colDetails] = e.Details
	row[colCommit] = e.Commit
	return row
}

func parseRow(rec []string) (Entry, error) {
	ts, err := time.Parse(time.RFC3339, rec[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", rec[colTime], err)
	}
	return Entry{
		Time:     ts,
		Action:   rec[colAction],
		EntityID: rec[colEntityID],
		Details:  rec[colDetails],
		Commit:   rec[colCommit],
	}, nil
}

// Filter selects entries. Zero fields match everything.
type Filter struct {
	// Action matches the exact action or a command group: "expense"
	// matches "expense add" and "expense delete".
	Action    string
	Kind      string
	EntityID  string
	Since     time.Time
	Snapshots bool // only entries that recorded a commit
	// Limit keeps the newest n matches; 0 keeps all.
	Limit int
}

// Match reports whether e passes every set field of f.
func (f Filter) Match(e Entry) bool {
	if f.Action != "" && e.Action != f.Action && !strings.HasPrefix(e.Action, f.Action+" ") {
		return false
	}
	if f.Kind != "" && e.Kind() != f.Kind {
		return false
	}
	if f.EntityID != "" && e.EntityID != f.EntityID {
		return false
	}
	if !f.Since.IsZero() && e.Time.Before(f.Since) {
		return false
	}
	return !f.Snapshots || e.Commit != ""
}

// Log is the activity log of one project directory.
type Log struct {
	path string
}

// Open returns the log of the project in dir. Nothing is created until
// the first Append.
func Open(dir string) *Log {
	return &Log{path: filepath.Join(dir, logFile)}
}

// Path is the location of activity.csv.
func (l *Log) Path() string { return l.path }

// Append adds entries, writing the header first when the file is new.
func (l *Log) Append(entries ...Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}
	_, statErr := os.Stat(l.path)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if errors.Is(statErr, os.ErrNotExist) {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for _, e := range entries {
		if err := cw.Write(e.row()); err != nil {
			return fmt.Errorf("writing %s entry: %w", e.Action, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Entries returns the whole log, oldest first. A project without a log
// has no entries.
func (l *Log) Entries() ([]Entry, error) {
	return l.Query(Filter{})
}

// Query returns the entries matching f, oldest first.
func (l *Log) Query(f Filter) ([]Entry, error) {
	file, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer file.Close()

	cr := csv.NewReader(file)
	cr.FieldsPerRecord = numCols
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading activity log header: %w", err)
	}
	if strings.Join(header, ",") != Header {
		return nil, fmt.Errorf("%s: unexpected header %q", l.path, strings.Join(header, ","))
	}

	var matched []Entry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading activity log: %w", err)
		}
		e, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if f.Match(e) {
			matched = append(matched, e)
		}
	}
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[len(matched)-f.Limit:]
	}
	return matched, nil
}

// ActionCount is how often one action appears.
type ActionCount struct {
	Action string
	Count  int
	Last   time.Time
}

// CountByAction tallies entries per action, most frequent first and then
// by action name.
func CountByAction(entries []Entry) []ActionCount {
	idx := map[string]int{}
	var counts []ActionCount
	for _, e := range entries {
		i, ok := idx[e.Action]
		if !ok {
			i = len(counts)
			idx[e.Action] = i
			counts = append(counts, ActionCount{Action: e.Action})
		}
		counts[i].Count++
		if e.Time.After(counts[i].Last) {
			counts[i].Last = e.Time
		}
	}
	slices.SortFunc(counts, func(a, b ActionCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Action, b.Action)
	})
	return counts
}

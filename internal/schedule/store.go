package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrDuplicate = errors.New("already in schedule")
	ErrNoMatch   = errors.New("no matching schedule entry")
	ErrAmbiguous = errors.New("matched more than one schedule entry")
)

// Entry is a standing weekly intent to attend a class: "spin at the city
// gym every Tuesday at 18:00". Time is optional; an empty Time matches any
// start time at the resolved occurrence.
type Entry struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Weekday  int    `json:"weekday"`
	Time     string `json:"time,omitempty"`
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("name required")
	}
	if strings.TrimSpace(e.Location) == "" {
		return fmt.Errorf("location required")
	}
	if e.Weekday < 1 || e.Weekday > 7 {
		return fmt.Errorf("weekday must be 1 (Monday) through 7 (Sunday)")
	}
	if e.Time != "" && !validTimeOfDay(e.Time) {
		return fmt.Errorf("time must be HH:MM (24-hour)")
	}
	return nil
}

// key is the normalized identity tuple used for duplicate detection.
func (e Entry) key() [4]string {
	return [4]string{
		strings.ToLower(strings.TrimSpace(e.Name)),
		strings.ToLower(strings.TrimSpace(e.Location)),
		fmt.Sprint(e.Weekday),
		e.Time,
	}
}

func validTimeOfDay(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hh := (int(s[0]-'0') * 10) + int(s[1]-'0')
	mm := (int(s[3]-'0') * 10) + int(s[4]-'0')
	return hh <= 23 && mm <= 59
}

// Store persists schedule entries as a JSON array in a single file. The
// file is read per operation and replaced atomically on every mutation;
// a single local process is the only writer.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted entries in insertion order. A missing file is
// an empty schedule, not an error.
func (s *Store) Load() ([]Entry, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse schedule %s: %w", s.path, err)
	}
	// The file may have been edited by hand; everything downstream
	// (occurrence resolution in particular) relies on valid entries.
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("schedule %s: entry %d: %w", s.path, i, err)
		}
	}
	return entries, nil
}

// Contains reports whether an entry with the same normalized identity
// tuple is already in the store.
func (s *Store) Contains(e Entry) (bool, error) {
	entries, err := s.Load()
	if err != nil {
		return false, err
	}
	for _, existing := range entries {
		if existing.key() == e.key() {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) save(entries []Entry) error {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".schedule-*")
	if err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write schedule: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write schedule: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write schedule: %w", err)
	}
	return nil
}

// Add appends the entry and persists. An entry with the same normalized
// (name, location, weekday, time) tuple fails with ErrDuplicate and leaves
// the store untouched.
func (s *Store) Add(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	entries, err := s.Load()
	if err != nil {
		return err
	}
	for _, existing := range entries {
		if existing.key() == e.key() {
			return fmt.Errorf("%s at %s on %s: %w",
				strings.TrimSpace(e.Name), strings.TrimSpace(e.Location), WeekdayName(e.Weekday), ErrDuplicate)
		}
	}
	return s.save(append(entries, e))
}

// Remove deletes the single entry matched by the given fields. Name is
// required and matched as a case-insensitive substring; location and time
// as case-insensitive equality and weekday as numeric equality when
// supplied (0 and "" mean unset). Zero matches fail with ErrNoMatch,
// several with ErrAmbiguous; either way the store is untouched.
func (s *Store) Remove(name, location string, weekday int, timeOfDay string) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, fmt.Errorf("name required")
	}
	entries, err := s.Load()
	if err != nil {
		return Entry{}, err
	}
	var kept []Entry
	var matches []Entry
	for _, e := range entries {
		if matchesRemove(e, name, location, weekday, timeOfDay) {
			matches = append(matches, e)
			continue
		}
		kept = append(kept, e)
	}

	switch len(matches) {
	case 0:
		return Entry{}, fmt.Errorf("%s: %w", describeQuery(name, location, weekday, timeOfDay), ErrNoMatch)
	case 1:
		if err := s.save(kept); err != nil {
			return Entry{}, err
		}
		return matches[0], nil
	default:
		return Entry{}, fmt.Errorf("%s: %w; narrow it down with a location and/or weekday",
			describeQuery(name, location, weekday, timeOfDay), ErrAmbiguous)
	}
}

func matchesRemove(e Entry, name, location string, weekday int, timeOfDay string) bool {
	if !strings.Contains(strings.ToLower(e.Name), strings.ToLower(name)) {
		return false
	}
	if location != "" && !strings.EqualFold(strings.TrimSpace(e.Location), strings.TrimSpace(location)) {
		return false
	}
	if weekday != 0 && e.Weekday != weekday {
		return false
	}
	if timeOfDay != "" && e.Time != timeOfDay {
		return false
	}
	return true
}

func describeQuery(name, location string, weekday int, timeOfDay string) string {
	parts := []string{fmt.Sprintf("%q", name)}
	if location != "" {
		parts = append(parts, fmt.Sprintf("at %q", location))
	}
	if weekday != 0 {
		parts = append(parts, fmt.Sprintf("on %s", WeekdayName(weekday)))
	}
	if timeOfDay != "" {
		parts = append(parts, fmt.Sprintf("at %s", timeOfDay))
	}
	return strings.Join(parts, " ")
}

// List returns the entries sorted ascending by weekday; entries on the same
// weekday keep their insertion order.
func (s *Store) List() ([]Entry, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Weekday < entries[j].Weekday
	})
	return entries, nil
}

package schedule

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "schedule.json"))
}

func readStoreFile(t *testing.T, s *Store) []byte {
	t.Helper()
	b, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	return b
}

var (
	spin    = Entry{Name: "spin", Location: "city", Weekday: 2, Time: "18:00"}
	yoga    = Entry{Name: "yoga", Location: "city", Weekday: 1, Time: "07:00"}
	boxSpin = Entry{Name: "spin", Location: "harbour", Weekday: 4, Time: "19:00"}
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	entries, err := testStore(t).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestLoad_RejectsHandEditedInvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "weekday zero", json: `[{"name":"spin","location":"city","weekday":0}]`},
		{name: "weekday eight", json: `[{"name":"spin","location":"city","weekday":8}]`},
		{name: "missing name", json: `[{"location":"city","weekday":2}]`},
		{name: "bad time", json: `[{"name":"spin","location":"city","weekday":2,"time":"6pm"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "schedule.json")
			if err := os.WriteFile(path, []byte(tt.json), 0o644); err != nil {
				t.Fatalf("write file: %v", err)
			}
			if _, err := NewStore(path).Load(); err == nil {
				t.Error("Load accepted an invalid entry")
			}
		})
	}
}

func TestContains(t *testing.T) {
	s := testStore(t)
	if err := s.Add(spin); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := s.Contains(Entry{Name: " SPIN ", Location: "City", Weekday: 2, Time: "18:00"})
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !got {
		t.Error("normalized duplicate not detected")
	}
	got, err = s.Contains(yoga)
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if got {
		t.Error("absent entry reported present")
	}
}

func TestAddThenList(t *testing.T) {
	s := testStore(t)
	if err := s.Add(spin); err != nil {
		t.Fatalf("Add: %v", err)
	}
	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0] != spin {
		t.Errorf("got %v, want exactly [%v]", entries, spin)
	}
}

func TestAdd_DuplicateLeavesStoreUnchanged(t *testing.T) {
	s := testStore(t)
	if err := s.Add(spin); err != nil {
		t.Fatalf("Add: %v", err)
	}
	before := readStoreFile(t, s)

	dup := Entry{Name: "  SPIN ", Location: "City", Weekday: 2, Time: "18:00"}
	err := s.Add(dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
	if after := readStoreFile(t, s); string(after) != string(before) {
		t.Errorf("store changed on failed add")
	}
}

func TestAdd_SameClassDifferentTimeAllowed(t *testing.T) {
	s := testStore(t)
	if err := s.Add(spin); err != nil {
		t.Fatalf("Add: %v", err)
	}
	other := spin
	other.Time = "19:00"
	if err := s.Add(other); err != nil {
		t.Errorf("Add with different time: %v", err)
	}
}

func TestAdd_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{name: "empty name", entry: Entry{Location: "city", Weekday: 2}},
		{name: "blank name", entry: Entry{Name: "   ", Location: "city", Weekday: 2}},
		{name: "empty location", entry: Entry{Name: "spin", Weekday: 2}},
		{name: "weekday zero", entry: Entry{Name: "spin", Location: "city", Weekday: 0}},
		{name: "weekday eight", entry: Entry{Name: "spin", Location: "city", Weekday: 8}},
		{name: "bad time", entry: Entry{Name: "spin", Location: "city", Weekday: 2, Time: "6pm"}},
		{name: "hour out of range", entry: Entry{Name: "spin", Location: "city", Weekday: 2, Time: "24:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := testStore(t).Add(tt.entry); err == nil {
				t.Errorf("Add(%v) succeeded, want error", tt.entry)
			}
		})
	}
}

func TestRemove_NoMatchLeavesStoreUnchanged(t *testing.T) {
	s := testStore(t)
	if err := s.Add(spin); err != nil {
		t.Fatalf("Add: %v", err)
	}
	before := readStoreFile(t, s)

	_, err := s.Remove("pilates", "", 0, "")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
	if after := readStoreFile(t, s); string(after) != string(before) {
		t.Errorf("store changed on failed remove")
	}
}

func TestRemove_SingleMatch(t *testing.T) {
	s := testStore(t)
	for _, e := range []Entry{spin, yoga} {
		if err := s.Add(e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	removed, err := s.Remove("yoga", "", 0, "")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed != yoga {
		t.Errorf("removed %v, want %v", removed, yoga)
	}
	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 || entries[0] != spin {
		t.Errorf("remaining = %v, want [%v]", entries, spin)
	}
}

func TestRemove_SubstringAndCaseInsensitive(t *testing.T) {
	s := testStore(t)
	if err := s.Add(Entry{Name: "body pump", Location: "city", Weekday: 3}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Remove("PUMP", "", 0, ""); err != nil {
		t.Errorf("substring remove failed: %v", err)
	}
}

func TestRemove_AmbiguousLeavesStoreUnchanged(t *testing.T) {
	s := testStore(t)
	for _, e := range []Entry{spin, boxSpin} {
		if err := s.Add(e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	before := readStoreFile(t, s)

	_, err := s.Remove("spin", "", 0, "")
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("err = %v, want ErrAmbiguous", err)
	}
	if after := readStoreFile(t, s); string(after) != string(before) {
		t.Errorf("store changed on ambiguous remove")
	}
}

func TestRemove_NarrowedByLocation(t *testing.T) {
	s := testStore(t)
	for _, e := range []Entry{spin, boxSpin} {
		if err := s.Add(e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	removed, err := s.Remove("spin", "Harbour", 0, "")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed != boxSpin {
		t.Errorf("removed %v, want %v", removed, boxSpin)
	}
}

func TestRemove_NarrowedByWeekday(t *testing.T) {
	s := testStore(t)
	for _, e := range []Entry{spin, boxSpin} {
		if err := s.Add(e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	removed, err := s.Remove("spin", "", 2, "")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed != spin {
		t.Errorf("removed %v, want %v", removed, spin)
	}
}

func TestList_SortedByWeekday(t *testing.T) {
	s := testStore(t)
	for _, e := range []Entry{boxSpin, spin, yoga} {
		if err := s.Add(e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Weekday > entries[i].Weekday {
			t.Fatalf("not sorted by weekday: %v", entries)
		}
	}
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	if err := NewStore(path).Add(spin); err != nil {
		t.Fatalf("Add: %v", err)
	}
	entries, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 1 || entries[0] != spin {
		t.Errorf("got %v after reopen, want [%v]", entries, spin)
	}
}

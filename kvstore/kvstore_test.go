package kvstore

import (
	"path/filepath"
	"reflect"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMissingSlotIsEmpty(t *testing.T) {
	s := testStore(t)

	values, err := s.GetList("nothing_here")
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("expected empty list, got %v", values)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := testStore(t)

	want := []string{"one", "two", "three"}
	if err := s.SetList("slot_a", want); err != nil {
		t.Fatalf("SetList failed: %v", err)
	}

	got, err := s.GetList("slot_a")
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSetListOverwrites(t *testing.T) {
	s := testStore(t)

	s.SetList("slot_a", []string{"old-1", "old-2", "old-3"})
	if err := s.SetList("slot_a", []string{"new"}); err != nil {
		t.Fatalf("SetList failed: %v", err)
	}

	got, err := s.GetList("slot_a")
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if len(got) != 1 || got[0] != "new" {
		t.Errorf("expected full overwrite, got %v", got)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	s := testStore(t)

	s.SetList("slot_a", []string{"a"})
	s.SetList("slot_b", []string{"b1", "b2"})
	s.SetList("slot_a", nil)

	a, _ := s.GetList("slot_a")
	b, _ := s.GetList("slot_b")
	if len(a) != 0 {
		t.Errorf("expected slot_a cleared, got %v", a)
	}
	if len(b) != 2 {
		t.Errorf("expected slot_b untouched, got %v", b)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.SetList("slot_a", []string{"kept"})
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	got, err := s2.GetList("slot_a")
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if len(got) != 1 || got[0] != "kept" {
		t.Errorf("expected [kept], got %v", got)
	}
}

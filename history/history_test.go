package history

import (
	"fmt"
	"path/filepath"
	"testing"

	"worddeck/kvstore"
)

func testKV(t *testing.T) *kvstore.Store {
	t.Helper()
	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening kvstore: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestAddOrdersMostRecentFirst(t *testing.T) {
	store, _ := Load(testKV(t))

	store.Add("cat")
	store.Add("dog")
	store.Add("bird")

	words := store.Words()
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	if words[0] != "bird" || words[2] != "cat" {
		t.Errorf("expected [bird dog cat], got %v", words)
	}
}

func TestAddDeduplicates(t *testing.T) {
	store, _ := Load(testKV(t))

	store.Add("cat")
	store.Add("dog")
	store.Add("Cat")

	words := store.Words()
	if len(words) != 2 {
		t.Fatalf("expected 2 words after dedupe, got %v", words)
	}
	if words[0] != "Cat" {
		t.Errorf("expected repeat to move to front, got %v", words)
	}
}

func TestAddIgnoresBlank(t *testing.T) {
	store, _ := Load(testKV(t))

	store.Add("   ")
	if store.Len() != 0 {
		t.Errorf("expected blank lookups ignored, got %v", store.Words())
	}
}

func TestAddCapsLength(t *testing.T) {
	store, _ := Load(testKV(t))

	for i := 0; i < MaxWords+10; i++ {
		store.Add(fmt.Sprintf("word%d", i))
	}
	if store.Len() != MaxWords {
		t.Errorf("expected %d words, got %d", MaxWords, store.Len())
	}
}

func TestPersistsAcrossLoad(t *testing.T) {
	kv := testKV(t)
	store, _ := Load(kv)
	store.Add("cat")
	store.Add("dog")

	reloaded, err := Load(kv)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	words := reloaded.Words()
	if len(words) != 2 || words[0] != "dog" {
		t.Errorf("expected [dog cat] after reload, got %v", words)
	}
}

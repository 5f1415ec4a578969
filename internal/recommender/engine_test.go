package recommender

import (
	"errors"
	"sync"
	"testing"

	"prep-pilot/internal/domain/catalog"
)

type fakeLoader struct {
	mu    sync.Mutex
	rows  []catalog.Row
	err   error
	loads int
}

func (f *fakeLoader) Load() ([]catalog.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return f.rows, f.err
}

func TestEngine_SnapshotFitsOnDemand(t *testing.T) {
	loader := &fakeLoader{rows: testRows()}
	e := NewEngine(loader, 0, nil)

	if e.Ready() {
		t.Fatalf("engine must start unfit")
	}
	snap, err := e.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap == nil || len(snap.Rows) != len(testRows()) {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if !e.Ready() {
		t.Fatalf("engine must be ready after a fit")
	}

	// Second call reuses the published snapshot.
	again, err := e.Snapshot()
	if err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	if again != snap {
		t.Fatalf("expected the same snapshot pointer")
	}
	if loader.loads != 1 {
		t.Fatalf("expected a single load, got %d", loader.loads)
	}
}

func TestEngine_LoadErrorSurfaces(t *testing.T) {
	wantErr := errors.New("disk gone")
	e := NewEngine(&fakeLoader{err: wantErr}, 0, nil)
	if _, err := e.Snapshot(); !errors.Is(err, wantErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	if e.Ready() {
		t.Fatalf("engine must stay unfit after a failed load")
	}
}

func TestEngine_EmptyCatalog(t *testing.T) {
	e := NewEngine(&fakeLoader{}, 0, nil)
	if _, err := e.Snapshot(); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestEngine_RefitSwapsSnapshot(t *testing.T) {
	loader := &fakeLoader{rows: testRows()}
	e := NewEngine(loader, 0, nil)

	first, err := e.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	loader.mu.Lock()
	loader.rows = append(append([]catalog.Row(nil), loader.rows...), catalog.Row{
		Title: "Valid Anagram", Difficulty: catalog.DifficultyEasy, Topics: []string{"string"},
	})
	loader.mu.Unlock()

	if err := e.Fit(); err != nil {
		t.Fatalf("refit: %v", err)
	}
	second, _ := e.Snapshot()
	if second == first {
		t.Fatalf("refit must publish a new snapshot")
	}
	if len(second.Rows) != len(first.Rows)+1 {
		t.Fatalf("expected refit to pick up the appended row")
	}
	// The old snapshot is untouched for readers still holding it.
	if len(first.Rows) != len(testRows()) {
		t.Fatalf("old snapshot mutated")
	}
}

func TestEngine_ConcurrentSnapshot(t *testing.T) {
	loader := &fakeLoader{rows: testRows()}
	e := NewEngine(loader, 0, nil)

	var wg sync.WaitGroup
	snaps := make([]*Snapshot, 8)
	for i := range snaps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := e.Snapshot()
			if err != nil {
				t.Errorf("snapshot: %v", err)
				return
			}
			snaps[i] = snap
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(snaps); i++ {
		if snaps[i] != snaps[0] {
			t.Fatalf("concurrent callers saw different snapshots")
		}
	}
	if loader.loads != 1 {
		t.Fatalf("expected one load under contention, got %d", loader.loads)
	}
}

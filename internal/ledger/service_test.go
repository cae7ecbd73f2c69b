package ledger

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/coinop-logan/personal-finance-display/internal/core"
	"github.com/coinop-logan/personal-finance-display/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(store.NewJSONStore(filepath.Join(t.TempDir(), "data.json")), nil)
}

func TestAppendAssignsIncreasingIDs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dates := []string{"2024-03-01", "2024-01-01", "2024-02-01"}
	for i, date := range dates {
		e, err := svc.Append(ctx, core.Entry{Date: date})
		if err != nil {
			t.Fatalf("append %q: %v", date, err)
		}
		if e.ID != i+1 {
			t.Fatalf("append %q: id=%d, want %d", date, e.ID, i+1)
		}
	}
}

func TestAppendKeepsDateOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, date := range []string{"2024-03-01", "2024-01-01", "2024-02-01"} {
		if _, err := svc.Append(ctx, core.Entry{Date: date}); err != nil {
			t.Fatalf("append %q: %v", date, err)
		}
	}

	c, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2024-01-01", "2024-02-01", "2024-03-01"}
	for i, date := range want {
		if c[i].Date != date {
			t.Fatalf("position %d: date=%q, want %q (%v)", i, c[i].Date, date, c)
		}
	}
}

func TestAppendAfterDeletingMaxReusesID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		if _, err := svc.Append(ctx, core.Entry{Date: date}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := svc.Delete(ctx, 3); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Next id is max of current contents + 1, so 3 comes back.
	e, err := svc.Append(ctx, core.Entry{Date: "2024-01-04"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if e.ID != 3 {
		t.Fatalf("id=%d, want reused id 3", e.ID)
	}
}

func TestDeleteUnknownIDLeavesCollectionUnchanged(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Append(ctx, core.Entry{Date: "2024-01-01"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := svc.Delete(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}

	c, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(c) != 1 {
		t.Fatalf("collection changed by failed delete: %v", c)
	}
}

type recordingPublisher struct {
	actions []string
}

func (p *recordingPublisher) PublishEntryEvent(_ context.Context, _ int, action, _ string) error {
	p.actions = append(p.actions, action)
	return nil
}

func TestMutationsPublishEvents(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(store.NewJSONStore(filepath.Join(t.TempDir(), "data.json")), pub)
	ctx := context.Background()

	e, err := svc.Append(ctx, core.Entry{Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(pub.actions) != 2 || pub.actions[0] != "entry.created" || pub.actions[1] != "entry.deleted" {
		t.Fatalf("published actions: %v", pub.actions)
	}
}

func TestConcurrentAppendsLoseNoUpdates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(day int) {
			defer wg.Done()
			date := fmt.Sprintf("2024-01-%02d", day+1)
			if _, err := svc.Append(ctx, core.Entry{Date: date}); err != nil {
				t.Errorf("append %s: %v", date, err)
			}
		}(i)
	}
	wg.Wait()

	c, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(c) != writers {
		t.Fatalf("len=%d, want %d: a concurrent append was lost", len(c), writers)
	}
	seen := make(map[int]bool, writers)
	for _, e := range c {
		if seen[e.ID] {
			t.Fatalf("duplicate id %d in %v", e.ID, c)
		}
		seen[e.ID] = true
	}
}

func TestConcurrentAppendsAndDeletes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	const seeded = 8
	for i := 0; i < seeded; i++ {
		if _, err := svc.Append(ctx, core.Entry{Date: "2024-01-01"}); err != nil {
			t.Fatalf("seed append: %v", err)
		}
	}

	var wg sync.WaitGroup
	for id := 1; id <= seeded/2; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := svc.Delete(ctx, id); err != nil {
				t.Errorf("delete %d: %v", id, err)
			}
		}(id)
	}
	for i := 0; i < seeded/2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Append(ctx, core.Entry{Date: "2024-02-01"}); err != nil {
				t.Errorf("append: %v", err)
			}
		}()
	}
	wg.Wait()

	c, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(c) != seeded {
		t.Fatalf("len=%d, want %d: interleaved mutations lost an update", len(c), seeded)
	}
	seen := make(map[int]bool, len(c))
	for _, e := range c {
		if seen[e.ID] {
			t.Fatalf("duplicate id %d in %v", e.ID, c)
		}
		seen[e.ID] = true
		if e.ID >= 1 && e.ID <= seeded/2 && e.Date == "2024-01-01" {
			t.Fatalf("entry %d should have been deleted: %v", e.ID, c)
		}
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestFetchWithRetryStopsAtFirstSuccess(t *testing.T) {
	calls := 0
	items, err := fetchWithRetry(context.Background(), instantPolicy(3, nil), func(context.Context) ([]int, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("transient")
		}
		return []int{7}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if len(items) != 1 || items[0] != 7 {
		t.Fatalf("items = %v", items)
	}
}

func TestFetchWithRetryReturnsLastError(t *testing.T) {
	calls := 0
	_, err := fetchWithRetry(context.Background(), instantPolicy(2, nil), func(context.Context) ([]int, error) {
		calls++
		return nil, fmt.Errorf("attempt %d", calls)
	})
	if calls != 3 {
		t.Fatalf("calls = %d, want 1+2 retries", calls)
	}
	if err == nil || err.Error() != "attempt 3" {
		t.Fatalf("err = %v, want the last attempt's error", err)
	}
}

func TestFetchWithRetryAbortsOnCancelledPause(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := FetchPolicy{
		Retries: 5,
		Delay:   time.Hour,
		Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}
	calls := 0
	_, err := fetchWithRetry(ctx, policy, func(context.Context) ([]int, error) {
		calls++
		return nil, errors.New("down")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want no attempt after cancellation", calls)
	}
}

func TestCollectionCancelLoadRestoresPhase(t *testing.T) {
	col := newCollection(func(n int) string { return "x" })
	col.finishOK([]int{1})
	col.beginLoad()
	if phase, _ := col.state(); phase != PhaseLoading {
		t.Fatalf("phase = %v", phase)
	}
	col.cancelLoad()
	if phase, _ := col.state(); phase != PhaseReady {
		t.Fatalf("phase after cancelLoad = %v, want ready", phase)
	}
	if got := col.snapshot(); len(got) != 1 {
		t.Fatalf("items = %v", got)
	}
}

func TestCollectionReplaceAndRemoveByID(t *testing.T) {
	type row struct{ ID, Name string }
	col := newCollection(func(r row) string { return r.ID })
	col.finishOK([]row{{"a", "one"}, {"b", "two"}})

	col.replace(row{"b", "TWO"})
	if r, ok := col.find("b"); !ok || r.Name != "TWO" {
		t.Fatalf("replace failed: %+v %v", r, ok)
	}

	col.replace(row{"missing", "ghost"})
	if len(col.snapshot()) != 2 {
		t.Fatal("replace of unknown id must not append")
	}

	col.remove("a")
	items := col.snapshot()
	if len(items) != 1 || items[0].ID != "b" {
		t.Fatalf("remove failed: %+v", items)
	}
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type healthSnapshot struct {
	Service   string `json:"service"`
	Reachable bool   `json:"reachable"`
}

func TestTypedCache_RoundTrip(t *testing.T) {
	mem := NewCacheWithTTL(time.Hour)
	defer mem.Close()
	c := NewTypedCache[healthSnapshot](mem, time.Hour)
	ctx := context.Background()

	if err := c.Set(ctx, "health:leave", &healthSnapshot{Service: "leave", Reachable: true}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := c.Get(ctx, "health:leave")
	if !ok {
		t.Fatal("Get missed after Set")
	}
	if got.Service != "leave" || !got.Reachable {
		t.Errorf("Get = %+v", got)
	}

	if _, ok := c.Get(ctx, "health:core"); ok {
		t.Error("Get hit for never-set key")
	}
}

func TestTypedCache_GetOrSet(t *testing.T) {
	mem := NewCacheWithTTL(time.Hour)
	defer mem.Close()
	c := NewTypedCache[healthSnapshot](mem, time.Hour)
	ctx := context.Background()

	calls := 0
	fetch := func() (*healthSnapshot, error) {
		calls++
		return &healthSnapshot{Service: "project", Reachable: true}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrSet(ctx, "health:project", fetch)
		if err != nil {
			t.Fatalf("GetOrSet: %v", err)
		}
		if got.Service != "project" {
			t.Errorf("got %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
}

func TestTypedCache_GetOrSetError(t *testing.T) {
	mem := NewCacheWithTTL(time.Hour)
	defer mem.Close()
	c := NewTypedCache[healthSnapshot](mem, time.Hour)

	wantErr := errors.New("service down")
	_, err := c.GetOrSet(context.Background(), "health:core", func() (*healthSnapshot, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

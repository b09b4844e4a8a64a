package engine

import (
	"testing"
	"time"

	"github.com/dailydrive/dailydrive/store"
)

func TestNextFireTimes(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 8, 30, 0, 0, loc)
	schedules := []store.Schedule{
		{Hour: 6, Minute: 0},
		{Hour: 17, Minute: 30},
	}
	times := NextFireTimes(now, schedules, loc)
	if len(times) != 2 {
		t.Fatalf("expected 2 times, got %d", len(times))
	}
	// 06:00 has passed, rolls to tomorrow
	if times[0].Day() != 11 || times[0].Hour() != 6 {
		t.Errorf("expected tomorrow 06:00, got %s", times[0])
	}
	// 17:30 is still today
	if times[1].Day() != 10 || times[1].Hour() != 17 || times[1].Minute() != 30 {
		t.Errorf("expected today 17:30, got %s", times[1])
	}
}

func TestNextFireTimesExact(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, loc)
	times := NextFireTimes(now, []store.Schedule{{Hour: 6, Minute: 0}}, loc)
	// exactly at the firing time counts as today
	if times[0].Day() != 10 {
		t.Errorf("expected today, got %s", times[0])
	}
}

func TestNextFireTimesRollover(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 23, 59, 30, 0, loc)
	times := NextFireTimes(now, []store.Schedule{{Hour: 23, Minute: 59}}, loc)
	if times[0].Day() != 11 {
		t.Errorf("expected tomorrow, got %s", times[0])
	}
}

func TestNextFireTimesOrder(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	schedules := []store.Schedule{
		{Hour: 18, Minute: 0},
		{Hour: 6, Minute: 0},
		{Hour: 6, Minute: 0},
	}
	times := NextFireTimes(now, schedules, loc)
	// results parallel the input, duplicates included
	if times[0].Hour() != 18 || times[1].Hour() != 6 || times[2].Hour() != 6 {
		t.Errorf("times should follow input order")
	}
	if !times[1].Equal(times[2]) {
		t.Errorf("duplicate schedules should yield equal times")
	}
}

func TestScopeKey(t *testing.T) {
	if scopeKey(nil) != "global" {
		t.Errorf("nil user should be global scope")
	}
	id := uint(42)
	if scopeKey(&id) != "user:42" {
		t.Errorf("bad user scope key: %s", scopeKey(&id))
	}
}

func TestAcquireRelease(t *testing.T) {
	e := &Engine{
		inflight: make(map[string]bool),
		lastRuns: make(map[string]RunResult),
	}
	if !e.acquire("global") {
		t.Fatalf("first acquire should succeed")
	}
	if e.acquire("global") {
		t.Errorf("second acquire should fail")
	}
	if !e.acquire("user:1") {
		t.Errorf("other scope should be independent")
	}
	e.release("global")
	if !e.acquire("global") {
		t.Errorf("acquire after release should succeed")
	}
}

func TestCollectionName(t *testing.T) {
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	p := Profile{Prefix: "Daily Drive"}
	if name := collectionName(p, now); name != "Daily Drive - 2026-03-10" {
		t.Errorf("bad name: %s", name)
	}
	p.Suffix = "alice"
	if name := collectionName(p, now); name != "Daily Drive - alice - 2026-03-10" {
		t.Errorf("bad name: %s", name)
	}
}

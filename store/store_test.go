package store

import (
	"testing"

	"github.com/dailydrive/dailydrive/config"
)

func testStore(t *testing.T) *Store {
	config, err := config.TestConfig()
	if err != nil {
		t.Fatalf("TestConfig %s", err)
	}
	s := NewStore(config)
	err = s.Open()
	if err != nil {
		t.Fatalf("Open %s", err)
	}
	return s
}

func TestSeededDefaults(t *testing.T) {
	s := testStore(t)
	defer s.Close()

	if !s.Enabled() {
		t.Errorf("should be enabled by default")
	}
	if s.Setting(KeyPlaylistPrefix, "") != DefaultPrefix {
		t.Errorf("prefix default not seeded")
	}
	if s.Setting(KeyMaxEpisodes, "") != "3" {
		t.Errorf("max episodes default not seeded")
	}
	schedules := s.Schedules()
	if len(schedules) != 1 || schedules[0] != DefaultSchedule {
		t.Errorf("bad default schedules: %v", schedules)
	}
}

func TestMaxEpisodesSetting(t *testing.T) {
	s := testStore(t)
	defer s.Close()

	if n := s.MaxEpisodes(); n != 3 {
		t.Errorf("expected seeded 3, got %d", n)
	}

	err := s.SaveSettings(map[string]string{KeyMaxEpisodes: "5"})
	if err != nil {
		t.Fatalf("save %s", err)
	}
	if n := s.MaxEpisodes(); n != 5 {
		t.Errorf("runtime value should win, got %d", n)
	}

	err = s.SaveSettings(map[string]string{KeyMaxEpisodes: "-1"})
	if err == nil {
		t.Errorf("negative value should be rejected")
	}
	if n := s.MaxEpisodes(); n != 5 {
		t.Errorf("rejected write should not land, got %d", n)
	}
}

func TestSaveSchedules(t *testing.T) {
	s := testStore(t)
	defer s.Close()

	want := []Schedule{{Hour: 7, Minute: 15}, {Hour: 18, Minute: 0}}
	if err := s.SaveSchedules(want); err != nil {
		t.Fatalf("save %s", err)
	}
	got := s.Schedules()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("bad schedules: %v", got)
	}

	if err := s.SaveSchedules([]Schedule{{Hour: 25, Minute: 0}}); err == nil {
		t.Errorf("bad hour should be rejected")
	}
}

package store

import (
	"errors"
	"testing"
)

func TestValidateSchedules(t *testing.T) {
	err := validateSchedules([]Schedule{{Hour: 6, Minute: 0}})
	if err != nil {
		t.Errorf("valid schedule rejected: %s", err)
	}

	err = validateSchedules(nil)
	if err == nil {
		t.Errorf("empty schedule list should be rejected")
	}

	err = validateSchedules([]Schedule{{Hour: 24, Minute: 0}})
	var invalid *InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidError, got %v", err)
	}
	if _, ok := invalid.Fields["schedules[0].hour"]; !ok {
		t.Errorf("expected hour field error, got %v", invalid.Fields)
	}

	err = validateSchedules([]Schedule{{Hour: 6, Minute: 60}})
	if err == nil {
		t.Errorf("minute 60 should be rejected")
	}
}

func TestValidateSettings(t *testing.T) {
	err := validateSettings(map[string]string{
		KeyMusicCount:     "25",
		KeyDiscoveryRatio: "50",
	})
	if err != nil {
		t.Errorf("valid settings rejected: %s", err)
	}

	err = validateSettings(map[string]string{"bogus": "1"})
	if err == nil {
		t.Errorf("unknown key should be rejected")
	}

	err = validateSettings(map[string]string{KeyDiscoveryRatio: "150"})
	if err == nil {
		t.Errorf("ratio over 100 should be rejected")
	}

	err = validateSettings(map[string]string{KeyMusicCount: "-1"})
	if err == nil {
		t.Errorf("negative count should be rejected")
	}

	err = validateSettings(map[string]string{KeyEnabled: "maybe"})
	if err == nil {
		t.Errorf("non-boolean enabled should be rejected")
	}
}

func TestValidateUser(t *testing.T) {
	u := &User{Name: "alice"}
	applyUserDefaults(u)
	if err := validateUser(u); err != nil {
		t.Errorf("valid user rejected: %s", err)
	}
	if u.PlaylistPrefix != DefaultPrefix {
		t.Errorf("prefix default not applied")
	}
	if u.MusicCount != DefaultMusicCount {
		t.Errorf("music count default not applied")
	}

	if err := validateUser(&User{}); err == nil {
		t.Errorf("user without name should be rejected")
	}

	bad := &User{Name: "bob", DiscoveryRatio: 200}
	applyUserDefaults(bad)
	if err := validateUser(bad); err == nil {
		t.Errorf("out-of-range ratio should be rejected")
	}
}

func TestUserLists(t *testing.T) {
	u := User{
		MusicLibraries: `["1","5"]`,
		PodcastIDs:     `[2,3]`,
	}
	libraries := u.Libraries()
	if len(libraries) != 2 || libraries[0] != "1" || libraries[1] != "5" {
		t.Errorf("bad libraries: %v", libraries)
	}
	podcasts := u.Podcasts()
	if len(podcasts) != 2 || podcasts[0] != 2 || podcasts[1] != 3 {
		t.Errorf("bad podcasts: %v", podcasts)
	}

	empty := User{}
	if empty.Libraries() != nil {
		t.Errorf("empty libraries should be nil")
	}
}

// Copyright (C) 2026 The DailyDrive Authors.
//
// This file is part of DailyDrive.
//
// DailyDrive is free software: you can redistribute it and/or modify it under
// the terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// DailyDrive is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public
// License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with DailyDrive.  If not, see <https://www.gnu.org/licenses/>.

package store

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/dailydrive/dailydrive/config"
	"gorm.io/gorm"
)

// Setting keys understood by the engine. The schedule list is one
// serialized value; updates always replace the whole set.
const (
	KeyEnabled             = "enabled"
	KeySchedules           = "schedules"
	KeyPlaylistPrefix      = "playlist_prefix"
	KeyPlaylistDescription = "playlist_description"
	KeyMusicCount          = "music_count"
	KeyPodcastCount        = "podcast_count"
	KeyDiscoveryRatio      = "discovery_ratio"
	KeyKeepDays            = "keep_days"
	KeyMusicLibraries      = "music_libraries"
	KeyRecentOnly          = "podcast_recent_only"
	KeyUnplayedOnly        = "podcast_unplayed_only"
	KeyMaxEpisodes         = "podcast_max_episodes"
)

const (
	DefaultPrefix         = "Daily Drive"
	DefaultMusicCount     = 20
	DefaultPodcastCount   = 3
	DefaultDiscoveryRatio = 40
	DefaultKeepDays       = 7
)

var DefaultSchedule = Schedule{Hour: 6, Minute: 0}

type Store struct {
	config *config.Config
	db     *gorm.DB
}

func NewStore(config *config.Config) *Store {
	return &Store{
		config: config,
	}
}

func (s *Store) Open() error {
	return s.openDB()
}

func (s *Store) Close() {
	s.closeDB()
}

func (s *Store) seedDefaults() {
	defaults := map[string]string{
		KeyEnabled:             "true",
		KeySchedules:           encodeList([]Schedule{DefaultSchedule}),
		KeyPlaylistPrefix:      DefaultPrefix,
		KeyPlaylistDescription: "",
		KeyMusicCount:          "20",
		KeyPodcastCount:        "3",
		KeyDiscoveryRatio:      "40",
		KeyKeepDays:            "7",
		KeyMusicLibraries:      "[]",
		KeyRecentOnly:          "true",
		KeyUnplayedOnly:        "true",
		KeyMaxEpisodes:         "3",
	}
	for k, v := range defaults {
		if _, ok := s.getSetting(k); !ok {
			s.putSetting(k, v)
		}
	}
}

func (s *Store) Setting(key, missing string) string {
	if v, ok := s.getSetting(key); ok {
		return v
	}
	return missing
}

func (s *Store) Settings() map[string]string {
	return s.allSettings()
}

// SaveSettings validates and applies a partial settings update. Unknown
// keys are rejected along with out-of-range values so a bad write never
// lands, per the configuration error contract.
func (s *Store) SaveSettings(values map[string]string) error {
	if err := validateSettings(values); err != nil {
		return err
	}
	for k, v := range values {
		if err := s.putSetting(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Enabled() bool {
	return s.Setting(KeyEnabled, "true") == "true"
}

// MaxEpisodes is the per-subscription retention limit; editable at runtime
// as a setting, falling back to the configured default. Zero keeps all.
func (s *Store) MaxEpisodes() int {
	v := s.Setting(KeyMaxEpisodes, "")
	if v == "" {
		return s.config.Podcast.MaxEpisodes
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return s.config.Podcast.MaxEpisodes
	}
	return n
}

// Schedules returns the configured daily firing times, falling back to the
// 06:00 default when the stored list is missing or malformed.
func (s *Store) Schedules() []Schedule {
	raw := s.Setting(KeySchedules, "")
	var schedules []Schedule
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &schedules); err != nil {
			schedules = nil
		}
	}
	if len(schedules) == 0 {
		schedules = []Schedule{DefaultSchedule}
	}
	return schedules
}

// SaveSchedules replaces the schedule set as a whole.
func (s *Store) SaveSchedules(schedules []Schedule) error {
	if err := validateSchedules(schedules); err != nil {
		return err
	}
	return s.putSetting(KeySchedules, encodeList(schedules))
}

func (s *Store) Users() []User {
	return s.allUsers()
}

func (s *Store) EnabledUsers() []User {
	var enabled []User
	for _, u := range s.allUsers() {
		if u.Enabled {
			enabled = append(enabled, u)
		}
	}
	return enabled
}

func (s *Store) LookupUser(id uint) (User, error) {
	u := s.findUser(id)
	if u == nil {
		return User{}, errors.New("user not found")
	}
	return *u, nil
}

func (s *Store) CreateUser(u *User) error {
	applyUserDefaults(u)
	if err := validateUser(u); err != nil {
		return err
	}
	return s.createUser(u)
}

func (s *Store) UpdateUser(u *User) error {
	if err := validateUser(u); err != nil {
		return err
	}
	return s.saveUser(u)
}

func (s *Store) DeleteUser(id uint) error {
	u := s.findUser(id)
	if u == nil {
		return errors.New("user not found")
	}
	return s.deleteUser(u)
}

func (s *Store) ToggleUser(id uint, enabled bool) error {
	u := s.findUser(id)
	if u == nil {
		return errors.New("user not found")
	}
	u.Enabled = enabled
	return s.saveUser(u)
}

func (s *Store) AddHistory(h *History) error {
	return s.createHistory(h)
}

func (s *Store) History() []History {
	return s.recentHistory(s.config.Schedule.HistoryLimit)
}

// StaleHistory returns the history rows for a scope older than its keep
// window; callers delete the remote collections before removing the rows.
func (s *Store) StaleHistory(userID *uint, keepDays int) []History {
	cutoff := time.Now().AddDate(0, 0, -keepDays)
	return s.historyBefore(userID, cutoff)
}

func (s *Store) DeleteHistory(h *History) error {
	return s.deleteHistory(h)
}

func applyUserDefaults(u *User) {
	if u.PlaylistPrefix == "" {
		u.PlaylistPrefix = DefaultPrefix
	}
	if u.MusicCount == 0 {
		u.MusicCount = DefaultMusicCount
	}
	if u.PodcastCount == 0 {
		u.PodcastCount = DefaultPodcastCount
	}
	if u.KeepDays == 0 {
		u.KeepDays = DefaultKeepDays
	}
	if u.MusicLibraries == "" {
		u.MusicLibraries = "[]"
	}
	if u.PodcastIDs == "" {
		u.PodcastIDs = "[]"
	}
}

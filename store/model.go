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

	"github.com/dailydrive/dailydrive/lib/gorm"
)

// Schedule is a daily firing time. The full schedule list is stored as a
// single serialized setting and always replaced as a whole.
type Schedule struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// User is a generation profile. List-valued fields are serialized JSON so a
// profile stays a single row.
type User struct {
	gorm.Model
	Name                string `json:"name"`
	MediaUser           string `json:"mediaUser"`
	MediaToken          string `json:"-"`
	Enabled             bool   `json:"enabled"`
	MusicLibraries      string `json:"musicLibraries"` // JSON list of library keys
	PodcastIDs          string `json:"podcastIds"`     // JSON list of subscription ids
	MusicCount          int    `json:"musicCount"`
	PodcastCount        int    `json:"podcastCount"`
	DiscoveryRatio      int    `json:"discoveryRatio"`
	KeepDays            int    `json:"keepDays"`
	PlaylistPrefix      string `json:"playlistPrefix"`
	PlaylistDescription string `json:"playlistDescription"`
	CoverPath           string `json:"coverPath"`
}

func (u User) Libraries() []string {
	return decodeStringList(u.MusicLibraries)
}

func (u User) Podcasts() []uint {
	return decodeUintList(u.PodcastIDs)
}

// History records one generated collection. Append-only; rows are pruned
// along with their remote collections once past the profile's keep window.
type History struct {
	gorm.Model
	RunID        string `json:"runId"`
	Name         string `json:"name"`
	UserID       *uint  `gorm:"index" json:"userId"` // nil is the global scope
	MusicCount   int    `json:"musicCount"`
	PodcastCount int    `json:"podcastCount"`
	TrackCount   int    `json:"trackCount"`
}

func decodeStringList(s string) []string {
	var list []string
	if s != "" {
		json.Unmarshal([]byte(s), &list)
	}
	return list
}

func decodeUintList(s string) []uint {
	var list []uint
	if s != "" {
		json.Unmarshal([]byte(s), &list)
	}
	return list
}

func encodeList(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

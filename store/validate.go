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
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// InvalidError names each rejected field so configuration writes fail with
// a usable reason instead of landing and breaking a later run.
type InvalidError struct {
	Fields map[string]string
}

func (e *InvalidError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("invalid configuration:")
	for _, k := range keys {
		fmt.Fprintf(&b, " %s: %s;", k, e.Fields[k])
	}
	return strings.TrimSuffix(b.String(), ";")
}

func invalid(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &InvalidError{Fields: fields}
}

func validateSchedules(schedules []Schedule) error {
	fields := make(map[string]string)
	if len(schedules) == 0 {
		fields[KeySchedules] = "at least one schedule required"
	}
	for i, s := range schedules {
		if s.Hour < 0 || s.Hour > 23 {
			fields[fmt.Sprintf("schedules[%d].hour", i)] = "must be 0-23"
		}
		if s.Minute < 0 || s.Minute > 59 {
			fields[fmt.Sprintf("schedules[%d].minute", i)] = "must be 0-59"
		}
	}
	return invalid(fields)
}

func validateSettings(values map[string]string) error {
	fields := make(map[string]string)
	for k, v := range values {
		switch k {
		case KeyEnabled, KeyRecentOnly, KeyUnplayedOnly:
			if v != "true" && v != "false" {
				fields[k] = "must be true or false"
			}
		case KeyMusicCount, KeyPodcastCount, KeyMaxEpisodes:
			if n, err := strconv.Atoi(v); err != nil || n < 0 {
				fields[k] = "must be a non-negative integer"
			}
		case KeyDiscoveryRatio:
			if n, err := strconv.Atoi(v); err != nil || n < 0 || n > 100 {
				fields[k] = "must be 0-100"
			}
		case KeyKeepDays:
			if n, err := strconv.Atoi(v); err != nil || n < 1 {
				fields[k] = "must be a positive integer"
			}
		case KeySchedules:
			var schedules []Schedule
			if err := json.Unmarshal([]byte(v), &schedules); err != nil {
				fields[k] = "malformed schedule list"
			} else if err := validateSchedules(schedules); err != nil {
				for fk, fv := range err.(*InvalidError).Fields {
					fields[fk] = fv
				}
			}
		case KeyMusicLibraries:
			var libs []string
			if err := json.Unmarshal([]byte(v), &libs); err != nil {
				fields[k] = "malformed library list"
			}
		case KeyPlaylistPrefix:
			if strings.TrimSpace(v) == "" {
				fields[k] = "must not be empty"
			}
		case KeyPlaylistDescription:
			// free text
		default:
			fields[k] = "unknown setting"
		}
	}
	return invalid(fields)
}

func validateUser(u *User) error {
	fields := make(map[string]string)
	if strings.TrimSpace(u.Name) == "" {
		fields["name"] = "must not be empty"
	}
	if u.MusicCount < 0 {
		fields["music_count"] = "must be a non-negative integer"
	}
	if u.PodcastCount < 0 {
		fields["podcast_count"] = "must be a non-negative integer"
	}
	if u.DiscoveryRatio < 0 || u.DiscoveryRatio > 100 {
		fields["discovery_ratio"] = "must be 0-100"
	}
	if u.KeepDays < 1 {
		fields["keep_days"] = "must be a positive integer"
	}
	if strings.TrimSpace(u.PlaylistPrefix) == "" {
		fields["playlist_prefix"] = "must not be empty"
	}
	return invalid(fields)
}

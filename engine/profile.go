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

package engine

import (
	"encoding/json"

	"github.com/dailydrive/dailydrive/lib/str"
	"github.com/dailydrive/dailydrive/store"
)

// Profile is the resolved per-scope generation configuration: a user row,
// or the settings-backed global profile when no user is given.
type Profile struct {
	UserID         *uint
	Suffix         string
	Prefix         string
	Description    string
	MediaToken     string
	Libraries      []string
	Podcasts       []uint // nil means all enabled subscriptions
	MusicCount     int
	PodcastCount   int
	DiscoveryRatio int
	KeepDays       int
	RecentOnly     bool
	UnplayedOnly   bool
}

func (e *Engine) resolveProfile(userID *uint) (Profile, error) {
	settings := e.store.Settings()
	recentOnly := settings[store.KeyRecentOnly] != "false"
	unplayedOnly := settings[store.KeyUnplayedOnly] != "false"

	if userID != nil {
		user, err := e.store.LookupUser(*userID)
		if err != nil {
			return Profile{}, err
		}
		return Profile{
			UserID:         userID,
			Suffix:         user.Name,
			Prefix:         user.PlaylistPrefix,
			Description:    user.PlaylistDescription,
			MediaToken:     user.MediaToken,
			Libraries:      user.Libraries(),
			Podcasts:       user.Podcasts(),
			MusicCount:     user.MusicCount,
			PodcastCount:   user.PodcastCount,
			DiscoveryRatio: user.DiscoveryRatio,
			KeepDays:       user.KeepDays,
			RecentOnly:     recentOnly,
			UnplayedOnly:   unplayedOnly,
		}, nil
	}

	var libraries []string
	if raw := settings[store.KeyMusicLibraries]; raw != "" {
		json.Unmarshal([]byte(raw), &libraries)
	}
	profile := Profile{
		Prefix:         settings[store.KeyPlaylistPrefix],
		Description:    settings[store.KeyPlaylistDescription],
		Libraries:      libraries,
		Podcasts:       nil,
		MusicCount:     str.Atoi(settings[store.KeyMusicCount]),
		PodcastCount:   str.Atoi(settings[store.KeyPodcastCount]),
		DiscoveryRatio: str.Atoi(settings[store.KeyDiscoveryRatio]),
		KeepDays:       str.Atoi(settings[store.KeyKeepDays]),
		RecentOnly:     recentOnly,
		UnplayedOnly:   unplayedOnly,
	}
	if profile.Prefix == "" {
		profile.Prefix = store.DefaultPrefix
	}
	if profile.KeepDays < 1 {
		profile.KeepDays = store.DefaultKeepDays
	}
	return profile, nil
}

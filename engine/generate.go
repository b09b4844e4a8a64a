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
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dailydrive/dailydrive/lib/log"
	"github.com/dailydrive/dailydrive/mix"
	"github.com/dailydrive/dailydrive/store"
	"github.com/google/uuid"
)

// Summary reports one completed generation for display.
type Summary struct {
	Name     string `json:"name"`
	RunID    string `json:"runId"`
	Music    int    `json:"music"`
	Podcasts int    `json:"podcasts"`
	Total    int    `json:"total"`
}

// Generate builds and publishes the collection for one scope: a user id,
// or nil for the global scope. At most one generation runs per scope; a
// concurrent request for the same scope fails with ErrBusy.
func (e *Engine) Generate(userID *uint) (*Summary, error) {
	key := scopeKey(userID)
	if !e.acquire(key) {
		return nil, ErrBusy
	}
	defer e.release(key)

	summary, err := e.generate(userID)
	e.recordRun(key, summary, err)
	return summary, err
}

func (e *Engine) generate(userID *uint) (*Summary, error) {
	profile, err := e.resolveProfile(userID)
	if err != nil {
		return nil, err
	}
	m := e.mediaServer(profile)

	musicPool, episodeTracks, err := e.trackPools(m, profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	// fixed snapshot of the episode pool; refresh may run concurrently
	episodePool, eidByRef := e.episodePool(profile, episodeTracks)

	r := e.randFn()
	items := mix.Mix(musicPool, episodePool, mix.Profile{
		MusicCount:     profile.MusicCount,
		PodcastCount:   profile.PodcastCount,
		DiscoveryRatio: profile.DiscoveryRatio,
		RecentOnly:     profile.RecentOnly,
		UnplayedOnly:   profile.UnplayedOnly,
		RecentWindow:   e.config.Podcast.RecentWindow,
	}, r)
	if len(items) == 0 {
		return nil, ErrNoContent
	}

	name := collectionName(profile, time.Now())

	e.pruneCollections(m, userID, profile.KeepDays)

	// replace, never duplicate
	if err := m.DeletePlaylist(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	refs := make([]string, 0, len(items))
	var played []string
	musicTotal, episodeTotal := 0, 0
	for _, item := range items {
		refs = append(refs, item.Ref)
		if item.Episode {
			episodeTotal++
			if eid, ok := eidByRef[item.Ref]; ok {
				played = append(played, eid)
			}
		} else {
			musicTotal++
		}
	}

	if err := m.CreatePlaylist(name, refs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	e.podcast.MarkPlayed(played)

	history := store.History{
		RunID:        uuid.NewString(),
		Name:         name,
		UserID:       userID,
		MusicCount:   musicTotal,
		PodcastCount: episodeTotal,
		TrackCount:   len(items),
	}
	if err := e.store.AddHistory(&history); err != nil {
		return nil, err
	}

	log.Printf("generated %s: %d music + %d podcasts = %d total\n",
		name, musicTotal, episodeTotal, len(items))

	return &Summary{
		Name:     name,
		RunID:    history.RunID,
		Music:    musicTotal,
		Podcasts: episodeTotal,
		Total:    len(items),
	}, nil
}

// trackPools scans every music library and splits the items: tracks
// stored under the podcast download root are episode material from any
// library, everything else is music when its library is in the profile's
// selection. An empty selection means all music libraries.
func (e *Engine) trackPools(m MediaServer, profile Profile) ([]mix.Track, map[string]string, error) {
	libraries, err := m.Libraries()
	if err != nil {
		return nil, nil, err
	}

	selected := make(map[string]bool)
	for _, key := range profile.Libraries {
		selected[key] = true
	}

	downloadDir := e.config.Podcast.DownloadDir
	var musicPool []mix.Track
	episodeTracks := make(map[string]string) // file basename -> media ref
	for _, library := range libraries {
		if library.Type != "artist" {
			continue
		}
		tracks, err := m.Tracks([]string{library.Key})
		if err != nil {
			return nil, nil, err
		}
		for _, t := range tracks {
			if downloadDir != "" && t.File != "" &&
				strings.Contains(t.File, downloadDir) {
				episodeTracks[filepath.Base(t.File)] = t.Ref
				continue
			}
			if len(selected) > 0 && !selected[library.Key] {
				continue
			}
			musicPool = append(musicPool, mix.Track{
				Ref:   t.Ref,
				Known: t.Known(),
			})
		}
	}
	return musicPool, episodeTracks, nil
}

// episodePool joins stored episode rows against the media server's view of
// the downloaded files. Episodes the server has not scanned yet are
// skipped this run.
func (e *Engine) episodePool(profile Profile,
	episodeTracks map[string]string) ([]mix.Episode, map[string]string) {
	episodes := e.podcast.EpisodePool(profile.Podcasts)
	pool := make([]mix.Episode, 0, len(episodes))
	eidByRef := make(map[string]string)
	for _, episode := range episodes {
		ref, ok := episodeTracks[filepath.Base(episode.Path)]
		if !ok {
			continue
		}
		pool = append(pool, mix.Episode{
			Ref:        ref,
			Published:  episode.Published,
			Downloaded: episode.DownloadedAt,
			Played:     episode.Played,
		})
		eidByRef[ref] = episode.EID
	}
	return pool, eidByRef
}

func collectionName(profile Profile, now time.Time) string {
	name := profile.Prefix
	if profile.Suffix != "" {
		name += " - " + profile.Suffix
	}
	return name + " - " + now.Format("2006-01-02")
}

// pruneCollections deletes this scope's history rows past the keep window
// together with their remote collections. A row is kept for retry when
// the remote delete fails.
func (e *Engine) pruneCollections(m MediaServer, userID *uint, keepDays int) {
	for _, h := range e.store.StaleHistory(userID, keepDays) {
		if err := m.DeletePlaylist(h.Name); err != nil {
			log.Printf("prune %s failed: %s\n", h.Name, err)
			continue
		}
		e.store.DeleteHistory(&h)
	}
}

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

// Package mix selects and orders the music and spoken-word items for one
// generated collection. Mix is a pure function of its pools, profile, and
// random source; the random draw is the only non-deterministic element.
package mix

import (
	"math/rand"
	"sort"
	"time"
)

type Track struct {
	Ref   string
	Known bool
}

type Episode struct {
	Ref        string
	Published  time.Time
	Downloaded time.Time
	Played     bool
}

// Profile is the per-scope mixing configuration. Counts are coerced to
// non-negative and DiscoveryRatio is clamped to 0-100 before use. Now
// anchors the recency filter; zero means the wall clock.
type Profile struct {
	MusicCount     int
	PodcastCount   int
	DiscoveryRatio int
	RecentOnly     bool
	UnplayedOnly   bool
	RecentWindow   time.Duration
	Now            time.Time
}

type Item struct {
	Ref     string
	Episode bool
}

// Mix draws music split between discovery and familiar material, picks the
// most recent eligible episodes, and interleaves the episodes between
// near-equal music blocks.
func Mix(music []Track, episodes []Episode, p Profile, r *rand.Rand) []Item {
	musicCount := p.MusicCount
	if musicCount < 0 {
		musicCount = 0
	}
	podcastCount := p.PodcastCount
	if podcastCount < 0 {
		podcastCount = 0
	}
	ratio := p.DiscoveryRatio
	if ratio < 0 {
		ratio = 0
	} else if ratio > 100 {
		ratio = 100
	}

	tracks := selectMusic(music, musicCount, ratio, r)
	selected := selectEpisodes(episodes, podcastCount, p)
	return interleave(tracks, selected)
}

// selectMusic draws without replacement: the discovery share first, the
// remainder from familiar tracks, backfilling across subsets when one is
// exhausted. Items are never fabricated; the draw stops at pool size.
func selectMusic(music []Track, count, ratio int, r *rand.Rand) []Track {
	var discovery, familiar []Track
	for _, t := range music {
		if t.Known {
			familiar = append(familiar, t)
		} else {
			discovery = append(discovery, t)
		}
	}

	want := (count*ratio + 50) / 100
	fromDiscovery := want
	if fromDiscovery > len(discovery) {
		fromDiscovery = len(discovery)
	}
	fromFamiliar := count - fromDiscovery
	if fromFamiliar > len(familiar) {
		fromFamiliar = len(familiar)
	}
	// backfill from discovery when familiar is short
	if short := count - fromDiscovery - fromFamiliar; short > 0 {
		extra := len(discovery) - fromDiscovery
		if extra > short {
			extra = short
		}
		fromDiscovery += extra
	}

	selected := append(draw(discovery, fromDiscovery, r),
		draw(familiar, fromFamiliar, r)...)
	shuffle(selected, r)
	return selected
}

func draw(pool []Track, n int, r *rand.Rand) []Track {
	if n <= 0 {
		return nil
	}
	picked := make([]Track, len(pool))
	copy(picked, pool)
	shuffle(picked, r)
	return picked[:n]
}

func shuffle(tracks []Track, r *rand.Rand) {
	r.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})
}

// selectEpisodes filters per the profile, relaxing to the unfiltered pool
// when the filters leave fewer than wanted, then takes the most recently
// published; ties break on most recently downloaded.
func selectEpisodes(episodes []Episode, count int, p Profile) []Episode {
	if count == 0 || len(episodes) == 0 {
		return nil
	}
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}

	var eligible []Episode
	for _, e := range episodes {
		if p.UnplayedOnly && e.Played {
			continue
		}
		if p.RecentOnly && p.RecentWindow > 0 &&
			e.Published.Before(now.Add(-p.RecentWindow)) {
			continue
		}
		eligible = append(eligible, e)
	}
	if len(eligible) < count {
		eligible = episodes
	}

	sorted := make([]Episode, len(eligible))
	copy(sorted, eligible)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Published.Equal(sorted[j].Published) {
			return sorted[i].Published.After(sorted[j].Published)
		}
		return sorted[i].Downloaded.After(sorted[j].Downloaded)
	})
	if len(sorted) > count {
		sorted = sorted[:count]
	}
	return sorted
}

// interleave splits the music into len(episodes)+1 contiguous blocks of
// as-equal-as-possible size, earlier blocks absorbing the remainder, and
// emits block, episode, block, episode, ..., block.
func interleave(tracks []Track, episodes []Episode) []Item {
	items := make([]Item, 0, len(tracks)+len(episodes))
	if len(episodes) == 0 {
		for _, t := range tracks {
			items = append(items, Item{Ref: t.Ref})
		}
		return items
	}

	blocks := len(episodes) + 1
	base := len(tracks) / blocks
	remainder := len(tracks) % blocks

	idx := 0
	for i := 0; i < blocks; i++ {
		size := base
		if i < remainder {
			size++
		}
		for j := 0; j < size; j++ {
			items = append(items, Item{Ref: tracks[idx].Ref})
			idx++
		}
		if i < len(episodes) {
			items = append(items, Item{Ref: episodes[i].Ref, Episode: true})
		}
	}
	return items
}

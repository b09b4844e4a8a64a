package mix

import (
	"math/rand"
	"testing"
	"time"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func makeMusic(discovery, familiar int) []Track {
	var music []Track
	for i := 0; i < discovery; i++ {
		music = append(music, Track{Ref: "d" + string(rune('a'+i))})
	}
	for i := 0; i < familiar; i++ {
		music = append(music, Track{Ref: "f" + string(rune('a'+i)), Known: true})
	}
	return music
}

func countKnown(music []Track, tracks []Track) (known, unknown int) {
	byRef := make(map[string]bool)
	for _, t := range music {
		byRef[t.Ref] = t.Known
	}
	for _, t := range tracks {
		if byRef[t.Ref] {
			known++
		} else {
			unknown++
		}
	}
	return
}

func TestSelectMusicRatioZero(t *testing.T) {
	music := makeMusic(10, 10)
	tracks := selectMusic(music, 5, 0, testRand())
	if len(tracks) != 5 {
		t.Errorf("expected 5 tracks, got %d", len(tracks))
	}
	known, unknown := countKnown(music, tracks)
	if known != 5 || unknown != 0 {
		t.Errorf("ratio 0 should be all familiar, got %d/%d", known, unknown)
	}
}

func TestSelectMusicRatioFull(t *testing.T) {
	music := makeMusic(10, 10)
	tracks := selectMusic(music, 5, 100, testRand())
	known, unknown := countKnown(music, tracks)
	if known != 0 || unknown != 5 {
		t.Errorf("ratio 100 should be all discovery, got %d/%d", known, unknown)
	}
}

func TestSelectMusicRounding(t *testing.T) {
	// 10 * 45% = 4.5, rounds to 5 discovery
	music := makeMusic(10, 10)
	tracks := selectMusic(music, 10, 45, testRand())
	known, unknown := countKnown(music, tracks)
	if unknown != 5 || known != 5 {
		t.Errorf("expected 5 discovery and 5 familiar, got %d and %d",
			unknown, known)
	}
}

func TestSelectMusicBackfill(t *testing.T) {
	// only 2 familiar available; discovery fills the gap
	music := makeMusic(10, 2)
	tracks := selectMusic(music, 8, 25, testRand())
	if len(tracks) != 8 {
		t.Errorf("expected 8 tracks, got %d", len(tracks))
	}
	known, unknown := countKnown(music, tracks)
	if known != 2 || unknown != 6 {
		t.Errorf("expected 2 familiar and 6 discovery, got %d and %d",
			known, unknown)
	}
}

func TestSelectMusicSmallPool(t *testing.T) {
	music := makeMusic(2, 1)
	tracks := selectMusic(music, 10, 40, testRand())
	if len(tracks) != 3 {
		t.Errorf("pool of 3 should yield 3, got %d", len(tracks))
	}
}

func TestSelectEpisodesOrder(t *testing.T) {
	now := time.Now()
	episodes := []Episode{
		{Ref: "old", Published: now.Add(-48 * time.Hour)},
		{Ref: "new", Published: now.Add(-1 * time.Hour)},
		{Ref: "mid", Published: now.Add(-24 * time.Hour)},
	}
	selected := selectEpisodes(episodes, 2, Profile{Now: now})
	if len(selected) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(selected))
	}
	if selected[0].Ref != "new" || selected[1].Ref != "mid" {
		t.Errorf("bad order: %s, %s", selected[0].Ref, selected[1].Ref)
	}
}

func TestSelectEpisodesTieBreak(t *testing.T) {
	now := time.Now()
	published := now.Add(-time.Hour)
	episodes := []Episode{
		{Ref: "early", Published: published, Downloaded: now.Add(-time.Hour)},
		{Ref: "late", Published: published, Downloaded: now},
	}
	selected := selectEpisodes(episodes, 1, Profile{Now: now})
	if selected[0].Ref != "late" {
		t.Errorf("tie should break on download time, got %s", selected[0].Ref)
	}
}

func TestSelectEpisodesRelax(t *testing.T) {
	now := time.Now()
	episodes := []Episode{
		{Ref: "played", Published: now.Add(-time.Hour), Played: true},
		{Ref: "stale", Published: now.Add(-30 * 24 * time.Hour)},
	}
	p := Profile{
		UnplayedOnly: true,
		RecentOnly:   true,
		RecentWindow: 7 * 24 * time.Hour,
		Now:          now,
	}
	selected := selectEpisodes(episodes, 2, p)
	if len(selected) != 2 {
		t.Errorf("filters should relax on shortage, got %d", len(selected))
	}
}

func TestSelectEpisodesFiltered(t *testing.T) {
	now := time.Now()
	episodes := []Episode{
		{Ref: "played", Published: now.Add(-time.Hour), Played: true},
		{Ref: "fresh", Published: now.Add(-2 * time.Hour)},
	}
	p := Profile{UnplayedOnly: true, Now: now}
	selected := selectEpisodes(episodes, 1, p)
	if len(selected) != 1 || selected[0].Ref != "fresh" {
		t.Errorf("played episode should be excluded")
	}
}

func TestInterleaveBlocks(t *testing.T) {
	// 9 tracks and 2 episodes: blocks of 3, 3, 3
	items := Mix(makeMusic(0, 9), []Episode{
		{Ref: "e1", Published: time.Now()},
		{Ref: "e2", Published: time.Now().Add(-time.Hour)},
	}, Profile{MusicCount: 9, PodcastCount: 2}, testRand())
	if len(items) != 11 {
		t.Fatalf("expected 11 items, got %d", len(items))
	}
	if !items[3].Episode || !items[7].Episode {
		t.Errorf("episodes should be at positions 3 and 7")
	}
	for i, item := range items {
		if item.Episode && i != 3 && i != 7 {
			t.Errorf("unexpected episode at %d", i)
		}
	}
	if items[3].Ref != "e1" {
		t.Errorf("newest episode should come first, got %s", items[3].Ref)
	}
}

func TestInterleaveRemainder(t *testing.T) {
	// 10 tracks and 3 episodes: blocks of 3, 3, 2, 2
	items := Mix(makeMusic(0, 10), []Episode{
		{Ref: "e1"}, {Ref: "e2"}, {Ref: "e3"},
	}, Profile{MusicCount: 10, PodcastCount: 3}, testRand())
	if len(items) != 13 {
		t.Fatalf("expected 13 items, got %d", len(items))
	}
	var sizes []int
	size := 0
	for _, item := range items {
		if item.Episode {
			sizes = append(sizes, size)
			size = 0
		} else {
			size++
		}
	}
	sizes = append(sizes, size)
	expected := []int{3, 3, 2, 2}
	for i, n := range expected {
		if sizes[i] != n {
			t.Errorf("block %d: expected %d tracks, got %d", i, n, sizes[i])
		}
	}
}

func TestMixMusicOnly(t *testing.T) {
	items := Mix(makeMusic(5, 5), nil,
		Profile{MusicCount: 4, PodcastCount: 3}, testRand())
	if len(items) != 4 {
		t.Errorf("expected 4 items, got %d", len(items))
	}
	for _, item := range items {
		if item.Episode {
			t.Errorf("no episodes expected")
		}
	}
}

func TestMixEmpty(t *testing.T) {
	items := Mix(nil, nil, Profile{MusicCount: 10, PodcastCount: 3}, testRand())
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestMixNoDuplicates(t *testing.T) {
	items := Mix(makeMusic(10, 10), nil,
		Profile{MusicCount: 20, DiscoveryRatio: 50}, testRand())
	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.Ref] {
			t.Errorf("duplicate ref %s", item.Ref)
		}
		seen[item.Ref] = true
	}
}

func TestMixClampsRatio(t *testing.T) {
	items := Mix(makeMusic(5, 5), nil,
		Profile{MusicCount: 5, DiscoveryRatio: 150}, testRand())
	if len(items) != 5 {
		t.Errorf("expected 5 items, got %d", len(items))
	}
}

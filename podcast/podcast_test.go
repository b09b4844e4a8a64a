package podcast

import (
	"fmt"
	"testing"
	"time"

	"github.com/dailydrive/dailydrive/config"
)

type fixedSettings int

func (f fixedSettings) MaxEpisodes() int {
	return int(f)
}

func testPodcast(t *testing.T) *Podcast {
	config, err := config.TestConfig()
	if err != nil {
		t.Fatalf("TestConfig %s", err)
	}
	p := NewPodcast(config)
	err = p.Open()
	if err != nil {
		t.Fatalf("Open %s", err)
	}
	return p
}

func addEpisodes(t *testing.T, p *Podcast, sub *Subscription, count int) {
	base := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		err := p.createEpisode(&Episode{
			SubscriptionID: sub.ID,
			EID:            fmt.Sprintf("%s-e%d", sub.Name, i),
			Title:          fmt.Sprintf("Episode %d", i),
			Published:      base.Add(time.Duration(i) * time.Hour),
			DownloadedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("createEpisode %s", err)
		}
	}
}

func TestRetention(t *testing.T) {
	p := testPodcast(t)
	defer p.Close()
	p.config.Podcast.MaxEpisodes = 2

	sub := Subscription{Name: "news", FeedURL: "https://example.com/news", Enabled: true}
	if err := p.createSubscription(&sub); err != nil {
		t.Fatalf("createSubscription %s", err)
	}
	addEpisodes(t, p, &sub, 4)

	p.retainEpisodes(&sub)

	episodes := p.subscriptionEpisodes(sub.ID)
	if len(episodes) != 2 {
		t.Fatalf("expected 2 episodes after retention, got %d", len(episodes))
	}
	// the newest survive; the deleted are exactly the oldest surplus
	if episodes[0].EID != "news-e3" || episodes[1].EID != "news-e2" {
		t.Errorf("wrong episodes kept: %s, %s", episodes[0].EID, episodes[1].EID)
	}

	// already within the limit; nothing more to delete
	p.retainEpisodes(&sub)
	if n := len(p.subscriptionEpisodes(sub.ID)); n != 2 {
		t.Errorf("retention should be stable, got %d", n)
	}
}

func TestRetentionSettings(t *testing.T) {
	p := testPodcast(t)
	defer p.Close()
	p.config.Podcast.MaxEpisodes = 3

	sub := Subscription{Name: "talk", FeedURL: "https://example.com/talk", Enabled: true}
	if err := p.createSubscription(&sub); err != nil {
		t.Fatalf("createSubscription %s", err)
	}
	addEpisodes(t, p, &sub, 3)

	// runtime setting wins over the configured default
	p.UseSettings(fixedSettings(1))
	p.retainEpisodes(&sub)
	if n := len(p.subscriptionEpisodes(sub.ID)); n != 1 {
		t.Errorf("expected 1 episode with setting 1, got %d", n)
	}
}

func TestRetentionUnlimited(t *testing.T) {
	p := testPodcast(t)
	defer p.Close()
	p.config.Podcast.MaxEpisodes = 2

	sub := Subscription{Name: "archive", FeedURL: "https://example.com/archive", Enabled: true}
	if err := p.createSubscription(&sub); err != nil {
		t.Fatalf("createSubscription %s", err)
	}
	addEpisodes(t, p, &sub, 4)

	p.UseSettings(fixedSettings(0))
	p.retainEpisodes(&sub)
	if n := len(p.subscriptionEpisodes(sub.ID)); n != 4 {
		t.Errorf("zero should keep everything, got %d", n)
	}
}

func TestEpisodePool(t *testing.T) {
	p := testPodcast(t)
	defer p.Close()

	on := Subscription{Name: "on", FeedURL: "https://example.com/on", Enabled: true}
	off := Subscription{Name: "off", FeedURL: "https://example.com/off", Enabled: false}
	p.createSubscription(&on)
	p.createSubscription(&off)
	addEpisodes(t, p, &on, 2)
	addEpisodes(t, p, &off, 2)

	// nil means all enabled subscriptions
	pool := p.EpisodePool(nil)
	if len(pool) != 2 {
		t.Errorf("expected 2 episodes from enabled subs, got %d", len(pool))
	}

	// disabled subscriptions never contribute, and the caller's slice
	// is left intact
	ids := []uint{off.ID, on.ID}
	pool = p.EpisodePool(ids)
	if len(pool) != 2 {
		t.Errorf("expected 2 episodes, got %d", len(pool))
	}
	if ids[0] != off.ID || ids[1] != on.ID {
		t.Errorf("ids mutated: %v", ids)
	}
}

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

package podcast

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/dailydrive/dailydrive/config"
	"github.com/dailydrive/dailydrive/lib/client"
	"github.com/dailydrive/dailydrive/lib/rss"
	"gorm.io/gorm"
)

// Settings provides the runtime-editable values retention consults; nil
// falls back to the static configuration.
type Settings interface {
	MaxEpisodes() int
}

type Podcast struct {
	config   *config.Config
	db       *gorm.DB
	client   *client.Client
	settings Settings
}

func NewPodcast(config *config.Config) *Podcast {
	return &Podcast{
		config: config,
		client: client.NewClient(mergeClientConfig(config)),
	}
}

func mergeClientConfig(cfg *config.Config) *config.ClientConfig {
	var merged config.ClientConfig
	merged = cfg.Client
	merged.Merge(cfg.Podcast.Client)
	return &merged
}

func (p *Podcast) Open() (err error) {
	err = p.openDB()
	return
}

func (p *Podcast) Close() {
	p.closeDB()
}

// UseSettings binds the runtime settings source, so retention changes take
// effect without a restart.
func (p *Podcast) UseSettings(s Settings) {
	p.settings = s
}

// CatalogResult is one podcast from the external search catalog.
type CatalogResult struct {
	Name    string `json:"name"`
	Artist  string `json:"artist"`
	FeedURL string `json:"feedUrl"`
	Artwork string `json:"artwork"`
	Genre   string `json:"genre"`
}

type itunesResponse struct {
	Results []struct {
		CollectionName   string `json:"collectionName"`
		ArtistName       string `json:"artistName"`
		FeedURL          string `json:"feedUrl"`
		ArtworkURL       string `json:"artworkUrl100"`
		PrimaryGenreName string `json:"primaryGenreName"`
	} `json:"results"`
}

const itunesSearchURL = "https://itunes.apple.com/search"

// SearchCatalog is a stateless passthrough to the iTunes podcast catalog.
func (p *Podcast) SearchCatalog(q string) ([]CatalogResult, error) {
	u := fmt.Sprintf("%s?term=%s&media=podcast&limit=%d",
		itunesSearchURL, url.QueryEscape(q), p.config.Podcast.SearchLimit)
	var resp itunesResponse
	err := p.client.GetJson(u, &resp)
	if err != nil {
		return nil, err
	}
	results := make([]CatalogResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.FeedURL == "" {
			continue
		}
		results = append(results, CatalogResult{
			Name:    r.CollectionName,
			Artist:  r.ArtistName,
			FeedURL: r.FeedURL,
			Artwork: r.ArtworkURL,
			Genre:   r.PrimaryGenreName,
		})
	}
	return results, nil
}

// Subscribe adds a subscription, enabled by default. Feed URL is the
// identity; subscribing twice returns the existing row.
func (p *Podcast) Subscribe(result CatalogResult) (Subscription, error) {
	if result.FeedURL == "" {
		return Subscription{}, errors.New("feed url required")
	}
	if existing := p.findSubscriptionByFeed(result.FeedURL); existing != nil {
		return *existing, nil
	}
	sub := Subscription{
		Name:    result.Name,
		Artist:  result.Artist,
		FeedURL: result.FeedURL,
		Artwork: result.Artwork,
		Genre:   result.Genre,
		Enabled: true,
	}
	err := p.createSubscription(&sub)
	return sub, err
}

// Unsubscribe hard-deletes the subscription and cascades its episodes and
// downloaded files.
func (p *Podcast) Unsubscribe(id uint) error {
	sub := p.findSubscription(id)
	if sub == nil {
		return errors.New("subscription not found")
	}
	for _, e := range p.subscriptionEpisodes(sub.ID) {
		p.removeEpisode(&e)
	}
	os.Remove(p.subscriptionDir(sub))
	return p.deleteSubscription(sub)
}

// Toggle pauses or resumes a subscription. Episodes of a paused
// subscription are retained but excluded from refresh and candidate pools.
func (p *Podcast) Toggle(id uint, enabled bool) error {
	sub := p.findSubscription(id)
	if sub == nil {
		return errors.New("subscription not found")
	}
	sub.Enabled = enabled
	return p.saveSubscription(sub)
}

func (p *Podcast) Subscriptions() []Subscription {
	return p.allSubscriptions()
}

func (p *Podcast) LookupSubscription(id uint) (Subscription, error) {
	sub := p.findSubscription(id)
	if sub == nil {
		return Subscription{}, errors.New("subscription not found")
	}
	return *sub, nil
}

func (p *Podcast) Episodes(sub Subscription) []Episode {
	return p.subscriptionEpisodes(sub.ID)
}

// EpisodePool returns the candidate episodes for the given subscription
// ids, or all enabled subscriptions when ids is nil (the global scope).
// Disabled subscriptions never contribute.
func (p *Podcast) EpisodePool(ids []uint) []Episode {
	enabled := make(map[uint]bool)
	for _, s := range p.enabledSubscriptions() {
		enabled[s.ID] = true
	}
	if ids == nil {
		ids = make([]uint, 0, len(enabled))
		for id := range enabled {
			ids = append(ids, id)
		}
	} else {
		// filter into a fresh slice; the caller's ids stay intact
		keep := make([]uint, 0, len(ids))
		for _, id := range ids {
			if enabled[id] {
				keep = append(keep, id)
			}
		}
		ids = keep
	}
	return p.episodesFor(ids)
}

// MarkPlayed flags episodes placed into a generated collection.
func (p *Podcast) MarkPlayed(eids []string) {
	p.markPlayed(eids)
}

// FeedPreview fetches a feed without subscribing, for the catalog browse
// surface.
func (p *Podcast) FeedPreview(feedURL string, limit int) ([]rss.Item, error) {
	channel, err := rss.NewRSS(p.client).Fetch(feedURL)
	if err != nil {
		return nil, err
	}
	items := channel.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

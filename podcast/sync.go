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
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cavaliercoder/grab"
	"github.com/dailydrive/dailydrive/lib/hash"
	"github.com/dailydrive/dailydrive/lib/log"
	"github.com/dailydrive/dailydrive/lib/rss"
)

// Refresh fetches every enabled subscription feed, downloads audio for
// episodes not seen before, and enforces per-subscription retention. A
// failing feed is logged and skipped; it never aborts the batch. Returns
// the number of newly downloaded episodes.
func (p *Podcast) Refresh() (int, error) {
	downloaded := 0
	for _, sub := range p.enabledSubscriptions() {
		n, err := p.refreshSubscription(&sub)
		if err != nil {
			log.Printf("refresh %s failed: %s\n", sub.Name, err)
			continue
		}
		downloaded += n
	}
	if downloaded > 0 {
		log.Printf("downloaded %d new episodes\n", downloaded)
	}
	return downloaded, nil
}

func (p *Podcast) refreshSubscription(sub *Subscription) (int, error) {
	channel, err := rss.NewRSS(p.client).Fetch(sub.FeedURL)
	if err != nil {
		return 0, err
	}

	items := channel.Items
	if limit := p.config.Podcast.FeedLimit; limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	downloaded := 0
	for _, item := range items {
		audioURL := item.URL()
		if audioURL == "" {
			continue
		}
		eid := episodeID(item)
		if p.findEpisode(eid) != nil {
			continue
		}
		dst, err := p.download(sub, eid, audioURL)
		if err != nil {
			log.Printf("download %s failed: %s\n", item.Title, err)
			continue
		}
		episode := Episode{
			SubscriptionID: sub.ID,
			EID:            eid,
			Title:          item.Title,
			URL:            audioURL,
			Size:           item.Size(),
			Published:      item.PublishTime(),
			Path:           dst,
			DownloadedAt:   time.Now(),
		}
		err = p.createEpisode(&episode)
		if err != nil {
			os.Remove(dst)
			continue
		}
		downloaded++
	}

	p.retainEpisodes(sub)
	return downloaded, nil
}

// episodeID derives a stable identifier from the feed item GUID, falling
// back to the audio URL for feeds without GUIDs. Titles repeat and are
// never used.
func episodeID(item rss.Item) string {
	if item.GUID != "" {
		return hash.MD5Hex(item.GUID)
	}
	return hash.MD5Hex(item.URL())
}

func (p *Podcast) download(sub *Subscription, eid, audioURL string) (string, error) {
	dir := p.subscriptionDir(sub)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, eid+audioExt(audioURL))
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}

	req, err := grab.NewRequest(dst, audioURL)
	if err != nil {
		return "", err
	}
	grabClient := grab.NewClient()
	grabClient.UserAgent = p.config.Client.UserAgent
	resp := grabClient.Do(req)
	if err := resp.Err(); err != nil {
		os.Remove(dst)
		return "", err
	}
	return resp.Filename, nil
}

// retainEpisodes deletes the oldest surplus episodes and their files once
// a subscription exceeds its maximum. The runtime setting wins over the
// configured default; zero keeps everything.
func (p *Podcast) retainEpisodes(sub *Subscription) {
	max := p.config.Podcast.MaxEpisodes
	if p.settings != nil {
		max = p.settings.MaxEpisodes()
	}
	if max <= 0 {
		return
	}
	episodes := p.subscriptionEpisodes(sub.ID)
	if len(episodes) <= max {
		return
	}
	for _, e := range episodes[max:] {
		log.Printf("retention: removing %s / %s\n", sub.Name, e.Title)
		p.removeEpisode(&e)
	}
}

func (p *Podcast) removeEpisode(e *Episode) {
	if e.Path != "" {
		os.Remove(e.Path)
	}
	p.deleteEpisode(e)
}

func (p *Podcast) subscriptionDir(sub *Subscription) string {
	return filepath.Join(p.config.Podcast.DownloadDir, sanitizeName(sub.Name))
}

var unsafeChars = regexp.MustCompile(`[<>:"/\\|?*]`)

func sanitizeName(name string) string {
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, ". ")
	if name == "" {
		return "unknown"
	}
	if len(name) > 200 {
		name = name[:200]
	}
	return name
}

func audioExt(audioURL string) string {
	u, err := url.Parse(audioURL)
	if err != nil {
		return ".mp3"
	}
	ext := path.Ext(u.Path)
	if ext == "" {
		return ".mp3"
	}
	return ext
}

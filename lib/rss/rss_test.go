package rss

import (
	"testing"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
<channel>
<title>Test News Daily</title>
<link>https://example.com/news</link>
<description>daily news</description>
<itunes:author>Example Media</itunes:author>
<ttl>60</ttl>
<image>
<title>Test News Daily</title>
<url>https://example.com/cover.jpg</url>
<link>https://example.com/news</link>
</image>
<item>
<title>Episode Two</title>
<link>https://example.com/news/2</link>
<guid>news-2</guid>
<pubDate>Tue, 07 Dec 2021 19:57:22 -0500</pubDate>
<enclosure url="https://example.com/news/2.mp3" length="1234" type="audio/mpeg"/>
</item>
<item>
<title>Episode One</title>
<link>https://example.com/news/1</link>
<guid>news-1</guid>
<pubDate>Mon, 06 Dec 2021 19:00:00 EST</pubDate>
<enclosure url="https://example.com/news/1.mp3" length="4321" type="audio/mpeg"/>
</item>
</channel>
</rss>`

func TestParse(t *testing.T) {
	channel, err := Parse([]byte(testFeed))
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	if channel.Title != "Test News Daily" {
		t.Errorf("bad title: %s", channel.Title)
	}
	if channel.Link() != "https://example.com/news" {
		t.Errorf("bad link: %s", channel.Link())
	}
	if channel.Author != "Example Media" {
		t.Errorf("bad author: %s", channel.Author)
	}
	if channel.TTL != 60 {
		t.Errorf("bad ttl: %d", channel.TTL)
	}
	if len(channel.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(channel.Items))
	}

	item := channel.Items[0]
	if item.Title != "Episode Two" {
		t.Errorf("bad item title: %s", item.Title)
	}
	if item.GUID != "news-2" {
		t.Errorf("bad guid: %s", item.GUID)
	}
	if item.URL() != "https://example.com/news/2.mp3" {
		t.Errorf("bad enclosure url: %s", item.URL())
	}
	if item.Size() != 1234 {
		t.Errorf("bad enclosure length: %d", item.Size())
	}
	if item.ContentType() != "audio/mpeg" {
		t.Errorf("bad enclosure type: %s", item.ContentType())
	}
	if item.PublishTime().IsZero() {
		t.Errorf("pubDate should parse")
	}
	if !channel.Items[0].PublishTime().After(channel.Items[1].PublishTime()) {
		t.Errorf("expected first item newer")
	}
}

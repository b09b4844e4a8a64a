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

package rss

import (
	"bytes"
	"encoding/xml"
	"time"

	"github.com/dailydrive/dailydrive/lib/client"
	"github.com/dailydrive/dailydrive/lib/date"
)

type RSS struct {
	client *client.Client
}

func NewRSS(client *client.Client) *RSS {
	return &RSS{
		client: client,
	}
}

func (rss RSS) Fetch(url string) (*Channel, error) {
	var result Rss
	err := rss.client.GetXML(url, &result)
	return &result.Channel, err
}

// Parse decodes a feed document already in hand; used by tests and the
// feed preview path.
func Parse(data []byte) (*Channel, error) {
	var result Rss
	err := xml.NewDecoder(bytes.NewReader(data)).Decode(&result)
	return &result.Channel, err
}

type Image struct {
	Title string `xml:"title"`
	URL   string `xml:"url"`
	Link  string `xml:"link"`
}

type Enclosure struct {
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
	URL    string `xml:"url,attr"`
}

type Item struct {
	XMLName     xml.Name  `xml:"item"`
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	PubDate     string    `xml:"pubDate"`
	Description string    `xml:"description"`
	GUID        string    `xml:"guid"`
	Author      string    `xml:"author,itunes"`
	Duration    string    `xml:"duration,itunes"`
	Enclosure   Enclosure `xml:"enclosure"`
}

func (i Item) PublishTime() time.Time {
	return date.ParseRFC1123(i.PubDate)
}

func (i Item) Size() int64 {
	return i.Enclosure.Length
}

func (i Item) ContentType() string {
	return i.Enclosure.Type
}

func (i Item) URL() string {
	return i.Enclosure.URL
}

type Channel struct {
	XMLName       xml.Name `xml:"channel"`
	Title         string   `xml:"title"`
	Links         []string `xml:"link"` // want <link> not <atom:link>
	Description   string   `xml:"description"`
	Author        string   `xml:"author,itunes"`
	Copyright     string   `xml:"copyright"`
	LastBuildDate string   `xml:"lastBuildDate"`
	Image         Image    `xml:"image"`
	TTL           int      `xml:"ttl"`
	Items         []Item   `xml:"item"`
}

type Rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

func (c Channel) LastBuildTime() time.Time {
	return date.ParseRFC1123(c.LastBuildDate)
}

func (c Channel) Link() string {
	// <atom:link> has no value just href attr
	for _, l := range c.Links {
		if l != "" {
			return l
		}
	}
	return ""
}

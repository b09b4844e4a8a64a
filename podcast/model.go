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
	"time"

	"github.com/dailydrive/dailydrive/lib/gorm"
)

// Subscription is a followed podcast feed. Pausing a podcast disables it
// rather than deleting it; a hard delete also removes its episodes and
// downloaded files.
type Subscription struct {
	gorm.Model
	Name    string `json:"name"`
	Artist  string `json:"artist"`
	FeedURL string `gorm:"uniqueIndex:idx_subscription_feed" json:"feedUrl"`
	Artwork string `json:"artwork"`
	Genre   string `json:"genre"`
	Enabled bool   `json:"enabled"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// Episode belongs to one subscription. EID is the MD5 of the feed item
// GUID; titles repeat across feeds so they are never used for identity.
// Path is the downloaded audio file keyed by EID under the storage root.
type Episode struct {
	gorm.Model
	SubscriptionID uint      `gorm:"index" json:"subscriptionId"`
	EID            string    `gorm:"uniqueIndex:idx_episode_eid" json:"eid"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Size           int64     `json:"size"`
	Published      time.Time `json:"published"`
	Played         bool      `json:"played"`
	Path           string    `json:"path"`
	DownloadedAt   time.Time `json:"downloadedAt"`
}

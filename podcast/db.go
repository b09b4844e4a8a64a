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

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func (p *Podcast) openDB() (err error) {
	cfg := p.config.Podcast.DB.GormConfig()

	switch p.config.Podcast.DB.Driver {
	case "sqlite3":
		p.db, err = gorm.Open(sqlite.Open(p.config.Podcast.DB.Source), cfg)
	case "mysql":
		p.db, err = gorm.Open(mysql.Open(p.config.Podcast.DB.Source), cfg)
	case "postgres":
		p.db, err = gorm.Open(postgres.Open(p.config.Podcast.DB.Source), cfg)
	default:
		err = errors.New("driver not supported")
	}

	if err != nil {
		return
	}

	err = p.db.AutoMigrate(&Subscription{}, &Episode{})
	return
}

func (p *Podcast) closeDB() {
	conn, err := p.db.DB()
	if err != nil {
		return
	}
	conn.Close()
}

func (p *Podcast) createSubscription(s *Subscription) error {
	return p.db.Create(s).Error
}

func (p *Podcast) saveSubscription(s *Subscription) error {
	return p.db.Save(s).Error
}

func (p *Podcast) deleteSubscription(s *Subscription) error {
	return p.db.Unscoped().Delete(s).Error
}

func (p *Podcast) findSubscription(id uint) *Subscription {
	var list []Subscription
	p.db.Where("id = ?", id).Find(&list)
	if len(list) > 0 {
		return &list[0]
	}
	return nil
}

func (p *Podcast) findSubscriptionByFeed(feedURL string) *Subscription {
	var list []Subscription
	p.db.Where("feed_url = ?", feedURL).Find(&list)
	if len(list) > 0 {
		return &list[0]
	}
	return nil
}

func (p *Podcast) allSubscriptions() []Subscription {
	var subscriptions []Subscription
	p.db.Order("name").Find(&subscriptions)
	return subscriptions
}

func (p *Podcast) enabledSubscriptions() []Subscription {
	var subscriptions []Subscription
	p.db.Where("enabled = ?", true).Order("name").Find(&subscriptions)
	return subscriptions
}

func (p *Podcast) createEpisode(e *Episode) error {
	return p.db.Create(e).Error
}

func (p *Podcast) deleteEpisode(e *Episode) error {
	return p.db.Unscoped().Delete(e).Error
}

func (p *Podcast) findEpisode(eid string) *Episode {
	var list []Episode
	p.db.Where("e_id = ?", eid).Find(&list)
	if len(list) > 0 {
		return &list[0]
	}
	return nil
}

func (p *Podcast) subscriptionEpisodes(id uint) []Episode {
	var episodes []Episode
	p.db.Where("subscription_id = ?", id).
		Order("published desc, downloaded_at desc").Find(&episodes)
	return episodes
}

func (p *Podcast) episodesFor(ids []uint) []Episode {
	var episodes []Episode
	if len(ids) == 0 {
		return episodes
	}
	p.db.Where("subscription_id in (?)", ids).
		Order("published desc, downloaded_at desc").Find(&episodes)
	return episodes
}

func (p *Podcast) markPlayed(eids []string) {
	if len(eids) == 0 {
		return
	}
	p.db.Model(&Episode{}).Where("e_id in (?)", eids).
		Update("played", true)
}

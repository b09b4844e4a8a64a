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

package store

import (
	"errors"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func (s *Store) openDB() (err error) {
	cfg := s.config.Store.DB.GormConfig()

	switch s.config.Store.DB.Driver {
	case "sqlite3":
		s.db, err = gorm.Open(sqlite.Open(s.config.Store.DB.Source), cfg)
	case "mysql":
		s.db, err = gorm.Open(mysql.Open(s.config.Store.DB.Source), cfg)
	case "postgres":
		s.db, err = gorm.Open(postgres.Open(s.config.Store.DB.Source), cfg)
	default:
		err = errors.New("driver not supported")
	}

	if err != nil {
		return
	}

	err = s.db.AutoMigrate(&Setting{}, &User{}, &History{})
	if err != nil {
		return
	}
	s.seedDefaults()
	return
}

func (s *Store) closeDB() {
	conn, err := s.db.DB()
	if err != nil {
		return
	}
	conn.Close()
}

func (s *Store) getSetting(key string) (string, bool) {
	var setting Setting
	err := s.db.First(&setting, "key = ?", key).Error
	if err != nil {
		return "", false
	}
	return setting.Value, true
}

func (s *Store) putSetting(key, value string) error {
	setting := Setting{Key: key, Value: value}
	if _, ok := s.getSetting(key); ok {
		return s.db.Model(&Setting{}).Where("key = ?", key).
			Update("value", value).Error
	}
	return s.db.Create(&setting).Error
}

func (s *Store) allSettings() map[string]string {
	var settings []Setting
	s.db.Find(&settings)
	result := make(map[string]string)
	for _, v := range settings {
		result[v.Key] = v.Value
	}
	return result
}

func (s *Store) createUser(u *User) error {
	return s.db.Create(u).Error
}

func (s *Store) saveUser(u *User) error {
	return s.db.Save(u).Error
}

func (s *Store) deleteUser(u *User) error {
	return s.db.Unscoped().Delete(u).Error
}

func (s *Store) findUser(id uint) *User {
	var list []User
	s.db.Where("id = ?", id).Find(&list)
	if len(list) > 0 {
		return &list[0]
	}
	return nil
}

func (s *Store) allUsers() []User {
	var users []User
	s.db.Order("name").Find(&users)
	return users
}

func (s *Store) createHistory(h *History) error {
	return s.db.Create(h).Error
}

func (s *Store) deleteHistory(h *History) error {
	return s.db.Unscoped().Delete(h).Error
}

func (s *Store) recentHistory(limit int) []History {
	var history []History
	s.db.Order("created_at desc").Limit(limit).Find(&history)
	return history
}

func (s *Store) historyBefore(userID *uint, cutoff time.Time) []History {
	var history []History
	if userID == nil {
		s.db.Where("user_id is null and created_at < ?", cutoff).Find(&history)
	} else {
		s.db.Where("user_id = ? and created_at < ?", *userID, cutoff).Find(&history)
	}
	return history
}

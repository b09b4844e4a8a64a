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

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dailydrive/dailydrive"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseConfig struct {
	Driver  string
	Source  string
	LogMode bool
}

func (c DatabaseConfig) GormConfig() *gorm.Config {
	var glog logger.Interface
	if c.LogMode == false {
		glog = logger.Discard
	} else {
		glog = logger.Default
	}
	return &gorm.Config{
		Logger: glog,
	}
}

type ClientConfig struct {
	CacheDir  string
	MaxAge    time.Duration
	UseCache  bool
	UserAgent string
}

func (c *ClientConfig) Merge(o ClientConfig) {
	if o.CacheDir != "" {
		c.CacheDir = o.CacheDir
	}
	c.MaxAge = o.MaxAge
	c.UseCache = o.UseCache
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
}

type ServerConfig struct {
	Listen string
}

type StoreConfig struct {
	DB DatabaseConfig
}

// MediaConfig locates the external media server used for library listings
// and playlist create/delete.
type MediaConfig struct {
	URL    string
	Token  string
	Client ClientConfig
}

type PodcastConfig struct {
	DB           DatabaseConfig
	Client       ClientConfig
	DownloadDir  string
	MaxEpisodes  int
	RecentWindow time.Duration
	SearchLimit  int
	FeedLimit    int
}

type ScheduleConfig struct {
	Timezone     string
	RefreshLead  time.Duration
	HistoryLimit int
}

func (c ScheduleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

type Config struct {
	DataDir  string
	Client   ClientConfig
	Server   ServerConfig
	Store    StoreConfig
	Media    MediaConfig
	Podcast  PodcastConfig
	Schedule ScheduleConfig
}

func configDefaults(v *viper.Viper) {
	v.SetDefault("Client.CacheDir", ".httpcache")
	v.SetDefault("Client.MaxAge", "720h") // 30 days in hours
	v.SetDefault("Client.UseCache", "false")
	v.SetDefault("Client.UserAgent", userAgent())

	v.SetDefault("DataDir", ".")

	v.SetDefault("Server.Listen", "127.0.0.1:3000")

	v.SetDefault("Store.DB.Driver", "sqlite3")
	v.SetDefault("Store.DB.Source", "engine.db")
	v.SetDefault("Store.DB.LogMode", "false")

	v.SetDefault("Media.URL", "http://127.0.0.1:32400")
	v.SetDefault("Media.Token", "")

	v.SetDefault("Podcast.DB.Driver", "sqlite3")
	v.SetDefault("Podcast.DB.Source", "podcast.db")
	v.SetDefault("Podcast.DB.LogMode", "false")
	v.SetDefault("Podcast.Client.MaxAge", "15m")
	v.SetDefault("Podcast.Client.UseCache", true)
	v.SetDefault("Podcast.DownloadDir", "podcasts")
	v.SetDefault("Podcast.MaxEpisodes", "3")
	v.SetDefault("Podcast.RecentWindow", "720h") // 30 days
	v.SetDefault("Podcast.SearchLimit", "10")
	v.SetDefault("Podcast.FeedLimit", "10")

	v.SetDefault("Schedule.Timezone", "Local")
	v.SetDefault("Schedule.RefreshLead", "15m")
	v.SetDefault("Schedule.HistoryLimit", "50")
}

func userAgent() string {
	return dailydrive.AppName + "/" + dailydrive.Version + " ( " + dailydrive.Contact + " ) "
}

func readConfig(v *viper.Viper) (*Config, error) {
	var config Config
	var pathRegexp = regexp.MustCompile(`(dir|source)$`)
	err := v.ReadInConfig()
	dir := filepath.Dir(v.ConfigFileUsed())
	for _, k := range v.AllKeys() {
		if pathRegexp.MatchString(k) {
			val := v.Get(k)
			if strings.HasPrefix(val.(string), "/") == false {
				val = fmt.Sprintf("%s/%s", dir, val.(string))
				v.Set(k, val)
			}
		}
	}
	if err == nil {
		err = v.Unmarshal(&config)
	}
	return &config, err
}

// TestConfig builds a config for DB-backed tests. TEST_CONFIG names a
// directory with a test.yaml; without it a throwaway directory holds the
// databases and downloads, with defaults only.
func TestConfig() (*Config, error) {
	v := viper.New()
	configDefaults(v)
	testDir := os.Getenv("TEST_CONFIG")
	if testDir == "" {
		dir, err := os.MkdirTemp("", "dailydrive-test")
		if err != nil {
			return nil, err
		}
		testDir = dir
	} else {
		v.SetConfigFile(filepath.Join(testDir, "test.yaml"))
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	v.Set("DataDir", testDir)
	v.Set("Store.DB.Source", filepath.Join(testDir, "engine.db"))
	v.Set("Podcast.DB.Source", filepath.Join(testDir, "podcast.db"))
	v.Set("Podcast.DownloadDir", filepath.Join(testDir, "podcasts"))
	var config Config
	err := v.Unmarshal(&config)
	return &config, err
}

var configFile, configPath, configName string

func SetConfigFile(path string) {
	configFile = path
}

func AddConfigPath(path string) {
	configPath = path
}

func SetConfigName(name string) {
	configName = name
}

func GetConfig() (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName != "" {
		v.SetConfigName(configName)
	}
	configDefaults(v)
	return readConfig(v)
}

func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	configDefaults(v)
	return readConfig(v)
}

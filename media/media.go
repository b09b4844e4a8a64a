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

// Package media talks to the external media server: library listings,
// track candidates, and playlist create/delete. The default
// implementation speaks a Plex-style JSON API; the engine only depends on
// the exported types and an interface it defines itself.
package media

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dailydrive/dailydrive/config"
	"github.com/dailydrive/dailydrive/lib/client"
)

type Library struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Track is a playable library item. ViewCount and Rating carry the
// known/liked classification the mixer uses for its discovery split.
type Track struct {
	Ref    string  `json:"ref"`
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	File   string  `json:"-"`
	Views  int     `json:"views"`
	Rating float64 `json:"rating"`
}

// Known reports whether the user has played or rated the track before;
// anything else is discovery material.
func (t Track) Known() bool {
	return t.Views > 0 || t.Rating > 0
}

type Playlist struct {
	Ref       string    `json:"ref"`
	Title     string    `json:"title"`
	Duration  int64     `json:"duration"`
	ItemCount int       `json:"itemCount"`
	AddedAt   time.Time `json:"addedAt"`
}

type ServerStatus struct {
	Connected bool   `json:"connected"`
	Name      string `json:"name"`
	Version   string `json:"version"`
}

type Server struct {
	config *config.Config
	client *client.Client
	token  string

	mu        sync.Mutex
	machineID string
}

func NewServer(cfg *config.Config) *Server {
	// media server responses are never cached
	clientConfig := cfg.Client
	clientConfig.UseCache = false
	return &Server{
		config: cfg,
		client: client.NewClient(&clientConfig),
		token:  cfg.Media.Token,
	}
}

// As returns a view of the server authorized with a different account
// token. An empty token returns the server itself.
func (s *Server) As(token string) *Server {
	if token == "" {
		return s
	}
	return &Server{
		config: s.config,
		client: s.client,
		token:  token,
	}
}

func (s *Server) headers() map[string]string {
	return map[string]string{
		client.HeaderAccept: "application/json",
		"X-Plex-Token":      s.token,
	}
}

func (s *Server) machine() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machineID
}

func (s *Server) endpoint(path string) string {
	return strings.TrimSuffix(s.config.Media.URL, "/") + path
}

type metadata struct {
	RatingKey        string  `json:"ratingKey"`
	Title            string  `json:"title"`
	GrandparentTitle string  `json:"grandparentTitle"`
	ViewCount        int     `json:"viewCount"`
	UserRating       float64 `json:"userRating"`
	Duration         int64   `json:"duration"`
	LeafCount        int     `json:"leafCount"`
	AddedAt          int64   `json:"addedAt"`
	Media            []struct {
		Part []struct {
			File string `json:"file"`
		} `json:"Part"`
	} `json:"Media"`
}

func (m metadata) file() string {
	for _, media := range m.Media {
		for _, part := range media.Part {
			if part.File != "" {
				return part.File
			}
		}
	}
	return ""
}

type container struct {
	MediaContainer struct {
		FriendlyName      string `json:"friendlyName"`
		Version           string `json:"version"`
		MachineIdentifier string `json:"machineIdentifier"`
		Directory         []struct {
			Key   string `json:"key"`
			Title string `json:"title"`
			Type  string `json:"type"`
		} `json:"Directory"`
		Metadata []metadata `json:"Metadata"`
	} `json:"MediaContainer"`
}

// Status probes the server root; a failure means not connected, which the
// engine surfaces as upstream unavailable.
func (s *Server) Status() ServerStatus {
	var c container
	err := s.client.GetJsonWith(s.headers(), s.endpoint("/"), &c)
	if err != nil {
		return ServerStatus{}
	}
	s.mu.Lock()
	s.machineID = c.MediaContainer.MachineIdentifier
	s.mu.Unlock()
	return ServerStatus{
		Connected: true,
		Name:      c.MediaContainer.FriendlyName,
		Version:   c.MediaContainer.Version,
	}
}

func (s *Server) Libraries() ([]Library, error) {
	var c container
	err := s.client.GetJsonWith(s.headers(), s.endpoint("/library/sections"), &c)
	if err != nil {
		return nil, err
	}
	libraries := make([]Library, 0, len(c.MediaContainer.Directory))
	for _, d := range c.MediaContainer.Directory {
		libraries = append(libraries, Library{
			Key:   d.Key,
			Title: d.Title,
			Type:  d.Type,
		})
	}
	return libraries, nil
}

// Tracks lists all audio items in the given libraries.
func (s *Server) Tracks(libraryKeys []string) ([]Track, error) {
	var tracks []Track
	for _, key := range libraryKeys {
		var c container
		u := s.endpoint(fmt.Sprintf("/library/sections/%s/all?type=10", key))
		err := s.client.GetJsonWith(s.headers(), u, &c)
		if err != nil {
			return nil, err
		}
		for _, m := range c.MediaContainer.Metadata {
			tracks = append(tracks, Track{
				Ref:    m.RatingKey,
				Title:  m.Title,
				Artist: m.GrandparentTitle,
				File:   m.file(),
				Views:  m.ViewCount,
				Rating: m.UserRating,
			})
		}
	}
	return tracks, nil
}

// CreatePlaylist builds a playlist with the given ordered item refs.
func (s *Server) CreatePlaylist(name string, refs []string) error {
	if len(refs) == 0 {
		return errors.New("empty playlist")
	}
	machineID := s.machine()
	if machineID == "" {
		status := s.Status()
		if !status.Connected {
			return errors.New("media server unreachable")
		}
		machineID = s.machine()
	}
	uri := fmt.Sprintf("server://%s/com.plexapp.plugins.library/library/metadata/%s",
		machineID, strings.Join(refs, ","))
	u := s.endpoint(fmt.Sprintf("/playlists?type=audio&smart=0&title=%s&uri=%s",
		url.QueryEscape(name), url.QueryEscape(uri)))
	return s.client.PostJson(s.headers(), u, nil)
}

// DeletePlaylist removes the named playlist; deleting a playlist that does
// not exist is not an error.
func (s *Server) DeletePlaylist(name string) error {
	playlists, err := s.Playlists("")
	if err != nil {
		return err
	}
	for _, p := range playlists {
		if p.Title == name {
			return s.client.Delete(s.headers(),
				s.endpoint("/playlists/"+p.Ref))
		}
	}
	return nil
}

func (s *Server) Playlists(prefix string) ([]Playlist, error) {
	var c container
	err := s.client.GetJsonWith(s.headers(), s.endpoint("/playlists"), &c)
	if err != nil {
		return nil, err
	}
	var playlists []Playlist
	for _, m := range c.MediaContainer.Metadata {
		if prefix != "" && !strings.HasPrefix(m.Title, prefix) {
			continue
		}
		playlists = append(playlists, Playlist{
			Ref:       m.RatingKey,
			Title:     m.Title,
			Duration:  m.Duration,
			ItemCount: m.LeafCount,
			AddedAt:   time.Unix(m.AddedAt, 0),
		})
	}
	return playlists, nil
}

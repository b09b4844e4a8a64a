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

// Package engine drives playlist generation: a daily scheduling loop, a
// per-scope generation orchestrator, and the status surface the API layer
// queries.
package engine

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/dailydrive/dailydrive/config"
	"github.com/dailydrive/dailydrive/lib/str"
	"github.com/dailydrive/dailydrive/media"
	"github.com/dailydrive/dailydrive/podcast"
	"github.com/dailydrive/dailydrive/store"
)

var (
	// ErrUpstreamUnavailable aborts one scope's run; retried at the next
	// firing.
	ErrUpstreamUnavailable = errors.New("media server unavailable")
	// ErrNoContent means the mixer produced nothing; no collection or
	// history row is created.
	ErrNoContent = errors.New("no content available")
	// ErrBusy rejects a second generation request for a scope that
	// already has one in flight.
	ErrBusy = errors.New("generation already in progress for scope")
)

// MediaServer is the external collaborator the orchestrator needs. The
// concrete implementation lives in the media package.
type MediaServer interface {
	Status() media.ServerStatus
	Libraries() ([]media.Library, error)
	Tracks(libraryKeys []string) ([]media.Track, error)
	CreatePlaylist(name string, refs []string) error
	DeletePlaylist(name string) error
	Playlists(prefix string) ([]media.Playlist, error)
}

type Engine struct {
	config  *config.Config
	store   *store.Store
	podcast *podcast.Podcast
	media   MediaServer
	mediaFn func(token string) MediaServer

	randFn func() *rand.Rand

	mu       sync.Mutex
	inflight map[string]bool
	lastRuns map[string]RunResult

	reconfig chan struct{}
}

func NewEngine(cfg *config.Config, s *store.Store, p *podcast.Podcast,
	m MediaServer) *Engine {
	return &Engine{
		config:  cfg,
		store:   s,
		podcast: p,
		media:   m,
		randFn: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		inflight: make(map[string]bool),
		lastRuns: make(map[string]RunResult),
		reconfig: make(chan struct{}, 1),
	}
}

// MediaFor installs a per-token media server constructor. Profiles bound
// to their own media account generate against that account, so view
// counts and ratings classify per user.
func (e *Engine) MediaFor(fn func(token string) MediaServer) {
	e.mediaFn = fn
}

// mediaServer picks the media view for one scope: the profile's bound
// account when present, the shared server otherwise.
func (e *Engine) mediaServer(profile Profile) MediaServer {
	if profile.MediaToken != "" && e.mediaFn != nil {
		return e.mediaFn(profile.MediaToken)
	}
	return e.media
}

// Reconfigure pokes the scheduling loop to pick up changed schedules or
// the enabled flag; an in-flight firing is never interrupted.
func (e *Engine) Reconfigure() {
	select {
	case e.reconfig <- struct{}{}:
	default:
	}
}

func scopeKey(userID *uint) string {
	if userID == nil {
		return "global"
	}
	return "user:" + str.Itoa(int(*userID))
}

// acquire takes the scope's ownership token; at most one generation runs
// per scope at a time.
func (e *Engine) acquire(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inflight[key] {
		return false
	}
	e.inflight[key] = true
	return true
}

func (e *Engine) release(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inflight, key)
}

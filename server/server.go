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

// Package server exposes the engine over a JSON HTTP API and hosts the
// scheduling loop for the lifetime of the process.
package server

import (
	"context"
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/dailydrive/dailydrive/config"
	"github.com/dailydrive/dailydrive/engine"
	"github.com/dailydrive/dailydrive/lib/log"
	"github.com/dailydrive/dailydrive/media"
	"github.com/dailydrive/dailydrive/podcast"
	"github.com/dailydrive/dailydrive/store"
)

func makeStore(config *config.Config) (*store.Store, error) {
	s := store.NewStore(config)
	err := s.Open()
	return s, err
}

func makePodcast(config *config.Config) (*podcast.Podcast, error) {
	p := podcast.NewPodcast(config)
	err := p.Open()
	return p, err
}

func Serve(config *config.Config) error {
	s, err := makeStore(config)
	log.CheckError(err)

	p, err := makePodcast(config)
	log.CheckError(err)
	p.UseSettings(s)

	m := media.NewServer(config)
	e := engine.NewEngine(config, s, p, m)
	e.MediaFor(func(token string) engine.MediaServer {
		return m.As(token)
	})

	go e.Run(context.Background())

	// base context for all requests
	ctx := RequestContext{
		config:  config,
		store:   s,
		podcast: p,
		media:   m,
		engine:  e,
	}

	mux := pat.New()

	// status
	mux.Get("/api/status", requestHandler(ctx, apiStatus))

	// settings
	mux.Get("/api/settings", requestHandler(ctx, apiSettings))
	mux.Post("/api/settings", requestHandler(ctx, apiSettingsPost))
	mux.Get("/api/schedules", requestHandler(ctx, apiSchedules))
	mux.Post("/api/schedules", requestHandler(ctx, apiSchedulesPost))

	// media server
	mux.Get("/api/libraries", requestHandler(ctx, apiLibraries))
	mux.Get("/api/playlists", requestHandler(ctx, apiPlaylists))

	// generation
	mux.Post("/api/generate", requestHandler(ctx, apiGenerate))
	mux.Get("/api/history", requestHandler(ctx, apiHistory))

	// podcasts
	mux.Get("/api/podcasts", requestHandler(ctx, apiPodcasts))
	mux.Get("/api/podcasts/search", requestHandler(ctx, apiPodcastSearch))
	mux.Get("/api/podcasts/preview", requestHandler(ctx, apiPodcastPreview))
	mux.Post("/api/podcasts", requestHandler(ctx, apiPodcastSubscribe))
	mux.Post("/api/podcasts/refresh", requestHandler(ctx, apiPodcastRefresh))
	mux.Get("/api/podcasts/:id/episodes", requestHandler(ctx, apiPodcastEpisodes))
	mux.Post("/api/podcasts/:id/toggle", requestHandler(ctx, apiPodcastToggle))
	mux.Del("/api/podcasts/:id", requestHandler(ctx, apiPodcastDelete))

	// users
	mux.Get("/api/users", requestHandler(ctx, apiUsers))
	mux.Post("/api/users", requestHandler(ctx, apiUserCreate))
	mux.Get("/api/users/:id", requestHandler(ctx, apiUserGet))
	mux.Put("/api/users/:id", requestHandler(ctx, apiUserUpdate))
	mux.Del("/api/users/:id", requestHandler(ctx, apiUserDelete))
	mux.Post("/api/users/:id/toggle", requestHandler(ctx, apiUserToggle))
	mux.Post("/api/users/:id/generate", requestHandler(ctx, apiUserGenerate))

	log.Printf("listening on %s\n", config.Server.Listen)
	http.Handle("/", mux)
	return http.ListenAndServe(config.Server.Listen, nil)
}

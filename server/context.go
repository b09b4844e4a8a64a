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

package server

import (
	"context"
	"net/http"

	"github.com/dailydrive/dailydrive/config"
	"github.com/dailydrive/dailydrive/engine"
	"github.com/dailydrive/dailydrive/media"
	"github.com/dailydrive/dailydrive/podcast"
	"github.com/dailydrive/dailydrive/store"
)

type contextKey string

const requestContextKey contextKey = "dailydrive.context"

// RequestContext carries the service handles every API handler needs; one
// value is built at startup and shared by all requests.
type RequestContext struct {
	config  *config.Config
	store   *store.Store
	podcast *podcast.Podcast
	media   *media.Server
	engine  *engine.Engine
}

func (ctx RequestContext) Config() *config.Config {
	return ctx.config
}

func (ctx RequestContext) Store() *store.Store {
	return ctx.store
}

func (ctx RequestContext) Podcast() *podcast.Podcast {
	return ctx.podcast
}

func (ctx RequestContext) Media() *media.Server {
	return ctx.media
}

func (ctx RequestContext) Engine() *engine.Engine {
	return ctx.engine
}

func withContext(r *http.Request, ctx RequestContext) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestContextKey, ctx))
}

func contextValue(r *http.Request) RequestContext {
	return r.Context().Value(requestContextKey).(RequestContext)
}

func requestHandler(ctx RequestContext, handler http.HandlerFunc) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, withContext(r, ctx))
	}
	return http.HandlerFunc(fn)
}

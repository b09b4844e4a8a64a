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
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"

	"github.com/dailydrive/dailydrive/lib/str"
	"github.com/dailydrive/dailydrive/podcast"
	"github.com/dailydrive/dailydrive/store"
)

func writeJson(w http.ResponseWriter, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func readJson(r *http.Request, result interface{}) error {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, result)
}

func paramID(r *http.Request) (uint, error) {
	id := str.Atoi(r.URL.Query().Get(":id"))
	if id <= 0 {
		return 0, errors.New("bad id")
	}
	return uint(id), nil
}

type successResult struct {
	Success bool `json:"success"`
}

var ok = successResult{Success: true}

// GET /api/status > engine.Status{}
func apiStatus(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	writeJson(w, ctx.Engine().Status())
}

// GET /api/settings > map[key]value
func apiSettings(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	writeJson(w, ctx.Store().Settings())
}

// POST /api/settings < map[key]value
// 200: applied
// 400: unknown key or bad value; nothing applied
func apiSettingsPost(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	var values map[string]string
	if err := readJson(r, &values); err != nil {
		badRequest(w, "bad request body")
		return
	}
	if err := ctx.Store().SaveSettings(values); err != nil {
		handleErr(w, err)
		return
	}
	// schedule or enabled changes take effect without a restart
	ctx.Engine().Reconfigure()
	writeJson(w, ctx.Store().Settings())
}

// GET /api/schedules > []Schedule
func apiSchedules(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	writeJson(w, ctx.Store().Schedules())
}

// POST /api/schedules < []Schedule
// The set is replaced as a whole; an invalid entry rejects the update.
func apiSchedulesPost(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	var schedules []store.Schedule
	if err := readJson(r, &schedules); err != nil {
		badRequest(w, "bad request body")
		return
	}
	if err := ctx.Store().SaveSchedules(schedules); err != nil {
		handleErr(w, err)
		return
	}
	ctx.Engine().Reconfigure()
	writeJson(w, ctx.Store().Schedules())
}

// GET /api/libraries > []media.Library
func apiLibraries(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	libraries, err := ctx.Media().Libraries()
	if err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, libraries)
}

// GET /api/playlists > []media.Playlist
func apiPlaylists(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	playlists, err := ctx.Media().Playlists(r.URL.Query().Get("prefix"))
	if err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, playlists)
}

// GET /api/history > []store.History
func apiHistory(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	writeJson(w, ctx.Store().History())
}

// POST /api/generate > engine.Summary{}
// 409: a global generation is already running
func apiGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	summary, err := ctx.Engine().Generate(nil)
	if err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, summary)
}

// POST /api/users/:id/generate > engine.Summary{}
func apiUserGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	id, err := paramID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	summary, err := ctx.Engine().Generate(&id)
	if err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, summary)
}

// GET /api/podcasts > []podcast.Subscription
func apiPodcasts(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	writeJson(w, ctx.Podcast().Subscriptions())
}

// GET /api/podcasts/search?q=term > []podcast.CatalogResult
func apiPodcastSearch(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	q := r.URL.Query().Get("q")
	if q == "" {
		badRequest(w, "missing query")
		return
	}
	results, err := ctx.Podcast().SearchCatalog(q)
	if err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, results)
}

// GET /api/podcasts/preview?url=feed > []rss.Item
func apiPodcastPreview(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	feedURL := r.URL.Query().Get("url")
	if feedURL == "" {
		badRequest(w, "missing url")
		return
	}
	items, err := ctx.Podcast().FeedPreview(feedURL,
		ctx.Config().Podcast.FeedLimit)
	if err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, items)
}

// POST /api/podcasts < podcast.CatalogResult{} > podcast.Subscription{}
// Subscribing to an already-subscribed feed returns the existing row.
func apiPodcastSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	var result podcast.CatalogResult
	if err := readJson(r, &result); err != nil {
		badRequest(w, "bad request body")
		return
	}
	sub, err := ctx.Podcast().Subscribe(result)
	if err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, sub)
}

// DELETE /api/podcasts/:id
func apiPodcastDelete(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	id, err := paramID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := ctx.Podcast().Unsubscribe(id); err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, ok)
}

// POST /api/podcasts/:id/toggle < {"enabled": bool}
func apiPodcastToggle(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	id, err := paramID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var toggle struct {
		Enabled bool `json:"enabled"`
	}
	if err := readJson(r, &toggle); err != nil {
		badRequest(w, "bad request body")
		return
	}
	if err := ctx.Podcast().Toggle(id, toggle.Enabled); err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, ok)
}

// GET /api/podcasts/:id/episodes > []podcast.Episode
func apiPodcastEpisodes(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	id, err := paramID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	sub, err := ctx.Podcast().LookupSubscription(id)
	if err != nil {
		handleErr(w, ErrNotFound)
		return
	}
	writeJson(w, ctx.Podcast().Episodes(sub))
}

// POST /api/podcasts/refresh > {"refreshed": n}
// Runs a feed refresh immediately instead of waiting for the next firing.
func apiPodcastRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	n, err := ctx.Podcast().Refresh()
	if err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, map[string]int{"refreshed": n})
}

// GET /api/users > []store.User
func apiUsers(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	writeJson(w, ctx.Store().Users())
}

// POST /api/users < store.User{} > store.User{}
func apiUserCreate(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	var user store.User
	if err := readJson(r, &user); err != nil {
		badRequest(w, "bad request body")
		return
	}
	if err := ctx.Store().CreateUser(&user); err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, user)
}

// GET /api/users/:id > store.User{}
func apiUserGet(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	id, err := paramID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	user, err := ctx.Store().LookupUser(id)
	if err != nil {
		handleErr(w, ErrNotFound)
		return
	}
	writeJson(w, user)
}

// PUT /api/users/:id < store.User{} > store.User{}
func apiUserUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	id, err := paramID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	user, err := ctx.Store().LookupUser(id)
	if err != nil {
		handleErr(w, ErrNotFound)
		return
	}
	if err := readJson(r, &user); err != nil {
		badRequest(w, "bad request body")
		return
	}
	user.ID = id
	if err := ctx.Store().UpdateUser(&user); err != nil {
		handleErr(w, err)
		return
	}
	writeJson(w, user)
}

// DELETE /api/users/:id
func apiUserDelete(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	id, err := paramID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := ctx.Store().DeleteUser(id); err != nil {
		handleErr(w, ErrNotFound)
		return
	}
	writeJson(w, ok)
}

// POST /api/users/:id/toggle < {"enabled": bool}
func apiUserToggle(w http.ResponseWriter, r *http.Request) {
	ctx := contextValue(r)
	id, err := paramID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var toggle struct {
		Enabled bool `json:"enabled"`
	}
	if err := readJson(r, &toggle); err != nil {
		badRequest(w, "bad request body")
		return
	}
	if err := ctx.Store().ToggleUser(id, toggle.Enabled); err != nil {
		handleErr(w, ErrNotFound)
		return
	}
	writeJson(w, ok)
}

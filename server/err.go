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
	"net/http"

	"github.com/dailydrive/dailydrive/engine"
	"github.com/dailydrive/dailydrive/store"
)

var ErrNotFound = errors.New("not found")

type errorResult struct {
	Success bool              `json:"success"`
	Reason  string            `json:"reason"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, code int, reason string,
	fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorResult{
		Reason: reason,
		Fields: fields,
	})
}

// handleErr maps the service errors onto HTTP codes: validation to 400,
// busy scopes to 409, missing things to 404, media server trouble to 502.
func handleErr(w http.ResponseWriter, err error) {
	var invalid *store.InvalidError
	switch {
	case errors.As(err, &invalid):
		writeError(w, http.StatusBadRequest, invalid.Error(), invalid.Fields)
	case errors.Is(err, engine.ErrBusy):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, engine.ErrNoContent):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, engine.ErrUpstreamUnavailable):
		writeError(w, http.StatusBadGateway, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), nil)
	}
}

func badRequest(w http.ResponseWriter, reason string) {
	writeError(w, http.StatusBadRequest, reason, nil)
}

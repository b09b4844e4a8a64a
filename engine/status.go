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

package engine

import (
	"sort"
	"time"

	"github.com/dailydrive/dailydrive/media"
)

// RunResult is the outcome of the most recent generation for one scope.
type RunResult struct {
	Scope    string    `json:"scope"`
	Name     string    `json:"name,omitempty"`
	RunID    string    `json:"runId,omitempty"`
	Error    string    `json:"error,omitempty"`
	Finished time.Time `json:"finished"`
}

// Status is the engine snapshot the API layer reports.
type Status struct {
	Connected bool               `json:"connected"`
	Server    media.ServerStatus `json:"server"`
	Enabled   bool               `json:"enabled"`
	NextRuns  []time.Time        `json:"nextRuns"`
	LastRuns  []RunResult        `json:"lastRuns"`
}

func (e *Engine) recordRun(key string, summary *Summary, err error) {
	result := RunResult{
		Scope:    key,
		Finished: time.Now(),
	}
	if err != nil {
		result.Error = err.Error()
	} else if summary != nil {
		result.Name = summary.Name
		result.RunID = summary.RunID
	}
	e.mu.Lock()
	e.lastRuns[key] = result
	e.mu.Unlock()
}

// NextRuns returns the upcoming firing times in ascending order.
func (e *Engine) NextRuns() []time.Time {
	times := NextFireTimes(time.Now(), e.store.Schedules(),
		e.config.Schedule.Location())
	sort.Slice(times, func(i, j int) bool {
		return times[i].Before(times[j])
	})
	return times
}

func (e *Engine) Status() Status {
	server := e.media.Status()
	status := Status{
		Connected: server.Connected,
		Server:    server,
		Enabled:   e.store.Enabled(),
		NextRuns:  e.NextRuns(),
	}
	e.mu.Lock()
	for _, r := range e.lastRuns {
		status.LastRuns = append(status.LastRuns, r)
	}
	e.mu.Unlock()
	sort.Slice(status.LastRuns, func(i, j int) bool {
		return status.LastRuns[i].Scope < status.LastRuns[j].Scope
	})
	return status
}

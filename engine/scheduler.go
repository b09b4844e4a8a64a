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
	"context"
	"errors"
	"time"

	"github.com/dailydrive/dailydrive/lib/log"
	"github.com/dailydrive/dailydrive/store"
)

// NextFireTimes computes, for each schedule, the next local time at or
// after now with that schedule's hour and minute, rolling to the next day
// when today's occurrence has passed. Results parallel the input,
// duplicates included.
func NextFireTimes(now time.Time, schedules []store.Schedule,
	loc *time.Location) []time.Time {
	now = now.In(loc)
	times := make([]time.Time, 0, len(schedules))
	for _, schedule := range schedules {
		next := time.Date(now.Year(), now.Month(), now.Day(),
			schedule.Hour, schedule.Minute, 0, 0, loc)
		if next.Before(now) {
			next = next.AddDate(0, 0, 1)
		}
		times = append(times, next)
	}
	return times
}

const (
	waitElapsed = iota
	waitReconfigured
	waitStopped
)

// wait sleeps until the deadline, a reconfigure poke, or cancellation,
// whichever comes first.
func (e *Engine) wait(ctx context.Context, until time.Time) int {
	d := time.Until(until)
	if d <= 0 {
		return waitElapsed
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return waitStopped
	case <-e.reconfig:
		return waitReconfigured
	case <-timer.C:
		return waitElapsed
	}
}

// Run is the scheduling loop. Each iteration re-reads the schedule set
// and enabled flag, sleeps until the earliest firing minus the refresh
// lead, refreshes podcast feeds, then fires every scope at the scheduled
// time. Reconfigure wakes the loop so settings changes take effect
// without a restart.
func (e *Engine) Run(ctx context.Context) {
	loc := e.config.Schedule.Location()
	log.Printf("scheduler started, timezone %s\n", loc)

	for {
		if ctx.Err() != nil {
			return
		}

		if !e.store.Enabled() {
			// sleep until re-enabled
			select {
			case <-ctx.Done():
				return
			case <-e.reconfig:
			}
			continue
		}

		fireTimes := NextFireTimes(time.Now(), e.store.Schedules(), loc)
		next := fireTimes[0]
		for _, t := range fireTimes[1:] {
			if t.Before(next) {
				next = t
			}
		}

		lead := e.config.Schedule.RefreshLead
		switch e.wait(ctx, next.Add(-lead)) {
		case waitStopped:
			return
		case waitReconfigured:
			continue
		}

		if _, err := e.podcast.Refresh(); err != nil {
			log.Printf("feed refresh failed: %s\n", err)
		}

		switch e.wait(ctx, next) {
		case waitStopped:
			return
		case waitReconfigured:
			continue
		}

		e.fire()

		// step past the minute that just fired
		e.wait(ctx, next.Add(time.Minute))
	}
}

// fire runs generation for every enabled scope: each enabled user, or the
// global scope when no users are configured. One scope's failure never
// blocks the others.
func (e *Engine) fire() {
	users := e.store.EnabledUsers()
	if len(users) == 0 {
		e.fireScope(nil)
		return
	}
	for i := range users {
		e.fireScope(&users[i].ID)
	}
}

func (e *Engine) fireScope(userID *uint) {
	_, err := e.Generate(userID)
	if err != nil && !errors.Is(err, ErrBusy) {
		log.Printf("generation failed for %s: %s\n", scopeKey(userID), err)
	}
}

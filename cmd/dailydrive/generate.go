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

package main

import (
	"fmt"

	"github.com/dailydrive/dailydrive/engine"
	"github.com/dailydrive/dailydrive/media"
	"github.com/dailydrive/dailydrive/podcast"
	"github.com/dailydrive/dailydrive/store"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "generate a playlist now",
	RunE: func(cmd *cobra.Command, args []string) error {
		return generate()
	},
}

var generateUser uint

func generate() error {
	cfg := getConfig()

	s := store.NewStore(cfg)
	if err := s.Open(); err != nil {
		return err
	}
	defer s.Close()

	p := podcast.NewPodcast(cfg)
	if err := p.Open(); err != nil {
		return err
	}
	defer p.Close()
	p.UseSettings(s)

	m := media.NewServer(cfg)
	e := engine.NewEngine(cfg, s, p, m)
	e.MediaFor(func(token string) engine.MediaServer {
		return m.As(token)
	})

	var userID *uint
	if generateUser > 0 {
		userID = &generateUser
	}
	summary, err := e.Generate(userID)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d music + %d podcasts = %d tracks\n",
		summary.Name, summary.Music, summary.Podcasts, summary.Total)
	return nil
}

func init() {
	generateCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file")
	generateCmd.Flags().UintVarP(&generateUser, "user", "u", 0, "user id (default global)")
	rootCmd.AddCommand(generateCmd)
}

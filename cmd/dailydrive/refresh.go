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

	"github.com/dailydrive/dailydrive/podcast"
	"github.com/dailydrive/dailydrive/store"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "refresh podcast feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return refresh()
	},
}

func refresh() error {
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

	n, err := p.Refresh()
	if err != nil {
		return err
	}
	fmt.Printf("%d new episodes\n", n)
	return nil
}

func init() {
	refreshCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file")
	rootCmd.AddCommand(refreshCmd)
}

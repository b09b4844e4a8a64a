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

	"github.com/dailydrive/dailydrive"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "dailydrive version",
	Run: func(cmd *cobra.Command, args []string) {
		version()
	},
}

func version() {
	fmt.Println(dailydrive.AppName, dailydrive.Version)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

/*
   Copyright 2026 Network Monitor authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pbielenia/network-monitor/pkg/monitor"
)

func setupFlags(flags *pflag.FlagSet, configFile *string, verbose *bool) {
	flags.StringVarP(configFile, "config", "c", "network-monitor.yaml", "configuration file")
	flags.BoolVar(verbose, "verbose", false, "enable debug logging")
}

func main() {
	var configFile string
	var verbose bool

	command := &cobra.Command{
		Use:   "network-monitor",
		Short: "Record live passenger events of an underground network",
		Long: `network-monitor downloads the network layout, connects to the live
network-events feed over STOMP and keeps per-station passenger tallies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			logrus.SetFormatter(&logrus.TextFormatter{
				FullTimestamp: true,
			})

			cfg, err := monitor.LoadConfig(configFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return monitor.New(cfg).Run(ctx)
		},
	}

	setupFlags(command.Flags(), &configFile, &verbose)

	if err := command.ExecuteContext(context.Background()); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

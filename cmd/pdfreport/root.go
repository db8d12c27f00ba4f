// seehuhn.de/go/pdfreport - relative layout and page overlays for PDF reports
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"seehuhn.de/go/pdfreport/internal/config"
	"seehuhn.de/go/pdfreport/internal/observability"
)

// app holds the state shared by the subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:           "pdfreport",
		Short:         "Render data reports as PDF files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./pdfreport.yaml)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-file", "", "write JSON logs to this file")
	a.bind("logger.level", flags.Lookup("log-level"))
	a.bind("logger.log_file", flags.Lookup("log-file"))

	cmd.AddCommand(a.newRenderCmd(), a.newFontsCmd(), newVersionCmd())
	return cmd
}

// initialize reads the configuration file and sets up logging.
func (a *app) initialize() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("pdfreport")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := config.NewConfigFromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	observability.InitializeLogger(cfg.Logger)
	observability.GetLogger().Debug("configuration loaded",
		zap.String("file", a.v.ConfigFileUsed()))
	return nil
}

func (a *app) bind(key string, flag *pflag.Flag) {
	err := a.v.BindPFlag(key, flag)
	if err != nil {
		panic(err)
	}
}

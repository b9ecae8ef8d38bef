/*
Copyright © 2026 the SmokePlume authors.
This file is part of SmokePlume.

SmokePlume is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SmokePlume is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SmokePlume.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package plumeutil holds the command-line interface and HTTP service
// wrapping the plume model.
package plumeutil

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/plume"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to SmokePlume.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "addr",
			usage: `
              addr is the address the plume service listens on.`,
			defaultVal: ":8080",
			flagsets:   []*pflag.FlagSet{serveCmd.Flags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel sets the logging verbosity. Acceptable values are
              'debug', 'info', 'warn', and 'error'.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "segments",
			usage: `
              segments is the number of arc segments used to draw each
              plume wedge polygon.`,
			defaultVal: 40,
			flagsets:   []*pflag.FlagSet{serveCmd.Flags()},
		},
		{
			name: "hours",
			usage: `
              hours is the comma-separated list of default forecast
              horizons, in hours, used when a request does not specify
              its own.`,
			defaultVal: "0.5,1,2",
			flagsets:   []*pflag.FlagSet{serveCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PLUME")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(serveCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("plume: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// parseHours parses a comma-separated horizon list such as "0.5,1,2".
func parseHours(s string) ([]float64, error) {
	var hours []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		h, err := cast.ToFloat64E(part)
		if err != nil {
			return nil, fmt.Errorf("plume: invalid horizon %q: %v", part, err)
		}
		hours = append(hours, h)
	}
	if len(hours) == 0 {
		return nil, fmt.Errorf("plume: no horizons in %q", s)
	}
	return hours, nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "plume",
	Short: "A smoke plume prediction model for wildland fires.",
	Long: `SmokePlume predicts the ground shadow of wildfire smoke as a time
series of polygons. Use the subcommands specified below to access the model
functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'PLUME_var' where 'var' is
the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of SmokePlume.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("SmokePlume v%s\n", plume.Version)
	},
	DisableAutoGenTag: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve plume predictions over HTTP.",
	Long: `serve starts an HTTP service that computes plume predictions on
demand. POST fire observations to /api/plume for a static frame series or to
/api/plume/dynamic for a stepped simulation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Serve(Cfg)
	},
	DisableAutoGenTag: true,
}

// Serve runs the plume HTTP service until the listener fails.
func Serve(cfg *viper.Viper) error {
	level, err := logrus.ParseLevel(cfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("plume: invalid log level: %v", err)
	}
	logrus.SetLevel(level)

	hours, err := parseHours(cfg.GetString("hours"))
	if err != nil {
		return err
	}

	s := NewServer(hours, cfg.GetInt("segments"))
	addr := cfg.GetString("addr")
	s.Log.WithFields(logrus.Fields{
		"addr":     addr,
		"horizons": hours,
	}).Info("plume service starting")

	corsOptions := []handlers.CORSOption{
		handlers.AllowedMethods([]string{"POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	}
	return http.ListenAndServe(addr, handlers.CORS(corsOptions...)(s))
}

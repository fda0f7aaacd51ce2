/*
Copyright © 2024 the plasmasrc authors.
This file is part of plasmasrc.

plasmasrc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

plasmasrc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with plasmasrc.  If not, see <http://www.gnu.org/licenses/>.
*/

package plasmautil

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is the version of this program.
const Version = "0.1.0"

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to plasmasrc.
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
			name: "LogLevel",
			usage: `
              LogLevel specifies the amount of information that is logged.
              Options are panic, fatal, error, warn, info, debug and trace.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Times",
			usage: `
              Times specifies the simulation times [s] at which to evaluate
              the sources.`,
			shorthand:  "t",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{evalCmd.Flags()},
		},
		{
			name: "Explicit",
			usage: `
              Explicit specifies whether to evaluate the explicit sources
              instead of the implicit sources.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{evalCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PLASMASRC")
	Cfg.AutomaticEnv()

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
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
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
	Root.AddCommand(evalCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		Cfg.SetConfigType("toml")
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("plasmasrc: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("plasmasrc: LogLevel: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "plasmasrc",
	Short: "Tokamak transport source models.",
	Long: `plasmasrc calculates the contributions of heating, current drive,
particle and radiation sources to the governing equations of a tokamak
transport simulation.

Sources, the radial grid and the plasma state are specified in a TOML
configuration file, provided using the --config flag. Other options can be set
using command-line arguments, the configuration file, or environment variables
in the format 'PLASMASRC_var' where 'var' is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of plasmasrc.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "plasmasrc v%s\n", Version)
	},
	DisableAutoGenTag: true,
}

// evalCmd evaluates the configured sources and prints their totals.
var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the sources.",
	Long: `eval evaluates the configured sources at each of the requested times and
prints the volume- or area-integrated contribution of each source to each
equation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgpath := Cfg.GetString("config")
		if cfgpath == "" {
			return fmt.Errorf("plasmasrc: a configuration file must be specified using --config")
		}
		config, err := ReadConfigFile(cfgpath)
		if err != nil {
			return err
		}
		times, err := parseTimes(Cfg.Get("Times"))
		if err != nil {
			return err
		}
		m, core, err := Load(config, logrus.StandardLogger())
		if err != nil {
			return err
		}
		profiles, err := EvaluateTimes(m, times, core, Cfg.GetBool("Explicit"))
		if err != nil {
			return err
		}
		_, err = TotalsTable(times, profiles, m.Geometry()).Tabbed(cmd.OutOrStdout())
		return err
	},
	DisableAutoGenTag: true,
}

// parseTimes converts the Times option, which may come from a flag, an
// environment variable or the configuration file, into numbers.
func parseTimes(raw interface{}) ([]float64, error) {
	s, err := cast.ToStringSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("plasmasrc: Times: %v", err)
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("plasmasrc: no evaluation times were specified")
	}
	o := make([]float64, len(s))
	for i, v := range s {
		if o[i], err = cast.ToFloat64E(v); err != nil {
			return nil, fmt.Errorf("plasmasrc: Times: %v", err)
		}
	}
	return o, nil
}

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/custody/errors"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// config holds the process configuration of the daemon.
type config struct {
	Home     string
	ChainID  string
	Listen   string
	LogLevel string
	Genesis  string
	Debug    bool
}

// DBPath returns the path of the state database, or an empty string for
// an in memory state.
func (c config) DBPath() string {
	if c.Home == "" {
		return ""
	}
	return filepath.Join(c.Home, "custody.db")
}

// loadConfig reads the configuration from command line flags, environment
// variables prefixed with CUSTODYD_ and an optional custodyd.{yaml,json,toml}
// file found in the home directory, in that order of precedence.
func loadConfig(args []string) (*config, error) {
	fl := flag.NewFlagSet("custodyd", flag.ContinueOnError)
	fl.String("home", defaultHome(), "Directory holding the state and the configuration file. Empty keeps the state in memory.")
	fl.String("chain_id", "", "Expected chain id. Must match the genesis.")
	fl.String("http.listen", ":8080", "HTTP API bind address.")
	fl.String("log.level", "info", "Log level, one of debug, info, error or none.")
	fl.String("genesis", "", "Genesis file applied on the first start.")
	fl.Bool("debug", false, "Return full error messages to the clients.")
	if err := fl.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}

	v := viper.New()
	v.SetEnvPrefix("custodyd")
	// http.listen is read from CUSTODYD_HTTP_LISTEN
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fl); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}

	if home := v.GetString("home"); home != "" {
		v.SetConfigName("custodyd")
		v.AddConfigPath(home)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrapf(errors.ErrInput, "config file: %s", err)
			}
		}
	}

	return &config{
		Home:     v.GetString("home"),
		ChainID:  v.GetString("chain_id"),
		Listen:   v.GetString("http.listen"),
		LogLevel: v.GetString("log.level"),
		Genesis:  v.GetString("genesis"),
		Debug:    v.GetBool("debug"),
	}, nil
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".custodyd")
}

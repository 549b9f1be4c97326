package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iov-one/custody/app"
	custodyapp "github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// gitHash is set during the compilation time.
var gitHash = "dev"

// errNotInitialized is returned when the daemon starts without state and
// without a genesis file.
var errNotInitialized = errors.Wrap(errors.ErrState, "chain not initialized, genesis file required")

func main() {
	conf, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := newLogger(conf.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(conf, logger); err != nil {
		logger.Error("custodyd", "err", err)
		os.Exit(1)
	}
}

func newLogger(level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(os.Stdout)), opt), nil
}

func run(conf *config, logger log.Logger) error {
	if conf.Home != "" {
		if err := os.MkdirAll(conf.Home, 0700); err != nil {
			return errors.Wrap(err, "create home directory")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	a, err := openApp(conf, reg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    conf.Listen,
		Handler: newServer(a, logger).Handler(reg),
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", conf.Listen, "chain_id", a.ChainID())
		errc <- srv.ListenAndServe()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errc:
		return errors.Wrap(err, "http server")
	case sig := <-sigc:
		logger.Info("shutting down", "signal", sig.String())
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// openApp loads the application state. A fresh state is initialized from
// the genesis file.
func openApp(conf *config, reg *prometheus.Registry, logger log.Logger) (*app.BaseApp, error) {
	a, err := custodyapp.Application(conf.DBPath(), reg, conf.Debug)
	if err != nil {
		return nil, errors.Wrap(err, "open application")
	}
	a.WithLogger(logger)

	if a.ChainID() == "" {
		if conf.Genesis == "" {
			return nil, errNotInitialized
		}
		gen, err := app.LoadGenesis(conf.Genesis)
		if err != nil {
			return nil, err
		}
		if conf.ChainID != "" && conf.ChainID != gen.ChainID {
			return nil, errors.Wrapf(errors.ErrInput, "genesis chain id %q, expected %q", gen.ChainID, conf.ChainID)
		}
		if _, err := a.InitChain(gen); err != nil {
			return nil, errors.Wrap(err, "init chain")
		}
	}
	if conf.ChainID != "" && conf.ChainID != a.ChainID() {
		return nil, errors.Wrapf(errors.ErrState, "state belongs to chain %q, expected %q", a.ChainID(), conf.ChainID)
	}
	return a, nil
}

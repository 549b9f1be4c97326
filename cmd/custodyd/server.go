package main

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/x/multisig"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/upgrade"
	"github.com/iov-one/custody/x/wallet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/libs/log"
)

// maxTxSize limits the size of a submitted transaction.
const maxTxSize = 64 << 10

// server exposes the application over HTTP. All calls are serialized.
type server struct {
	mu     sync.Mutex
	app    *app.BaseApp
	logger log.Logger
	now    func() time.Time
}

func newServer(a *app.BaseApp, logger log.Logger) *server {
	return &server{app: a, logger: logger, now: time.Now}
}

// Handler returns the HTTP routes of the server.
func (s *server) Handler(gatherer prometheus.Gatherer) http.Handler {
	rt := http.NewServeMux()
	rt.HandleFunc("/tx", s.submitTx)
	rt.Handle("/wallets/", s.model("/wallets", func() custody.Persistent { return &wallet.Wallet{} }))
	rt.Handle("/multisigs/", s.model("/multisigs", func() custody.Persistent { return &multisig.Multisig{} }))
	rt.Handle("/deployments/", s.model("/deployments", func() custody.Persistent { return &upgrade.Deployment{} }))
	rt.Handle("/signers/", s.model("/signers", func() custody.Persistent { return &sigs.UserData{} }))
	rt.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	rt.HandleFunc("/version", s.version)
	return rt
}

// submitTx runs the binary transaction from the request body through
// CheckTx and, if that passes, through DeliverTx. The wall clock at
// submission is the block time.
func (s *server) submitTx(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		JSONErr(w, http.StatusMethodNotAllowed, "Only POST is allowed.")
		return
	}
	raw, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxTxSize))
	if err != nil {
		JSONErr(w, http.StatusRequestEntityTooLarge, "Cannot read transaction.")
		return
	}

	s.mu.Lock()
	now := s.now()
	res := s.app.CheckTx(now, raw)
	if res.IsOK() {
		res = s.app.DeliverTx(now, raw)
	}
	s.mu.Unlock()

	if !res.IsOK() {
		s.logger.Debug("transaction rejected", "code", res.Code, "log", res.Log)
		JSONResp(w, http.StatusBadRequest, res)
		return
	}
	JSONResp(w, http.StatusOK, res)
}

// model returns a handler serving a single entity of given query path,
// addressed by the last element of the URL path.
func (s *server) model(path string, fresh func() custody.Persistent) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			JSONErr(w, http.StatusMethodNotAllowed, "Only GET is allowed.")
			return
		}
		enc := strings.TrimPrefix(r.URL.Path, path+"/")
		addr, err := custody.ParseAddress(enc)
		if err != nil {
			JSONErr(w, http.StatusBadRequest, "Invalid address.")
			return
		}

		s.mu.Lock()
		models, err := s.app.Query(path, addr)
		s.mu.Unlock()
		if err != nil {
			s.logger.Error("query", "path", path, "err", err)
			JSONErr(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		if len(models) == 0 {
			JSONErr(w, http.StatusNotFound, "Not found.")
			return
		}
		obj := fresh()
		if err := obj.Unmarshal(models[0].Value); err != nil {
			s.logger.Error("cannot unmarshal model", "path", path, "err", err)
			JSONErr(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		JSONResp(w, http.StatusOK, obj)
	})
}

func (s *server) version(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	height, err := s.app.Height()
	chainID := s.app.ChainID()
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("height", "err", err)
		JSONErr(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	JSONResp(w, http.StatusOK, struct {
		Version string `json:"version"`
		ChainID string `json:"chain_id"`
		Height  int64  `json:"height"`
	}{
		Version: gitHash,
		ChainID: chainID,
		Height:  height,
	})
}

// JSONResp writes content as a JSON encoded response.
func JSONResp(w http.ResponseWriter, code int, content interface{}) {
	b, err := json.MarshalIndent(content, "", "\t")
	if err != nil {
		code = http.StatusInternalServerError
		b = []byte(`{"errors":["Internal Server Error"]}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

// JSONErr writes a single error as JSON encoded response.
func JSONErr(w http.ResponseWriter, code int, errText string) {
	JSONResp(w, code, struct {
		Errors []string `json:"errors"`
	}{
		Errors: []string{errText},
	})
}

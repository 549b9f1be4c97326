package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x/sigs"
)

// apiFlagUsage documents the --api flag shared by all commands talking to
// the daemon.
const apiFlagUsage = "custodyd HTTP API address. You can use CUSTODYCLI_API environment variable to set it."

func defaultAPI() string {
	return env("CUSTODYCLI_API", "http://localhost:8080")
}

// txResult is the response of the daemon to a submitted transaction.
type txResult struct {
	Code   uint32 `json:"code"`
	Log    string `json:"log"`
	Data   []byte `json:"data"`
	Height int64  `json:"height"`
}

func submitTx(apiURL string, raw []byte) (*txResult, error) {
	resp, err := http.Post(apiURL+"/tx", "application/octet-stream", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("cannot submit: %s", err)
	}
	defer resp.Body.Close()

	var res txResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("cannot decode response: %s", err)
	}
	if res.Code != 0 {
		return &res, fmt.Errorf("transaction failed with code %d: %s", res.Code, res.Log)
	}
	return &res, nil
}

func fetchChainID(apiURL string) (string, error) {
	resp, err := http.Get(apiURL + "/version")
	if err != nil {
		return "", fmt.Errorf("cannot fetch: %s", err)
	}
	defer resp.Body.Close()

	var payload struct {
		ChainID string `json:"chain_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("cannot decode response: %s", err)
	}
	return payload.ChainID, nil
}

// fetchSequence returns the sequence the next signature of given signer
// must carry. A signer that never signed starts at zero.
func fetchSequence(apiURL string, signer custody.Address) (int64, error) {
	resp, err := http.Get(apiURL + "/signers/" + signer.String())
	if err != nil {
		return 0, fmt.Errorf("cannot fetch: %s", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected response status %d", resp.StatusCode)
	}
	var u sigs.UserData
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return 0, fmt.Errorf("cannot decode response: %s", err)
	}
	return u.Sequence, nil
}

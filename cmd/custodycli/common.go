package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/iov-one/custody/crypto"
	"golang.org/x/crypto/ed25519"
)

// writeMsg wraps given message in a transaction and writes it to the
// output.
func writeMsg(w io.Writer, msg custody.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	var tx app.Tx
	if err := tx.SetMsg(msg); err != nil {
		return err
	}
	_, err := writeTx(w, &tx)
	return err
}

// writeTx serialize the transaction using a protocol buffer. First bytes
// written contain the information how much space the transaction takes.
// Size information is required to be able to stream the messages:
// https://developers.google.com/protocol-buffers/docs/techniques#streaming
func writeTx(w io.Writer, tx *app.Tx) (int, error) {
	b, err := tx.Marshal()
	if err != nil {
		return 0, err
	}

	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(b); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(b), nil
}

// readTx reads a transaction written by writeTx.
func readTx(r io.Reader) (*app.Tx, error) {
	var size [txHeaderSize]byte
	if _, err := io.ReadFull(r, size[:]); err != nil {
		return nil, fmt.Errorf("cannot read transaction size: %s", err)
	}
	raw := make([]byte, binary.BigEndian.Uint32(size[:]))
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("cannot read transaction: %s", err)
	}

	var tx app.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("cannot deserialize transaction: %s", err)
	}
	return &tx, nil
}

const txHeaderSize = 4

// keyFlagUsage documents the --key flag shared by all commands reading a
// private key.
const keyFlagUsage = "Path to the private key file. You can use CUSTODYCLI_PRIV_KEY environment variable to set it."

func defaultKeyPath() string {
	return env("CUSTODYCLI_PRIV_KEY", env("HOME", "")+"/.custody.priv.key")
}

// decodePrivateKey reads a raw ed25519 private key file.
func decodePrivateKey(path string) (*crypto.PrivateKey, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q file: %s", path, err)
	}
	if len(data) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(data))
	}
	return &crypto.PrivateKey{Ed25519: data}, nil
}

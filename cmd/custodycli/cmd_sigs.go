package main

import (
	"fmt"
	"io"

	"github.com/iov-one/custody/x/sigs"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.

The chain id and the sequence are fetched from the daemon unless provided.
`)
	var (
		apiFl     = fl.String("api", defaultAPI(), apiFlagUsage)
		keyPathFl = fl.String("key", defaultKeyPath(), keyFlagUsage)
		chainFl   = fl.String("chain-id", "", "Chain id. Fetched from the daemon if empty.")
		seqFl     = fl.Int64("seq", -1, "Sequence of the signature. Fetched from the daemon if negative.")
	)
	if err := fl.Parse(args); err != nil {
		return err
	}

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}
	tx, err := readTx(input)
	if err != nil {
		return err
	}

	chainID := *chainFl
	if chainID == "" {
		if chainID, err = fetchChainID(*apiFl); err != nil {
			return fmt.Errorf("cannot fetch chain id: %s", err)
		}
	}
	seq := *seqFl
	if seq < 0 {
		if seq, err = fetchSequence(*apiFl, key.PublicKey().Address()); err != nil {
			return fmt.Errorf("cannot get the next sequence number: %s", err)
		}
	}

	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)
	_, err = writeTx(output, tx)
	return err
}

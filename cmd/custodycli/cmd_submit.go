package main

import (
	"fmt"
	"io"

	"github.com/iov-one/custody"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Read binary serialized transaction from standard input and submit it.

The height of the block and the returned data are written out. Creating a
wallet or a multisig returns its address.

Make sure to collect enough signatures before submitting the transaction.
`)
	apiFl := fl.String("api", defaultAPI(), apiFlagUsage)
	if err := fl.Parse(args); err != nil {
		return err
	}

	tx, err := readTx(input)
	if err != nil {
		return err
	}
	raw, err := tx.Marshal()
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}
	res, err := submitTx(*apiFl, raw)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "height: %d\n", res.Height)
	if len(res.Data) != 0 {
		fmt.Fprintf(output, "data: %s\n", custody.Address(res.Data))
	}
	return nil
}

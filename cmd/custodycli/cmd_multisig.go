package main

import (
	"fmt"
	"io"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x/multisig"
)

func cmdMultisigAddress(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Print out the address of the multisig held by given owners. The order of the
owners matters.
`)
	var (
		owner1Fl = flAddress(fl, "owner1", "First owner address.")
		owner2Fl = flAddress(fl, "owner2", "Second owner address.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"owner1": owner1Fl, "owner2": owner2Fl}); err != nil {
		return err
	}
	_, err := fmt.Fprintln(output, multisig.DeriveAddress(*owner1Fl, *owner2Fl))
	return err
}

func cmdCreateMultisig(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction registering a new two party multisig.
`)
	var (
		owner1Fl = flAddress(fl, "owner1", "First owner address.")
		owner2Fl = flAddress(fl, "owner2", "Second owner address.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"owner1": owner1Fl, "owner2": owner2Fl}); err != nil {
		return err
	}
	return writeMsg(output, &multisig.CreateMsg{Metadata: meta, Owner1: *owner1Fl, Owner2: *owner2Fl})
}

func cmdApprove(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction approving a multisig. It must be signed by one of the
owners.
`)
	idFl := flAddress(fl, "multisig", "Multisig address.")
	if err := parseFlags(fl, args, map[string]*custody.Address{"multisig": idFl}); err != nil {
		return err
	}
	return writeMsg(output, &multisig.ApproveMsg{Metadata: meta, MultisigID: *idFl})
}

func cmdExecuteMultisig(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction executing a multisig approved by both owners.
`)
	idFl := flAddress(fl, "multisig", "Multisig address.")
	if err := parseFlags(fl, args, map[string]*custody.Address{"multisig": idFl}); err != nil {
		return err
	}
	return writeMsg(output, &multisig.ExecuteMsg{Metadata: meta, MultisigID: *idFl})
}

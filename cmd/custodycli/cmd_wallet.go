package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/x/wallet"
)

var meta = &custody.Metadata{Schema: 1}

func cmdWalletAddress(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Print out the address of the wallet controlled by given owner and guardian.
`)
	var (
		ownerFl    = flAddress(fl, "owner", "Owner address.")
		guardianFl = flAddress(fl, "guardian", "Guardian address.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"owner": ownerFl, "guardian": guardianFl}); err != nil {
		return err
	}
	_, err := fmt.Fprintln(output, wallet.DeriveAddress(*ownerFl, *guardianFl))
	return err
}

func cmdCreateWallet(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction for registering a new wallet controlled by an owner and a
guardian.
`)
	var (
		ownerFl    = flAddress(fl, "owner", "Owner address.")
		guardianFl = flAddress(fl, "guardian", "Guardian address.")
		backupFl   = flAddress(fl, "guardian-backup", "Optional guardian backup address.")
		periodFl   = fl.Int64("security-period", 0, "Escape delay in seconds. Zero uses the configured default.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"owner": ownerFl, "guardian": guardianFl}); err != nil {
		return err
	}
	return writeMsg(output, &wallet.CreateMsg{
		Metadata:       meta,
		Owner:          *ownerFl,
		Guardian:       *guardianFl,
		GuardianBackup: *backupFl,
		SecurityPeriod: *periodFl,
	})
}

func cmdExecute(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction executing given data on behalf of a wallet. It must be
signed by both the owner and the guardian.
`)
	var (
		walletFl = flAddress(fl, "wallet", "Wallet address.")
		dataFl   = flHex(fl, "data", "Hex encoded payload.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"wallet": walletFl}); err != nil {
		return err
	}
	return writeMsg(output, &wallet.ExecuteMsg{Metadata: meta, WalletID: *walletFl, Data: *dataFl})
}

func cmdAttestOwner(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Print out a hex encoded proof that the key holder accepts to become the owner
of given wallet. The proof is required by change-owner.
`)
	var (
		keyPathFl = fl.String("key", defaultKeyPath(), "Path to the private key file of the new owner.")
		walletFl  = flAddress(fl, "wallet", "Wallet address.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"wallet": walletFl}); err != nil {
		return err
	}
	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	proof, err := crypto.Attest(key, wallet.ChangeOwnerMessage(*walletFl, key.PublicKey().Address()))
	if err != nil {
		return fmt.Errorf("cannot attest: %s", err)
	}
	_, err = fmt.Fprintln(output, hex.EncodeToString(proof))
	return err
}

func cmdChangeOwner(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction replacing the owner of a wallet. It must be signed by
both the owner and the guardian, and carry a proof created by attest-owner.
`)
	var (
		walletFl = flAddress(fl, "wallet", "Wallet address.")
		ownerFl  = flAddress(fl, "new-owner", "New owner address.")
		proofFl  = flHex(fl, "proof", "Hex encoded proof of the new owner.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"wallet": walletFl, "new-owner": ownerFl}); err != nil {
		return err
	}
	return writeMsg(output, &wallet.ChangeOwnerMsg{
		Metadata:      meta,
		WalletID:      *walletFl,
		NewOwner:      *ownerFl,
		NewOwnerProof: *proofFl,
	})
}

func cmdChangeGuardian(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction replacing the guardian of a wallet. It must be signed by
both the owner and the guardian.
`)
	var (
		walletFl   = flAddress(fl, "wallet", "Wallet address.")
		guardianFl = flAddress(fl, "new-guardian", "New guardian address.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"wallet": walletFl, "new-guardian": guardianFl}); err != nil {
		return err
	}
	return writeMsg(output, &wallet.ChangeGuardianMsg{Metadata: meta, WalletID: *walletFl, NewGuardian: *guardianFl})
}

func cmdChangeGuardianBackup(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction replacing the guardian backup of a wallet. It must be
signed by both the owner and the guardian.
`)
	var (
		walletFl = flAddress(fl, "wallet", "Wallet address.")
		backupFl = flAddress(fl, "new-guardian-backup", "New guardian backup address.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"wallet": walletFl, "new-guardian-backup": backupFl}); err != nil {
		return err
	}
	return writeMsg(output, &wallet.ChangeGuardianBackupMsg{Metadata: meta, WalletID: *walletFl, NewGuardianBackup: *backupFl})
}

func cmdUpgrade(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction deploying new code for a wallet. The artifact is read
from a file. It must be signed by both the owner and the guardian.
`)
	var (
		walletFl   = flAddress(fl, "wallet", "Wallet address.")
		artifactFl = fl.String("artifact", "", "Path to the code artifact.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"wallet": walletFl}); err != nil {
		return err
	}
	if *artifactFl == "" {
		return errors.New("--artifact is required")
	}
	artifact, err := ioutil.ReadFile(*artifactFl)
	if err != nil {
		return fmt.Errorf("cannot read artifact: %s", err)
	}
	return writeMsg(output, &wallet.UpgradeMsg{Metadata: meta, WalletID: *walletFl, Artifact: artifact})
}

func cmdTriggerEscapeGuardian(input io.Reader, output io.Writer, args []string) error {
	return walletOnlyCmd(input, output, args, `
Create a transaction starting the replacement of the guardian. It must be
signed by the owner. The escape can be completed with escape-guardian once the
security period elapsed.
`, func(id custody.Address) custody.Msg {
		return &wallet.TriggerEscapeGuardianMsg{Metadata: meta, WalletID: id}
	})
}

func cmdTriggerEscapeOwner(input io.Reader, output io.Writer, args []string) error {
	return walletOnlyCmd(input, output, args, `
Create a transaction starting the replacement of the owner. It must be signed
by the guardian. The escape can be completed with escape-owner once the
security period elapsed.
`, func(id custody.Address) custody.Msg {
		return &wallet.TriggerEscapeOwnerMsg{Metadata: meta, WalletID: id}
	})
}

func cmdCancelEscape(input io.Reader, output io.Writer, args []string) error {
	return walletOnlyCmd(input, output, args, `
Create a transaction cancelling an escape in progress. It must be signed by
both the owner and the guardian.
`, func(id custody.Address) custody.Msg {
		return &wallet.CancelEscapeMsg{Metadata: meta, WalletID: id}
	})
}

func cmdEscapeGuardian(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction completing the replacement of the guardian. It must be
signed by the owner.
`)
	var (
		walletFl   = flAddress(fl, "wallet", "Wallet address.")
		guardianFl = flAddress(fl, "new-guardian", "New guardian address.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"wallet": walletFl, "new-guardian": guardianFl}); err != nil {
		return err
	}
	return writeMsg(output, &wallet.EscapeGuardianMsg{Metadata: meta, WalletID: *walletFl, NewGuardian: *guardianFl})
}

func cmdEscapeOwner(input io.Reader, output io.Writer, args []string) error {
	fl := newFlagSet(`
Create a transaction completing the replacement of the owner. It must be
signed by the guardian.
`)
	var (
		walletFl = flAddress(fl, "wallet", "Wallet address.")
		ownerFl  = flAddress(fl, "new-owner", "New owner address.")
	)
	if err := parseFlags(fl, args, map[string]*custody.Address{"wallet": walletFl, "new-owner": ownerFl}); err != nil {
		return err
	}
	return writeMsg(output, &wallet.EscapeOwnerMsg{Metadata: meta, WalletID: *walletFl, NewOwner: *ownerFl})
}

// walletOnlyCmd builds a message that carries nothing but the wallet
// address.
func walletOnlyCmd(input io.Reader, output io.Writer, args []string, description string, build func(custody.Address) custody.Msg) error {
	fl := newFlagSet(description)
	walletFl := flAddress(fl, "wallet", "Wallet address.")
	if err := parseFlags(fl, args, map[string]*custody.Address{"wallet": walletFl}); err != nil {
		return err
	}
	return writeMsg(output, build(*walletFl))
}

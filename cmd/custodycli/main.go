package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// without the program name and the command name. It must read and write
// only to the provided input and output.
//
// Each command provides a single functionality. Commands building a
// transaction write it to the output, so that a unix pipe can be used to
// construct a pipeline:
//
//   $ custodycli execute --wallet $WALLET --data 0a0b \
//       | custodycli sign --key owner.key \
//       | custodycli sign --key guardian.key \
//       | custodycli submit
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"approve":                 cmdApprove,
	"attest-owner":            cmdAttestOwner,
	"cancel-escape":           cmdCancelEscape,
	"change-guardian":         cmdChangeGuardian,
	"change-guardian-backup":  cmdChangeGuardianBackup,
	"change-owner":            cmdChangeOwner,
	"create-multisig":         cmdCreateMultisig,
	"create-wallet":           cmdCreateWallet,
	"escape-guardian":         cmdEscapeGuardian,
	"escape-owner":            cmdEscapeOwner,
	"execute":                 cmdExecute,
	"execute-multisig":        cmdExecuteMultisig,
	"keyaddr":                 cmdKeyaddr,
	"keygen":                  cmdKeygen,
	"multisig-address":        cmdMultisigAddress,
	"sign":                    cmdSignTransaction,
	"submit":                  cmdSubmitTransaction,
	"trigger-escape-guardian": cmdTriggerEscapeGuardian,
	"trigger-escape-owner":    cmdTriggerEscapeOwner,
	"upgrade":                 cmdUpgrade,
	"version":                 cmdVersion,
	"view":                    cmdTransactionView,
	"wallet-address":          cmdWalletAddress,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the custody application.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> --help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, gitHash)
	return nil
}

// gitHash is set during the compilation time.
var gitHash = "dev"

package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/iov-one/custody"
	flag "github.com/spf13/pflag"
)

// newFlagSet returns a flag set that prints given description before the
// flag defaults on --help.
func newFlagSet(description string) *flag.FlagSet {
	fl := flag.NewFlagSet("", flag.ContinueOnError)
	fl.Usage = func() {
		fmt.Fprint(os.Stderr, description)
		fmt.Fprintln(os.Stderr)
		fl.PrintDefaults()
	}
	return fl
}

// addressValue is an address flag value. Hex, "bech32:" and "cond:"
// prefixed representations are accepted.
type addressValue struct {
	addr *custody.Address
}

func (v addressValue) String() string {
	if v.addr == nil || len(*v.addr) == 0 {
		return ""
	}
	return v.addr.String()
}

func (v addressValue) Set(raw string) error {
	a, err := custody.ParseAddress(raw)
	if err != nil {
		return err
	}
	*v.addr = a
	return nil
}

func (addressValue) Type() string {
	return "address"
}

// flAddress returns an address that is set by a command line argument if
// provided.
func flAddress(fl *flag.FlagSet, name, usage string) *custody.Address {
	var a custody.Address
	fl.Var(addressValue{addr: &a}, name, usage)
	return &a
}

// hexValue is a binary flag value given in hex.
type hexValue struct {
	b *[]byte
}

func (v hexValue) String() string {
	if v.b == nil {
		return ""
	}
	return hex.EncodeToString(*v.b)
}

func (v hexValue) Set(raw string) error {
	b, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}
	*v.b = b
	return nil
}

func (hexValue) Type() string {
	return "hex"
}

// flHex returns a byte slice that is set by a hex encoded command line
// argument if provided.
func flHex(fl *flag.FlagSet, name, usage string) *[]byte {
	var b []byte
	fl.Var(hexValue{b: &b}, name, usage)
	return &b
}

// parseFlags parses args and fails if any of the required addresses is
// missing.
func parseFlags(fl *flag.FlagSet, args []string, required map[string]*custody.Address) error {
	if err := fl.Parse(args); err != nil {
		return err
	}
	for name, a := range required {
		if len(*a) == 0 {
			return fmt.Errorf("--%s is required", name)
		}
	}
	return nil
}

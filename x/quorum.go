package x

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// RequireSigner returns ErrUnauthorized unless addr is among the signers
// of the current call. role names the signer in the error message.
func RequireSigner(ctx custody.Context, auth Authenticator, role string, addr custody.Address) error {
	if len(addr) == 0 || !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature required", role)
	}
	return nil
}

// Role is an address together with the name of the part it plays.
type Role struct {
	Name    string
	Address custody.Address
}

// RequireAllOf returns ErrUnauthorized unless every given role signed the
// current call. The error names the first missing role.
func RequireAllOf(ctx custody.Context, auth Authenticator, roles ...Role) error {
	for _, r := range roles {
		if err := RequireSigner(ctx, auth, r.Name, r.Address); err != nil {
			return err
		}
	}
	return nil
}

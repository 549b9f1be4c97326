package wallet

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const packageName = "wallet"

// Configuration is the on-chain configuration of the wallet extension.
type Configuration struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Owner may update the configuration.
	Owner custody.Address `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/custody.Address" json:"owner,omitempty"`
	// DefaultSecurityPeriod is used by wallets created without a
	// security period, in seconds.
	DefaultSecurityPeriod int64 `protobuf:"varint,3,opt,name=default_security_period,json=defaultSecurityPeriod,proto3" json:"default_security_period,omitempty"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := validateSecurityPeriod(c.DefaultSecurityPeriod); err != nil {
		return errors.Wrap(err, "default security period")
	}
	return nil
}

func (c *Configuration) GetOwner() custody.Address {
	return c.Owner
}

// defaultSecurityPeriod returns the configured default, or
// DefaultSecurityPeriod when the extension is not configured.
func defaultSecurityPeriod(db gconf.ReadStore) (int64, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return conf.DefaultSecurityPeriod, nil
	case errors.ErrNotFound.Is(err):
		return DefaultSecurityPeriod, nil
	default:
		return 0, errors.Wrap(err, "load configuration")
	}
}

// UpdateConfigurationMsg patches the configuration. Zero value fields of
// the patch are left unchanged.
type UpdateConfigurationMsg struct {
	Metadata *custody.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration    `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

var _ gconf.PatchMsg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) GetPatch() gconf.OwnedConfig {
	if m.Patch == nil {
		return nil
	}
	return m.Patch
}

func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if len(m.Patch.Owner) != 0 {
		if err := m.Patch.Owner.Validate(); err != nil {
			return errors.Wrap(err, "patch owner")
		}
	}
	if m.Patch.DefaultSecurityPeriod != 0 {
		if err := validateSecurityPeriod(m.Patch.DefaultSecurityPeriod); err != nil {
			return errors.Wrap(err, "patch default security period")
		}
	}
	return nil
}

package gconf

import (
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// OwnedConfig is a configuration that only its owner may change.
type OwnedConfig interface {
	Configuration
	GetOwner() custody.Address
}

// PatchMsg is a message carrying a partial configuration. Fields left at
// their zero value keep the stored value.
type PatchMsg interface {
	custody.Msg
	GetPatch() OwnedConfig
}

// UpdateConfigurationHandler applies a PatchMsg to the stored
// configuration of one extension.
type UpdateConfigurationHandler struct {
	pkg  string
	conf OwnedConfig
	auth x.Authenticator
}

var _ custody.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler patching the
// configuration of extension pkg. conf is the value the configuration is
// loaded into and must be of the same type as the patch. A configuration
// must exist in the genesis to be updated.
func NewUpdateConfigurationHandler(pkg string, conf OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{pkg: pkg, conf: conf, auth: auth}
}

func (h UpdateConfigurationHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) update(ctx custody.Context, db custody.KVStore, tx custody.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "message")
	}
	pm, ok := msg.(PatchMsg)
	if !ok {
		return errors.WithType(errors.ErrMsg, msg)
	}
	if err := pm.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	patch := pm.GetPatch()
	if patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}

	switch err := Load(db, h.pkg, h.conf); {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrUnauthorized, "%s configuration was not set in genesis", h.pkg)
	case err != nil:
		return err
	}
	if err := x.RequireSigner(ctx, h.auth, h.pkg+" configuration owner", h.conf.GetOwner()); err != nil {
		return err
	}
	if err := mergeNonZero(h.conf, patch); err != nil {
		return err
	}
	return Save(db, h.pkg, h.conf)
}

// mergeNonZero copies every non zero field of src into dst. Both must be
// pointers to the same struct type.
func mergeNonZero(dst, src interface{}) error {
	if reflect.TypeOf(dst) != reflect.TypeOf(src) {
		return errors.Wrapf(errors.ErrMsg, "patch of type %T for configuration %T", src, dst)
	}
	d := reflect.ValueOf(dst).Elem()
	s := reflect.ValueOf(src).Elem()
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if reflect.DeepEqual(f.Interface(), reflect.Zero(f.Type()).Interface()) {
			continue
		}
		d.Field(i).Set(f)
	}
	return nil
}

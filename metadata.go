package custody

import (
	"github.com/iov-one/custody/errors"
)

// Metadata is the header embedded in every persisted model and message. It
// carries the schema version of the entity.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

// Validate returns an error if the metadata is missing or carries an
// unknown schema version.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMsg, "missing metadata")
	}
	if m.Schema != 1 {
		return errors.Wrapf(errors.ErrMsg, "unsupported schema version %d", m.Schema)
	}
	return nil
}

// Copy returns a copy of this object.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

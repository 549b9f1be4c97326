package crypto

import (
	"github.com/gogo/protobuf/proto"
)

// Protobuf encoding goes through local codec types so that proto.Marshal
// does not dispatch back to the Marshal methods declared below.

type attestationCodec Attestation

func (m *attestationCodec) Reset()         { *m = attestationCodec{} }
func (m *attestationCodec) String() string { return proto.CompactTextString(m) }
func (*attestationCodec) ProtoMessage()    {}

func (m *Attestation) Marshal() ([]byte, error) {
	return proto.Marshal((*attestationCodec)(m))
}

func (m *Attestation) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*attestationCodec)(m))
}

type privateKeyCodec PrivateKey

func (m *privateKeyCodec) Reset()         { *m = privateKeyCodec{} }
func (m *privateKeyCodec) String() string { return proto.CompactTextString(m) }
func (*privateKeyCodec) ProtoMessage()    {}

func (m *PrivateKey) Marshal() ([]byte, error) {
	return proto.Marshal((*privateKeyCodec)(m))
}

func (m *PrivateKey) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*privateKeyCodec)(m))
}

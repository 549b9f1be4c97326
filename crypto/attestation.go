package crypto

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Attestation is a proof that the holder of a key consents to a message.
// The serialized attestation is what the custody messages carry as a proof.
type Attestation struct {
	PubKey    *PublicKey `protobuf:"bytes,1,opt,name=pub_key,json=pubKey,proto3" json:"pub_key,omitempty"`
	Signature []byte     `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
}

// Attest signs given message and returns the serialized attestation.
func Attest(key Signer, message []byte) ([]byte, error) {
	sig, err := key.Sign(message)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	a := Attestation{
		PubKey:    key.PublicKey(),
		Signature: sig,
	}
	return a.Marshal()
}

// AttestationVerifier checks serialized attestations.
type AttestationVerifier struct{}

// Verify returns true only if proof is an attestation of given message made
// by the key whose address is signer.
func (AttestationVerifier) Verify(signer custody.Address, message, proof []byte) bool {
	if len(proof) == 0 {
		return false
	}
	var a Attestation
	if err := a.Unmarshal(proof); err != nil {
		return false
	}
	if err := a.PubKey.Validate(); err != nil {
		return false
	}
	if !a.PubKey.Address().Equals(signer) {
		return false
	}
	return a.PubKey.Verify(message, a.Signature)
}

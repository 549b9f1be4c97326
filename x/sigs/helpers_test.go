package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
)

// signedTx is a minimal signed transaction. Body stands for the
// serialized content without signatures.
type signedTx struct {
	Body       []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)
var _ custody.Tx = (*signedTx)(nil)

func (tx *signedTx) GetMsg() (custody.Msg, error) {
	return &custodytest.Msg{RoutePath: "test/msg", Serialized: tx.Body}, nil
}

func (tx *signedTx) GetSignBytes() ([]byte, error)   { return tx.Body, nil }
func (tx *signedTx) GetSignatures() []*StdSignature { return tx.Signatures }
func (tx *signedTx) Marshal() ([]byte, error)       { return tx.Body, nil }

func (tx *signedTx) Unmarshal(b []byte) error {
	tx.Body = b
	return nil
}

// sigCheckHandler stores the seen signers on each call.
type sigCheckHandler struct {
	Signers []custody.Condition
}

var _ custody.Handler = (*sigCheckHandler)(nil)

func (s *sigCheckHandler) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &custody.CheckResult{}, nil
}

func (s *sigCheckHandler) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &custody.DeliverResult{}, nil
}

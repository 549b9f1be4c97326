package multisig

import "github.com/gogo/protobuf/proto"

type multisigCodec Multisig

func (m *multisigCodec) Reset()         { *m = multisigCodec{} }
func (m *multisigCodec) String() string { return proto.CompactTextString(m) }
func (*multisigCodec) ProtoMessage()    {}

func (m *Multisig) Marshal() ([]byte, error)   { return proto.Marshal((*multisigCodec)(m)) }
func (m *Multisig) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*multisigCodec)(m)) }

type createMsgCodec CreateMsg

func (m *createMsgCodec) Reset()         { *m = createMsgCodec{} }
func (m *createMsgCodec) String() string { return proto.CompactTextString(m) }
func (*createMsgCodec) ProtoMessage()    {}

func (m *CreateMsg) Marshal() ([]byte, error)   { return proto.Marshal((*createMsgCodec)(m)) }
func (m *CreateMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*createMsgCodec)(m)) }

type approveMsgCodec ApproveMsg

func (m *approveMsgCodec) Reset()         { *m = approveMsgCodec{} }
func (m *approveMsgCodec) String() string { return proto.CompactTextString(m) }
func (*approveMsgCodec) ProtoMessage()    {}

func (m *ApproveMsg) Marshal() ([]byte, error)   { return proto.Marshal((*approveMsgCodec)(m)) }
func (m *ApproveMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*approveMsgCodec)(m)) }

type executeMsgCodec ExecuteMsg

func (m *executeMsgCodec) Reset()         { *m = executeMsgCodec{} }
func (m *executeMsgCodec) String() string { return proto.CompactTextString(m) }
func (*executeMsgCodec) ProtoMessage()    {}

func (m *ExecuteMsg) Marshal() ([]byte, error)   { return proto.Marshal((*executeMsgCodec)(m)) }
func (m *ExecuteMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*executeMsgCodec)(m)) }

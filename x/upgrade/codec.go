package upgrade

import "github.com/gogo/protobuf/proto"

type deploymentCodec Deployment

func (m *deploymentCodec) Reset()         { *m = deploymentCodec{} }
func (m *deploymentCodec) String() string { return proto.CompactTextString(m) }
func (*deploymentCodec) ProtoMessage()    {}

func (m *Deployment) Marshal() ([]byte, error)   { return proto.Marshal((*deploymentCodec)(m)) }
func (m *Deployment) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*deploymentCodec)(m)) }

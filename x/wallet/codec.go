package wallet

import "github.com/gogo/protobuf/proto"

type walletCodec Wallet

func (m *walletCodec) Reset()         { *m = walletCodec{} }
func (m *walletCodec) String() string { return proto.CompactTextString(m) }
func (*walletCodec) ProtoMessage()    {}

func (m *Wallet) Marshal() ([]byte, error)   { return proto.Marshal((*walletCodec)(m)) }
func (m *Wallet) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*walletCodec)(m)) }

type configurationCodec Configuration

func (m *configurationCodec) Reset()         { *m = configurationCodec{} }
func (m *configurationCodec) String() string { return proto.CompactTextString(m) }
func (*configurationCodec) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error)   { return proto.Marshal((*configurationCodec)(m)) }
func (m *Configuration) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*configurationCodec)(m)) }

type createMsgCodec CreateMsg

func (m *createMsgCodec) Reset()         { *m = createMsgCodec{} }
func (m *createMsgCodec) String() string { return proto.CompactTextString(m) }
func (*createMsgCodec) ProtoMessage()    {}

func (m *CreateMsg) Marshal() ([]byte, error)   { return proto.Marshal((*createMsgCodec)(m)) }
func (m *CreateMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*createMsgCodec)(m)) }

type executeMsgCodec ExecuteMsg

func (m *executeMsgCodec) Reset()         { *m = executeMsgCodec{} }
func (m *executeMsgCodec) String() string { return proto.CompactTextString(m) }
func (*executeMsgCodec) ProtoMessage()    {}

func (m *ExecuteMsg) Marshal() ([]byte, error)   { return proto.Marshal((*executeMsgCodec)(m)) }
func (m *ExecuteMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*executeMsgCodec)(m)) }

type changeOwnerMsgCodec ChangeOwnerMsg

func (m *changeOwnerMsgCodec) Reset()         { *m = changeOwnerMsgCodec{} }
func (m *changeOwnerMsgCodec) String() string { return proto.CompactTextString(m) }
func (*changeOwnerMsgCodec) ProtoMessage()    {}

func (m *ChangeOwnerMsg) Marshal() ([]byte, error)   { return proto.Marshal((*changeOwnerMsgCodec)(m)) }
func (m *ChangeOwnerMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*changeOwnerMsgCodec)(m)) }

type changeGuardianMsgCodec ChangeGuardianMsg

func (m *changeGuardianMsgCodec) Reset()         { *m = changeGuardianMsgCodec{} }
func (m *changeGuardianMsgCodec) String() string { return proto.CompactTextString(m) }
func (*changeGuardianMsgCodec) ProtoMessage()    {}

func (m *ChangeGuardianMsg) Marshal() ([]byte, error)   { return proto.Marshal((*changeGuardianMsgCodec)(m)) }
func (m *ChangeGuardianMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*changeGuardianMsgCodec)(m)) }

type changeGuardianBackupMsgCodec ChangeGuardianBackupMsg

func (m *changeGuardianBackupMsgCodec) Reset()         { *m = changeGuardianBackupMsgCodec{} }
func (m *changeGuardianBackupMsgCodec) String() string { return proto.CompactTextString(m) }
func (*changeGuardianBackupMsgCodec) ProtoMessage()    {}

func (m *ChangeGuardianBackupMsg) Marshal() ([]byte, error)   { return proto.Marshal((*changeGuardianBackupMsgCodec)(m)) }
func (m *ChangeGuardianBackupMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*changeGuardianBackupMsgCodec)(m)) }

type upgradeMsgCodec UpgradeMsg

func (m *upgradeMsgCodec) Reset()         { *m = upgradeMsgCodec{} }
func (m *upgradeMsgCodec) String() string { return proto.CompactTextString(m) }
func (*upgradeMsgCodec) ProtoMessage()    {}

func (m *UpgradeMsg) Marshal() ([]byte, error)   { return proto.Marshal((*upgradeMsgCodec)(m)) }
func (m *UpgradeMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*upgradeMsgCodec)(m)) }

type triggerEscapeGuardianMsgCodec TriggerEscapeGuardianMsg

func (m *triggerEscapeGuardianMsgCodec) Reset()         { *m = triggerEscapeGuardianMsgCodec{} }
func (m *triggerEscapeGuardianMsgCodec) String() string { return proto.CompactTextString(m) }
func (*triggerEscapeGuardianMsgCodec) ProtoMessage()    {}

func (m *TriggerEscapeGuardianMsg) Marshal() ([]byte, error)   { return proto.Marshal((*triggerEscapeGuardianMsgCodec)(m)) }
func (m *TriggerEscapeGuardianMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*triggerEscapeGuardianMsgCodec)(m)) }

type triggerEscapeOwnerMsgCodec TriggerEscapeOwnerMsg

func (m *triggerEscapeOwnerMsgCodec) Reset()         { *m = triggerEscapeOwnerMsgCodec{} }
func (m *triggerEscapeOwnerMsgCodec) String() string { return proto.CompactTextString(m) }
func (*triggerEscapeOwnerMsgCodec) ProtoMessage()    {}

func (m *TriggerEscapeOwnerMsg) Marshal() ([]byte, error)   { return proto.Marshal((*triggerEscapeOwnerMsgCodec)(m)) }
func (m *TriggerEscapeOwnerMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*triggerEscapeOwnerMsgCodec)(m)) }

type escapeGuardianMsgCodec EscapeGuardianMsg

func (m *escapeGuardianMsgCodec) Reset()         { *m = escapeGuardianMsgCodec{} }
func (m *escapeGuardianMsgCodec) String() string { return proto.CompactTextString(m) }
func (*escapeGuardianMsgCodec) ProtoMessage()    {}

func (m *EscapeGuardianMsg) Marshal() ([]byte, error)   { return proto.Marshal((*escapeGuardianMsgCodec)(m)) }
func (m *EscapeGuardianMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*escapeGuardianMsgCodec)(m)) }

type escapeOwnerMsgCodec EscapeOwnerMsg

func (m *escapeOwnerMsgCodec) Reset()         { *m = escapeOwnerMsgCodec{} }
func (m *escapeOwnerMsgCodec) String() string { return proto.CompactTextString(m) }
func (*escapeOwnerMsgCodec) ProtoMessage()    {}

func (m *EscapeOwnerMsg) Marshal() ([]byte, error)   { return proto.Marshal((*escapeOwnerMsgCodec)(m)) }
func (m *EscapeOwnerMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*escapeOwnerMsgCodec)(m)) }

type cancelEscapeMsgCodec CancelEscapeMsg

func (m *cancelEscapeMsgCodec) Reset()         { *m = cancelEscapeMsgCodec{} }
func (m *cancelEscapeMsgCodec) String() string { return proto.CompactTextString(m) }
func (*cancelEscapeMsgCodec) ProtoMessage()    {}

func (m *CancelEscapeMsg) Marshal() ([]byte, error)   { return proto.Marshal((*cancelEscapeMsgCodec)(m)) }
func (m *CancelEscapeMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*cancelEscapeMsgCodec)(m)) }

type updateConfigurationMsgCodec UpdateConfigurationMsg

func (m *updateConfigurationMsgCodec) Reset()         { *m = updateConfigurationMsgCodec{} }
func (m *updateConfigurationMsgCodec) String() string { return proto.CompactTextString(m) }
func (*updateConfigurationMsgCodec) ProtoMessage()    {}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error)   { return proto.Marshal((*updateConfigurationMsgCodec)(m)) }
func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*updateConfigurationMsgCodec)(m)) }

package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgCellInfoResp
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgCellInfoResp:
		return "cell_info_resp"
	default:
		return "unknown"
	}
}

// ErrCode is a generic error category for failed operations.
type ErrCode uint16

const (
	ErrUnknown ErrCode = iota
	ErrBadMessage
	ErrBusy
	ErrTooLarge
	ErrInternal
)

func (c ErrCode) String() string {
	switch c {
	case ErrUnknown:
		return "unknown"
	case ErrBadMessage:
		return "bad_message"
	case ErrBusy:
		return "busy"
	case ErrTooLarge:
		return "too_large"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// MaxHostMessageBytes is the largest payload a single host message may carry.
const MaxHostMessageBytes = 4096

// Host message types carried in the envelope Type field.
const (
	HostMsgLog uint32 = iota + 1
	HostMsgCellReport
)

// HostEndpointBroadcast addresses every client on the host side.
const HostEndpointBroadcast uint16 = 0xFFFF

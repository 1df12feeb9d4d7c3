package hal

// Modem capability bits.
const (
	ModemCapCellInfo uint32 = 1 << iota
	ModemCapSignalStrength
	ModemCapNeighborInfo
)

// CellType identifies the radio access technology of a cell.
type CellType uint8

const (
	CellTypeUnknown CellType = iota
	CellTypeGSM
	CellTypeWCDMA
	CellTypeLTE
	CellTypeNR
)

func (t CellType) String() string {
	switch t {
	case CellTypeGSM:
		return "gsm"
	case CellTypeWCDMA:
		return "wcdma"
	case CellTypeLTE:
		return "lte"
	case CellTypeNR:
		return "nr"
	default:
		return "unknown"
	}
}

// CellError categorizes a failed cell info scan.
type CellError uint8

const (
	CellErrorNone CellError = iota
	CellErrorTransient
	CellErrorHardware
	CellErrorNotSupported
)

func (e CellError) String() string {
	switch e {
	case CellErrorNone:
		return "none"
	case CellErrorTransient:
		return "transient"
	case CellErrorHardware:
		return "hardware"
	case CellErrorNotSupported:
		return "not_supported"
	default:
		return "unknown"
	}
}

// CellInfo describes one observed cell.
type CellInfo struct {
	Type       CellType
	Registered bool
	SignalDbm  int8
}

// CellInfoResult is the outcome of one cell info scan.
//
// Cells is only meaningful when Error is CellErrorNone.
type CellInfoResult struct {
	Error CellError
	Cells []CellInfo
}

// Modem is the platform cellular interface.
//
// RequestCellInfo is asynchronous: at most one scan may be outstanding at a
// time, and the handler registered with SetResultHandler is invoked exactly
// once per accepted request. The handler may run on a different goroutine
// than the caller of RequestCellInfo.
type Modem interface {
	Capabilities() uint32
	RequestCellInfo() bool
	SetResultHandler(handler func(CellInfoResult))
}

package hal

// nullModem is used on targets without cellular hardware.
type nullModem struct{}

func (nullModem) Capabilities() uint32 { return 0 }

func (nullModem) RequestCellInfo() bool { return false }

func (nullModem) SetResultHandler(func(CellInfoResult)) {}

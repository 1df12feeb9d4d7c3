package proto

import "encoding/binary"

// CellRecord is the wire-level representation of one observed cell.
type CellRecord struct {
	Type       uint8
	Registered bool
	SignalDbm  int8
}

const cellRecordBytes = 3

// MaxCellRecords bounds how many cells fit in one 128-byte mailbox payload.
const MaxCellRecords = (128 - 6) / cellRecordBytes

// CellInfoRespPayload encodes a MsgCellInfoResp event payload.
//
// Layout (little-endian):
//   - u32: cookie
//   - u8: error code
//   - u8: cell count
//   - per cell: u8 type, u8 flags (bit0 = registered), s8 signal dBm
//
// The cell list is truncated to MaxCellRecords.
func CellInfoRespPayload(cookie uint32, errCode uint8, cells []CellRecord) []byte {
	if len(cells) > MaxCellRecords {
		cells = cells[:MaxCellRecords]
	}
	buf := make([]byte, 6+len(cells)*cellRecordBytes)
	binary.LittleEndian.PutUint32(buf[0:4], cookie)
	buf[4] = errCode
	buf[5] = uint8(len(cells))
	for i, c := range cells {
		off := 6 + i*cellRecordBytes
		buf[off] = c.Type
		if c.Registered {
			buf[off+1] = 1
		}
		buf[off+2] = uint8(c.SignalDbm)
	}
	return buf
}

func DecodeCellInfoRespPayload(b []byte) (cookie uint32, errCode uint8, cells []CellRecord, ok bool) {
	if len(b) < 6 {
		return 0, 0, nil, false
	}
	cookie = binary.LittleEndian.Uint32(b[0:4])
	errCode = b[4]
	count := int(b[5])
	if len(b) < 6+count*cellRecordBytes {
		return 0, 0, nil, false
	}
	cells = make([]CellRecord, count)
	for i := range cells {
		off := 6 + i*cellRecordBytes
		cells[i] = CellRecord{
			Type:       b[off],
			Registered: b[off+1]&1 != 0,
			SignalDbm:  int8(b[off+2]),
		}
	}
	return cookie, errCode, cells, true
}

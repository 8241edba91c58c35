package writer

import (
	"encoding/binary"
	"io"

	"github.com/muthmann/evt3"
)

// binMagic is the 8-byte magic prefix of the .bin format.
var binMagic = [8]byte{'E', 'V', 'T', '3', 'B', 'I', 'N', 0}

const binHeaderSize = 24 // version(4) + width(2) + height(2) + count(8) + reserved(8)
const binEventSize = 14  // x(2) + y(2) + polarity(1) + pad(1) + timestamp(8)

// Binary writes the compact .bin dump described in spec.md §6: an
// 8-byte magic, a 24-byte header, then one 14-byte record per
// change-detection event, all little-endian.
type Binary struct{}

// Name implements Writer.
func (Binary) Name() string { return "bin" }

// Ext implements Writer.
func (Binary) Ext() string { return ".bin" }

// Write implements Writer.
func (Binary) Write(w io.Writer, res *evt3.Result, _ Options) error {
	if _, err := w.Write(binMagic[:]); err != nil {
		return err
	}

	var header [binHeaderSize]byte
	binary.LittleEndian.PutUint32(header[0:4], 1) // version
	binary.LittleEndian.PutUint16(header[4:6], uint16(res.SensorWidth))
	binary.LittleEndian.PutUint16(header[6:8], uint16(res.SensorHeight))
	binary.LittleEndian.PutUint64(header[8:16], uint64(res.CD.Len()))
	binary.LittleEndian.PutUint64(header[16:24], 0) // reserved
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	var rec [binEventSize]byte
	for i := 0; i < res.CD.Len(); i++ {
		binary.LittleEndian.PutUint16(rec[0:2], res.CD.X[i])
		binary.LittleEndian.PutUint16(rec[2:4], res.CD.Y[i])
		rec[4] = res.CD.Polarity[i]
		rec[5] = 0 // pad
		binary.LittleEndian.PutUint64(rec[6:14], res.CD.Timestamp[i])
		if _, err := w.Write(rec[:]); err != nil {
			return err
		}
	}
	return nil
}

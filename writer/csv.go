package writer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muthmann/evt3"
)

// CSV writes one change-detection event per line, with fields drawn
// from {x,y,p,t} in a caller-chosen order, comma-separated, ending in
// "\n". When Options.Header is set and the Result carries known
// sensor dimensions, a "%geometry:W,H" line precedes the events.
type CSV struct{}

// Name implements Writer.
func (CSV) Name() string { return "csv" }

// Ext implements Writer.
func (CSV) Ext() string { return ".csv" }

// Write implements Writer.
func (CSV) Write(w io.Writer, res *evt3.Result, opts Options) error {
	order := opts.FieldOrder
	if order == "" {
		order = "x,y,p,t"
	}
	fields, err := parseFieldOrder(order)
	if err != nil {
		return err
	}

	if opts.Header && res.SensorWidth > 0 && res.SensorHeight > 0 {
		if _, err := fmt.Fprintf(w, "%%geometry:%d,%d\n", res.SensorWidth, res.SensorHeight); err != nil {
			return err
		}
	}

	var line strings.Builder
	for i := 0; i < res.CD.Len(); i++ {
		line.Reset()
		for j, f := range fields {
			if j > 0 {
				line.WriteByte(',')
			}
			switch f {
			case 'x':
				line.WriteString(strconv.FormatUint(uint64(res.CD.X[i]), 10))
			case 'y':
				line.WriteString(strconv.FormatUint(uint64(res.CD.Y[i]), 10))
			case 'p':
				line.WriteString(strconv.FormatUint(uint64(res.CD.Polarity[i]), 10))
			case 't':
				line.WriteString(strconv.FormatUint(res.CD.Timestamp[i], 10))
			}
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// parseFieldOrder validates that order is a permutation of x,y,p,t
// and returns it as a byte slice in the requested order.
func parseFieldOrder(order string) ([]byte, error) {
	parts := strings.Split(order, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFieldOrder, order)
	}
	seen := make(map[byte]bool, 4)
	fields := make([]byte, 0, 4)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) != 1 || strings.IndexByte("xypt", p[0]) < 0 || seen[p[0]] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldOrder, order)
		}
		seen[p[0]] = true
		fields = append(fields, p[0])
	}
	return fields, nil
}

// Package multimeter is a thin driver stub for a bench digital multimeter.
// It issues one SCPI query per poll and forwards the single returned
// reading; it has no notion of ranges, triggers, or multiple functions.
package multimeter

import (
	"strconv"
	"strings"

	"github.com/gosigrok/touchstone/drivers"
)

func init() {
	drivers.Register("multimeter", func(t drivers.Transport) drivers.Driver {
		return &Multimeter{transport: t}
	})
}

// Multimeter polls a single measurement function over a Transport.
type Multimeter struct {
	transport drivers.Transport
	Function  string // e.g. "VOLT:DC", defaults to "VOLT:DC" if empty
}

func (m *Multimeter) Name() string { return "multimeter" }

// Poll issues a MEASure query and emits the single reading it returns.
func (m *Multimeter) Poll(sink drivers.Sink) error {
	fn := m.Function
	if fn == "" {
		fn = "VOLT:DC"
	}
	if err := m.transport.WriteCommand("MEAS:" + fn + "?"); err != nil {
		return err
	}
	resp, err := m.transport.ReadResponse()
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(resp), 64)
	if err != nil {
		return err
	}
	return sink.Emit(drivers.AnalogPacket{Data: []float64{v}, Unit: unitFor(fn), Quantity: fn, Digits: 5})
}

func unitFor(fn string) string {
	switch {
	case strings.HasPrefix(fn, "VOLT"):
		return "V"
	case strings.HasPrefix(fn, "CURR"):
		return "A"
	case strings.HasPrefix(fn, "RES"):
		return "ohm"
	default:
		return ""
	}
}

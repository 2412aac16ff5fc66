// Package vna is a thin driver stub for a vector network analyzer. Many
// bench VNAs answer a ":CALC1:DATA:SNP?" style SCPI query with a complete
// Touchstone-formatted sweep; this driver's only job is to get that text
// off the wire and hand it to the touchstone parser, translating the
// parser's frames into the host framework's analog packet type.
package vna

import (
	"strconv"

	"github.com/gosigrok/touchstone/drivers"
	"github.com/gosigrok/touchstone/touchstone"
)

func init() {
	drivers.Register("vna", func(t drivers.Transport) drivers.Driver {
		return &VNA{transport: t}
	})
}

// VNA queries a full N-port sweep and replays it through touchstone.Parser.
type VNA struct {
	transport drivers.Transport
	NumPorts  int // defaults to 2
}

func (v *VNA) Name() string { return "vna" }

func (v *VNA) Poll(sink drivers.Sink) error {
	n := v.NumPorts
	if n == 0 {
		n = 2
	}
	if err := v.transport.WriteCommand(snpQuery(n)); err != nil {
		return err
	}
	resp, err := v.transport.ReadResponse()
	if err != nil {
		return err
	}

	relay := &packetRelay{sink: sink}
	p := touchstone.New(relay)
	if err := p.Receive([]byte(resp)); err != nil {
		return err
	}
	return p.End()
}

func snpQuery(numPorts int) string {
	return "CALC1:DATA:SNP? " + strconv.Itoa(numPorts)
}

// packetRelay adapts touchstone.Sink to drivers.Sink, translating each
// emitted Frame into an AnalogPacket. Session/frame brackets carry no
// meaning for the host framework's flat packet stream and are dropped.
type packetRelay struct {
	sink drivers.Sink
}

func (r *packetRelay) SessionHeaderBegin() {}
func (r *packetRelay) SessionHeaderEnd()   {}
func (r *packetRelay) FrameBegin()         {}
func (r *packetRelay) FrameEnd()           {}

func (r *packetRelay) EmitAnalog(f touchstone.Frame) error {
	pkt := drivers.AnalogPacket{Data: f.Data}
	switch f.Kind {
	case touchstone.FrameReference:
		pkt.Unit = "ohm"
		pkt.Quantity = "resistance"
		pkt.Reference = true
	case touchstone.FrameFrequency:
		pkt.Unit = "Hz"
		pkt.Quantity = "frequency"
	case touchstone.FrameParameterData:
		pkt.Unit = ""
		pkt.Quantity = "n_port_parameter"
	case touchstone.FrameNoiseData:
		pkt.Unit = ""
		pkt.Quantity = "two_port_noise"
	}
	return r.sink.Emit(pkt)
}

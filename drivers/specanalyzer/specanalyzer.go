// Package specanalyzer is a thin driver stub for a swept spectrum
// analyzer. It pulls one trace per poll over SCPI and forwards it as a
// single batch of power readings; sweep configuration (span, RBW, etc.) is
// out of scope here and assumed pre-configured on the instrument.
package specanalyzer

import (
	"strconv"
	"strings"

	"github.com/gosigrok/touchstone/drivers"
)

func init() {
	drivers.Register("specanalyzer", func(t drivers.Transport) drivers.Driver {
		return &SpectrumAnalyzer{transport: t}
	})
}

// SpectrumAnalyzer polls one amplitude trace per call to Poll.
type SpectrumAnalyzer struct {
	transport drivers.Transport
}

func (s *SpectrumAnalyzer) Name() string { return "specanalyzer" }

func (s *SpectrumAnalyzer) Poll(sink drivers.Sink) error {
	if err := s.transport.WriteCommand("TRAC:DATA? TRACE1"); err != nil {
		return err
	}
	resp, err := s.transport.ReadResponse()
	if err != nil {
		return err
	}
	fields := strings.Split(strings.TrimSpace(resp), ",")
	trace := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return err
		}
		trace = append(trace, v)
	}
	return sink.Emit(drivers.AnalogPacket{Data: trace, Unit: "dBm", Quantity: "power", Digits: 2})
}

// Package drivers defines the outbound interface boundary that instrument
// drivers sit behind. USB transport, SCPI framing, and device enumeration
// are all out of scope for this repository: Transport is the only contract
// a concrete driver needs, and Driver is the only contract the host
// acquisition framework needs from a driver. Nothing here talks to real
// hardware.
package drivers

import "fmt"

// Transport models the physical link to an instrument, whether that's a
// USB control/bulk transfer or a SCPI command/response exchange over a
// serial or TCP link. A concrete implementation lives outside this
// repository.
type Transport interface {
	WriteCommand(cmd string) error
	ReadResponse() (string, error)
	Close() error
}

// AnalogPacket mirrors the host framework's analog-sample packet: one
// batch of same-quantity measurements plus the metadata needed to
// interpret them.
type AnalogPacket struct {
	Data     []float64
	Unit     string
	Quantity string
	Digits   int
	// Reference marks a packet carrying reference/calibration values
	// rather than a measurement, analogous to touchstone.FrameReference.
	Reference bool
}

// Sink receives the packets a Driver produces.
type Sink interface {
	Emit(AnalogPacket) error
}

// Driver is the minimal contract an instrument plug-in must satisfy to be
// polled by the host acquisition loop.
type Driver interface {
	Name() string
	Poll(Sink) error
}

// Factory constructs a Driver bound to a Transport. Concrete drivers
// register themselves by name so a caller can select one without importing
// every driver package directly.
type Factory func(Transport) Driver

var registry = map[string]Factory{}

// Register makes a driver factory available under name. Intended to be
// called from each driver subpackage's init.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// New constructs the named driver over the given transport.
func New(name string, t Transport) (Driver, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("drivers: no driver registered for %q", name)
	}
	return factory(t), nil
}

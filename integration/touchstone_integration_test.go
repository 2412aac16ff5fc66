// Package integration drives touchstone.Parser end to end against fixture
// files the way a real caller would: open a file, feed it through in
// modest chunks, and check what comes out the other end.
package integration

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosigrok/touchstone/touchstone"
)

type captureSink struct {
	frames []touchstone.Frame
}

func (c *captureSink) SessionHeaderBegin() {}
func (c *captureSink) SessionHeaderEnd()   {}
func (c *captureSink) FrameBegin()         {}
func (c *captureSink) FrameEnd()           {}
func (c *captureSink) EmitAnalog(f touchstone.Frame) error {
	c.frames = append(c.frames, f)
	return nil
}

func (c *captureSink) of(kind touchstone.FrameKind) []touchstone.Frame {
	var out []touchstone.Frame
	for _, f := range c.frames {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestTwoPortFixtureEndToEnd(t *testing.T) {
	data, err := os.ReadFile("testdata/two_port.s2p")
	require.NoError(t, err)

	require.Equal(t, touchstone.ProbeSuffixMatch, touchstone.Probe("testdata/two_port.s2p", ""))

	sink := &captureSink{}
	p := touchstone.New(sink)

	const chunkSize = 7
	for i := 0; i < len(data); i += chunkSize {
		end := i + chunkSize
		if end > len(data) {
			end = len(data)
		}
		require.NoError(t, p.Receive(data[i:end]))
	}
	require.NoError(t, p.End())

	refs := sink.of(touchstone.FrameReference)
	require.Len(t, refs, 1)
	assert.Equal(t, []float64{50, 50}, refs[0].Data)

	freqs := sink.of(touchstone.FrameFrequency)
	require.Len(t, freqs, 1)
	assert.Equal(t, []float64{1e9, 2e9, 3e9}, freqs[0].Data)

	params := sink.of(touchstone.FrameParameterData)
	require.Len(t, params, 1)
	assert.Len(t, params[0].Data, 3*8)

	noise := sink.of(touchstone.FrameNoiseData)
	require.Len(t, noise, 1)
	require.Len(t, noise[0].Data, 5)
	assert.InDelta(t, 0.5e9, noise[0].Data[0], 1e-3)
	assert.InDelta(t, math.Pow(10, 0.3), noise[0].Data[1], 1e-6)
}

package touchstone

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures every call a Parser makes, in order, for
// assertions in tests.
type recordingSink struct {
	events []string
	frames []Frame
}

func (s *recordingSink) SessionHeaderBegin() { s.events = append(s.events, "session-begin") }
func (s *recordingSink) SessionHeaderEnd()   { s.events = append(s.events, "session-end") }
func (s *recordingSink) FrameBegin()         { s.events = append(s.events, "frame-begin") }
func (s *recordingSink) FrameEnd()           { s.events = append(s.events, "frame-end") }
func (s *recordingSink) EmitAnalog(f Frame) error {
	s.events = append(s.events, "emit")
	s.frames = append(s.frames, f)
	return nil
}

func (s *recordingSink) framesOfKind(kind FrameKind) []Frame {
	var out []Frame
	for _, f := range s.frames {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func parseAll(t *testing.T, text string, opts ...Option) *recordingSink {
	t.Helper()
	sink := &recordingSink{}
	p := New(sink, opts...)
	require.NoError(t, p.Receive([]byte(text)))
	require.NoError(t, p.End())
	return sink
}

// Scenario A: minimal v1 2-port file, single row, inferred at end of input.
func TestScenarioA_V1SingleRowInference(t *testing.T) {
	const text = "# HZ S MA R 50\n" +
		"1e9 0.9 0 0.1 0 0.1 0 0.9 180\n"

	sink := parseAll(t, text)

	refs := sink.framesOfKind(FrameReference)
	require.Len(t, refs, 1)
	assert.Equal(t, []float64{50, 50}, refs[0].Data)

	freqs := sink.framesOfKind(FrameFrequency)
	require.Len(t, freqs, 1)
	assert.Equal(t, []float64{1e9}, freqs[0].Data)

	data := sink.framesOfKind(FrameParameterData)
	require.Len(t, data, 1)
	full := data[0].Data
	require.Len(t, full, 8)
	assert.InDelta(t, 0.9, full[0], 1e-9) // S11 mag
	assert.InDelta(t, 0, full[1], 1e-9)   // S11 angle
	assert.InDelta(t, 0.1, full[2], 1e-9) // S12 mag
	assert.InDelta(t, 0.1, full[4], 1e-9) // S21 mag
	assert.InDelta(t, 0.9, full[6], 1e-9) // S22 mag
	assert.InDelta(t, math.Pi, full[7], 1e-9)
}

// Scenario B: v1 2-port file with a main sweep followed by a noise block
// detected by decreasing frequency.
func TestScenarioB_V1NoiseByDecreasingFrequency(t *testing.T) {
	const text = "# GHZ S MA R 50\n" +
		"1 0.9 0 0.01 0 0.01 0 0.9 0\n" +
		"2 0.8 0 0.02 0 0.02 0 0.8 0\n" +
		"0.5 3.0 0.4 45 1.2\n"

	sink := parseAll(t, text)

	freqs := sink.framesOfKind(FrameFrequency)
	require.Len(t, freqs, 1)
	assert.Equal(t, []float64{1e9, 2e9}, freqs[0].Data)

	noise := sink.framesOfKind(FrameNoiseData)
	require.Len(t, noise, 1)
	require.Len(t, noise[0].Data, 5)
	assert.InDelta(t, 0.5e9, noise[0].Data[0], 1e-3)
	assert.InDelta(t, math.Pow(10, 0.3), noise[0].Data[1], 1e-6)
	assert.InDelta(t, 0.4, noise[0].Data[2], 1e-9)
	assert.InDelta(t, 45*math.Pi/180, noise[0].Data[3], 1e-9)
	assert.InDelta(t, 1.2, noise[0].Data[4], 1e-9)
}

// Scenario C: v2 3-port file with default reference resistance, no
// explicit [Reference] block.
func TestScenarioC_V2DefaultReference(t *testing.T) {
	const text = "[Version] 2.0\n" +
		"# GHZ S MA R 50\n" +
		"[Number of Ports] 3\n" +
		"[Number of Frequencies] 1\n" +
		"[Network Data]\n" +
		"1 " + nineZeros() + "\n" +
		"[End]\n"

	sink := parseAll(t, text)

	refs := sink.framesOfKind(FrameReference)
	require.Len(t, refs, 1)
	assert.Equal(t, []float64{50, 50, 50}, refs[0].Data)
}

func nineZeros() string {
	// 3 ports, FULL format: 2*3*3 = 18 values.
	s := ""
	for i := 0; i < 18; i++ {
		if i > 0 {
			s += " "
		}
		s += "0"
	}
	return s
}

// Scenario D: [Mixed-Mode Order] must be rejected, not silently ignored.
func TestScenarioD_MixedModeOrderRejected(t *testing.T) {
	const text = "[Version] 2.0\n" +
		"# GHZ S MA R 50\n" +
		"[Number of Ports] 2\n" +
		"[Mixed-Mode Order] DC1,DC2\n"

	sink := &recordingSink{}
	p := New(sink)
	err := p.Receive([]byte(text))
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrUnsupportedFeature))
}

func TestNoiseRequiresTwoPorts(t *testing.T) {
	const text = "[Version] 2.0\n" +
		"# GHZ S MA R 50\n" +
		"[Number of Ports] 3\n" +
		"[Network Data]\n" +
		"1 " + nineZeros() + "\n" +
		"[Noise Data]\n"

	sink := &recordingSink{}
	p := New(sink)
	err := p.Receive([]byte(text))
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrNoiseRequiresTwoPorts))
}

func TestV2NonSReferenceIsOne(t *testing.T) {
	const text = "[Version] 2.0\n" +
		"# GHZ Y MA R 50\n" +
		"[Number of Ports] 2\n" +
		"[Network Data]\n" +
		"1 1 0 0 0 0 0 1 0\n" +
		"[End]\n"

	sink := parseAll(t, text)
	refs := sink.framesOfKind(FrameReference)
	require.Len(t, refs, 1)
	assert.Equal(t, []float64{1, 1}, refs[0].Data)
}

func TestRowOverflowWarnsByDefault(t *testing.T) {
	const text = "[Version] 2.0\n" +
		"# GHZ S MA R 50\n" +
		"[Number of Ports] 2\n" +
		"[Network Data]\n" +
		"1 0.9 0 0.1 0 0.1 0 0.9 0 7 7\n" +
		"[End]\n"
	sink := parseAll(t, text)
	data := sink.framesOfKind(FrameParameterData)
	require.Len(t, data, 1)
	assert.Len(t, data[0].Data, 8)
}

func TestRowOverflowFatalWhenStrict(t *testing.T) {
	const text = "[Version] 2.0\n" +
		"# GHZ S MA R 50\n" +
		"[Number of Ports] 2\n" +
		"[Network Data]\n" +
		"1 0.9 0 0.1 0 0.1 0 0.9 0 7 7\n"

	sink := &recordingSink{}
	p := New(sink, WithStrict(true))
	err := p.Receive([]byte(text))
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrInconsistentMatrixShape))
}

func TestSessionBracketsAndFrameBrackets(t *testing.T) {
	const text = "# HZ S MA R 50\n1e9 0.9 0 0.1 0 0.1 0 0.9 180\n"
	sink := parseAll(t, text)
	require.GreaterOrEqual(t, len(sink.events), 4)
	assert.Equal(t, "session-begin", sink.events[0])
	assert.Equal(t, "session-end", sink.events[len(sink.events)-1])
	// The reference frame sits outside the frame brackets; the frequency
	// and parameter-data frames sit inside them.
	assert.Equal(t, []string{"session-begin", "emit", "frame-begin", "emit", "emit", "frame-end", "session-end"}, sink.events)
}

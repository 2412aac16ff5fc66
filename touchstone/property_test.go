package touchstone

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// chunkwiseParse feeds text to a fresh Parser split at the given byte
// offsets, taken in order; an offset smaller than the previous split used
// or greater than len(text) is skipped. It returns the frames observed.
func chunkwiseParse(t *testing.T, text string, splits []int) []Frame {
	t.Helper()
	sink := &recordingSink{}
	p := New(sink)
	data := []byte(text)
	start := 0
	for _, s := range splits {
		if s < start || s > len(data) {
			continue
		}
		require.NoError(t, p.Receive(data[start:s]))
		start = s
	}
	require.NoError(t, p.Receive(data[start:]))
	require.NoError(t, p.End())
	return sink.frames
}

// TestChunkIndependence is testable property #6: delivering the same bytes
// split at arbitrary chunk boundaries must produce the same emitted frames
// as delivering them whole.
func TestChunkIndependence(t *testing.T) {
	const text = "# GHZ S MA R 50\n" +
		"1 0.9 0 0.01 0 0.01 0 0.9 0\n" +
		"2 0.8 0 0.02 0 0.02 0 0.8 0\n" +
		"3 0.7 0 0.03 0 0.03 0 0.7 0\n"

	whole := chunkwiseParse(t, text, nil)

	rapid.Check(t, func(rt *rapid.T) {
		n := len(text)
		numSplits := rapid.IntRange(0, n).Draw(rt, "numSplits")
		splits := make([]int, numSplits)
		for i := range splits {
			splits[i] = rapid.IntRange(0, n).Draw(rt, "split")
		}
		got := chunkwiseParse(t, text, splits)
		require.Equal(t, len(whole), len(got))
		for i := range whole {
			require.Equal(t, whole[i].Kind, got[i].Kind)
			require.InDeltaSlice(t, whole[i].Data, got[i].Data, 1e-9)
		}
	})
}

// TestMatrixFormatsReconstructSameMatrix is testable property #3: a network
// described identically but stored as FULL, LOWER, or UPPER must reconstruct
// the same full matrix.
func TestMatrixFormatsReconstructSameMatrix(t *testing.T) {
	full := "[Version] 2.0\n# GHZ S MA R 50\n[Number of Ports] 2\n[Network Data]\n" +
		"1 0.9 0 0.1 10 0.1 10 0.8 0\n[End]\n"
	lower := "[Version] 2.0\n# GHZ S MA R 50\n[Number of Ports] 2\n[Matrix Format] LOWER\n[Network Data]\n" +
		"1 0.9 0 0.1 10 0.8 0\n[End]\n"
	upper := "[Version] 2.0\n# GHZ S MA R 50\n[Number of Ports] 2\n[Matrix Format] UPPER\n[Network Data]\n" +
		"1 0.9 0 0.1 10 0.8 0\n[End]\n"

	fFull := parseAll(t, full).framesOfKind(FrameParameterData)[0].Data
	fLower := parseAll(t, lower).framesOfKind(FrameParameterData)[0].Data
	fUpper := parseAll(t, upper).framesOfKind(FrameParameterData)[0].Data

	require.InDeltaSlice(t, fFull, fLower, 1e-9)
	require.InDeltaSlice(t, fFull, fUpper, 1e-9)
}

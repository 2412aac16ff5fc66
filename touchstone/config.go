package touchstone

// NumberFormat is the on-disk encoding of each complex value: decibel plus
// angle, magnitude plus angle, or real plus imaginary.
type NumberFormat int

const (
	FormatDB NumberFormat = iota
	FormatMA
	FormatRI
)

// ParameterKind is the network-parameter family the file describes.
type ParameterKind int

const (
	KindS ParameterKind = iota
	KindY
	KindZ
	KindG
	KindH
)

// MatrixFormat is the on-disk storage shape of the N-port matrix.
type MatrixFormat int

const (
	FormatFull MatrixFormat = iota
	FormatLower
	FormatUpper
)

// TwoPortOrder distinguishes the two conventions for ordering the two
// off-diagonal values of a 2-port row.
type TwoPortOrder int

const (
	// Order2112 is the legacy column order S11, S21, S12, S22 and is the
	// default for both file versions absent a [Two-Port Order] keyword.
	Order2112 TwoPortOrder = iota
	// Order1221 is the canonical row-major order S11, S12, S21, S22.
	Order1221
)

// ConfigRecord holds every piece of configuration state gathered from the
// header and keyword section of a Touchstone file. It is populated
// incrementally as the parser progresses and is never reset mid-parse.
type ConfigRecord struct {
	FileVersion int // 1 or 2; 0 before the header is parsed

	FrequencyUnit float64 // multiplier applied to raw frequency tokens to reach Hz
	NumberFormat  NumberFormat
	ParameterKind ParameterKind

	ReferenceResistance  float64   // scalar default, from the option line's R token
	ReferenceResistances []float64 // per-port override from [Reference], nil if unset

	NumPorts     int // 0 until known (inferred for v1, declared for v2)
	TwoPortOrder TwoPortOrder
	MatrixFormat MatrixFormat

	SweepPointsExpected      int // from [Number of Frequencies], advisory only
	SweepPointsNoiseExpected int // from [Number of Noise Frequencies], advisory only
}

func defaultConfig() ConfigRecord {
	return ConfigRecord{
		FrequencyUnit:       1e9, // GHz
		NumberFormat:        FormatMA,
		ParameterKind:       KindS,
		ReferenceResistance: 50,
		TwoPortOrder:        Order2112,
		MatrixFormat:        FormatFull,
	}
}

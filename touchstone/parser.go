package touchstone

import "github.com/google/uuid"

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithStrict makes row-count overflow (a data row with more values than
// its configured width) fatal instead of a logged, truncating warning.
func WithStrict(strict bool) Option {
	return func(p *Parser) { p.strict = strict }
}

// Parser is a single-threaded, chunk-fed Touchstone parser. Its methods
// must all be called from the same goroutine, in the order New, zero or
// more Receive, End, then optionally Reset to reuse it for another file, or
// Cleanup when done with it.
type Parser struct {
	sink      Sink
	cfg       ConfigRecord
	sessionID uuid.UUID
	strict    bool

	state     parserState
	started   bool
	finished  bool
	ingest    []byte

	// Main-sweep row accumulation.
	pending         []float64
	numValsPerSet   int
	mainStarted     bool
	lastMainFreqRaw float64

	// Reference-resistance accumulation ([Reference] keyword).
	refAccum []float64

	// Sweep store.
	sweepFreq []float64
	sweepData []float64
	sweepCount int

	// Noise-row accumulation and store.
	noisePending []float64
	noiseData    []float64
	noiseCount   int

	referenceEmitted bool
}

// New creates a ready-to-use Parser that emits frames to sink.
func New(sink Sink, opts ...Option) *Parser {
	p := &Parser{
		sink:      sink,
		cfg:       defaultConfig(),
		sessionID: uuid.New(),
		state:     stateStartFile,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SessionID identifies this parser instance for logging and correlation.
func (p *Parser) SessionID() uuid.UUID { return p.sessionID }

// Config returns the configuration record gathered so far. The returned
// value is a snapshot; mutating it has no effect on the parser.
func (p *Parser) Config() ConfigRecord {
	cfg := p.cfg
	if cfg.ReferenceResistances != nil {
		cfg.ReferenceResistances = append([]float64(nil), cfg.ReferenceResistances...)
	}
	return cfg
}

// Receive feeds the next chunk of raw file bytes to the parser. Chunk
// boundaries carry no meaning: a file fed one byte at a time and the same
// file fed whole must produce identical emitted frames.
func (p *Parser) Receive(chunk []byte) error {
	if p.finished {
		return nil
	}
	if !p.started {
		p.sink.SessionHeaderBegin()
		p.started = true
	}
	p.ingest = append(p.ingest, chunk...)
	return p.drain(false)
}

// End signals that no more input is coming. Any buffered partial line is
// processed as if terminated by a newline, any still-open block is flushed,
// and the session is closed out.
func (p *Parser) End() error {
	if !p.started {
		p.sink.SessionHeaderBegin()
		p.started = true
	}
	if !p.finished {
		if err := p.drain(true); err != nil {
			return err
		}
		if !p.finished {
			if err := p.terminate(); err != nil {
				return err
			}
		}
	}
	p.sink.SessionHeaderEnd()
	return nil
}

// drain normalizes the ingest buffer and processes every complete line in
// it. When eof is true, the entire remaining buffer is treated as complete.
func (p *Parser) drain(eof bool) error {
	if len(p.ingest) == 0 {
		return nil
	}
	normalizeIngest(p.ingest)
	complete, rest := splitComplete(p.ingest, eof)
	if complete == nil {
		return nil
	}
	p.ingest = append([]byte(nil), rest...)

	start := 0
	for i := 0; i <= len(complete); i++ {
		if i < len(complete) && complete[i] != '\n' {
			continue
		}
		raw := complete[start:i]
		start = i + 1
		line := stripCommentAndTrim(string(raw))
		if line == "" {
			continue
		}
		if err := p.processLine(line); err != nil {
			return err
		}
		if p.finished {
			break
		}
	}
	return nil
}

// Reset truncates the ingest buffer and clears the started flag, so the
// same Parser can begin a new chunk stream. All other state (header
// configuration, accumulated sweep data, state machine position) persists;
// callers that want a fully independent parse should construct a new
// Parser instead.
func (p *Parser) Reset() error {
	p.ingest = nil
	p.started = false
	return nil
}

// Cleanup releases buffers the parser owns. The Parser must not be used
// again afterward.
func (p *Parser) Cleanup() {
	p.ingest = nil
	p.pending = nil
	p.refAccum = nil
	p.sweepFreq = nil
	p.sweepData = nil
	p.noisePending = nil
	p.noiseData = nil
	p.cfg.ReferenceResistances = nil
}

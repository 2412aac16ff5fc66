package touchstone

import (
	"math"

	"github.com/golang/glog"
)

// processDataLine tokenizes one numeric line and routes it to the right
// accumulator depending on whether the port count is known yet, and
// whether we're inside the main sweep or the noise block.
func (p *Parser) processDataLine(line string) error {
	tokens, err := parseNumberTokens(line)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	if p.cfg.NumPorts == 0 {
		return p.feedUnknownPortTokens(tokens)
	}

	// v1 noise data has no explicit keyword: it is recognized as the first
	// row, at the start of a fresh accumulation, whose frequency drops
	// below the last main-block frequency. Only meaningful for 2-port
	// networks, the only shape noise data can have.
	if p.state == stateDataLines && p.cfg.FileVersion == 1 && p.cfg.NumPorts == 2 &&
		p.mainStarted && len(p.pending) == 0 && tokens[0] < p.lastMainFreqRaw {
		if err := p.enterNoiseState(); err != nil {
			return err
		}
		return p.feedNoiseTokens(tokens)
	}

	if p.state == stateNoiseData {
		return p.feedNoiseTokens(tokens)
	}
	return p.feedMainTokens(tokens)
}

// feedUnknownPortTokens handles v1 accumulation before the port count is
// known. It watches for a line that starts a new row (an odd token count
// while something is already pending) to mark where the first row ends.
func (p *Parser) feedUnknownPortTokens(tokens []float64) error {
	if len(p.pending) > 0 && len(tokens)%2 == 1 {
		row := p.pending
		p.pending = nil
		n, err := inferNumPorts(len(row))
		if err != nil {
			return err
		}
		p.cfg.NumPorts = n
		p.recomputeRowWidth()
		if err := p.completeMainRow(row); err != nil {
			return err
		}
		p.mainStarted = true
		p.pending = append(p.pending, tokens...)
		return p.maybeCompletePendingMainRow()
	}
	p.pending = append(p.pending, tokens...)
	return nil
}

func (p *Parser) maybeCompletePendingMainRow() error {
	if p.numValsPerSet == 0 || len(p.pending) < p.numValsPerSet {
		return nil
	}
	if len(p.pending) > p.numValsPerSet {
		if err := p.handleRowOverflow(); err != nil {
			return err
		}
	}
	row := p.pending
	p.pending = nil
	return p.completeMainRow(row)
}

func (p *Parser) feedMainTokens(tokens []float64) error {
	p.pending = append(p.pending, tokens...)
	return p.maybeCompletePendingMainRow()
}

func (p *Parser) feedNoiseTokens(tokens []float64) error {
	const noiseRowWidth = 5
	p.noisePending = append(p.noisePending, tokens...)
	if len(p.noisePending) < noiseRowWidth {
		return nil
	}
	if len(p.noisePending) > noiseRowWidth {
		if p.strict {
			return newErr(ErrInconsistentMatrixShape, "noise row has %d values, expected %d", len(p.noisePending), noiseRowWidth)
		}
		glog.Warningf("touchstone[%s]: noise row has %d values, expected %d; truncating", p.sessionID, len(p.noisePending), noiseRowWidth)
		p.noisePending = p.noisePending[:noiseRowWidth]
	}
	row := p.noisePending
	p.noisePending = nil
	return p.completeNoiseRow(row)
}

func (p *Parser) handleRowOverflow() error {
	if p.strict {
		return newErr(ErrInconsistentMatrixShape, "row has %d values, expected %d", len(p.pending), p.numValsPerSet)
	}
	glog.Warningf("touchstone[%s]: row has %d values, expected %d; truncating", p.sessionID, len(p.pending), p.numValsPerSet)
	p.pending = p.pending[:p.numValsPerSet]
	return nil
}

func (p *Parser) recomputeRowWidth() {
	p.numValsPerSet = rowWidth(p.cfg.NumPorts, p.cfg.MatrixFormat)
}

// completeMainRow reshapes, normalizes, and appends one complete main-sweep
// row (frequency plus the matrix payload) to the sweep store.
func (p *Parser) completeMainRow(raw []float64) error {
	n := p.cfg.NumPorts
	freqRaw := raw[0]
	payload := raw[1:]

	full := make([]float64, 2*n*n)
	switch p.cfg.MatrixFormat {
	case FormatFull:
		copy(full, payload)
	case FormatLower:
		placeLower(full, payload, n)
	case FormatUpper:
		placeUpper(full, payload, n)
	}

	normalizePairs(full, p.cfg.NumberFormat)

	switch p.cfg.MatrixFormat {
	case FormatLower:
		mirrorUpperFromLower(full, n)
	case FormatUpper:
		mirrorLowerFromUpper(full, n)
	}

	if n == 2 && p.cfg.TwoPortOrder == Order2112 {
		swapTwoPortOrder(full)
	}

	p.sweepFreq = append(p.sweepFreq, freqRaw*p.cfg.FrequencyUnit)
	p.sweepData = append(p.sweepData, full...)
	p.sweepCount++
	p.mainStarted = true
	p.lastMainFreqRaw = freqRaw
	return nil
}

// completeNoiseRow normalizes one complete 5-value noise row and appends it
// to the noise store, inline with the frequency it belongs to.
func (p *Parser) completeNoiseRow(raw []float64) error {
	freqHz := raw[0] * p.cfg.FrequencyUnit
	noiseFigure := raw[1]
	gammaMag := raw[2]
	gammaAngle := raw[3]
	rn := raw[4]

	linearNF := math.Pow(10, noiseFigure/10) // noise figure is a power ratio expressed in dB
	angleRad := gammaAngle * math.Pi / 180

	p.noiseData = append(p.noiseData, freqHz, linearNF, gammaMag, angleRad, rn)
	p.noiseCount++
	return nil
}

// ensureReferenceEmitted sends the reference-resistance frame exactly once,
// lazily, right before the first block of data is flushed. This is
// deliberately later than the point the original driver emits it from, so
// that an explicit [Reference] block appearing after [Number of Ports] but
// before [Network Data] is always reflected correctly.
func (p *Parser) ensureReferenceEmitted() error {
	if p.referenceEmitted || p.cfg.NumPorts == 0 {
		return nil
	}
	refs := make([]float64, p.cfg.NumPorts)
	if p.cfg.FileVersion > 1 && p.cfg.ParameterKind != KindS {
		for i := range refs {
			refs[i] = 1
		}
	} else if p.cfg.ReferenceResistances != nil {
		copy(refs, p.cfg.ReferenceResistances)
	} else {
		for i := range refs {
			refs[i] = p.cfg.ReferenceResistance
		}
	}
	if err := p.sink.EmitAnalog(Frame{Kind: FrameReference, Data: refs, NumPorts: p.cfg.NumPorts}); err != nil {
		return err
	}
	p.referenceEmitted = true
	return nil
}

func (p *Parser) flushMainBlock() error {
	if p.sweepCount == 0 {
		return nil
	}
	if err := p.ensureReferenceEmitted(); err != nil {
		return err
	}
	p.sink.FrameBegin()
	defer p.sink.FrameEnd()

	freqFrame := Frame{Kind: FrameFrequency, Data: append([]float64(nil), p.sweepFreq...)}
	if err := p.sink.EmitAnalog(freqFrame); err != nil {
		return err
	}
	dataFrame := Frame{
		Kind:          FrameParameterData,
		Data:          append([]float64(nil), p.sweepData...),
		ParameterKind: p.cfg.ParameterKind,
		NumPorts:      p.cfg.NumPorts,
	}
	if err := p.sink.EmitAnalog(dataFrame); err != nil {
		return err
	}

	p.sweepFreq = p.sweepFreq[:0]
	p.sweepData = p.sweepData[:0]
	p.sweepCount = 0
	return nil
}

func (p *Parser) flushNoiseBlock() error {
	if p.noiseCount == 0 {
		return nil
	}
	if err := p.ensureReferenceEmitted(); err != nil {
		return err
	}
	p.sink.FrameBegin()
	defer p.sink.FrameEnd()

	frame := Frame{Kind: FrameNoiseData, Data: append([]float64(nil), p.noiseData...)}
	if err := p.sink.EmitAnalog(frame); err != nil {
		return err
	}

	p.noiseData = p.noiseData[:0]
	p.noiseCount = 0
	return nil
}

package touchstone

import (
	"strconv"
	"strings"
)

// parserState is the tagged variant driving line dispatch. Unlike a bag of
// booleans, only one of these is ever active, and every transition is made
// by processLine or by one of the handlers its switch dispatches to.
type parserState int

const (
	stateStartFile parserState = iota
	stateOptionLine
	stateNumPorts
	stateKeywords
	stateReferences
	stateSkipInfo
	stateDataLines
	stateNoiseData
)

// processLine dispatches one already-normalized, comment-stripped,
// non-empty logical line according to the current state.
func (p *Parser) processLine(line string) error {
	if p.finished {
		return nil
	}

	first := line[0]

	// Outside the two header entry states, a stray '#' line is ignored:
	// only the very first option line is structurally significant.
	if p.state != stateStartFile && p.state != stateOptionLine && first == '#' {
		return nil
	}

	if (p.state == stateDataLines || p.state == stateNoiseData) && first == '[' && isKeyword(line, "[END]") {
		return p.terminate()
	}

	switch p.state {
	case stateStartFile:
		return p.processStartFile(line, first)
	case stateOptionLine:
		if first != '#' {
			return newErr(ErrBadHeader, "expected option line after [Version], got %q", line)
		}
		p.state = stateNumPorts
		return p.parseOptionLine(line)
	case stateNumPorts:
		if first != '[' {
			return newErr(ErrBadHeader, "expected a keyword line after the option line, got %q", line)
		}
		p.state = stateKeywords
		return p.parseKeywordLine(line)
	case stateKeywords:
		if first == '[' {
			return p.parseKeywordLine(line)
		}
		p.state = stateDataLines
		return p.processDataLine(line)
	case stateReferences:
		return p.processReferenceTokens(line)
	case stateSkipInfo:
		if isKeyword(line, "[END INFORMATION]") {
			p.state = stateKeywords
		}
		return nil
	case stateDataLines:
		if first == '[' && isKeyword(line, "[NOISE DATA]") {
			return p.enterNoiseState()
		}
		return p.processDataLine(line)
	case stateNoiseData:
		return p.processDataLine(line)
	}
	return nil
}

func (p *Parser) processStartFile(line string, first byte) error {
	switch first {
	case '#':
		p.cfg.FileVersion = 1
		p.state = stateDataLines
		return p.parseOptionLine(line)
	case '[':
		p.state = stateOptionLine
		return p.parseVersionLine(line)
	default:
		return newErr(ErrBadHeader, "expected an option line or [Version] line, got %q", line)
	}
}

// parseVersionLine handles the v2 "[Version] 2.0" line.
func (p *Parser) parseVersionLine(line string) error {
	if !isKeyword(line, "[VERSION]") {
		return newErr(ErrBadHeader, "expected [Version], got %q", line)
	}
	rest := strings.TrimSpace(line[len("[VERSION]"):])
	if rest != "2.0" {
		return newErr(ErrBadVersion, "unsupported Touchstone version %q", rest)
	}
	p.cfg.FileVersion = 2
	return nil
}

// parseOptionLine handles the '#'-prefixed option line common to both
// versions. Tokens may appear in any order.
func (p *Parser) parseOptionLine(line string) error {
	tokens := strings.Fields(strings.TrimPrefix(line, "#"))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok {
		case "HZ":
			p.cfg.FrequencyUnit = 1
		case "KHZ":
			p.cfg.FrequencyUnit = 1e3
		case "MHZ":
			p.cfg.FrequencyUnit = 1e6
		case "GHZ":
			p.cfg.FrequencyUnit = 1e9
		case "DB":
			p.cfg.NumberFormat = FormatDB
		case "MA":
			p.cfg.NumberFormat = FormatMA
		case "RI":
			p.cfg.NumberFormat = FormatRI
		case "S":
			p.cfg.ParameterKind = KindS
		case "Y":
			p.cfg.ParameterKind = KindY
		case "Z":
			p.cfg.ParameterKind = KindZ
		case "G":
			p.cfg.ParameterKind = KindG
		case "H":
			p.cfg.ParameterKind = KindH
		case "R":
			if i+1 >= len(tokens) {
				return newErr(ErrBadOptionLine, "R token has no value")
			}
			v, err := strconv.ParseFloat(tokens[i+1], 64)
			if err != nil {
				return newErr(ErrBadOptionLine, "invalid reference resistance %q", tokens[i+1])
			}
			p.cfg.ReferenceResistance = v
			i++
		default:
			// Unknown tokens are ignored: the option line is an
			// any-order bag and not every implementation token is
			// spelled the same way across files in the wild.
		}
	}
	return nil
}

// parseKeywordLine handles one v2 "[Keyword] args..." line.
func (p *Parser) parseKeywordLine(line string) error {
	name, rest := splitKeyword(line)
	switch name {
	case "[NUMBER OF PORTS]":
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n <= 0 {
			return newErr(ErrBadOptionLine, "invalid [Number of Ports] value %q", rest)
		}
		p.cfg.NumPorts = n
		p.recomputeRowWidth()
		return nil
	case "[TWO-PORT ORDER]":
		switch strings.TrimSpace(rest) {
		case "21_12":
			p.cfg.TwoPortOrder = Order2112
		case "12_21":
			p.cfg.TwoPortOrder = Order1221
		default:
			return newErr(ErrBadOptionLine, "invalid [Two-Port Order] value %q", rest)
		}
		return nil
	case "[NUMBER OF FREQUENCIES]":
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return newErr(ErrBadOptionLine, "invalid [Number of Frequencies] value %q", rest)
		}
		p.cfg.SweepPointsExpected = n
		return nil
	case "[NUMBER OF NOISE FREQUENCIES]":
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return newErr(ErrBadOptionLine, "invalid [Number of Noise Frequencies] value %q", rest)
		}
		p.cfg.SweepPointsNoiseExpected = n
		return nil
	case "[REFERENCE]":
		if p.cfg.NumPorts == 0 {
			return newErr(ErrReferenceBeforePortCount, "[Reference] seen before [Number of Ports]")
		}
		p.refAccum = p.refAccum[:0]
		return p.processReferenceTokens(rest)
	case "[MATRIX FORMAT]":
		if p.cfg.NumPorts == 0 {
			return newErr(ErrMissingRequiredKeyword, "[Matrix Format] seen before [Number of Ports]")
		}
		switch strings.TrimSpace(rest) {
		case "FULL":
			p.cfg.MatrixFormat = FormatFull
		case "LOWER":
			p.cfg.MatrixFormat = FormatLower
		case "UPPER":
			p.cfg.MatrixFormat = FormatUpper
		default:
			return newErr(ErrBadOptionLine, "invalid [Matrix Format] value %q", rest)
		}
		p.recomputeRowWidth()
		return nil
	case "[MIXED-MODE ORDER]":
		return newErr(ErrUnsupportedFeature, "[Mixed-Mode Order] is not supported")
	case "[BEGIN INFORMATION]":
		p.state = stateSkipInfo
		return nil
	case "[NETWORK DATA]":
		if p.cfg.NumPorts == 0 {
			return newErr(ErrMissingRequiredKeyword, "[Network Data] seen before [Number of Ports]")
		}
		p.state = stateDataLines
		return nil
	case "[NOISE DATA]":
		return p.enterNoiseState()
	default:
		// Unknown bracketed directives are ignored silently.
		return nil
	}
}

// processReferenceTokens accumulates whitespace-separated reference
// resistance values, possibly spread across several lines, until NumPorts
// values have been collected.
func (p *Parser) processReferenceTokens(text string) error {
	for _, f := range strings.Fields(text) {
		if len(p.refAccum) >= p.cfg.NumPorts {
			break
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return newErr(ErrBadNumber, "invalid reference value %q", f)
		}
		p.refAccum = append(p.refAccum, v)
	}
	if len(p.refAccum) >= p.cfg.NumPorts {
		p.cfg.ReferenceResistances = append([]float64(nil), p.refAccum...)
		p.refAccum = nil
		p.state = stateKeywords
	} else {
		p.state = stateReferences
	}
	return nil
}

// enterNoiseState flushes the main sweep block (if any) and switches into
// noise-row accumulation.
func (p *Parser) enterNoiseState() error {
	if p.cfg.NumPorts != 2 {
		return newErr(ErrNoiseRequiresTwoPorts, "noise data requires a 2-port network, got %d ports", p.cfg.NumPorts)
	}
	if err := p.flushMainBlock(); err != nil {
		return err
	}
	p.state = stateNoiseData
	p.pending = nil
	return nil
}

// terminate handles a [End] keyword or an implicit end of input: it flushes
// whatever block is currently open and marks the parser finished. Ending
// while still inside a v2 header is an ErrUnexpectedEndOfInput.
func (p *Parser) terminate() error {
	switch p.state {
	case stateOptionLine, stateNumPorts, stateKeywords, stateReferences, stateSkipInfo:
		return newErr(ErrUnexpectedEndOfInput, "input ended before the header was complete")
	}
	if p.state == stateNoiseData {
		if err := p.flushNoiseBlock(); err != nil {
			return err
		}
	} else {
		if p.cfg.NumPorts == 0 && len(p.pending) > 0 && p.cfg.FileVersion == 1 {
			n, err := inferNumPorts(len(p.pending))
			if err != nil {
				return err
			}
			p.cfg.NumPorts = n
			row := p.pending
			p.pending = nil
			if err := p.completeMainRow(row); err != nil {
				return err
			}
		}
		if err := p.flushMainBlock(); err != nil {
			return err
		}
	}
	p.finished = true
	return nil
}

// isKeyword reports whether line begins with the given bracketed keyword.
// The line has already been trimmed; anything after the closing bracket is
// ignored, and whitespace inside the brackets must match exactly.
func isKeyword(line, keyword string) bool {
	return strings.HasPrefix(line, keyword)
}

// splitKeyword splits a "[Name] rest..." line into the bracketed name
// (including brackets, whitespace-collapsed, in the case the line already
// has after ingest normalization) and the remainder.
func splitKeyword(line string) (name, rest string) {
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return line, ""
	}
	name = strings.Join(strings.Fields(line[:end+1]), " ")
	rest = line[end+1:]
	return name, rest
}

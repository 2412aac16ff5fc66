package touchstone

import (
	"bytes"
	"strconv"
	"strings"
)

func parseFloatField(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// normalizeIngest upper-cases ASCII letters, turns tabs into spaces, and
// turns carriage returns into newlines, all in place. It is idempotent, so
// re-running it on already-normalized bytes left over from a previous
// Receive call is harmless.
func normalizeIngest(buf []byte) {
	for i, b := range buf {
		switch {
		case b >= 'a' && b <= 'z':
			buf[i] = b - ('a' - 'A')
		case b == '\t':
			buf[i] = ' '
		case b == '\r':
			buf[i] = '\n'
		}
	}
}

// splitComplete finds the last newline in buf and returns the bytes up to
// and including it, plus the remainder to hold for the next call. If eof is
// true, the whole buffer is considered complete and nothing is held back.
func splitComplete(buf []byte, eof bool) (complete, rest []byte) {
	if eof {
		return buf, nil
	}
	idx := bytes.LastIndexByte(buf, '\n')
	if idx < 0 {
		return nil, buf
	}
	return buf[:idx+1], buf[idx+1:]
}

// stripCommentAndTrim removes any "!"-introduced comment and surrounding
// whitespace from one logical line.
func stripCommentAndTrim(line string) string {
	if idx := strings.IndexByte(line, '!'); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

// parseNumberTokens splits a line on whitespace and parses each field as a
// float64.
func parseNumberTokens(line string) ([]float64, error) {
	fields := strings.Fields(line)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := parseFloatField(f)
		if err != nil {
			return nil, newErr(ErrBadNumber, "invalid numeric token %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

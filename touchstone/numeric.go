package touchstone

import "math"

// isqrt returns the integer square root of n: the largest r such that
// r*r <= n. Used to invert the row-width formula 2n^2+1 during v1 port
// count inference.
func isqrt(n int) int {
	if n < 0 {
		return 0
	}
	r := int(math.Sqrt(float64(n)))
	for r > 0 && r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// inferNumPorts recovers the port count from a complete row's total value
// count (including the leading frequency), per spec: total = 2*n^2 + 1.
func inferNumPorts(total int) (int, error) {
	if total < 3 || total%2 == 0 {
		return 0, newErr(ErrInconsistentMatrixShape,
			"row has %d values, which cannot be a frequency plus a square number of complex pairs", total)
	}
	numer := total - 1
	if numer%2 != 0 {
		return 0, newErr(ErrInconsistentMatrixShape, "row has %d values, not 2n^2+1 for any n", total)
	}
	n := isqrt(numer / 2)
	if 2*n*n+1 != total {
		return 0, newErr(ErrInconsistentMatrixShape, "row has %d values, not 2n^2+1 for any n", total)
	}
	return n, nil
}

// rowWidth returns the number of reals (including the leading frequency)
// one complete row of the main sweep occupies, given a port count and
// matrix storage format.
func rowWidth(numPorts int, format MatrixFormat) int {
	if numPorts == 0 {
		return 0
	}
	switch format {
	case FormatFull:
		return 2*numPorts*numPorts + 1
	default: // FormatLower, FormatUpper
		return numPorts*numPorts + numPorts + 1
	}
}

// convertDB turns a (magnitude_dB, angle_deg) pair into (magnitude, angle_rad).
func convertDB(magDB, angleDeg float64) (float64, float64) {
	return math.Pow(10, magDB/20), angleDeg * math.Pi / 180
}

// convertMA turns a (magnitude, angle_deg) pair into (magnitude, angle_rad).
func convertMA(mag, angleDeg float64) (float64, float64) {
	return mag, angleDeg * math.Pi / 180
}

// convertRI turns a (real, imag) pair into (magnitude, angle_rad), with the
// angle defined as zero when both components are zero.
func convertRI(re, im float64) (float64, float64) {
	mag := math.Hypot(re, im)
	if re == 0 && im == 0 {
		return mag, 0
	}
	return mag, math.Atan2(im, re)
}

// normalizePairs converts every interleaved (x, y) pair in data, in place,
// from the given on-disk encoding to (magnitude, angle-in-radians).
func normalizePairs(data []float64, format NumberFormat) {
	for i := 0; i+1 < len(data); i += 2 {
		switch format {
		case FormatDB:
			data[i], data[i+1] = convertDB(data[i], data[i+1])
		case FormatMA:
			data[i], data[i+1] = convertMA(data[i], data[i+1])
		case FormatRI:
			data[i], data[i+1] = convertRI(data[i], data[i+1])
		}
	}
}

// placeLower scatters a lower-triangular row-major payload (row i holding
// i+1 complex entries, the diagonal and everything left of it) into a full
// n x n row-major complex matrix, leaving the rest zeroed.
func placeLower(dst, payload []float64, n int) {
	idx := 0
	for i := 0; i < n; i++ {
		rowLen := 2 * (i + 1)
		offset := i * n * 2
		copy(dst[offset:offset+rowLen], payload[idx:idx+rowLen])
		idx += rowLen
	}
}

// placeUpper scatters an upper-triangular row-major payload (row i holding
// n-i complex entries, the diagonal and everything right of it) into a
// full n x n row-major complex matrix, leaving the rest zeroed.
func placeUpper(dst, payload []float64, n int) {
	idx := 0
	for i := 0; i < n; i++ {
		rowLen := 2 * (n - i)
		offset := i * (n + 1) * 2
		copy(dst[offset:offset+rowLen], payload[idx:idx+rowLen])
		idx += rowLen
	}
}

// mirrorUpperFromLower fills the strict upper triangle of a full n x n
// row-major complex matrix by copying each lower-triangle entry across the
// diagonal. Used when the on-disk format was LOWER.
func mirrorUpperFromLower(full []float64, n int) {
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			full[2*(i*n+j)] = full[2*(j*n+i)]
			full[2*(i*n+j)+1] = full[2*(j*n+i)+1]
		}
	}
}

// mirrorLowerFromUpper fills the strict lower triangle of a full n x n
// row-major complex matrix by copying each upper-triangle entry across the
// diagonal. Used when the on-disk format was UPPER.
func mirrorLowerFromUpper(full []float64, n int) {
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			full[2*(j*n+i)] = full[2*(i*n+j)]
			full[2*(j*n+i)+1] = full[2*(i*n+j)+1]
		}
	}
}

// swapTwoPortOrder exchanges the S12 and S21 complex slots of a 2-port
// row-major matrix, converting between the legacy (S11,S21,S12,S22) file
// order and the canonical row-major order.
func swapTwoPortOrder(full []float64) {
	full[2], full[4] = full[4], full[2]
	full[3], full[5] = full[5], full[3]
}

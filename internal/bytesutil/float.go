package bytesutil

import "math"

// powersOf10 holds 10^(2^i) for i = 0..8, used to build the exponent
// multiplier by repeated squaring instead of a loop of plain multiplies.
// The table must cover every bit position the exponent-reconstruction
// loop below can reach for a given maxExponent: a 511 exponent sets bits
// 0..8, so the table needs 9 entries, up through 1e256.
var powersOf10 = [9]float64{1e1, 1e2, 1e4, 1e8, 1e16, 1e32, 1e64, 1e128, 1e256}

const maxExponent = 511

// ParseFloat ports the classic BSD strtod algorithm used by the original
// CSV reader (bsd_strtod in util/strings.hpp): a table-driven exponent
// build rather than strconv's general-purpose parser, truncating the
// mantissa beyond 18 significant digits the same way the original does.
// It never errors — malformed input that isn't a recognized NaN/number
// prefix simply parses as far as it can, matching the original's
// permissive byte-at-a-time walk.
func ParseFloat(b []byte) float64 {
	i := 0
	n := len(b)
	for i < n && isBlank(b[i]) {
		i++
	}
	if i >= n {
		return math.NaN()
	}
	if b[i] == 'n' || b[i] == 'N' || b[i] == '?' {
		return math.NaN()
	}

	sign := false
	if b[i] == '-' {
		sign = true
		i++
	} else if b[i] == '+' {
		i++
	}

	var frac1, frac2 uint64
	decPt := -1
	mantSize := 0
	digitsStart := i
loop:
	for i < n {
		c := b[i]
		switch {
		case c >= '0' && c <= '9':
			mantSize++
		case c == '.' && decPt < 0:
			decPt = mantSize
		default:
			break loop
		}
		i++
	}
	digitsEnd := i
	expStart := i

	if decPt < 0 {
		decPt = mantSize
	}

	if mantSize > 2*9 {
		// Truncate extra digits to the first 18 significant digits.
		excess := mantSize - 2*9
		digitsEnd -= excess
		mantSize = 2 * 9
	}
	if mantSize == 0 {
		return 0
	}

	half1 := mantSize
	if half1 > 9 {
		half1 = 9
	}
	half2 := mantSize - half1

	p := digitsStart
	count := 0
	for count < half1 && p < digitsEnd {
		c := b[p]
		p++
		if c == '.' {
			continue
		}
		frac1 = frac1*10 + uint64(c-'0')
		count++
	}
	count = 0
	for count < half2 && p < digitsEnd {
		c := b[p]
		p++
		if c == '.' {
			continue
		}
		frac2 = frac2*10 + uint64(c-'0')
		count++
	}

	fraction := float64(frac1)
	if half2 > 0 {
		fraction = 1e9*fraction + float64(frac2)
	}

	exp := decPt - mantSize

	i = expStart
	if i < n && (b[i] == 'E' || b[i] == 'e' || b[i] == 'S' || b[i] == 's' ||
		b[i] == 'F' || b[i] == 'f' || b[i] == 'D' || b[i] == 'd' || b[i] == 'L' || b[i] == 'l') {
		i++
		expNeg := false
		if i < n && (b[i] == '-' || b[i] == '+') {
			expNeg = b[i] == '-'
			i++
		}
		if i >= n || b[i] < '0' || b[i] > '9' {
			// Not actually a valid exponent marker; back out.
		} else {
			literalExp := 0
			for i < n && b[i] >= '0' && b[i] <= '9' {
				literalExp = literalExp*10 + int(b[i]-'0')
				i++
			}
			if expNeg {
				exp -= literalExp
			} else {
				exp += literalExp
			}
		}
	}
	expSign := exp < 0
	if expSign {
		exp = -exp
	}

	if exp > maxExponent {
		exp = maxExponent
	}

	dblExp := 1.0
	for pow := 0; exp != 0; pow, exp = pow+1, exp>>1 {
		if exp&1 != 0 {
			dblExp *= powersOf10[pow]
		}
	}
	if expSign {
		fraction /= dblExp
	} else {
		fraction *= dblExp
	}

	if sign {
		return -fraction
	}
	return fraction
}

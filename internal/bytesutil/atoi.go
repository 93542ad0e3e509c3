package bytesutil

// FastAtoi parses a signed integer from b the way the original ParaText
// fast_atoi does: skip leading blanks, consume an optional sign, then
// accumulate digits with no overflow check. Overflow is expected to be
// caught one ladder rung up, by the widening vector promoting to a wider
// integer type.
func FastAtoi(b []byte) int64 {
	i := 0
	n := len(b)
	for i < n && isBlank(b[i]) {
		i++
	}
	neg := false
	if i < n && (b[i] == '-' || b[i] == '+') {
		neg = b[i] == '-'
		i++
	}
	var val int64
	for ; i < n; i++ {
		c := b[i]
		if c < '0' || c > '9' {
			break
		}
		val = val*10 + int64(c-'0')
	}
	if neg {
		val = -val
	}
	return val
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

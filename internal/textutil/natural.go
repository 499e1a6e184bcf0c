package textutil

// NaturalLess compares two strings treating runs of ASCII digits as numbers,
// so "image2" sorts before "image10". Ties on numeric value (e.g. "002" vs
// "2") fall back to byte comparison for a total order.
func NaturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			ia, va := scanNumber(a, i)
			jb, vb := scanNumber(b, j)
			if va != vb {
				return va < vb
			}
			// Same value, compare the raw digit runs (length first).
			ra, rb := a[i:ia], b[j:jb]
			if ra != rb {
				return ra < rb
			}
			i, j = ia, jb
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanNumber reads a digit run starting at position start and returns the
// position after the run plus its numeric value. Values are capped rather
// than overflowed for absurdly long runs.
func scanNumber(s string, start int) (int, uint64) {
	const cap = 1 << 60
	i := start
	var value uint64
	for i < len(s) && isDigit(s[i]) {
		if value < cap {
			value = value*10 + uint64(s[i]-'0')
		}
		i++
	}
	return i, value
}

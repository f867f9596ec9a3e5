package glyphs

// Charset is a set of ASCII code points stored as a 128 bit mask.
type Charset [2]uint64

// DefaultDenylist holds the punctuation that is left out of the atlas to keep it small.
var DefaultDenylist = NewCharset("'|@~/><^{}[]\\\"")

// NewCharset returns the set of all ASCII bytes in chars. Bytes outside of ASCII are ignored.
func NewCharset(chars string) Charset {
	var c Charset
	for i := 0; i < len(chars); i++ {
		c = c.With(rune(chars[i]))
	}
	return c
}

// With returns a copy of c that also contains code.
func (c Charset) With(code rune) Charset {
	if code < 0 || code >= TableSize {
		return c
	}
	c[code>>6] |= 1 << (uint(code) & 63)
	return c
}

// Contains reports whether code is in the set. Codes outside of ASCII are never contained.
func (c Charset) Contains(code rune) bool {
	if code < 0 || code >= TableSize {
		return false
	}
	return c[code>>6]&(1<<(uint(code)&63)) != 0
}

// Len returns the number of code points in the set.
func (c Charset) Len() int {
	count := 0
	for code := rune(0); code < TableSize; code++ {
		if c.Contains(code) {
			count++
		}
	}
	return count
}

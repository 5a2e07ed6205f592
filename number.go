package jtree

import "math"

// number grammar states
type numState uint8

const (
	numSign      numState = iota // optional '-'
	numIntFirst                  // first integer digit is required
	numZero                      // exactly one leading '0' consumed
	numInt                       // further integer digits
	numFracFirst                 // '.' consumed, a digit is required
	numFrac                      // further fraction digits
	numExpSign                   // 'e' consumed, optional sign
	numExpFirst                  // exponent digit is required
	numExp                       // further exponent digits
	numOctal                     // octal digits after the leading zero
	numHexFirst                  // 'x' consumed, a hex digit is required
	numHex                       // further hex digits
	numEnd
)

const (
	maxMantissaDigits = 19
	maxExponent       = 100000
)

type numScanner struct {
	ext Extension
	neg bool

	mant   uint64 // first significant digits of the integer and fraction parts
	digits int    // significant digits held by mant
	scale  int    // decimal exponent of the last digit in mant

	exp    int
	expNeg bool

	radix float64 // octal or hex accumulator
	isInt bool    // radix literal
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// step consumes at most one byte and returns the next state. eof is set when the input is exhausted
func (s *numScanner) step(st numState, c *cursor) (numState, ErrorKind) {
	eof := c.eof()
	var ch byte
	if !eof {
		ch = c.peek()
	}
	switch st {
	case numSign:
		if !eof && ch == '-' {
			s.neg = true
			c.advance(1)
		}
		return numIntFirst, 0

	case numIntFirst:
		if eof || !isDigit(ch) {
			return st, ErrBadInt
		}
		c.advance(1)
		if ch == '0' {
			return numZero, 0
		}
		s.addInt(ch)
		return numInt, 0

	case numZero:
		switch {
		case eof:
			return numEnd, 0
		case isDigit(ch):
			if s.ext&ExtOctalLiterals != 0 {
				return numOctal, 0
			}
			return st, ErrLeadingZero
		case (ch == 'x' || ch == 'X') && s.ext&ExtHexLiterals != 0:
			c.advance(1)
			return numHexFirst, 0
		}
		return s.afterInt(ch, c)

	case numInt:
		if !eof && isDigit(ch) {
			s.addInt(ch)
			c.advance(1)
			return numInt, 0
		}
		if eof {
			return numEnd, 0
		}
		return s.afterInt(ch, c)

	case numFracFirst:
		if eof || !isDigit(ch) {
			if s.ext&ExtTrailingDecimal != 0 {
				return numEnd, 0
			}
			return st, ErrBadFrac
		}
		return numFrac, 0

	case numFrac:
		if !eof && isDigit(ch) {
			s.addFrac(ch)
			c.advance(1)
			return numFrac, 0
		}
		if !eof && (ch == 'e' || ch == 'E') {
			c.advance(1)
			return numExpSign, 0
		}
		return numEnd, 0

	case numExpSign:
		if !eof && (ch == '+' || ch == '-') {
			s.expNeg = ch == '-'
			c.advance(1)
		}
		return numExpFirst, 0

	case numExpFirst:
		if eof || !isDigit(ch) {
			return st, ErrBadExp
		}
		return numExp, 0

	case numExp:
		if !eof && isDigit(ch) {
			if s.exp < maxExponent {
				s.exp = s.exp*10 + int(ch-'0')
			}
			c.advance(1)
			return numExp, 0
		}
		return numEnd, 0

	case numOctal:
		s.isInt = true
		if !eof && isDigit(ch) {
			if ch > '7' {
				return st, ErrBadOctal
			}
			s.radix = s.radix*8 + float64(ch-'0')
			c.advance(1)
			return numOctal, 0
		}
		if !eof && (ch == '.' || ch == 'e' || ch == 'E') {
			return st, ErrBadOctal
		}
		return numEnd, 0

	case numHexFirst:
		if eof || hexDigit(ch) < 0 {
			return st, ErrBadHex
		}
		s.isInt = true
		return numHex, 0

	case numHex:
		if !eof {
			if d := hexDigit(ch); d >= 0 {
				s.radix = s.radix*16 + float64(d)
				c.advance(1)
				return numHex, 0
			}
			if ch == '.' {
				return st, ErrBadHex
			}
		}
		return numEnd, 0
	}
	return st, ErrInternal
}

// afterInt handles the byte following the integer part
func (s *numScanner) afterInt(ch byte, c *cursor) (numState, ErrorKind) {
	switch ch {
	case '.':
		c.advance(1)
		return numFracFirst, 0
	case 'e', 'E':
		c.advance(1)
		return numExpSign, 0
	}
	return numEnd, 0
}

func (s *numScanner) addInt(ch byte) {
	if s.digits < maxMantissaDigits {
		s.mant = s.mant*10 + uint64(ch-'0')
		s.digits++
	} else {
		s.scale++
	}
}

// addFrac skips leading zeros so they don't take up mantissa precision
func (s *numScanner) addFrac(ch byte) {
	switch {
	case s.digits == 0 && ch == '0':
		s.scale--
	case s.digits < maxMantissaDigits:
		s.mant = s.mant*10 + uint64(ch-'0')
		s.digits++
		s.scale--
	}
}

// value computes mant * 10^(scale±exp). The result is an approximation, rounding
// errors of the intermediate steps are accepted
func (s *numScanner) value() float64 {
	var n float64
	if s.isInt {
		n = s.radix
	} else {
		n = float64(s.mant)
		e := s.scale
		if s.expNeg {
			e -= s.exp
		} else {
			e += s.exp
		}
		switch {
		case n == 0:
		case e > 0:
			n *= math.Pow10(e)
		case e < 0:
			// powers of ten are exact up to 1e22, their reciprocals are not
			if e < -308 {
				n /= 1e308
				e += 308
			}
			n /= math.Pow10(-e)
		}
	}
	if s.neg {
		n = -n
	}
	return n
}

// scanNumber parses a number at the cursor
func scanNumber(c *cursor, ext Extension) (float64, *SyntaxError) {
	s := numScanner{ext: ext}
	st := numSign
	for st != numEnd {
		next, kind := s.step(st, c)
		if kind != 0 {
			return 0, c.fail(kind)
		}
		st = next
	}
	return s.value(), nil
}

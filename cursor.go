package jtree

// cursor is the scan position of one Decode call
type cursor struct {
	data     []byte
	row, col int
	tabWidth int
	ext      Extension
}

func newCursor(data []byte, cfg *Config) *cursor {
	return &cursor{
		data:     data,
		row:      1,
		col:      1,
		tabWidth: cfg.TabWidth,
		ext:      cfg.Extensions,
	}
}

func (c *cursor) eof() bool { return len(c.data) == 0 }

func (c *cursor) peek() byte { return c.data[0] }

// advance consumes n bytes which occupy one column each
func (c *cursor) advance(n int) {
	c.data = c.data[n:]
	c.col += n
}

// advanceChar consumes n bytes forming a single character
func (c *cursor) advanceChar(n int) {
	c.data = c.data[n:]
	c.col++
}

func (c *cursor) newline() {
	c.row++
	c.col = 1
}

func (c *cursor) fail(kind ErrorKind) *SyntaxError {
	return &SyntaxError{Kind: kind, Row: c.row, Col: c.col}
}

func (c *cursor) skipBOM() bool {
	if len(c.data) >= 3 && c.data[0] == 0xef && c.data[1] == 0xbb && c.data[2] == 0xbf {
		c.data = c.data[3:]
		return true
	}
	return false
}

// skip consumes insignificant whitespace and, if enabled, comments
func (c *cursor) skip() *SyntaxError {
	for len(c.data) != 0 {
		switch c.data[0] {
		case ' ':
			c.advance(1)
		case '\t':
			c.data = c.data[1:]
			c.col += c.tabWidth
		case '\n':
			c.data = c.data[1:]
			c.newline()
		case '\r':
			c.data = c.data[1:]
			if len(c.data) != 0 && c.data[0] == '\n' {
				c.data = c.data[1:]
			}
			c.newline()
		case '/':
			if len(c.data) < 2 {
				return nil
			}
			switch {
			case c.data[1] == '/' && c.ext&ExtSingleLineComments != 0:
				c.skipLineComment()
			case c.data[1] == '*' && c.ext&ExtMultiLineComments != 0:
				if err := c.skipBlockComment(); err != nil {
					return err
				}
			default:
				return nil
			}
		default:
			return nil
		}
	}
	return nil
}

// skipLineComment stops in front of the line break so skip accounts for it
func (c *cursor) skipLineComment() {
	c.advance(2)
	for len(c.data) != 0 && c.data[0] != '\n' && c.data[0] != '\r' {
		c.skipChar()
	}
}

func (c *cursor) skipBlockComment() *SyntaxError {
	row, col := c.row, c.col
	c.advance(2)
	for len(c.data) != 0 {
		switch c.data[0] {
		case '*':
			if len(c.data) > 1 && c.data[1] == '/' {
				c.advance(2)
				return nil
			}
			c.advance(1)
		case '\n':
			c.data = c.data[1:]
			c.newline()
		case '\r':
			c.data = c.data[1:]
			if len(c.data) != 0 && c.data[0] == '\n' {
				c.data = c.data[1:]
			}
			c.newline()
		case '\t':
			c.data = c.data[1:]
			c.col += c.tabWidth
		default:
			c.skipChar()
		}
	}
	return &SyntaxError{Kind: ErrUnclosedComment, Row: row, Col: col}
}

// skipChar consumes one character of comment text. Comment text isn't validated
func (c *cursor) skipChar() {
	_, n, err := DecodeRune(c.data)
	if err != nil && n == 0 {
		n = 1
	}
	c.advanceChar(n)
}

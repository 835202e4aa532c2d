package directive

import (
	"errors"
	"io"
	"math"
	"math/big"
	"strings"
)

// cSpace is the set of bytes the C locale classifies as whitespace.
const cSpace = " \t\n\v\f\r"

var (
	one = big.NewInt(1)

	errNoDigits = errors.New("no integer digits found")
)

// ScanInt reads one integer token from r: leading whitespace is skipped, an
// optional sign is accepted and digits are read up to the first non-digit,
// which is left unread. When no digits are found the returned value is 0 and
// ok is false. Consumed whitespace and sign are not restored.
func ScanInt(r io.ByteScanner) (value *big.Int, ok bool, err error) {
	value = new(big.Int)

	c, err := skipSpace(r)
	if err != nil {
		return value, false, err
	}

	var token strings.Builder
	if c == '+' || c == '-' {
		token.WriteByte(c)
		if c, err = r.ReadByte(); err != nil {
			return value, false, err
		}
	}

	digits := false
	for isDigit(c) {
		digits = true
		token.WriteByte(c)
		if c, err = r.ReadByte(); err != nil {
			break
		}
	}
	if err == nil {
		// c is the first byte past the token.
		_ = r.UnreadByte()
	}

	if !digits {
		if err == nil || errors.Is(err, io.EOF) {
			err = errNoDigits
		}
		return value, false, err
	}

	value.SetString(token.String(), 10)
	return value, true, nil
}

func skipSpace(r io.ByteReader) (byte, error) {
	for {
		c, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if !strings.ContainsRune(cSpace, rune(c)) {
			return c, nil
		}
	}
}

// Atoi converts the longest leading integer prefix of s, after optional
// whitespace and sign, and returns 0 when there is none. Values outside the
// 32-bit range saturate at its bounds.
func Atoi(s string) int {
	s = strings.TrimLeft(s, cSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	const limit = int64(math.MaxInt32) + 1
	var n int64
	for k := 0; k < len(s) && isDigit(s[k]); k++ {
		n = n*10 + int64(s[k]-'0')
		if n > limit {
			n = limit
		}
	}
	if negative {
		n = -n
	}

	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	}
	return int(n)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

package search

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"tagpoint/internal/curve"
)

// DefaultPhrase is the prefix of the original tag point.
const DefaultPhrase = "Trust is Risk"

// TagChainCode is the BIP32 chain code the tag point is published with.
const TagChainCode = "dc446622bb58bc4bb95c7972ee75ff7bc5d23cb9e7edefe79cb9234080b9f243"

// EncodePhrase places the ASCII bytes of phrase in the most significant bytes
// of a field-width big-endian integer and zero-pads the rest.
func EncodePhrase(phrase string) (*big.Int, error) {
	if phrase == "" {
		return nil, errors.Wrap(curve.ErrInvalidArgument, "empty phrase")
	}
	if len(phrase) > curve.ByteLen {
		return nil, errors.Wrapf(curve.ErrInvalidArgument, "phrase is %d bytes, max %d", len(phrase), curve.ByteLen)
	}
	for i := 0; i < len(phrase); i++ {
		if phrase[i] > 0x7f {
			return nil, errors.Wrapf(curve.ErrInvalidArgument, "non-ASCII byte 0x%02x at %d", phrase[i], i)
		}
	}
	var buf [curve.ByteLen]byte
	copy(buf[:], phrase)
	return new(big.Int).SetBytes(buf[:]), nil
}

// DecodePrefix returns the first n bytes of x laid out at field width.
func DecodePrefix(x *big.Int, n int) (string, error) {
	if x == nil || x.Sign() < 0 || x.BitLen() > 8*curve.ByteLen {
		return "", errors.Wrap(curve.ErrInvalidArgument, "x does not fit the field width")
	}
	if n < 0 || n > curve.ByteLen {
		return "", errors.Wrapf(curve.ErrInvalidArgument, "prefix length %d", n)
	}
	var buf [curve.ByteLen]byte
	x.FillBytes(buf[:])
	return string(buf[:n]), nil
}

// ParseStart reads a start value as 0x-prefixed hex or decimal.
func ParseStart(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	z, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, errors.Wrapf(curve.ErrInvalidArgument, "cannot parse integer %q", s)
	}
	if z.Sign() < 0 {
		return nil, errors.Wrapf(curve.ErrInvalidArgument, "start must be non-negative, got %s", z)
	}
	return z, nil
}

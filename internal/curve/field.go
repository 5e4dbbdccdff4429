// Package curve holds the secp256k1 field arithmetic used by the tag point
// search: y^2 = x^3 + B over F_p with p ≡ 3 (mod 4).
package curve

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
)

// ByteLen is the width of a secp256k1 field element in bytes.
const ByteLen = 32

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotPrime3Mod4   = errors.New("modulus is not 3 mod 4")
)

var (
	b1 = big.NewInt(1)
	b3 = big.NewInt(3)
	b4 = big.NewInt(4)
)

// P returns a copy of the secp256k1 field prime 2^256 - 2^32 - 977.
func P() *big.Int { return new(big.Int).Set(btcec.S256().Params().P) }

// B returns a copy of the secp256k1 curve constant (7).
func B() *big.Int { return new(big.Int).Set(btcec.S256().Params().B) }

// RootFinder computes the principal square root of x^3 + B mod p.
// y is the candidate r^((p+1)/4); it is a root only when ok is true.
type RootFinder interface {
	Name() string
	YFromX(x *big.Int) (y *big.Int, ok bool, err error)
}

// BigField does the arithmetic on math/big for any p ≡ 3 (mod 4).
type BigField struct {
	p   *big.Int
	b   *big.Int
	exp *big.Int // (p+1)/4
}

var _ RootFinder = (*BigField)(nil)

func NewBigField(p, b *big.Int) (*BigField, error) {
	if p == nil || p.Cmp(b3) < 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "modulus must be at least 3")
	}
	if b == nil || b.Sign() < 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "curve constant must be non-negative")
	}
	if new(big.Int).Mod(p, b4).Cmp(b3) != 0 {
		return nil, errors.Wrapf(ErrNotPrime3Mod4, "p=%s", p)
	}
	exp := new(big.Int).Add(p, b1)
	exp.Rsh(exp, 2)
	return &BigField{
		p:   new(big.Int).Set(p),
		b:   new(big.Int).Mod(b, p),
		exp: exp,
	}, nil
}

// Secp256k1 returns a BigField over the secp256k1 prime with B = 7.
func Secp256k1() *BigField {
	f, err := NewBigField(P(), B())
	if err != nil {
		panic(err) // constants are fixed
	}
	return f
}

func (f *BigField) Name() string { return "big" }

func (f *BigField) P() *big.Int { return new(big.Int).Set(f.p) }

// Rhs returns x^3 + B mod p.
func (f *BigField) Rhs(x *big.Int) (*big.Int, error) {
	if x == nil || x.Sign() < 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "x must be non-negative")
	}
	r := new(big.Int).Mul(x, x)
	r.Mul(r, x)
	r.Add(r, f.b)
	return r.Mod(r, f.p), nil
}

// Sqrt returns r^((p+1)/4) mod p and whether it squares back to r mod p.
func (f *BigField) Sqrt(r *big.Int) (*big.Int, bool) {
	rr := new(big.Int).Mod(r, f.p)
	y := new(big.Int).Exp(rr, f.exp, f.p)
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, f.p)
	return y, y2.Cmp(rr) == 0
}

func (f *BigField) YFromX(x *big.Int) (*big.Int, bool, error) {
	r, err := f.Rhs(x)
	if err != nil {
		return nil, false, err
	}
	y, ok := f.Sqrt(r)
	return y, ok, nil
}

// Legendre returns the Legendre symbol (r|p) as -1, 0 or +1.
func (f *BigField) Legendre(r *big.Int) int {
	rr := new(big.Int).Mod(r, f.p)
	if rr.Sign() == 0 {
		return 0
	}
	e := new(big.Int).Sub(f.p, b1)
	e.Rsh(e, 1)
	v := new(big.Int).Exp(rr, e, f.p)
	if v.Cmp(b1) == 0 {
		return 1
	}
	return -1
}

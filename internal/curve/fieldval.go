package curve

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
)

// FieldValRoot computes roots with decred's fixed-width secp256k1 FieldVal.
// It only knows the secp256k1 prime and B = 7.
type FieldValRoot struct {
	p *big.Int
}

var _ RootFinder = (*FieldValRoot)(nil)

func NewFieldValRoot() *FieldValRoot { return &FieldValRoot{p: P()} }

func (f *FieldValRoot) Name() string { return "field" }

func (f *FieldValRoot) YFromX(x *big.Int) (*big.Int, bool, error) {
	if x == nil || x.Sign() < 0 {
		return nil, false, errors.Wrap(ErrInvalidArgument, "x must be non-negative")
	}
	var buf [ByteLen]byte
	new(big.Int).Mod(x, f.p).FillBytes(buf[:])

	var fx secp256k1.FieldVal
	fx.SetBytes(&buf)
	// magnitude 2 after AddInt, SquareRootVal accepts up to 8
	rhs := new(secp256k1.FieldVal).SquareVal(&fx).Mul(&fx).AddInt(7)

	var fy secp256k1.FieldVal
	ok := fy.SquareRootVal(rhs)
	fy.Normalize()
	out := fy.Bytes()
	return new(big.Int).SetBytes(out[:]), ok, nil
}

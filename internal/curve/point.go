package curve

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
)

// Point is an affine point on secp256k1. Coordinates are not reduced.
type Point struct {
	X, Y *big.Int
}

// OnCurve reports whether y^2 ≡ x^3 + 7 (mod p), reducing both coordinates.
func (pt Point) OnCurve() bool {
	if pt.X == nil || pt.Y == nil || pt.X.Sign() < 0 || pt.Y.Sign() < 0 {
		return false
	}
	f := Secp256k1()
	r, err := f.Rhs(pt.X)
	if err != nil {
		return false
	}
	y2 := new(big.Int).Mul(pt.Y, pt.Y)
	y2.Mod(y2, f.p)
	return y2.Cmp(r) == 0
}

// Validate checks the point is a canonical secp256k1 point, the way btcec
// sees it.
func (pt Point) Validate() error {
	if pt.X == nil || pt.Y == nil {
		return errors.Wrap(ErrInvalidArgument, "missing coordinate")
	}
	p := P()
	if pt.X.Sign() < 0 || pt.X.Cmp(p) >= 0 || pt.Y.Sign() < 0 || pt.Y.Cmp(p) >= 0 {
		return errors.Wrap(ErrInvalidArgument, "coordinate out of field range")
	}
	if !btcec.S256().IsOnCurve(pt.X, pt.Y) {
		return errors.Wrapf(ErrInvalidArgument, "point (%x, %x) is not on secp256k1", pt.X, pt.Y)
	}
	return nil
}

// PubKey returns the point as a secp256k1 public key, parsed from its
// uncompressed 0x04||x||y form.
func (pt Point) PubKey() (*btcec.PublicKey, error) {
	if err := pt.Validate(); err != nil {
		return nil, err
	}
	var raw [1 + 2*ByteLen]byte
	raw[0] = 0x04
	pt.X.FillBytes(raw[1 : 1+ByteLen])
	pt.Y.FillBytes(raw[1+ByteLen:])
	pk, err := btcec.ParsePubKey(raw[:])
	if err != nil {
		return nil, errors.Wrap(err, "parse tag public key")
	}
	return pk, nil
}

// ExtendedKey returns the point as a mainnet BIP32 public key at depth 0 with
// zero parent fingerprint and child index, carrying chainCode.
func (pt Point) ExtendedKey(chainCode []byte) (*hdkeychain.ExtendedKey, error) {
	if len(chainCode) != ByteLen {
		return nil, errors.Wrapf(ErrInvalidArgument, "chain code is %d bytes, want %d", len(chainCode), ByteLen)
	}
	pk, err := pt.PubKey()
	if err != nil {
		return nil, err
	}
	version := chaincfg.MainNetParams.HDPublicKeyID
	return hdkeychain.NewExtendedKey(version[:], pk.SerializeCompressed(), chainCode,
		[]byte{0, 0, 0, 0}, 0, 0, false), nil
}

package search

import (
	"context"
	"math/big"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"tagpoint/internal/curve"
)

var ErrBackendMismatch = errors.New("backends disagree")

type BenchResult struct {
	Backend  string
	Residues uint64
	Elapsed  time.Duration
}

// Bench runs every finder over the same count candidates from start. Each
// candidate is checked against the Legendre symbol of x^3 + 7 and against the
// first finder's root, so memory stays constant in count.
func Bench(ctx context.Context, start *big.Int, count uint64, finders ...curve.RootFinder) ([]BenchResult, error) {
	if start == nil || start.Sign() < 0 {
		return nil, errors.Wrap(curve.ErrInvalidArgument, "start must be non-negative")
	}
	if count == 0 || len(finders) == 0 {
		return nil, errors.Wrap(curve.ErrInvalidArgument, "need at least one candidate and one backend")
	}

	oracle := curve.Secp256k1()
	out := make([]BenchResult, len(finders))
	for i, rf := range finders {
		out[i].Backend = rf.Name()
	}

	x := new(big.Int).Set(start)
	for k := uint64(0); k < count; k++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "bench stopped after %d candidates", k)
		}
		r, err := oracle.Rhs(x)
		if err != nil {
			return nil, err
		}
		residue := oracle.Legendre(r) >= 0

		var ref *big.Int
		for i, rf := range finders {
			t0 := time.Now()
			y, ok, err := rf.YFromX(x)
			out[i].Elapsed += time.Since(t0)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: candidate 0x%x", rf.Name(), x)
			}
			if ok != residue {
				return nil, errors.Wrapf(ErrBackendMismatch, "%s vs legendre at x=0x%x", rf.Name(), x)
			}
			if !ok {
				continue
			}
			out[i].Residues++
			if i == 0 {
				ref = y
			} else if y.Cmp(ref) != 0 {
				return nil, errors.Wrapf(ErrBackendMismatch, "%s vs %s at x=0x%x", finders[0].Name(), rf.Name(), x)
			}
		}
		x.Add(x, b1)
	}

	for _, br := range out {
		log.WithFields(log.Fields{
			"backend":  br.Backend,
			"count":    count,
			"residues": br.Residues,
			"elapsed":  br.Elapsed,
		}).Info("bench done")
	}
	return out, nil
}

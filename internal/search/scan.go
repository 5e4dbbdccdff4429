// Package search walks x upward from a start value until x^3 + 7 has a
// square root modulo the secp256k1 prime.
package search

import (
	"context"
	"math/big"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"tagpoint/internal/curve"
)

var ErrExhaustedSearchSpace = errors.New("search space exhausted")

var b1 = big.NewInt(1)

type Result struct {
	Start      *big.Int
	Point      curve.Point
	Iterations uint64 // candidates tried, including the accepted one
	Backend    string
	Elapsed    time.Duration
}

// Search returns the first x >= start whose x^3 + 7 is a quadratic residue,
// with its principal root. maxIter == 0 means no bound.
func Search(ctx context.Context, rf curve.RootFinder, start *big.Int, maxIter uint64) (*Result, error) {
	if start == nil || start.Sign() < 0 {
		return nil, errors.Wrap(curve.ErrInvalidArgument, "start must be non-negative")
	}

	t0 := time.Now()
	x := new(big.Int).Set(start)
	var n uint64
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "search stopped after %d candidates", n)
		}
		if maxIter > 0 && n >= maxIter {
			return nil, errors.Wrapf(ErrExhaustedSearchSpace, "no residue in %d candidates from 0x%x", n, start)
		}
		n++

		y, ok, err := rf.YFromX(x)
		if err != nil {
			return nil, errors.Wrapf(err, "candidate 0x%x", x)
		}
		if ok {
			res := &Result{
				Start:      new(big.Int).Set(start),
				Point:      curve.Point{X: x, Y: y},
				Iterations: n,
				Backend:    rf.Name(),
				Elapsed:    time.Since(t0),
			}
			log.WithFields(log.Fields{
				"backend":    res.Backend,
				"iterations": res.Iterations,
				"elapsed":    res.Elapsed,
			}).Info("found point")
			return res, nil
		}
		log.WithField("x", x.Text(16)).Debug("non-residue, next candidate")
		x.Add(x, b1)
	}
}

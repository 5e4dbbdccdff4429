package search

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"
)

// Run searches from cfg's start value and reports the point to out.
func Run(ctx context.Context, cfg *Config, out io.Writer) error {
	start, err := cfg.StartX()
	if err != nil {
		return err
	}
	rf, err := NewRootFinder(cfg.Backend)
	if err != nil {
		return err
	}
	rep, err := NewReporter(cfg.Format, out, cfg.PubKey)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"start":          start.Text(16),
		"backend":        rf.Name(),
		"max-iterations": cfg.MaxIterations,
	}).Info("starting search")

	res, err := Search(ctx, rf, start, cfg.MaxIterations)
	if err != nil {
		return err
	}
	return rep.Report(res)
}

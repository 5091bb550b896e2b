package evaluation

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"passguard/internal/breach"
	"passguard/internal/entropy"
	"passguard/internal/leakage"
)

// gatherSignals runs the detector first. A leak short-circuits the breach
// lookup so no hash prefix leaves the process; otherwise entropy and the
// breach lookup run concurrently.
func (s *Service) gatherSignals(ctx context.Context, password string, identity Identity) Signals {
	if password == "" {
		return Signals{
			EntropyErr: entropy.ErrInvalidInput,
			Leakage:    noLeakage(),
			Breach:     breach.Unknown(ReasonNotEvaluated),
		}
	}

	leaked, evidence := leakage.Detect(password, identity)
	signals := Signals{Leaked: leaked, Leakage: evidence}

	if leaked {
		signals.Entropy, signals.EntropyErr = entropy.Estimate(password)
		signals.Breach = breach.Unknown(ReasonBlocked)
		return signals
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		bits, err := entropy.Estimate(password)
		if err != nil {
			return err
		}
		signals.Entropy = bits
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		signals.Breach = s.breach.Check(gctx, password)
		s.metrics.ObserveBreachLookup(signals.Breach.Status, time.Since(start))
		return nil
	})

	if err := g.Wait(); err != nil {
		signals.EntropyErr = err
	}
	return signals
}

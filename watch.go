package fastping

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

type WatchConfig struct {
	// Interval between probe starts; DefaultInterval when zero.
	Interval time.Duration
	// Count stops the loop after that many probes; zero runs until ctx ends.
	Count int
}

// Report is handed to the Watch callback after every probe.
type Report struct {
	Seq     int
	Request ProbeRequest
	Result  ProbeResult
	Err     error
}

// Watch probes req once per interval until ctx is done or conf.Count probes
// ran. Cancellation is only observed between probes; an attempt already in
// flight runs to its own timeout. A finished ctx is a normal stop and
// returns nil.
func Watch(ctx context.Context, p Prober, req ProbeRequest, conf WatchConfig, fn func(Report)) error {
	interval := conf.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for seq := 1; conf.Count <= 0 || seq <= conf.Count; seq++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		res, err := p.Probe(req)
		fn(Report{
			Seq:     seq,
			Request: req,
			Result:  res,
			Err:     err,
		})
	}
	return nil
}

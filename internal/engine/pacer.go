package engine

import "time"

// pacer holds the loop to a target wall-clock cadence. Each frame's
// deadline is measured from the previous frame's actual start timestamp,
// not from an accumulated schedule, so sleep overshoot and slow frames
// never compound into drift.
type pacer struct {
	target time.Duration
	last   time.Time
}

func newPacer(target time.Duration) *pacer {
	return &pacer{target: target}
}

// start records the first frame-start timestamp.
func (p *pacer) start() {
	p.last = time.Now()
}

// delay returns how long to block so that target has elapsed since the
// previous frame start. Zero when the frame already ran over budget.
func (p *pacer) delay() time.Duration {
	d := time.Until(p.last.Add(p.target))
	if d < 0 {
		return 0
	}
	return d
}

// mark records the new frame-start timestamp after the pacing wait.
func (p *pacer) mark() {
	p.last = time.Now()
}

package locator

import v3 "github.com/deadsy/sdfx/vec/v3"

// Rejection names the quick test that decided a classification, if any.
type Rejection int

const (
	NotRejected Rejection = iota // decided by ray casting
	RejectedBySphere
	RejectedByBox
)

func (r Rejection) String() string {
	switch r {
	case NotRejected:
		return "none"
	case RejectedBySphere:
		return "sphere"
	case RejectedByBox:
		return "box"
	default:
		return "unknown"
	}
}

// TraceEvent describes one classification. Ray fields are zero when the
// point was rejected before a ray was cast.
type TraceEvent struct {
	Point     v3.Vec
	Result    Result
	Rejection Rejection
	Direction v3.Vec
	Axis      int // 0, 1, 2 for X, Y, Z
	Sign      int // +1 toward the max face, -1 toward the min face
	Crossings int
	Parallel  int // triangles skipped because the ray was parallel to them
}

// Tracer receives a TraceEvent after every classification. It is called
// from the classifying goroutine and must be safe for concurrent use when
// the Locator is shared.
type Tracer func(TraceEvent)

// Option configures a Locator.
type Option func(*Locator)

// WithTracer installs t as the Locator's diagnostics hook.
func WithTracer(t Tracer) Option {
	return func(l *Locator) {
		l.tracer = t
	}
}

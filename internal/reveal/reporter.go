package reveal

// ReportFunc receives every progress report, synchronously with the
// sample that produced it.
type ReportFunc func(Report)

// Reporter derives the discrete reveal state from the trajectory of
// progress samples and emits a combined report for each one.
type Reporter struct {
	prev     float64
	listener ReportFunc
}

// NewReporter creates a reporter delivering to the given listener. A nil
// listener is allowed; reports are still derived for state queries.
func NewReporter(listener ReportFunc) *Reporter {
	return &Reporter{listener: listener}
}

// Observe derives the state for a sample, emits the report to the
// listener, and returns it.
//
// Closed and Open are exact-bound states. Between the bounds the state
// follows the value direction since the previous sample. When the value
// is unchanged the state is Opening if a side is active and Closing
// otherwise; this tie-break decides the classification of the very
// first frame after a direction lock with zero net motion, and is a
// convention, not a law.
func (r *Reporter) Observe(s Sample) Report {
	var state State
	switch {
	case s.Value == 0:
		state = StateClosed
	case s.Value == 1:
		state = StateOpen
	case s.Value > r.prev:
		state = StateOpening
	case s.Value < r.prev:
		state = StateClosing
	case s.Side != SideNone:
		state = StateOpening
	default:
		state = StateClosing
	}
	r.prev = s.Value

	report := Report{
		Side:      s.Side,
		Value:     s.Value,
		State:     state,
		Timestamp: s.Timestamp,
	}
	if r.listener != nil {
		r.listener(report)
	}
	return report
}

// Reset clears the trajectory memory, as if no sample had been seen.
func (r *Reporter) Reset() {
	r.prev = 0
}

package corag

import "go.uber.org/atomic"

// StatsObserver counts run events. It is safe to share between concurrent runs.
type StatsObserver struct {
	NopObserver
	attempts  atomic.Int64
	results   atomic.Int64
	accepted  atomic.Int64
	rejected  atomic.Int64
	failures  atomic.Int64
	exhausted atomic.Int64
}

var _ Observer = (*StatsObserver)(nil)

// Stats is a point in time copy of the counters
type Stats struct {
	Attempts  int64 `json:"attempts"`
	Results   int64 `json:"results"`
	Accepted  int64 `json:"accepted"`
	Rejected  int64 `json:"rejected"`
	Failures  int64 `json:"failures"`
	Exhausted int64 `json:"exhausted"`
}

func (s *StatsObserver) AttemptStarted(int, int) {
	s.attempts.Inc()
}

func (s *StatsObserver) ResultProduced(int, string) {
	s.results.Inc()
}

func (s *StatsObserver) EvaluationResult(_ int, evaluation Evaluation) {
	if evaluation.Verdict {
		s.accepted.Inc()
		return
	}
	s.rejected.Inc()
}

func (s *StatsObserver) AttemptFailed(int, error) {
	s.failures.Inc()
}

func (s *StatsObserver) Exhausted(int) {
	s.exhausted.Inc()
}

func (s *StatsObserver) Snapshot() Stats {
	return Stats{
		Attempts:  s.attempts.Load(),
		Results:   s.results.Load(),
		Accepted:  s.accepted.Load(),
		Rejected:  s.rejected.Load(),
		Failures:  s.failures.Load(),
		Exhausted: s.exhausted.Load(),
	}
}

func (s *StatsObserver) Reset() {
	s.attempts.Store(0)
	s.results.Store(0)
	s.accepted.Store(0)
	s.rejected.Store(0)
	s.failures.Store(0)
	s.exhausted.Store(0)
}

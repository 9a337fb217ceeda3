package corag

// Observer receives progress events from an Orchestrator run.
// Calls are made synchronously from the run loop and must not block for long.
type Observer interface {
	AttemptStarted(index, max int)
	ResultProduced(index int, text string)
	EvaluationResult(index int, evaluation Evaluation)
	RetryPending(index, max int)
	AttemptFailed(index int, err error)
	Exhausted(max int)
}

// NopObserver ignores every event
type NopObserver struct{}

var _ Observer = NopObserver{}

func (NopObserver) AttemptStarted(int, int)          {}
func (NopObserver) ResultProduced(int, string)       {}
func (NopObserver) EvaluationResult(int, Evaluation) {}
func (NopObserver) RetryPending(int, int)            {}
func (NopObserver) AttemptFailed(int, error)         {}
func (NopObserver) Exhausted(int)                    {}

// MultiObserver fans events out in order
type MultiObserver []Observer

var _ Observer = MultiObserver(nil)

func (m MultiObserver) AttemptStarted(index, max int) {
	for _, o := range m {
		o.AttemptStarted(index, max)
	}
}

func (m MultiObserver) ResultProduced(index int, text string) {
	for _, o := range m {
		o.ResultProduced(index, text)
	}
}

func (m MultiObserver) EvaluationResult(index int, evaluation Evaluation) {
	for _, o := range m {
		o.EvaluationResult(index, evaluation)
	}
}

func (m MultiObserver) RetryPending(index, max int) {
	for _, o := range m {
		o.RetryPending(index, max)
	}
}

func (m MultiObserver) AttemptFailed(index int, err error) {
	for _, o := range m {
		o.AttemptFailed(index, err)
	}
}

func (m MultiObserver) Exhausted(max int) {
	for _, o := range m {
		o.Exhausted(max)
	}
}

// ObserverFuncs adapts optional callbacks to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnAttemptStarted   func(index, max int)
	OnResultProduced   func(index int, text string)
	OnEvaluationResult func(index int, evaluation Evaluation)
	OnRetryPending     func(index, max int)
	OnAttemptFailed    func(index int, err error)
	OnExhausted        func(max int)
}

var _ Observer = ObserverFuncs{}

func (f ObserverFuncs) AttemptStarted(index, max int) {
	if f.OnAttemptStarted != nil {
		f.OnAttemptStarted(index, max)
	}
}

func (f ObserverFuncs) ResultProduced(index int, text string) {
	if f.OnResultProduced != nil {
		f.OnResultProduced(index, text)
	}
}

func (f ObserverFuncs) EvaluationResult(index int, evaluation Evaluation) {
	if f.OnEvaluationResult != nil {
		f.OnEvaluationResult(index, evaluation)
	}
}

func (f ObserverFuncs) RetryPending(index, max int) {
	if f.OnRetryPending != nil {
		f.OnRetryPending(index, max)
	}
}

func (f ObserverFuncs) AttemptFailed(index int, err error) {
	if f.OnAttemptFailed != nil {
		f.OnAttemptFailed(index, err)
	}
}

func (f ObserverFuncs) Exhausted(max int) {
	if f.OnExhausted != nil {
		f.OnExhausted(max)
	}
}

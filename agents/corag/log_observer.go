package corag

import "github.com/rs/zerolog"

// LogObserver writes every event as a structured log line
type LogObserver struct {
	logger zerolog.Logger
}

var _ Observer = (*LogObserver)(nil)

func NewLogObserver(l zerolog.Logger) *LogObserver {
	return &LogObserver{logger: l}
}

func (o *LogObserver) AttemptStarted(index, max int) {
	o.logger.Info().Int("attempt", index).Int("max", max).Msg("research attempt started")
}

func (o *LogObserver) ResultProduced(index int, text string) {
	o.logger.Debug().Int("attempt", index).Int("chars", len(text)).Msg("research result")
}

func (o *LogObserver) EvaluationResult(index int, evaluation Evaluation) {
	o.logger.Info().Int("attempt", index).
		Bool("fully_answered", evaluation.Verdict).
		Str("reason", evaluation.Reason).
		Msg("evaluation result")
}

func (o *LogObserver) RetryPending(index, max int) {
	o.logger.Info().Int("attempt", index).Int("max", max).Msg("response incomplete, retrying with fresh context")
}

func (o *LogObserver) AttemptFailed(index int, err error) {
	o.logger.Error().Err(err).Int("attempt", index).Msg("attempt failed")
}

func (o *LogObserver) Exhausted(max int) {
	o.logger.Warn().Int("max", max).Msg("maximum attempts reached without satisfactory answer")
}

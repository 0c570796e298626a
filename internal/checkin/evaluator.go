package checkin

import (
	"time"

	"go.uber.org/zap"
)

// Evaluator computes reminder eligibility. It is a pure function over the
// ledger and the supplied clock instant: calling it repeatedly has no side
// effects.
type Evaluator struct {
	ledger Ledger
	gate   *Gate
	logger *zap.Logger
}

func NewEvaluator(ledger Ledger, gate *Gate, logger *zap.Logger) *Evaluator {
	return &Evaluator{ledger: ledger, gate: gate, logger: logger}
}

// Evaluate returns the reminder window the user currently falls in, or nil.
// When requested is non-nil only that window is considered; otherwise the
// first match in priority order wins. Data anomalies (no prompt, prompt in
// the future) yield nil, never an error.
func (evaluator *Evaluator) Evaluate(userID string, now time.Time, requested *WindowKind) (*WindowKind, error) {
	responded, err := evaluator.gate.HasResponded(userID)
	if err != nil {
		return nil, err
	}
	if responded {
		return nil, nil
	}

	prompts, err := evaluator.ledger.Latest(userID, false, 1)
	if err != nil {
		return nil, err
	}
	if len(prompts) == 0 {
		return nil, nil
	}

	elapsed := now.UTC().Sub(prompts[0].CreatedAt)
	if elapsed < 0 {
		evaluator.logger.Warn("prompt is newer than the evaluation instant",
			zap.String("user_id", userID),
			zap.Duration("elapsed", elapsed),
		)
		return nil, nil
	}

	kind, ok := MatchWindow(elapsed)
	if !ok {
		return nil, nil
	}
	if requested != nil && *requested != kind {
		return nil, nil
	}
	return &kind, nil
}

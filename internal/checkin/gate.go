package checkin

import "go.uber.org/zap"

// Gate decides whether the user has already answered the most recent
// system prompt, short-circuiting the rest of the reminder pipeline.
type Gate struct {
	ledger Ledger
	logger *zap.Logger
}

func NewGate(ledger Ledger, logger *zap.Logger) *Gate {
	return &Gate{ledger: ledger, logger: logger}
}

// HasResponded reports true when there is nothing to remind about: no
// prompt exists, the latest response is newer than the latest prompt, or
// the latest prompt carries no usable timestamp.
func (gate *Gate) HasResponded(userID string) (bool, error) {
	prompts, err := gate.ledger.Latest(userID, false, 1)
	if err != nil {
		return false, err
	}
	if len(prompts) == 0 {
		return true, nil
	}

	prompt := prompts[0]
	if prompt.CreatedAt.IsZero() {
		gate.logger.Warn("prompt has no timestamp, treating as not remindable",
			zap.String("user_id", userID),
			zap.String("checkin_id", prompt.ID),
		)
		return true, nil
	}

	responses, err := gate.ledger.Latest(userID, true, 1)
	if err != nil {
		return false, err
	}
	if len(responses) == 0 {
		return false, nil
	}
	return responses[0].CreatedAt.After(prompt.CreatedAt), nil
}

// api/pdp/model/outcome.go
package model

import "github.com/dev-mohitbeniwal/weathergate/api/model"

// OutcomeKind is the terminal state of a weather request
type OutcomeKind int

const (
	OutcomeServed OutcomeKind = iota
	OutcomeDenied
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeServed:
		return "served"
	case OutcomeDenied:
		return "denied"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is computed once per request and rendered exactly once.
// Payload is set only for OutcomeServed, Err only for OutcomeFailed.
type Outcome struct {
	Kind     OutcomeKind
	Payload  *model.WeatherStats
	Decision AccessDecision
	Err      error
}

func Served(payload *model.WeatherStats, decision AccessDecision) Outcome {
	return Outcome{Kind: OutcomeServed, Payload: payload, Decision: decision}
}

func Denied(decision AccessDecision) Outcome {
	return Outcome{Kind: OutcomeDenied, Decision: decision}
}

func Failed(err error, decision AccessDecision) Outcome {
	return Outcome{Kind: OutcomeFailed, Err: err, Decision: decision}
}

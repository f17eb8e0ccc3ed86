package harness

import "errors"

// Outcome is the three-valued result of a check. SKIP means the check could
// not be evaluated in this environment; FAIL means it was evaluated and the
// contract was violated.
type Outcome int

const (
	Pass Outcome = iota
	Skip
	Fail
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "PASS"
	case Skip:
		return "SKIP"
	case Fail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

var (
	// ErrEnvironmentUnavailable: the service could not be reached.
	ErrEnvironmentUnavailable = errors.New("environment unavailable")

	// ErrResourceUnavailable: the service answered but the named model is absent.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrContractViolation: unexpected status code, body or missing field.
	ErrContractViolation = errors.New("contract violation")
)

const (
	CheckConnectivity = "connectivity"
	CheckGeneration   = "generation"
	CheckPersistence  = "persistence"

	ReasonServiceDown      = "service not running"
	ReasonModelUnavailable = "model not available"
)

// Result records how a single check resolved.
type Result struct {
	Check   string
	Outcome Outcome
	Reason  string
	Err     error
}

// OutcomeOf maps an error onto the outcome it implies.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return Pass
	case errors.Is(err, ErrEnvironmentUnavailable), errors.Is(err, ErrResourceUnavailable):
		return Skip
	default:
		return Fail
	}
}

func newResult(check, reason string, err error) Result {
	return Result{
		Check:   check,
		Outcome: OutcomeOf(err),
		Reason:  reason,
		Err:     err,
	}
}

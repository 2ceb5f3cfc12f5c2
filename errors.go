package topomesh

import "github.com/pkg/errors"

// Kind tags the reason a core operation declined to proceed. None of these
// are recoverable by blind retry at the point of failure; the caller must
// change the input or the mesh state.
type Kind int

const (
	KindNone Kind = iota
	KindMalformedInput
	KindLinkConditionViolated
	KindNonConvexQuad
	KindNotFlippable
	KindRelocationInvalid
	KindMissingNeighbor
	KindValidationFailed
)

func (k Kind) String() string {
	switch k {
	case KindMalformedInput:
		return "MalformedInput"
	case KindLinkConditionViolated:
		return "LinkConditionViolated"
	case KindNonConvexQuad:
		return "NonConvexQuad"
	case KindNotFlippable:
		return "NotFlippable"
	case KindRelocationInvalid:
		return "RelocationInvalid"
	case KindMissingNeighbor:
		return "MissingNeighbor"
	case KindValidationFailed:
		return "ValidationFailed"
	default:
		return "None"
	}
}

// Outcome is the structured result every local operator returns instead of
// a Go error. The remeshing loop and repair pipeline aggregate these without
// ever aborting on a single rejection.
type Outcome struct {
	Success bool
	Kind    Kind
	Reason  string
}

func Ok() Outcome { return Outcome{Success: true} }

func Reject(kind Kind, reason string) Outcome {
	return Outcome{Success: false, Kind: kind, Reason: reason}
}

// MalformedInputError wraps import-time failures as a real Go error, since
// Import sits at the package boundary where Go error handling conventions
// apply.
func MalformedInputError(reason string) error {
	return errors.Wrap(errors.New(reason), KindMalformedInput.String())
}

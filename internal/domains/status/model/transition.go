package model

// Action is a lifecycle step an assigned artist can take on a booking.
type Action string

const (
	ActionOnTheWay Action = "on_the_way"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
)

var transitions = map[Code][]Code{
	CodePending:            {CodeConfirmed, CodeCancelled},
	CodeConfirmed:          {CodeBeauticianAssigned, CodeCancelled},
	CodeBeauticianAssigned: {CodeBeauticianAssigned, CodeOnTheWay, CodeCancelled},
	CodeOnTheWay:           {CodeServiceStarted, CodeCancelled},
	CodeServiceStarted:     {CodeDone},
	CodeDone:               {},
	CodeCancelled:          {},
}

var actionSources = map[Action]Code{
	ActionOnTheWay: CodeBeauticianAssigned,
	ActionStart:    CodeOnTheWay,
	ActionComplete: CodeServiceStarted,
}

var actionTargets = map[Action]Code{
	ActionOnTheWay: CodeOnTheWay,
	ActionStart:    CodeServiceStarted,
	ActionComplete: CodeDone,
}

// CanTransition reports whether the lifecycle allows moving from one canonical status to another.
// Statuses outside the built-in lifecycle have no outgoing transitions.
func CanTransition(from, to Code) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// IsTerminal reports whether no further transition is possible from code.
func IsTerminal(code Code) bool {
	next, ok := transitions[code]

	return ok && len(next) == 0
}

func ParseAction(raw string) (Action, bool) {
	action := Action(key(raw))
	if _, ok := actionTargets[action]; !ok {
		return "", false
	}

	return action, true
}

// Source is the status a booking must be in for the action to be offered.
func (a Action) Source() Code {
	return actionSources[a]
}

// Target is the status the booking moves to once the action succeeds.
func (a Action) Target() Code {
	return actionTargets[a]
}

// RequiresOTP reports whether the customer has to hand over a one-time code.
func (a Action) RequiresOTP() bool {
	return a == ActionStart || a == ActionComplete
}

// AvailableActions lists the artist actions offered for a raw booking status.
func (n *Normalizer) AvailableActions(raw string) []Action {
	code := n.Normalize(raw)

	res := []Action{}
	for _, action := range []Action{ActionOnTheWay, ActionStart, ActionComplete} {
		if action.Source() == code {
			res = append(res, action)
		}
	}

	return res
}

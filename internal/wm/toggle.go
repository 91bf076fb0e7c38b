package wm

// Condition classifies a window for the dock/icon toggle policy.
type Condition int

const (
	// ConditionFocused means open, not minimized and holding the top z.
	ConditionFocused Condition = iota
	// ConditionBackground means open and not minimized, but behind another window.
	ConditionBackground
	// ConditionMinimized means open but hidden.
	ConditionMinimized
	// ConditionClosed means not open.
	ConditionClosed
)

// String returns the string representation of the condition
func (c Condition) String() string {
	switch c {
	case ConditionFocused:
		return "focused"
	case ConditionBackground:
		return "background"
	case ConditionMinimized:
		return "minimized"
	case ConditionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Action is the transition the toggle policy picks.
type Action int

const (
	ActionMinimize Action = iota
	ActionFocus
	ActionRestore
	ActionOpen
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case ActionMinimize:
		return "minimize"
	case ActionFocus:
		return "focus"
	case ActionRestore:
		return "restore"
	case ActionOpen:
		return "open"
	default:
		return "unknown"
	}
}

// togglePolicy maps the current condition to the toggle transition. Rows
// are listed in evaluation order.
var togglePolicy = []struct {
	cond   Condition
	action Action
}{
	{ConditionFocused, ActionMinimize},
	{ConditionBackground, ActionFocus},
	{ConditionMinimized, ActionRestore},
	{ConditionClosed, ActionOpen},
}

// ToggleAction returns the action the policy assigns to c.
func ToggleAction(c Condition) Action {
	for _, row := range togglePolicy {
		if row.cond == c {
			return row.action
		}
	}
	return ActionOpen
}

// Condition classifies id. The focused check runs before the background
// check since both describe an open, non-minimized window.
func (r *Registry) Condition(id ID) Condition {
	w := r.get(id)
	switch {
	case w.Open && !w.Minimized && w.Z == r.zTop:
		return ConditionFocused
	case w.Open && !w.Minimized:
		return ConditionBackground
	case w.Minimized:
		return ConditionMinimized
	default:
		return ConditionClosed
	}
}

// Toggle runs the click-to-cycle policy for id and returns the action taken
// with the resulting state.
func (r *Registry) Toggle(id ID) (Action, Window) {
	action := ToggleAction(r.Condition(id))
	switch action {
	case ActionMinimize:
		return action, r.Minimize(id)
	case ActionFocus:
		return action, r.BringToFront(id)
	case ActionRestore:
		return action, r.Restore(id)
	default:
		return action, r.Open(id)
	}
}

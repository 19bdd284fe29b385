package unit

// Action is the directive an outcome hands back to the calling orchestrator.
type Action string

const (
	ActionContinue     Action = "continue"
	ActionFail         Action = "fail"
	ActionRequireInput Action = "requireInput"
	ActionBranch       Action = "branch"
)

func (a Action) Valid() bool {
	switch a {
	case ActionContinue, ActionFail, ActionRequireInput, ActionBranch:
		return true
	default:
		return false
	}
}

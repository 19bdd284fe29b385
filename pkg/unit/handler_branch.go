package unit

import "github.com/joeydtaylor/steeze-plugin/pkg/value"

const (
	BranchAdmin     = "admin_flow"
	BranchModerator = "moderator_flow"
	BranchDefault   = "default_flow"
)

func branchExample(req Request) Outcome {
	role, ok := req.Input.StringAt("role")
	if !ok {
		role = "user"
	}

	branchID := BranchDefault
	switch role {
	case "admin":
		branchID = BranchAdmin
	case "moderator":
		branchID = BranchModerator
	}

	return BranchTo(branchID, value.Map{
		"selected_branch": value.String(branchID),
		"role":            value.String(role),
	})
}

package unit

import (
	"strings"

	"github.com/joeydtaylor/steeze-plugin/pkg/value"
)

const (
	minAge = 0
	maxAge = 150
)

// validate collects every violated rule, email first, and fails with them joined.
func validate(req Request) Outcome {
	var errs []string

	email, _ := req.Input.StringAt("email")
	switch {
	case email == "":
		errs = append(errs, "Email is required")
	case !strings.Contains(email, "@"):
		errs = append(errs, "Email must contain @")
	}

	if age, ok := req.Input["age"]; ok {
		// integers only: 30.5 and 1e2 are not ages
		n, isNum := age.AsInt()
		switch {
		case !isNum:
			errs = append(errs, "Age must be a number")
		case n < minAge || n > maxAge:
			errs = append(errs, "Age must be between 0 and 150")
		}
	}

	if len(errs) > 0 {
		return Fail(strings.Join(errs, "; "))
	}
	return Succeed(value.Map{"validated": value.Bool(true)})
}

package shared

import (
	"net/http"

	"rhportal/internal/transport/http/api"
)

// Validator accumulates field errors so a response can report every
// problem at once instead of the first one hit.
type Validator struct {
	problems []string
}

func (v *Validator) Require(value, name string) {
	if value == "" {
		v.problems = append(v.problems, name+" is required")
	}
}

func (v *Validator) Check(ok bool, problem string) {
	if !ok {
		v.problems = append(v.problems, problem)
	}
}

func (v *Validator) Add(problem string) {
	v.problems = append(v.problems, problem)
}

func (v *Validator) Valid() bool {
	return len(v.problems) == 0
}

func (v *Validator) Fail(w http.ResponseWriter, requestID string) {
	api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "request failed validation", v.problems, requestID)
}

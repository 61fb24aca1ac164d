package employee

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPatchDecodeRejectsUnknownFields(t *testing.T) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(`{"phone": "11 9", "isAdmin": true}`)))
	decoder.DisallowUnknownFields()

	var patch Patch
	if err := decoder.Decode(&patch); err == nil {
		t.Error("unknown payload key must fail decoding")
	}
}

func TestPatchIsEmpty(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Error("zero patch must be empty")
	}
	phone := "11 9"
	if (Patch{Phone: &phone}).IsEmpty() {
		t.Error("patch with one field must not be empty")
	}
}

func TestSelfServiceSubset(t *testing.T) {
	name := "Novo Nome"
	email := "novo@example.com"
	salary := 1.0
	phone := "11 9"
	address := "Rua A, 1"
	marital := "casado"
	dependents := 3

	full := Patch{
		FullName:      &name,
		Email:         &email,
		Salary:        &salary,
		Phone:         &phone,
		Address:       &address,
		MaritalStatus: &marital,
		Dependents:    &dependents,
	}
	subset := full.SelfServiceSubset()

	if subset.FullName != nil || subset.Email != nil || subset.Salary != nil {
		t.Error("subset must drop name, email and salary")
	}
	if subset.Phone == nil || subset.Address == nil || subset.MaritalStatus == nil || subset.Dependents == nil {
		t.Error("subset must keep phone, address, marital status and dependents")
	}
}

func TestPatchValidate(t *testing.T) {
	bad := "parado"
	negative := -1
	badMail := "sem-arroba"
	patch := Patch{Status: &bad, Dependents: &negative, Email: &badMail}

	issues := patch.Validate()
	if len(issues) != 3 {
		t.Fatalf("want 3 issues, got %d: %v", len(issues), issues)
	}

	good := StatusInactive
	zero := 0
	okMail := "a@b.com"
	patch = Patch{Status: &good, Dependents: &zero, Email: &okMail}
	if issues := patch.Validate(); len(issues) != 0 {
		t.Errorf("unexpected issues: %v", issues)
	}
}

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantDay string
		zero    bool
		wantErr bool
	}{
		{"plain date", `"1990-05-20"`, "1990-05-20", false, false},
		{"rfc3339", `"1990-05-20T00:00:00Z"`, "1990-05-20", false, false},
		{"empty string means unset", `""`, "", true, false},
		{"blank string means unset", `"  "`, "", true, false},
		{"nonsense", `"20/05/1990"`, "", false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tc.input), &d)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if tc.zero {
				if !d.IsZero() {
					t.Error("want zero date")
				}
				return
			}
			if got := d.Format("2006-01-02"); got != tc.wantDay {
				t.Errorf("got %s, want %s", got, tc.wantDay)
			}
		})
	}
}

func TestDateMarshal(t *testing.T) {
	var zero Date
	out, err := json.Marshal(zero)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != "null" {
		t.Errorf("zero date = %s, want null", out)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2024-12-01"`), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	out, err = json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), "2024-12-01") {
		t.Errorf("got %s", out)
	}
}

// A blank termination date in a payload must decode to the zero value so the
// store writes NULL instead of an empty string.
func TestTerminationDateBlankNormalizes(t *testing.T) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(`{"terminationDate": ""}`)))
	decoder.DisallowUnknownFields()

	var patch Patch
	if err := decoder.Decode(&patch); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if patch.TerminationDate == nil {
		t.Fatal("field present in payload must be non-nil")
	}
	if !patch.TerminationDate.IsZero() {
		t.Error("blank date must decode to the zero value")
	}
	if dateArg(patch.TerminationDate) != nil {
		t.Error("zero date must become a NULL argument")
	}
}

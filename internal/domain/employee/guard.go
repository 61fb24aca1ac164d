package employee

import (
	"errors"

	"rhportal/internal/domain/auth"
)

var (
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("employee not found")
	ErrDuplicate  = errors.New("email or national id already registered")
	ErrEmptyPatch = errors.New("no recognized field to update")
)

// The guard is the single authorization point for record access. Every rule
// reduces to "admin, or the record's own subject" with write scope narrowed
// for the latter.

func CanRead(actor auth.Identity, targetID int64) bool {
	return actor.IsAdmin() || actor.EmployeeID == targetID
}

func CanList(actor auth.Identity) bool {
	return actor.IsAdmin()
}

func CanCreate(actor auth.Identity) bool {
	return actor.IsAdmin()
}

func CanDelete(actor auth.Identity) bool {
	return actor.IsAdmin()
}

// ScopePatch decides whether the actor may write the target record at all
// and, if so, which part of the patch applies. Admins write any field; the
// record's subject writes the self-service subset, with out-of-scope fields
// silently dropped. Everyone else is rejected outright.
func ScopePatch(actor auth.Identity, targetID int64, patch Patch) (Patch, error) {
	if actor.IsAdmin() {
		return patch, nil
	}
	if actor.EmployeeID != targetID {
		return Patch{}, ErrForbidden
	}
	return patch.SelfServiceSubset(), nil
}

type DocumentKind string

const (
	KindPhoto       DocumentKind = "photo"
	KindPayslip     DocumentKind = "payslip"
	KindCertificate DocumentKind = "certificate"
)

// CanAttach implements the strict upload policy: photos and payslips are
// administrator-only; certificates may be self-attached by the record's own
// subject.
func CanAttach(actor auth.Identity, kind DocumentKind, targetID int64) bool {
	if actor.IsAdmin() {
		return true
	}
	return kind == KindCertificate && actor.EmployeeID == targetID
}

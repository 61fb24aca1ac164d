package auth

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Classifier derives the access role from a job title. It is built once from
// configuration and shared by every caller that needs a role decision, so the
// privileged-title list cannot drift between call sites.
type Classifier struct {
	privileged map[string]struct{}
}

func NewClassifier(privilegedTitles []string) *Classifier {
	set := make(map[string]struct{}, len(privilegedTitles))
	for _, title := range privilegedTitles {
		trimmed := strings.TrimSpace(title)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	return &Classifier{privileged: set}
}

// Classify is total: any title outside the privileged set is a standard
// employee, including the empty string.
func (c *Classifier) Classify(jobTitle string) Role {
	if _, ok := c.privileged[strings.TrimSpace(jobTitle)]; ok {
		return RoleAdmin
	}
	return RoleEmployee
}

func (c *Classifier) IsPrivileged(jobTitle string) bool {
	return c.Classify(jobTitle) == RoleAdmin
}

package worker

import (
	"strings"
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// Worker is an account able to clock in. Display and legal identity fields
// feed the monthly report header. ForcePasswordChange is set by an admin
// reset and cleared once the worker picks a new password.
type Worker struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	PasswordHash        string    `json:"passwordHash"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	NationalID          string    `json:"nationalId"`
	AffiliationNumber   string    `json:"affiliationNumber,omitempty"`
	Role                Role      `json:"role"`
	MainSignature       string    `json:"mainSignature,omitempty"`
	CompanyProfileID    string    `json:"companyProfileId,omitempty"`
	ForcePasswordChange bool      `json:"forcePasswordChange,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FullName joins first and last name.
func (w Worker) FullName() string {
	return strings.TrimSpace(w.FirstName + " " + w.LastName)
}

// IsAdmin checks if worker holds the admin role
func (w Worker) IsAdmin() bool {
	return w.Role == RoleAdmin
}

// Actor is the authenticated caller of an operation, passed explicitly into
// services instead of being read from request-global state.
type Actor struct {
	WorkerID string
	Role     Role
}

// IsAdmin checks if the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanActFor reports whether the actor may read or write workerID's data.
func (a Actor) CanActFor(workerID string) bool {
	return a.IsAdmin() || a.WorkerID == workerID
}

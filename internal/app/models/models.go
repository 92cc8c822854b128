package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleAdmin      RoleType = "ADMIN"
)

// AccountStatus tracks the review state of a registration
type AccountStatus string

const (
	AccountPending  AccountStatus = "PENDING"
	AccountApproved AccountStatus = "APPROVED"
	AccountRejected AccountStatus = "REJECTED"
)

// Valid reports whether s is a known account status
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountPending, AccountApproved, AccountRejected:
		return true
	}
	return false
}

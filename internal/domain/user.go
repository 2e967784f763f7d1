package domain

import (
	"regexp"
	"time"
	"unicode/utf8"
)

// Role is the closed privilege enumeration. The numeric order is the
// privilege order: Regular < Employee < Admin.
type Role int

const (
	RoleRegular  Role = 0
	RoleEmployee Role = 1
	RoleAdmin    Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleEmployee:
		return "employee"
	default:
		return "regular"
	}
}

// ParseRole maps a role name to its Role value. Unknown names report false.
func ParseRole(name string) (Role, bool) {
	switch name {
	case "admin":
		return RoleAdmin, true
	case "employee":
		return RoleEmployee, true
	case "regular", "user", "customer":
		return RoleRegular, true
	}
	return RoleRegular, false
}

// User is the resolved caller of a request, or a stored account record.
// The zero ID marks the anonymous caller.
type User struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Anonymous is the sentinel identity for requests carrying no valid credential.
func Anonymous() User { return User{} }

func (u User) IsAnonymous() bool { return u.ID == 0 }

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

const maxNameLength = 10

// ValidatePhone checks the mainland mobile number format (11 digits).
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return NewAPIError(CodePhoneInvalid)
	}
	return nil
}

// ValidateName enforces the display-name length limit. Empty names are fine.
func ValidateName(name string) error {
	if utf8.RuneCountInString(name) > maxNameLength {
		return NewAPIError(CodeNameTooLong)
	}
	return nil
}

// Package permissions centralizes every authorization decision behind one
// capability surface with one implementation per role. Handlers never branch
// on roles inline; they resolve an Action and invoke the named capability.
package permissions

import (
	"laxin/internal/domain"
	"laxin/internal/listing"
)

// Action is the capability surface. Every role implements all of it; a
// capability either succeeds or fails with a PermissionError carrying that
// denial's own catalogue code.
type Action interface {
	// UserScope narrows col to the user records this identity may list.
	UserScope(col listing.Collection[domain.User]) listing.Collection[domain.User]

	CanReadUser(targetID int64) error
	CanCreateUser() error
	CanEditUser() error
	CanDeleteUser() error
}

// ForUser selects the Action variant for u's role. An anonymous identity is
// rejected here: this is the single point turning "no identity" into a
// request-level failure.
func ForUser(u domain.User) (Action, error) {
	if u.IsAnonymous() {
		return nil, domain.NewAPIError(domain.CodeUnauthorized)
	}
	switch u.Role {
	case domain.RoleAdmin:
		return adminAction{user: u}, nil
	case domain.RoleEmployee:
		return employeeAction{user: u}, nil
	default:
		// RoleRegular, and the total-dispatch fallback for the closed enum
		return customerAction{user: u}, nil
	}
}

package permissions

import (
	"laxin/internal/domain"
	"laxin/internal/listing"
)

// adminAction may see and change everything.
type adminAction struct {
	user domain.User
}

func (a adminAction) UserScope(col listing.Collection[domain.User]) listing.Collection[domain.User] {
	return col
}

func (a adminAction) CanReadUser(targetID int64) error { return nil }

func (a adminAction) CanCreateUser() error { return nil }

func (a adminAction) CanEditUser() error { return nil }

func (a adminAction) CanDeleteUser() error { return nil }

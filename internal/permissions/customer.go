package permissions

import (
	"laxin/internal/domain"
	"laxin/internal/listing"
)

// customerAction only ever touches the caller's own record.
type customerAction struct {
	user domain.User
}

func (a customerAction) UserScope(col listing.Collection[domain.User]) listing.Collection[domain.User] {
	return col.Where("id", listing.OpEq, a.user.ID)
}

func (a customerAction) CanReadUser(targetID int64) error {
	if targetID == a.user.ID {
		return nil
	}
	return domain.PermissionError{Code: domain.CodeNoReadUser}
}

func (a customerAction) CanCreateUser() error {
	return domain.PermissionError{Code: domain.CodeNoCreateUser}
}

func (a customerAction) CanEditUser() error {
	return domain.PermissionError{Code: domain.CodeNoEditUser}
}

func (a customerAction) CanDeleteUser() error {
	return domain.PermissionError{Code: domain.CodeNoDeleteUser}
}

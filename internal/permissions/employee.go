package permissions

import (
	"laxin/internal/domain"
	"laxin/internal/listing"
)

// employeeAction manages users below admin level but cannot delete.
type employeeAction struct {
	user domain.User
}

func (a employeeAction) UserScope(col listing.Collection[domain.User]) listing.Collection[domain.User] {
	return col.Where("role", listing.OpLt, int(domain.RoleAdmin))
}

func (a employeeAction) CanReadUser(targetID int64) error { return nil }

func (a employeeAction) CanCreateUser() error { return nil }

func (a employeeAction) CanEditUser() error { return nil }

func (a employeeAction) CanDeleteUser() error {
	return domain.PermissionError{Code: domain.CodeNoDeleteUser}
}

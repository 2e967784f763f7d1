package permissions

import (
	"context"
	"testing"

	"laxin/internal/domain"
	"laxin/internal/listing"
)

// fakeCollection records Where calls so scope tests can assert the exact
// restriction each role applies.
type fakeCollection struct {
	wheres []whereCall
}

type whereCall struct {
	field string
	op    listing.Op
	value any
}

func (f *fakeCollection) Where(field string, op listing.Op, value any) listing.Collection[domain.User] {
	return &fakeCollection{wheres: append(append([]whereCall{}, f.wheres...), whereCall{field, op, value})}
}

func (f *fakeCollection) OrderBy(string, bool) listing.Collection[domain.User] { return f }

func (f *fakeCollection) Count(context.Context) (int, error) { return 0, nil }

func (f *fakeCollection) Slice(context.Context, int, int) ([]domain.User, error) { return nil, nil }

func mustAction(t *testing.T, role domain.Role) Action {
	t.Helper()
	act, err := ForUser(domain.User{ID: 42, Phone: "13800000042", Role: role})
	if err != nil {
		t.Fatalf("resolve action for %v: %v", role, err)
	}
	return act
}

func denialCode(t *testing.T, err error) domain.Code {
	t.Helper()
	perm, ok := domain.AsPermission(err)
	if !ok {
		t.Fatalf("expected PermissionError, got %v", err)
	}
	return perm.Code
}

func TestForUserRejectsAnonymous(t *testing.T) {
	_, err := ForUser(domain.Anonymous())
	if err == nil {
		t.Fatal("anonymous identity resolved to an action")
	}
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Code != domain.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", err)
	}
}

// The full role x capability matrix, one case per cell.
func TestCapabilityMatrix(t *testing.T) {
	cases := []struct {
		name     string
		role     domain.Role
		invoke   func(Action) error
		wantDeny domain.Code // 0 means allowed
	}{
		{"admin read", domain.RoleAdmin, func(a Action) error { return a.CanReadUser(7) }, 0},
		{"admin create", domain.RoleAdmin, func(a Action) error { return a.CanCreateUser() }, 0},
		{"admin edit", domain.RoleAdmin, func(a Action) error { return a.CanEditUser() }, 0},
		{"admin delete", domain.RoleAdmin, func(a Action) error { return a.CanDeleteUser() }, 0},

		{"employee read", domain.RoleEmployee, func(a Action) error { return a.CanReadUser(7) }, 0},
		{"employee create", domain.RoleEmployee, func(a Action) error { return a.CanCreateUser() }, 0},
		{"employee edit", domain.RoleEmployee, func(a Action) error { return a.CanEditUser() }, 0},
		{"employee delete", domain.RoleEmployee, func(a Action) error { return a.CanDeleteUser() }, domain.CodeNoDeleteUser},

		{"customer read self", domain.RoleRegular, func(a Action) error { return a.CanReadUser(42) }, 0},
		{"customer read other", domain.RoleRegular, func(a Action) error { return a.CanReadUser(8) }, domain.CodeNoReadUser},
		{"customer create", domain.RoleRegular, func(a Action) error { return a.CanCreateUser() }, domain.CodeNoCreateUser},
		{"customer edit", domain.RoleRegular, func(a Action) error { return a.CanEditUser() }, domain.CodeNoEditUser},
		{"customer delete", domain.RoleRegular, func(a Action) error { return a.CanDeleteUser() }, domain.CodeNoDeleteUser},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.invoke(mustAction(t, tc.role))
			if tc.wantDeny == 0 {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if got := denialCode(t, err); got != tc.wantDeny {
				t.Fatalf("denial code = %d, want %d", got, tc.wantDeny)
			}
		})
	}
}

func TestAdminScopeIsUnrestricted(t *testing.T) {
	base := &fakeCollection{}
	scoped := mustAction(t, domain.RoleAdmin).UserScope(base)
	if got := scoped.(*fakeCollection).wheres; len(got) != 0 {
		t.Fatalf("admin scope added restrictions: %v", got)
	}
}

func TestEmployeeScopeExcludesAdmins(t *testing.T) {
	base := &fakeCollection{}
	scoped := mustAction(t, domain.RoleEmployee).UserScope(base)
	wheres := scoped.(*fakeCollection).wheres
	if len(wheres) != 1 {
		t.Fatalf("expected one restriction, got %v", wheres)
	}
	w := wheres[0]
	if w.field != "role" || w.op != listing.OpLt || w.value != int(domain.RoleAdmin) {
		t.Fatalf("unexpected restriction: %+v", w)
	}
}

func TestCustomerScopeIsOwnRecordOnly(t *testing.T) {
	base := &fakeCollection{}
	scoped := mustAction(t, domain.RoleRegular).UserScope(base)
	wheres := scoped.(*fakeCollection).wheres
	if len(wheres) != 1 {
		t.Fatalf("expected one restriction, got %v", wheres)
	}
	w := wheres[0]
	if w.field != "id" || w.op != listing.OpEq || w.value != int64(42) {
		t.Fatalf("unexpected restriction: %+v", w)
	}
}

func TestUnknownRoleFallsBackToCustomer(t *testing.T) {
	act, err := ForUser(domain.User{ID: 9, Role: domain.Role(99)})
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if err := act.CanCreateUser(); !domain.IsPermission(err) {
		t.Fatalf("expected customer denial, got %v", err)
	}
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture() (*fixture, UserService) {
	f := newFixture()
	return f, NewUserService(stubCredentialRepo{f.m}, stubProfileRepo{f.m}, stubTenantRepo{f.m}, f.fx)
}

func userReq(name, email string) dto.CreateUserRequest {
	return dto.CreateUserRequest{Name: name, Email: email, Password: "password123"}
}

func TestCreateEmployee_ProvisionsCredentialAndProfile(t *testing.T) {
	f, svc := newUserFixture()

	resp, err := svc.CreateEmployee(context.Background(), sessionOf(f.admin), userReq(" Bruno Diaz ", "Bruno@Acme.test"))
	require.NoError(t, err)
	assert.Equal(t, "Bruno Diaz", resp.Name)
	assert.Equal(t, "bruno@acme.test", resp.Email)
	assert.Equal(t, model.RoleEmployee, resp.Role)
	assert.Equal(t, int64(0), resp.Points)
	require.NotNil(t, resp.TenantID)
	assert.Equal(t, f.tenant.ID.String(), *resp.TenantID)

	cred := f.m.credentials["bruno@acme.test"]
	require.NotNil(t, cred)
	assert.Equal(t, resp.ID, cred.UserID.String(), "credential and profile share the id")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte("password123")))
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	f, svc := newUserFixture()
	ctx := context.Background()
	_, err := svc.CreateEmployee(ctx, sessionOf(f.admin), userReq("Bruno", "bruno@acme.test"))
	require.NoError(t, err)

	_, err = svc.CreateEmployee(ctx, sessionOf(f.admin), userReq("Bruno Again", "BRUNO@acme.test"))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
}

func TestCreateEmployee_PasswordOver72BytesIsValidationError(t *testing.T) {
	f, svc := newUserFixture()
	ctx := context.Background()

	for name, pw := range map[string]string{
		"ascii":     strings.Repeat("a", 80),
		"multibyte": strings.Repeat("ñ", 40), // 40 runes, 80 bytes
	} {
		req := userReq("Bruno", name+"@acme.test")
		req.Password = pw
		_, err := svc.CreateEmployee(ctx, sessionOf(f.admin), req)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve, name)
		assert.Equal(t, "password", ve.Field, name)
		assert.Nil(t, f.m.credentials[name+"@acme.test"], name)
	}

	req := userReq("Bruno", "edge@acme.test")
	req.Password = strings.Repeat("a", 72)
	_, err := svc.CreateEmployee(ctx, sessionOf(f.admin), req)
	assert.NoError(t, err)
}

func TestCreateUser_RoleRules(t *testing.T) {
	f, svc := newUserFixture()
	emp := f.employee("Ana", 0)
	ctx := context.Background()

	_, err := svc.CreateEmployee(ctx, sessionOf(emp), userReq("X", "x@acme.test"))
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.CreateEmployee(ctx, managerSession(), userReq("X", "x@acme.test"))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateAdmin(ctx, sessionOf(f.admin), f.tenant.ID, userReq("Y", "y@acme.test"))
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.CreateAdmin(ctx, managerSession(), uuid.New(), userReq("Y", "y@acme.test"))
	assert.ErrorIs(t, err, ErrNotFound)

	admin, err := svc.CreateAdmin(ctx, managerSession(), f.tenant.ID, userReq("Yara", "yara@acme.test"))
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	mgr, err := svc.CreateManager(ctx, userReq("Root", "root@fideliz.test"))
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, mgr.Role)
	assert.Nil(t, mgr.TenantID)
}

func TestListEmployees_ScopedToTenant(t *testing.T) {
	f, svc := newUserFixture()
	f.employee("Ana", 0)
	inactive := f.employee("Beto", 0)
	inactive.IsActive = model.ActiveFlag(false)
	other := f.m.addTenant("Globex")
	f.m.addProfile(model.RoleEmployee, &other.ID, "Foreign", 0)

	active, err := svc.ListEmployees(context.Background(), sessionOf(f.admin), false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Ana", active[0].Name)

	all, err := svc.ListEmployees(context.Background(), sessionOf(f.admin), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateAndToggleEmployee(t *testing.T) {
	f, svc := newUserFixture()
	emp := f.employee("Ana", 10)
	ctx := context.Background()

	resp, err := svc.UpdateEmployee(ctx, sessionOf(f.admin), emp.ID, dto.UpdateProfileRequest{Name: "Ana Maria"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", resp.Name)
	assert.Equal(t, int64(10), f.balance(emp.ID), "updates never touch the balance")

	require.NoError(t, svc.DeactivateEmployee(ctx, sessionOf(f.admin), emp.ID))
	assert.False(t, f.m.profiles[emp.ID].Active())
	require.NoError(t, svc.ReactivateEmployee(ctx, sessionOf(f.admin), emp.ID))
	assert.True(t, f.m.profiles[emp.ID].Active())
	assert.Len(t, f.fx.invalidated, 3, "rename and both toggles drop the cached ranking")

	_, err = svc.UpdateEmployee(ctx, sessionOf(f.admin), emp.ID, dto.UpdateProfileRequest{Name: "  "})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestEmployeeOfOtherTenantIsNotFound(t *testing.T) {
	f, svc := newUserFixture()
	other := f.m.addTenant("Globex")
	foreign := f.m.addProfile(model.RoleEmployee, &other.ID, "Foreign", 0)

	err := svc.DeactivateEmployee(context.Background(), sessionOf(f.admin), foreign.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, f.m.profiles[foreign.ID].Active())

	err = svc.DeactivateEmployee(context.Background(), sessionOf(f.admin), f.admin.ID)
	assert.ErrorIs(t, err, ErrNotFound, "admins are not employees")
}

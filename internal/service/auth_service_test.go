package service

import (
	"context"
	"testing"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/config"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type authFixture struct {
	m        *memStore
	sessions *memSessionStore
	notifier *session.Notifier
	svc      AuthService
	employee *model.Profile
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	m := newMemStore()
	tenant := m.addTenant("Acme")
	emp := m.addProfile(model.RoleEmployee, &tenant.ID, "Ana Perez", 40)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	m.credentials[emp.Email] = &model.Credential{UserID: emp.ID, Email: emp.Email, PasswordHash: string(hash)}

	sessions := &memSessionStore{}
	notifier := session.NewNotifier()
	cfg := &config.Config{JWTSecret: testSecret, JWTExpirationHours: 8, JWTRefreshHours: 24}
	return &authFixture{
		m:        m,
		sessions: sessions,
		notifier: notifier,
		svc:      NewAuthService(stubCredentialRepo{m}, stubProfileRepo{m}, sessions, notifier, cfg),
		employee: emp,
	}
}

func parseClaims(t *testing.T, raw string) jwt.MapClaims {
	t.Helper()
	tok, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	return tok.Claims.(jwt.MapClaims)
}

func authCode(t *testing.T, err error) string {
	t.Helper()
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	return ae.Code
}

func TestSignIn_Success(t *testing.T) {
	f := newAuthFixture(t)
	events, cancel := f.notifier.Subscribe(f.employee.ID)
	defer cancel()

	resp, err := f.svc.SignIn(context.Background(), dto.LoginRequest{Email: "  ANA.PEREZ@acme.test ", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, f.employee.ID.String(), resp.User.ID)
	assert.Equal(t, int64(40), resp.User.Points)

	access := parseClaims(t, resp.AccessToken)
	refresh := parseClaims(t, resp.RefreshToken)
	assert.Equal(t, TokenAccess, access["typ"])
	assert.Equal(t, TokenRefresh, refresh["typ"])
	assert.Equal(t, access["sid"], refresh["sid"])
	assert.Equal(t, model.RoleEmployee, access["role"])
	assert.Equal(t, f.employee.TenantID.String(), access["tenant_id"])

	select {
	case ev := <-events:
		assert.Equal(t, session.SignedIn, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("expected signed_in event")
	}
}

func TestSignIn_ErrorCodes(t *testing.T) {
	f := newAuthFixture(t)
	ghost := f.m.addProfile(model.RoleEmployee, f.employee.TenantID, "Ghost User", 0)
	delete(f.m.profiles, ghost.ID)
	hash, _ := bcrypt.GenerateFromPassword([]byte("whatever1"), bcrypt.MinCost)
	f.m.credentials[ghost.Email] = &model.Credential{UserID: ghost.ID, Email: ghost.Email, PasswordHash: string(hash)}
	ctx := context.Background()

	_, err := f.svc.SignIn(ctx, dto.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Equal(t, AuthInvalidEmail, authCode(t, err))

	_, err = f.svc.SignIn(ctx, dto.LoginRequest{Email: "nobody@acme.test", Password: "x"})
	assert.Equal(t, AuthUserNotFound, authCode(t, err))

	_, err = f.svc.SignIn(ctx, dto.LoginRequest{Email: f.employee.Email, Password: "wrong"})
	assert.Equal(t, AuthWrongPassword, authCode(t, err))

	_, err = f.svc.SignIn(ctx, dto.LoginRequest{Email: ghost.Email, Password: "whatever1"})
	assert.Equal(t, AuthInvalidCredential, authCode(t, err), "credential without profile")

	f.m.profiles[f.employee.ID].IsActive = model.ActiveFlag(false)
	_, err = f.svc.SignIn(ctx, dto.LoginRequest{Email: f.employee.Email, Password: "s3cret-pass"})
	assert.Equal(t, AuthUserDisabled, authCode(t, err))
}

func TestSignIn_NilActiveFlagCountsAsActive(t *testing.T) {
	f := newAuthFixture(t)
	f.m.profiles[f.employee.ID].IsActive = nil
	_, err := f.svc.SignIn(context.Background(), dto.LoginRequest{Email: f.employee.Email, Password: "s3cret-pass"})
	assert.NoError(t, err)
}

func TestRefresh_RotatesSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	first, err := f.svc.SignIn(ctx, dto.LoginRequest{Email: f.employee.Email, Password: "s3cret-pass"})
	require.NoError(t, err)
	oldSID := parseClaims(t, first.RefreshToken)["sid"].(string)

	second, err := f.svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, oldSID, parseClaims(t, second.AccessToken)["sid"])

	revoked, _ := f.sessions.IsRevoked(ctx, oldSID)
	assert.True(t, revoked)
	assert.Equal(t, 24*time.Hour, f.sessions.revoked[oldSID])

	_, err = f.svc.Refresh(ctx, first.RefreshToken)
	assert.Equal(t, AuthInvalidCredential, authCode(t, err), "a rotated refresh token is single use")
}

func TestRefresh_RejectsAccessTokensAndGarbage(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	resp, err := f.svc.SignIn(ctx, dto.LoginRequest{Email: f.employee.Email, Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = f.svc.Refresh(ctx, resp.AccessToken)
	assert.Equal(t, AuthInvalidCredential, authCode(t, err))

	_, err = f.svc.Refresh(ctx, "not.a.jwt")
	assert.Equal(t, AuthInvalidCredential, authCode(t, err))

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": f.employee.ID.String(), "sid": "x", "typ": TokenRefresh,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, _ := forged.SignedString([]byte("other-secret"))
	_, err = f.svc.Refresh(ctx, raw)
	assert.Equal(t, AuthInvalidCredential, authCode(t, err))
}

func TestRefresh_DisabledUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	resp, err := f.svc.SignIn(ctx, dto.LoginRequest{Email: f.employee.Email, Password: "s3cret-pass"})
	require.NoError(t, err)

	f.m.profiles[f.employee.ID].IsActive = model.ActiveFlag(false)
	_, err = f.svc.Refresh(ctx, resp.RefreshToken)
	assert.Equal(t, AuthUserDisabled, authCode(t, err))
}

func TestSignOut_RevokesAndPublishes(t *testing.T) {
	f := newAuthFixture(t)
	events, cancel := f.notifier.Subscribe(f.employee.ID)
	defer cancel()
	sess := sessionOf(f.employee)

	require.NoError(t, f.svc.SignOut(context.Background(), sess))
	revoked, _ := f.sessions.IsRevoked(context.Background(), sess.SessionID)
	assert.True(t, revoked)

	select {
	case ev := <-events:
		assert.Equal(t, session.SignedOut, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("expected signed_out event")
	}

	sess.SessionID = ""
	assert.Equal(t, AuthInvalidCredential, authCode(t, f.svc.SignOut(context.Background(), sess)))
}

func TestMe(t *testing.T) {
	f := newAuthFixture(t)
	me, err := f.svc.Me(context.Background(), sessionOf(f.employee))
	require.NoError(t, err)
	assert.Equal(t, f.employee.Email, me.Email)
	assert.True(t, me.Active)
}

package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fakeappointmentrepo "github.com/clinicore/go-clinic-server/appointments/repofake"
	fakedoctorrepo "github.com/clinicore/go-clinic-server/doctors/repofake"
	"github.com/clinicore/go-clinic-server/internal/config"
	"github.com/clinicore/go-clinic-server/server"
	"github.com/clinicore/go-clinic-server/users"
	fakeuserrepo "github.com/clinicore/go-clinic-server/users/repofake"
)

const (
	testEmail    = "alice@example.com"
	testPassword = "Password1!"
)

type testServer struct {
	server   *server.Server
	userRepo *fakeuserrepo.FakeUserRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	t.Setenv("JWT_ACCESS_SECRET", "test-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("ENV", "test")

	userRepo := fakeuserrepo.NewFakeUserRepo()
	repos := server.Repos{
		Users:        userRepo,
		Doctors:      fakedoctorrepo.NewFakeDoctorRepo(),
		Appointments: fakeappointmentrepo.NewFakeAppointmentRepo(),
	}

	s, err := server.New(config.New(), repos, zerolog.Nop())
	require.NoError(t, err)

	return &testServer{server: s, userRepo: userRepo}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, mutate ...func(*http.Request)) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}

	w := httptest.NewRecorder()
	ts.server.ServeHTTP(w, req)
	return w.Result()
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	res.Body.Close()
	return out
}

func refreshCookie(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == "jid" {
			return c
		}
	}
	return nil
}

func (ts *testServer) register(t *testing.T) {
	t.Helper()
	res := ts.do(t, http.MethodPost, server.RouteAuthRegister, map[string]string{
		"email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
}

func (ts *testServer) login(t *testing.T) (accessToken string, cookie *http.Cookie) {
	t.Helper()
	res := ts.do(t, http.MethodPost, server.RouteAuthLogin, map[string]string{
		"email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	cookie = refreshCookie(res)
	require.NotNil(t, cookie)
	body := decodeBody[map[string]string](t, res)
	return body["accessToken"], cookie
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	res := ts.do(t, http.MethodPost, server.RouteAuthRegister, map[string]string{
		"email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	body := decodeBody[map[string]string](t, res)
	assert.Equal(t, testEmail, body["email"])
	assert.Equal(t, "user", body["role"])
	assert.NotEmpty(t, body["id"])
	assert.Nil(t, refreshCookie(res), "registration must not start a session")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t)

	res := ts.do(t, http.MethodPost, server.RouteAuthRegister, map[string]string{
		"email": "ALICE@example.com", "password": "other-password",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestRegister_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	res := ts.do(t, http.MethodPost, server.RouteAuthRegister, map[string]string{"email": testEmail})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = ts.do(t, http.MethodPost, server.RouteAuthRegister, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLogin_SetsRefreshCookie(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t)

	accessToken, cookie := ts.login(t)
	assert.NotEmpty(t, accessToken)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/auth", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.NotEmpty(t, cookie.Value)
}

func TestLogin_WrongCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t)

	badPassword := ts.do(t, http.MethodPost, server.RouteAuthLogin, map[string]string{
		"email": testEmail, "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, badPassword.StatusCode)

	unknownUser := ts.do(t, http.MethodPost, server.RouteAuthLogin, map[string]string{
		"email": "nobody@example.com", "password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)

	// User enumeration guard: both failures read identically.
	badBody := decodeBody[map[string]string](t, badPassword)
	unknownBody := decodeBody[map[string]string](t, unknownUser)
	assert.Equal(t, badBody["error"], unknownBody["error"])
}

func TestRefresh_RotatesCookie(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t)
	_, cookie := ts.login(t)

	res := ts.do(t, http.MethodPost, server.RouteAuthRefresh, nil, func(r *http.Request) {
		r.AddCookie(cookie)
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	rotated := refreshCookie(res)
	require.NotNil(t, rotated)
	assert.NotEqual(t, cookie.Value, rotated.Value)

	body := decodeBody[map[string]string](t, res)
	assert.NotEmpty(t, body["accessToken"])
}

func TestRefresh_ReuseBurnsSession(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t)
	_, first := ts.login(t)

	res := ts.do(t, http.MethodPost, server.RouteAuthRefresh, nil, func(r *http.Request) {
		r.AddCookie(first)
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	second := refreshCookie(res)
	require.NotNil(t, second)

	// Presenting the consumed token again is a reuse signal.
	reuse := ts.do(t, http.MethodPost, server.RouteAuthRefresh, nil, func(r *http.Request) {
		r.AddCookie(first)
	})
	assert.Equal(t, http.StatusUnauthorized, reuse.StatusCode)
	cleared := refreshCookie(reuse)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// The whole session is burned: the newest token is dead too.
	afterReuse := ts.do(t, http.MethodPost, server.RouteAuthRefresh, nil, func(r *http.Request) {
		r.AddCookie(second)
	})
	assert.Equal(t, http.StatusUnauthorized, afterReuse.StatusCode)
}

func TestRefresh_BodyFallback(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t)
	_, cookie := ts.login(t)

	res := ts.do(t, http.MethodPost, server.RouteAuthRefresh, map[string]string{
		"refreshToken": cookie.Value,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRefresh_GarbageToken(t *testing.T) {
	ts := newTestServer(t)

	res := ts.do(t, http.MethodPost, server.RouteAuthRefresh, map[string]string{
		"refreshToken": "not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestLogout_AlwaysSucceeds(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t)
	_, cookie := ts.login(t)

	res := ts.do(t, http.MethodPost, server.RouteAuthLogout, nil, func(r *http.Request) {
		r.AddCookie(cookie)
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	cleared := refreshCookie(res)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// The refresh token no longer names a session.
	refresh := ts.do(t, http.MethodPost, server.RouteAuthRefresh, nil, func(r *http.Request) {
		r.AddCookie(cookie)
	})
	assert.Equal(t, http.StatusUnauthorized, refresh.StatusCode)

	// Logging out again, or with no cookie at all, still succeeds.
	again := ts.do(t, http.MethodPost, server.RouteAuthLogout, nil)
	assert.Equal(t, http.StatusOK, again.StatusCode)
}

func TestValidatePassword(t *testing.T) {
	ts := newTestServer(t)

	strong := ts.do(t, http.MethodPost, server.RouteAPIValidatePassword, map[string]string{
		"password": "Sup3r$trongPass",
	})
	require.Equal(t, http.StatusOK, strong.StatusCode)
	body := decodeBody[map[string]any](t, strong)
	assert.Equal(t, true, body["valid"])

	weak := ts.do(t, http.MethodPost, server.RouteAPIValidatePassword, map[string]string{
		"password": "short",
	})
	require.Equal(t, http.StatusOK, weak.StatusCode)
	body = decodeBody[map[string]any](t, weak)
	assert.Equal(t, false, body["valid"])
	assert.NotEmpty(t, body["error"])
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	ts := newTestServer(t)

	res := ts.do(t, http.MethodGet, server.RouteDoctors, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = ts.do(t, http.MethodGet, server.RouteDoctors, nil, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer not-a-token")
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t)
	accessToken, _ := ts.login(t)

	res := ts.do(t, http.MethodPost, server.RouteDoctors, map[string]string{}, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+accessToken)
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAdminRoutes_AdminCanWrite(t *testing.T) {
	ts := newTestServer(t)

	// Seed an admin directly; there is no HTTP surface for promotion.
	hash, err := users.HashPassword(testPassword, 4)
	require.NoError(t, err)
	require.NoError(t, ts.userRepo.Create(context.Background(), &users.User{
		Email:        testEmail,
		PasswordHash: hash,
		Role:         users.RoleAdmin,
	}))

	accessToken, _ := ts.login(t)

	res := ts.do(t, http.MethodPost, server.RouteDoctors, map[string]any{
		"firstName":       "Grace",
		"lastName":        "Hopper",
		"email":           "grace@example.com",
		"phone":           "+1-555-0100",
		"specialization":  "Cardiology",
		"department":      "Cardiology",
		"experience":      12,
		"qualification":   "MD",
		"consultationFee": 150,
		"availableDays":   []string{"Monday", "Wednesday"},
		"availableTime":   map[string]string{"start": "09:00", "end": "17:00"},
	}, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+accessToken)
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	body := decodeBody[map[string]any](t, res)
	assert.NotEmpty(t, body["doctorId"])
	assert.Equal(t, true, body["isActive"])
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	res := ts.do(t, http.MethodGet, server.RouteHealthz, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := decodeBody[map[string]string](t, res)
	assert.Equal(t, "ok", body["status"])
}

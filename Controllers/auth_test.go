package Controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MaidManager/Models"
)

func TestRegisterAndLogin(t *testing.T) {
	app, db, _, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", fiberBody{
		"name":     "Nadia",
		"email":    "Nadia@Example.com",
		"password": "hunter22",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created Models.User
	decodeBody(t, resp, &created)
	assert.Equal(t, "nadia@example.com", created.Email) // stored lowercase
	assert.NotZero(t, created.ID)

	var stored Models.User
	require.NoError(t, db.Where("email = ?", "nadia@example.com").First(&stored).Error)
	assert.NotEqual(t, "hunter22", string(stored.Password)) // bcrypt, never plaintext

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", fiberBody{
		"email":    "nadia@example.com",
		"password": "hunter22",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var jwtCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" {
			jwtCookie = cookie
		}
	}
	require.NotNil(t, jwtCookie, "login must set the jwt cookie")

	resp = doJSON(t, app, http.MethodGet, "/api/auth/user", nil, jwtCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var current Models.User
	decodeBody(t, resp, &current)
	assert.Equal(t, created.ID, current.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	body := fiberBody{"name": "Nadia", "email": "nadia@example.com", "password": "hunter22"}
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", body, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", body, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_ValidationErrors(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", fiberBody{
		"name":     "Nadia",
		"email":    "not-an-email",
		"password": "123", // below minimum length
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", fiberBody{
		"name":     "Nadia",
		"email":    "nadia@example.com",
		"password": "hunter22",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", fiberBody{
		"email":    "nadia@example.com",
		"password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/maids/", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	router, _ := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"username": "frida",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created userResponse
	decodeBody(t, w, &created)
	assert.Equal(t, "frida", created.Username)
	assert.NotZero(t, created.ID)

	// Same username again conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"username": "frida",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Login returns a usable token.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "frida",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &login)
	require.NotEmpty(t, login.Token)

	w = doJSON(t, router, http.MethodPost, "/api/v1/posts", gin.H{"text": "hello"}, login.Token)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, db := setupTest(t)
	createUser(t, db, "frida", false)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "frida",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "nobody",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupValidation(t *testing.T) {
	router, _ := setupTest(t)

	// Password below the minimum length.
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"username": "frida",
		"password": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMutationRequiresAuthentication(t *testing.T) {
	router, _ := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/posts", gin.H{"text": "hello"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/posts", gin.H{"text": "hello"}, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

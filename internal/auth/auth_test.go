package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) *Signer {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)
	return signer
}

func TestNewSignerRequiresSecret(t *testing.T) {
	_, err := NewSigner("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestGenerateAndValidateToken(t *testing.T) {
	signer := newTestSigner(t)
	profileID := NewProfileID()

	token, err := signer.GenerateToken(profileID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := signer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, profileID, claims.ProfileID)
	assert.Nil(t, claims.ExpiresAt)
}

func TestValidateToken_Invalid(t *testing.T) {
	signer := newTestSigner(t)

	_, err := signer.ValidateToken("invalid-token")
	assert.Equal(t, ErrInvalidToken, err)

	other, err := NewSigner("other-secret")
	require.NoError(t, err)
	token, err := other.GenerateToken(NewProfileID())
	require.NoError(t, err)

	_, err = signer.ValidateToken(token)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestValidateToken_BadProfileID(t *testing.T) {
	signer := newTestSigner(t)
	token, err := signer.GenerateToken("not-a-uuid")
	require.NoError(t, err)

	_, err = signer.ValidateToken(token)
	assert.Equal(t, ErrInvalidToken, err)
}

func setupRouter(signer *Signer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ProfileMiddleware(signer))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetProfileID(c))
	})
	return r
}

func TestProfileMiddlewareIssuesProfile(t *testing.T) {
	signer := newTestSigner(t)
	r := setupRouter(signer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	profileID := w.Body.String()
	assert.NotEmpty(t, profileID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := signer.ValidateToken(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, profileID, claims.ProfileID)
}

func TestProfileMiddlewareReusesProfile(t *testing.T) {
	signer := newTestSigner(t)
	r := setupRouter(signer)

	profileID := NewProfileID()
	token, err := signer.GenerateToken(profileID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, profileID, w.Body.String())
}

func TestProfileMiddlewareReplacesTamperedCookie(t *testing.T) {
	signer := newTestSigner(t)
	r := setupRouter(signer)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "tampered"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	profileID := w.Body.String()
	assert.NotEmpty(t, profileID)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "tampered", cookies[0].Value)
}

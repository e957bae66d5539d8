package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardedRouter(auth *AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/thing", auth.RequireTOTP(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func deleteThing(r *gin.Engine, code string) int {
	req := httptest.NewRequest(http.MethodDelete, "/thing", nil)
	if code != "" {
		req.Header.Set(TOTPHeader, code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireTOTPDisabled(t *testing.T) {
	auth := NewAuthService(nil, "")
	assert.False(t, auth.Enabled())
	assert.Equal(t, http.StatusNoContent, deleteThing(guardedRouter(auth), ""))
}

func TestRequireTOTP(t *testing.T) {
	secret, url, err := GenerateSecret("operator")
	require.NoError(t, err)
	assert.Contains(t, url, "otpauth://totp/Postcraft:operator")

	r := guardedRouter(NewAuthService(nil, secret))

	assert.Equal(t, http.StatusUnauthorized, deleteThing(r, ""))
	assert.Equal(t, http.StatusUnauthorized, deleteThing(r, "000000x"))

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, deleteThing(r, code))
}

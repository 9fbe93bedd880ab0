package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemBytes)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func memberClaims(subject, role string, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Email: subject + "@example.org",
		Name:  "Member " + subject,
		Role:  role,
	}
}

func TestNewAuthenticator_InvalidKey(t *testing.T) {
	_, err := NewAuthenticator(AuthConfig{JWTPublicKey: "not a pem"})
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	key, pub := generateKey(t)
	otherKey, _ := generateKey(t)

	a, err := NewAuthenticator(AuthConfig{
		JWTPublicKey:  pub,
		APIKeys:       []string{"secret-key", ""},
		OperatorRoles: []string{"admin", "staff"},
	})
	require.NoError(t, err)

	tests := []struct {
		name        string
		header      string
		wantSuccess bool
		wantType    string
		wantSubject string
	}{
		{
			name:        "valid bearer token",
			header:      "Bearer " + signToken(t, key, memberClaims("alice", "member", time.Hour)),
			wantSuccess: true,
			wantType:    AuthTypeJWT,
			wantSubject: "alice",
		},
		{
			name:        "lowercase scheme",
			header:      "bearer " + signToken(t, key, memberClaims("alice", "member", time.Hour)),
			wantSuccess: true,
			wantType:    AuthTypeJWT,
			wantSubject: "alice",
		},
		{
			name:   "expired token",
			header: "Bearer " + signToken(t, key, memberClaims("alice", "member", -time.Minute)),
		},
		{
			name:   "token signed by another key",
			header: "Bearer " + signToken(t, otherKey, memberClaims("alice", "member", time.Hour)),
		},
		{
			name:        "valid api key",
			header:      "ApiKey secret-key",
			wantSuccess: true,
			wantType:    AuthTypeAPIKey,
			wantSubject: APIKeySubject,
		},
		{
			name:   "invalid api key",
			header: "ApiKey wrong",
		},
		{
			name:   "missing header",
			header: "",
		},
		{
			name:   "malformed header",
			header: "Bearer",
		},
		{
			name:   "unsupported scheme",
			header: "Basic dXNlcjpwYXNz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.Authenticate(tt.header)
			assert.Equal(t, tt.wantSuccess, result.Success)
			if !tt.wantSuccess {
				assert.Error(t, result.Error)
				return
			}
			assert.NoError(t, result.Error)
			assert.Equal(t, tt.wantType, result.AuthType)
			assert.Equal(t, tt.wantSubject, result.AuthSubject)
		})
	}
}

func TestAuthenticate_NoPublicKey(t *testing.T) {
	key, _ := generateKey(t)
	a, err := NewAuthenticator(AuthConfig{APIKeys: []string{"k"}})
	require.NoError(t, err)

	result := a.Authenticate("Bearer " + signToken(t, key, memberClaims("alice", "", time.Hour)))
	assert.False(t, result.Success)
}

func TestIsOperator(t *testing.T) {
	a, err := NewAuthenticator(AuthConfig{OperatorRoles: []string{"admin", "staff"}})
	require.NoError(t, err)

	staff := memberClaims("bob", "staff", time.Hour)
	member := memberClaims("carol", "member", time.Hour)

	assert.True(t, a.IsOperator(AuthResult{AuthType: AuthTypeAPIKey}))
	assert.True(t, a.IsOperator(AuthResult{AuthType: AuthTypeJWT, Claims: &staff}))
	assert.False(t, a.IsOperator(AuthResult{AuthType: AuthTypeJWT, Claims: &member}))
	assert.False(t, a.IsOperator(AuthResult{AuthType: AuthTypeJWT}))
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	key, pub := generateKey(t)

	a, err := NewAuthenticator(AuthConfig{
		JWTPublicKey:  pub,
		APIKeys:       []string{"secret-key"},
		OperatorRoles: []string{"admin"},
	})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/member", Auth(a), func(c *gin.Context) {
		caller := CallerFromContext(c)
		if caller == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, caller.Subject+"|"+caller.Email+"|"+caller.DisplayName)
	})
	router.GET("/operator", Auth(a), RequireOperator(a), func(c *gin.Context) {
		c.String(http.StatusOK, SubjectFromContext(c))
	})

	do := func(path, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("member claims become the caller", func(t *testing.T) {
		w := do("/member", "Bearer "+signToken(t, key, memberClaims("alice", "member", time.Hour)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice|alice@example.org|Member alice", w.Body.String())
	})

	t.Run("api key carries no caller", func(t *testing.T) {
		w := do("/member", "ApiKey secret-key")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("missing credentials", func(t *testing.T) {
		w := do("/member", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
	})

	t.Run("member is not an operator", func(t *testing.T) {
		w := do("/operator", "Bearer "+signToken(t, key, memberClaims("alice", "member", time.Hour)))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"forbidden"`)
	})

	t.Run("admin role is an operator", func(t *testing.T) {
		w := do("/operator", "Bearer "+signToken(t, key, memberClaims("root", "admin", time.Hour)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "root", w.Body.String())
	})

	t.Run("api key is an operator", func(t *testing.T) {
		w := do("/operator", "ApiKey secret-key")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, APIKeySubject, w.Body.String())
	})
}

func TestAuthOrSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	key, pub := generateKey(t)

	a, err := NewAuthenticator(AuthConfig{
		JWTPublicKey:  pub,
		APIKeys:       []string{"secret-key"},
		SessionCookie: "checkin_session",
	})
	require.NoError(t, err)

	router := gin.New()
	handler := func(c *gin.Context) {
		c.String(http.StatusOK, SubjectFromContext(c))
	}
	router.GET("/session", AuthOrSession(a), handler)
	router.GET("/header", Auth(a), handler)

	do := func(path, header, cookie string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: "checkin_session", Value: cookie})
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	alice := signToken(t, key, memberClaims("alice", "member", time.Hour))

	t.Run("cookie authenticates the session route", func(t *testing.T) {
		w := do("/session", "", alice)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		bob := signToken(t, key, memberClaims("bob", "member", time.Hour))
		w := do("/session", "Bearer "+bob, alice)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob", w.Body.String())
	})

	t.Run("cookie is ignored on header routes", func(t *testing.T) {
		w := do("/header", "", alice)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("api key is never read from the cookie", func(t *testing.T) {
		w := do("/session", "", "secret-key")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired cookie", func(t *testing.T) {
		w := do("/session", "", signToken(t, key, memberClaims("alice", "member", -time.Minute)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no cookie configured", func(t *testing.T) {
		b, err := NewAuthenticator(AuthConfig{JWTPublicKey: pub})
		require.NoError(t, err)
		r := gin.New()
		r.GET("/session", AuthOrSession(b), handler)

		req := httptest.NewRequest(http.MethodGet, "/session", nil)
		req.AddCookie(&http.Cookie{Name: "checkin_session", Value: alice})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"internal_error"`)
}

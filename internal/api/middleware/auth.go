package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/errors"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/identity"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	AUTH_TYPE_KEY    contextKey = "auth_type"
	AUTH_SUBJECT_KEY contextKey = "auth_subject"
	JWT_CLAIMS_KEY   contextKey = "jwt_claims"
)

const (
	AuthTypeJWT    = "jwt"
	AuthTypeAPIKey = "apikey"

	// APIKeySubject is recorded as the operator for API key callers
	APIKeySubject = "apikey"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey  string // RSA public key in PEM format
	APIKeys       []string
	OperatorRoles []string

	// SessionCookie names the cookie holding the member JWT for browser redemptions; empty disables it
	SessionCookie string
}

// Claims are the JWT claims issued by the portal's identity provider
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success     bool
	AuthType    string
	Claims      *Claims
	AuthSubject string
	Error       error
}

// Authenticator validates Authorization headers. The public key is parsed once.
type Authenticator struct {
	publicKey     *rsa.PublicKey
	apiKeys       map[string]bool
	operatorRoles []string
	sessionCookie string
}

// NewAuthenticator creates an authenticator, failing on a malformed public key
func NewAuthenticator(cfg AuthConfig) (*Authenticator, error) {
	a := &Authenticator{
		apiKeys:       make(map[string]bool),
		operatorRoles: cfg.OperatorRoles,
		sessionCookie: cfg.SessionCookie,
	}

	for _, key := range cfg.APIKeys {
		if key != "" {
			a.apiKeys[key] = true
		}
	}

	if cfg.JWTPublicKey != "" {
		publicKey, err := parseRSAPublicKey(cfg.JWTPublicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		a.publicKey = publicKey
	}

	return a, nil
}

// Authenticate validates the Authorization header and returns the authentication result
func (a *Authenticator) Authenticate(authHeader string) AuthResult {
	result := AuthResult{
		Success: false,
	}

	if authHeader == "" {
		result.Error = errors.New("missing Authorization header")
		return result
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		result.Error = errors.New("invalid Authorization header format")
		return result
	}

	authType := strings.ToLower(parts[0])
	credentials := strings.TrimSpace(parts[1])

	switch authType {
	case "bearer":
		claims, err := a.validateJWT(credentials)
		if err != nil {
			result.Error = err
			return result
		}
		result.Success = true
		result.AuthType = AuthTypeJWT
		result.Claims = claims
		result.AuthSubject = claims.Subject

	case "apikey":
		if err := a.validateAPIKey(credentials); err != nil {
			result.Error = err
			return result
		}
		result.Success = true
		result.AuthType = AuthTypeAPIKey
		result.AuthSubject = APIKeySubject

	default:
		result.Error = fmt.Errorf("unsupported authorization type: %s", authType)
	}

	return result
}

// IsOperator reports whether an authenticated caller may use privileged endpoints
func (a *Authenticator) IsOperator(result AuthResult) bool {
	if result.AuthType == AuthTypeAPIKey {
		return true
	}
	if result.Claims == nil || result.Claims.Role == "" {
		return false
	}
	return slices.Contains(a.operatorRoles, result.Claims.Role)
}

// Auth returns a gin middleware for authentication.
// It supports both JWT (Bearer token) and API Key authentication.
func Auth(a *Authenticator) gin.HandlerFunc {
	return authenticate(a, false)
}

// AuthOrSession is Auth for pages a phone camera opens directly. Without an Authorization
// header it reads the member JWT from the session cookie; API keys are never taken from cookies.
func AuthOrSession(a *Authenticator) gin.HandlerFunc {
	return authenticate(a, true)
}

func authenticate(a *Authenticator, withSession bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" && withSession && a.sessionCookie != "" {
			if token, err := c.Cookie(a.sessionCookie); err == nil && token != "" {
				header = "Bearer " + token
			}
		}
		result := a.Authenticate(header)

		if !result.Success {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
			return
		}

		c.Set(AUTH_TYPE_KEY, result.AuthType)
		c.Set(AUTH_SUBJECT_KEY, result.AuthSubject)
		if result.Claims != nil {
			c.Set(JWT_CLAIMS_KEY, result.Claims)
		}

		logger.DebugCtx(c.Request.Context(), "Authentication successful",
			zap.String("path", c.Request.URL.Path),
			zap.String("auth_type", result.AuthType),
			zap.String("subject", result.AuthSubject),
		)

		c.Next()
	}
}

// RequireOperator rejects callers that are not operators. It must run after Auth.
func RequireOperator(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := AuthResult{Success: true}
		if v, ok := c.Get(AUTH_TYPE_KEY); ok {
			result.AuthType, _ = v.(string)
		}
		result.Claims = ClaimsFromContext(c)

		if !a.IsOperator(result) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierrors.NewForbiddenError("Operator role required"))
			return
		}

		c.Next()
	}
}

// ClaimsFromContext returns the JWT claims stored by Auth, if any
func ClaimsFromContext(c *gin.Context) *Claims {
	v, ok := c.Get(JWT_CLAIMS_KEY)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

// SubjectFromContext returns the authenticated subject
func SubjectFromContext(c *gin.Context) string {
	v, ok := c.Get(AUTH_SUBJECT_KEY)
	if !ok {
		return ""
	}
	subject, _ := v.(string)
	return subject
}

// CallerFromContext builds the identity resolver's caller from JWT claims.
// API key callers carry no personal identity and yield nil.
func CallerFromContext(c *gin.Context) *identity.Caller {
	claims := ClaimsFromContext(c)
	if claims == nil {
		return nil
	}
	return &identity.Caller{
		Subject:     claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}
}

// validateJWT validates a JWT token with RSA signature and returns claims
func (a *Authenticator) validateJWT(tokenString string) (*Claims, error) {
	if a.publicKey == nil {
		return nil, errors.New("JWT public key not configured")
	}

	// Expiry and not-before are checked by the parser
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}

// validateAPIKey validates an API key
func (a *Authenticator) validateAPIKey(apiKey string) error {
	if len(a.apiKeys) == 0 {
		return errors.New("no API keys configured")
	}

	if !a.apiKeys[apiKey] {
		return errors.New("invalid API key")
	}

	return nil
}

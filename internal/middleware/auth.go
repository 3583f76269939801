package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// WorkspaceClaims are the JWT claims accepted by the API. Subject is the
// user id; Workspaces lists the workspaces the bearer may read and write.
type WorkspaceClaims struct {
	Workspaces []string `json:"workspaces"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for subject with access to workspaces.
func IssueToken(secret, issuer, subject string, workspaces []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := WorkspaceClaims{
		Workspaces: workspaces,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

const claimsKey = contextKey("claims")

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
func AuthMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
		if issuer != "" {
			opts = append(opts, jwt.WithIssuer(issuer))
		}

		claims := &WorkspaceClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		}, opts...)

		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if !token.Valid || claims.Subject == "" {
			logger.Warn("Invalid token claims or token is not valid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, claims.Subject)
		ctx = context.WithValue(ctx, claimsKey, claims)
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", claims.Subject)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireWorkspaceAccess checks the :workspace_id path parameter against the
// token claims and scopes the request to that workspace. It must run after
// AuthMiddleware.
func RequireWorkspaceAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		workspaceID := c.Param("workspace_id")
		if workspaceID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Workspace ID is required"})
			return
		}

		claims, ok := c.Request.Context().Value(claimsKey).(*WorkspaceClaims)
		if !ok || !slices.Contains(claims.Workspaces, workspaceID) {
			logger.Warn("Workspace access denied", slog.String("workspace_id", workspaceID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access to this workspace is forbidden"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), workspaceIDKey, workspaceID)
		ctx = WithLogger(ctx, logger.With(slog.String("workspace_id", workspaceID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

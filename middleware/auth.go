package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2/jwt"
	gojwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"mindmetrics/internal/session"
)

var errNoUser = errors.New("token carries no user id")

// JWTAuthMiddleware validates HS256 tokens issued by the log API and puts
// the caller's Principal on the request context.
func JWTAuthMiddleware(secret []byte, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(w, r)
			if !ok {
				return
			}

			userID, err := verifyHS256(token, secret)
			if err != nil {
				log.Debug("token verification failed", zap.Error(err))
				respondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := session.WithPrincipal(r.Context(), session.Principal{UserID: userID, Token: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyHS256(token string, secret []byte) (string, error) {
	parsed, err := gojwt.Parse(token, func(t *gojwt.Token) (interface{}, error) {
		return secret, nil
	}, gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := parsed.Claims.(gojwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	return userIDFromClaims(claims)
}

// userIDFromClaims accepts the subject, a nested payload._id or a top-level _id.
func userIDFromClaims(claims gojwt.MapClaims) (string, error) {
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub, nil
	}
	if payload, ok := claims["payload"].(map[string]interface{}); ok {
		if id, ok := payload["_id"].(string); ok && id != "" {
			return id, nil
		}
	}
	if id, ok := claims["_id"].(string); ok && id != "" {
		return id, nil
	}
	return "", errNoUser
}

// ClerkAuthMiddleware validates Clerk session tokens. clerk.SetKey must be
// called before the first request.
func ClerkAuthMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(w, r)
			if !ok {
				return
			}

			claims, err := jwt.Verify(r.Context(), &jwt.VerifyParams{
				Token: token,
			})
			if err != nil {
				log.Debug("clerk token verification failed", zap.Error(err))
				respondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := session.WithPrincipal(r.Context(), session.Principal{UserID: claims.Subject, Token: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken pulls the token out of the Authorization header, answering
// 401 itself when it is missing.
func bearerToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		respondWithError(w, http.StatusUnauthorized, "Authorization header required")
		return "", false
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		respondWithError(w, http.StatusUnauthorized, "Invalid authorization format. Use 'Bearer <token>'")
		return "", false
	}
	return token, true
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

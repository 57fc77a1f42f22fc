package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/config"
	"github.com/smartspend/smartspend/pkg/user"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the current user from a Bearer token, or from the X-User-Id
	// header for trusted local setups, and propagate it into the context.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			authHeader := req.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				claims, err := deps.AuthTokenValidator.Validate(token)
				if err != nil {
					log.Debugf("rejected session token: %v", err)
					http.Error(w, "invalid session token", http.StatusUnauthorized)
					return
				}
				u, err := deps.UserService.GetUser(ctx, claims.UserId)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						http.Error(w, "user not found", http.StatusForbidden)
						return
					}
					log.Errorf("failed to get user: %v", err)
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				ctx = user.WithUser(ctx, u)
			} else if userIdHeader := req.Header.Get("X-User-Id"); userIdHeader != "" {
				u, err := deps.UserService.GetUserByUid(ctx, userIdHeader)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("user not found: %s", userIdHeader)
						http.Error(w, "user not found", http.StatusForbidden)
						return
					}
					log.Errorf("failed to get user: %v", err)
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				ctx = user.WithUser(ctx, u)
			}

			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

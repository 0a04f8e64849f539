package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/recipebook/internal/metrics"
	"github.com/klokku/recipebook/pkg/user"
	log "github.com/sirupsen/logrus"
)

const userIdHeader = "X-User-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	r.Use(metrics.Middleware)
	r.Use(requestLogger)
	r.Use(currentUser(deps.UserService))
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		log.WithFields(log.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"duration": time.Since(start),
		}).Debug("handled request")
	})
}

// currentUser resolves the X-User-Id header to a user and stores it in the request context.
// Requests without the header pass through anonymously; an unknown uid is rejected with 403.
func currentUser(users user.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			uid := req.Header.Get(userIdHeader)
			if uid == "" {
				next.ServeHTTP(w, req)
				return
			}

			u, err := users.GetUserByUid(req.Context(), uid)
			if errors.Is(err, user.ErrUserNotFound) {
				log.Debugf("user not found: %s", uid)
				http.Error(w, "user not found", http.StatusForbidden)
				return
			}
			if err != nil {
				log.Errorf("failed to get user: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, req.WithContext(user.WithUser(req.Context(), u)))
		})
	}
}

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/recipebook/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMiddleware(t *testing.T) {
	userService := user.NewUserService(user.NewStubUserRepository())
	created, err := userService.CreateUser(context.Background(), user.User{Username: "alice", DisplayName: "Alice"})
	require.NoError(t, err)

	r := mux.NewRouter()
	SetupMiddleware(r, &Dependencies{UserService: userService})
	r.HandleFunc("/whoami", func(w http.ResponseWriter, req *http.Request) {
		current, err := user.CurrentUser(req.Context())
		if err != nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(current.Username))
	})

	t.Run("puts the user from the header into the context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("X-User-Id", created.Uid)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})

	t.Run("passes requests without header", func(t *testing.T) {
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, httptest.NewRequest("GET", "/whoami", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("rejects unknown users", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("X-User-Id", "00000000-0000-0000-0000-000000000000")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*mux.Router, *UserServiceImpl) {
	t.Helper()
	service := setupService(t)
	handler := NewHandler(service)
	r := mux.NewRouter()
	r.HandleFunc("/api/user", handler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", handler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/current", handler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/name-availability", handler.IsUsernameAvailable).Methods("GET")
	r.HandleFunc("/api/user/{userUid}", handler.DeleteUser).Methods("DELETE")
	return r, service
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateUser(t *testing.T) {
	r, _ := setupRouter(t)

	rec := serve(r, httptest.NewRequest("POST", "/api/user", strings.NewReader(`{"username": "alice", "displayName": "Alice"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	var dto UserDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "alice", dto.Username)
	assert.NotEmpty(t, dto.Uid)

	rec = serve(r, httptest.NewRequest("POST", "/api/user", strings.NewReader(`{"username": "alice", "displayName": "Again"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(r, httptest.NewRequest("POST", "/api/user", strings.NewReader(`{"username": "", "displayName": "Nobody"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, httptest.NewRequest("POST", "/api/user", strings.NewReader(`{"uid": "nope", "username": "bob", "displayName": "Bob"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CurrentUser(t *testing.T) {
	r, service := setupRouter(t)
	created, err := service.CreateUser(context.Background(), User{Username: "carol", DisplayName: "Carol"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/user/current", nil)
	rec := serve(r, req.WithContext(WithUser(req.Context(), created)))
	require.Equal(t, http.StatusOK, rec.Code)
	var dto UserDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, created.Uid, dto.Uid)

	assert.Equal(t, http.StatusNotFound, serve(r, httptest.NewRequest("GET", "/api/user/current", nil)).Code)
}

func TestHandler_IsUsernameAvailable(t *testing.T) {
	r, service := setupRouter(t)
	_, err := service.CreateUser(context.Background(), User{Username: "dave", DisplayName: "Dave"})
	require.NoError(t, err)

	for username, expected := range map[string]bool{"dave": false, "erin": true} {
		rec := serve(r, httptest.NewRequest("GET", "/api/user/name-availability?username="+username, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]bool
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, expected, body["available"], username)
	}

	assert.Equal(t, http.StatusBadRequest, serve(r, httptest.NewRequest("GET", "/api/user/name-availability", nil)).Code)
}

func TestHandler_DeleteUser(t *testing.T) {
	r, service := setupRouter(t)
	created, err := service.CreateUser(context.Background(), User{Username: "frank", DisplayName: "Frank"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, serve(r, httptest.NewRequest("DELETE", "/api/user/"+created.Uid, nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(r, httptest.NewRequest("DELETE", "/api/user/"+created.Uid, nil)).Code)

	rec := serve(r, httptest.NewRequest("GET", "/api/user", nil))
	var users []UserDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&users))
	assert.Empty(t, users)
}

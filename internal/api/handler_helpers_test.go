package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/finance-api/internal/api/shared"
	"github.com/phrazzld/finance-api/internal/domain"
	"github.com/phrazzld/finance-api/internal/mocks"
	"github.com/phrazzld/finance-api/internal/platform/logger"
	"github.com/phrazzld/finance-api/internal/platform/memory"
	"github.com/phrazzld/finance-api/internal/service"
	"github.com/phrazzld/finance-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router  chi.Router
	users   *memory.UserStore
	entries *memory.EntryStore
	jwt     *mocks.MockJWTService
}

// newTestAPI wires the handlers to in-memory stores and a stub token service.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log, _ := logger.NewTestLogger(t)
	users := memory.NewUserStore(log)
	entries := memory.NewEntryStore(users, log)

	userService, err := service.NewUserService(users, auth.NewPlainTextVerifier(), nil, log)
	require.NoError(t, err)
	entryService, err := service.NewEntryService(entries, log)
	require.NoError(t, err)

	jwt := &mocks.MockJWTService{
		Token:     "test-token",
		ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	userHandler := NewUserHandler(userService, jwt, log)
	entryHandler := NewEntryHandler(entryService, userService, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/users/authenticate", userHandler.Authenticate)
		r.Get("/users/{id}", userHandler.GetUser)

		r.Get("/entries", entryHandler.SearchEntries)
		r.Post("/entries", entryHandler.CreateEntry)
		r.Get("/entries/{id}", entryHandler.GetEntry)
		r.Put("/entries/{id}", entryHandler.UpdateEntry)
		r.Put("/entries/{id}/status", entryHandler.UpdateStatus)
		r.Delete("/entries/{id}", entryHandler.DeleteEntry)
	})

	return &testAPI{router: r, users: users, entries: entries, jwt: jwt}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func (a *testAPI) registerUser(t *testing.T, email string) uuid.UUID {
	t.Helper()

	u, err := a.users.Save(context.Background(), domain.NewUser("usuario", email, "senha"))
	require.NoError(t, err)
	return u.ID
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[shared.ErrorResponse](t, rr).Error
}

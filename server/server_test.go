package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tareahub/go-tarea-server/auth"
	"github.com/tareahub/go-tarea-server/internal/config"
	"github.com/tareahub/go-tarea-server/server"
	"github.com/tareahub/go-tarea-server/sessions/repofakes"
	tarearepofake "github.com/tareahub/go-tarea-server/tareas/repofake"
	"github.com/tareahub/go-tarea-server/token"
	"github.com/tareahub/go-tarea-server/users"
	userrepofake "github.com/tareahub/go-tarea-server/users/repofake"
)

const testSecret = "server-test-secret"

type serverFixture struct {
	server       *server.Server
	userStore    *userrepofake.FakeUserStore
	sessionStore *repofakes.FakeSessionStore
	tareaStore   *tarearepofake.FakeTareaStore
}

func setupServer(t *testing.T) *serverFixture {
	t.Helper()

	f := &serverFixture{
		userStore:  userrepofake.NewFakeUserStore(),
		tareaStore: tarearepofake.NewFakeTareaStore(),
	}
	revoked := repofakes.NewFakeRevocationList()
	f.sessionStore = repofakes.NewFakeSessionStore(revoked)

	cfg := &config.Config{
		Port:            "8080",
		AppName:         "Tarea Server",
		Environment:     "test",
		JWTSecret:       testSecret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		BcryptCost:      4,
	}

	srv, err := server.New(cfg, auth.Stores{
		Users:      f.userStore,
		Sessions:   f.sessionStore,
		Revoked:    revoked,
		Terminator: f.sessionStore,
		Tareas:     f.tareaStore,
	})
	require.NoError(t, err)
	f.server = srv
	return f
}

func (f *serverFixture) createUser(t *testing.T, correo, password string) *users.User {
	t.Helper()

	hash, err := users.HashPassword(password, 4)
	require.NoError(t, err)

	user := &users.User{Nombre: "Test User", Correo: correo, Contrasena: hash}
	require.NoError(t, f.userStore.Create(t.Context(), user))
	return user
}

func (f *serverFixture) do(t *testing.T, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, server.ServiceResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, req)

	var envelope server.ServiceResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return recorder, envelope
}

func (f *serverFixture) login(t *testing.T, correo, password string) (access, refresh string) {
	t.Helper()

	recorder, envelope := f.do(t, http.MethodPost, "/sessions/login",
		map[string]string{"correo": correo, "contrasena": password}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, envelope.Success)

	access = strings.TrimPrefix(recorder.Header().Get("Authorization"), "Bearer ")
	refresh = recorder.Header().Get("x-refreshtoken")
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	return access, refresh
}

// expiredToken signs a token that is already expired at the time of the test.
func expiredToken(t *testing.T, subject int64, ttl time.Duration) string {
	t.Helper()

	past := time.Now().Add(-48 * time.Hour)
	codec, err := token.NewCodec(testSecret, token.WithNowFunc(func() time.Time { return past }))
	require.NoError(t, err)
	raw, err := codec.Issue(subject, ttl)
	require.NoError(t, err)
	return raw
}

func authHeaders(access, refresh string) map[string]string {
	return map[string]string{
		"Authorization":  "Bearer " + access,
		"x-refreshtoken": refresh,
	}
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("returns the pair in the envelope and the headers", func(t *testing.T) {
		f := setupServer(t)
		f.createUser(t, "a@x.com", "p1")

		recorder, envelope := f.do(t, http.MethodPost, "/sessions/login",
			map[string]string{"correo": "a@x.com", "contrasena": "p1"}, nil)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.True(t, envelope.Success)
		require.Equal(t, http.StatusOK, envelope.StatusCode)

		pair, ok := envelope.ResponseObject.(map[string]any)
		require.True(t, ok)
		require.NotEmpty(t, pair["token"])
		require.NotEmpty(t, pair["refreshToken"])
		require.Equal(t, "Bearer "+pair["token"].(string), recorder.Header().Get("Authorization"))
	})

	t.Run("bad credentials answer 401 with a failure envelope", func(t *testing.T) {
		f := setupServer(t)
		f.createUser(t, "a@x.com", "p1")

		recorder, envelope := f.do(t, http.MethodPost, "/sessions/login",
			map[string]string{"correo": "a@x.com", "contrasena": "wrong"}, nil)

		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		require.False(t, envelope.Success)
		require.Equal(t, http.StatusUnauthorized, envelope.StatusCode)
		require.Nil(t, envelope.ResponseObject)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		f := setupServer(t)

		req := httptest.NewRequest(http.MethodPost, "/sessions/login", strings.NewReader("{not json"))
		recorder := httptest.NewRecorder()
		f.server.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestVerifyTokenEndpoint(t *testing.T) {
	t.Run("missing refresh header is rejected", func(t *testing.T) {
		f := setupServer(t)
		f.createUser(t, "a@x.com", "p1")

		recorder, envelope := f.do(t, http.MethodPost, "/sessions/verify-token", nil, nil)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		require.False(t, envelope.Success)
	})

	t.Run("valid pair passes without rotation headers", func(t *testing.T) {
		f := setupServer(t)
		f.createUser(t, "a@x.com", "p1")
		access, refresh := f.login(t, "a@x.com", "p1")

		recorder, envelope := f.do(t, http.MethodPost, "/sessions/verify-token", nil, authHeaders(access, refresh))
		require.Equal(t, http.StatusOK, recorder.Code)
		require.True(t, envelope.Success)

		// Same access token echoed back, refresh header untouched.
		require.Equal(t, "Bearer "+access, recorder.Header().Get("Authorization"))
		require.Empty(t, recorder.Header().Get("x-refreshtoken"))
	})

	t.Run("expired access rotates only the access header", func(t *testing.T) {
		f := setupServer(t)
		user := f.createUser(t, "a@x.com", "p1")
		_, refresh := f.login(t, "a@x.com", "p1")

		stale := expiredToken(t, user.ID, 15*time.Minute)
		recorder, envelope := f.do(t, http.MethodPost, "/sessions/verify-token", nil, authHeaders(stale, refresh))

		require.Equal(t, http.StatusOK, recorder.Code)
		require.True(t, envelope.Success)

		rotated := strings.TrimPrefix(recorder.Header().Get("Authorization"), "Bearer ")
		require.NotEmpty(t, rotated)
		require.NotEqual(t, stale, rotated)
		require.Empty(t, recorder.Header().Get("x-refreshtoken"))
	})

	t.Run("both tokens expired rotates the full pair", func(t *testing.T) {
		f := setupServer(t)
		user := f.createUser(t, "a@x.com", "p1")
		f.login(t, "a@x.com", "p1")

		staleAccess := expiredToken(t, user.ID, 15*time.Minute)
		staleRefresh := expiredToken(t, user.ID, 24*time.Hour)
		recorder, envelope := f.do(t, http.MethodPost, "/sessions/verify-token", nil, authHeaders(staleAccess, staleRefresh))

		require.Equal(t, http.StatusOK, recorder.Code)
		require.True(t, envelope.Success)
		require.NotEmpty(t, recorder.Header().Get("x-refreshtoken"))
		require.NotEqual(t, staleRefresh, recorder.Header().Get("x-refreshtoken"))
	})

	t.Run("logged-out token is rejected even though it has not expired", func(t *testing.T) {
		f := setupServer(t)
		f.createUser(t, "a@x.com", "p1")
		access, refresh := f.login(t, "a@x.com", "p1")

		recorder, _ := f.do(t, http.MethodPost, "/sessions/logout", nil, authHeaders(access, refresh))
		require.Equal(t, http.StatusOK, recorder.Code)

		recorder, envelope := f.do(t, http.MethodPost, "/sessions/verify-token", nil, authHeaders(access, refresh))
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		require.False(t, envelope.Success)
	})
}

func TestTareaEndpoints(t *testing.T) {
	t.Run("create assigns ownership to the principal", func(t *testing.T) {
		f := setupServer(t)
		user := f.createUser(t, "a@x.com", "p1")
		access, refresh := f.login(t, "a@x.com", "p1")

		recorder, envelope := f.do(t, http.MethodPost, "/tareas",
			map[string]any{"titulo": "comprar pan", "userId": 999}, authHeaders(access, refresh))

		require.Equal(t, http.StatusCreated, recorder.Code)
		created, ok := envelope.ResponseObject.(map[string]any)
		require.True(t, ok)
		require.EqualValues(t, user.ID, created["userId"])
	})

	t.Run("mutating another user's tarea is unauthorized", func(t *testing.T) {
		f := setupServer(t)
		f.createUser(t, "owner@x.com", "p1")
		f.createUser(t, "intruder@x.com", "p2")

		ownerAccess, ownerRefresh := f.login(t, "owner@x.com", "p1")
		_, envelope := f.do(t, http.MethodPost, "/tareas",
			map[string]any{"titulo": "privada"}, authHeaders(ownerAccess, ownerRefresh))
		created := envelope.ResponseObject.(map[string]any)
		tareaID := created["id"].(float64)

		intruderAccess, intruderRefresh := f.login(t, "intruder@x.com", "p2")
		recorder, envelope := f.do(t, http.MethodPatch, "/tareas/"+jsonNumber(tareaID),
			map[string]any{"titulo": "robada"}, authHeaders(intruderAccess, intruderRefresh))

		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		require.False(t, envelope.Success)

		// Owner can still mutate it.
		recorder, envelope = f.do(t, http.MethodPatch, "/tareas/"+jsonNumber(tareaID),
			map[string]any{"titulo": "sigue mia"}, authHeaders(ownerAccess, ownerRefresh))
		require.Equal(t, http.StatusOK, recorder.Code)
		require.True(t, envelope.Success)
	})

	t.Run("deleting a missing tarea is not found", func(t *testing.T) {
		f := setupServer(t)
		f.createUser(t, "a@x.com", "p1")
		access, refresh := f.login(t, "a@x.com", "p1")

		recorder, _ := f.do(t, http.MethodDelete, "/tareas/42", nil, authHeaders(access, refresh))
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("listing tareas needs no session", func(t *testing.T) {
		f := setupServer(t)
		f.createUser(t, "a@x.com", "p1")
		access, refresh := f.login(t, "a@x.com", "p1")
		f.do(t, http.MethodPost, "/tareas", map[string]any{"titulo": "publica"}, authHeaders(access, refresh))

		recorder, envelope := f.do(t, http.MethodGet, "/tareas", nil, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.True(t, envelope.Success)
	})
}

func TestUserEndpoints(t *testing.T) {
	t.Run("create and fetch round trip without exposing the hash", func(t *testing.T) {
		f := setupServer(t)

		recorder, envelope := f.do(t, http.MethodPost, "/users",
			map[string]string{"nombre": "Ana", "correo": "ana@x.com", "contrasena": "secreto"}, nil)
		require.Equal(t, http.StatusCreated, recorder.Code)

		created := envelope.ResponseObject.(map[string]any)
		require.NotContains(t, created, "contrasena")

		recorder, envelope = f.do(t, http.MethodGet, "/users/"+jsonNumber(created["id"].(float64)), nil, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		fetched := envelope.ResponseObject.(map[string]any)
		require.Equal(t, "ana@x.com", fetched["correo"])
	})

	t.Run("delete requires a session", func(t *testing.T) {
		f := setupServer(t)
		user := f.createUser(t, "a@x.com", "p1")

		recorder, _ := f.do(t, http.MethodDelete, "/users/"+jsonNumber(float64(user.ID)), nil, nil)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)

		access, refresh := f.login(t, "a@x.com", "p1")
		recorder, _ = f.do(t, http.MethodDelete, "/users/"+jsonNumber(float64(user.ID)), nil, authHeaders(access, refresh))
		require.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("non-numeric id is a bad request", func(t *testing.T) {
		f := setupServer(t)
		recorder, _ := f.do(t, http.MethodGet, "/users/abc", nil, nil)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func jsonNumber(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}

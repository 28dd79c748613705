package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidstream/internal/config"
	"vidstream/internal/handler"
	"vidstream/internal/middleware"
	"vidstream/internal/model"
	"vidstream/internal/router"
	"vidstream/internal/service"
)

// mapStore backs the full API stack in tests, standing in for the SQL
// repository with the same rotation and conflict behavior.
type mapStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMapStore() *mapStore {
	return &mapStore{users: map[string]model.User{}}
}

func (s *mapStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *mapStore) FindByIdentifier(_ context.Context, identifier string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(identifier))
	for _, u := range s.users {
		if strings.ToLower(u.Username) == needle || strings.ToLower(u.Email) == needle {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *mapStore) ExistsByUsernameOrEmail(_ context.Context, username string, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s *mapStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, u.Username) || strings.EqualFold(existing.Email, u.Email) {
			return model.ErrUserAlreadyExists
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *mapStore) SetRefreshToken(_ context.Context, userID string, token string) error {
	return s.update(userID, func(u *model.User) { u.RefreshToken = token })
}

func (s *mapStore) RotateRefreshToken(_ context.Context, userID string, expected string, next string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok || u.RefreshToken != expected {
		return false, nil
	}
	u.RefreshToken = next
	s.users[userID] = u
	return true, nil
}

func (s *mapStore) ClearRefreshToken(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[userID]; ok {
		u.RefreshToken = ""
		s.users[userID] = u
	}
	return nil
}

func (s *mapStore) UpdatePassword(_ context.Context, userID string, passwordHash string) error {
	return s.update(userID, func(u *model.User) {
		u.PasswordHash = passwordHash
		u.RefreshToken = ""
	})
}

func (s *mapStore) UpdateAvatarURL(_ context.Context, userID string, url string) error {
	return s.update(userID, func(u *model.User) { u.AvatarURL = url })
}

func (s *mapStore) UpdateCoverImageURL(_ context.Context, userID string, url string) error {
	return s.update(userID, func(u *model.User) { u.CoverImageURL = url })
}

func (s *mapStore) UpdateAccount(_ context.Context, userID string, fullName string, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range s.users {
		if id != userID && strings.EqualFold(u.Email, email) {
			return model.ErrUserAlreadyExists
		}
	}

	u, ok := s.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	u.FullName = fullName
	u.Email = email
	s.users[userID] = u
	return nil
}

func (s *mapStore) update(userID string, apply func(*model.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	apply(&u)
	s.users[userID] = u
	return nil
}

type nullMedia struct {
	mu      sync.Mutex
	uploads int
}

func (m *nullMedia) Upload(_ context.Context, folder string, _ string, r io.Reader, _ int64) (string, error) {
	_, _ = io.Copy(io.Discard, r)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads++
	return fmt.Sprintf("http://media.test/%s/%d", folder, m.uploads), nil
}

func (m *nullMedia) Remove(context.Context, string) error { return nil }

func newTestServer(t *testing.T) (http.Handler, *mapStore) {
	t.Helper()

	cfg := &config.Config{
		RequestTimeout:   5 * time.Second,
		CORSOrigins:      []string{"http://localhost:3000"},
		RateLimitRPM:     100000,
		AuthRateLimitRPM: 100000,
		MaxUploadSize:    8 << 20,
	}

	tokens, err := service.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	store := newMapStore()
	svc := service.NewAuthService(store, &nullMedia{}, tokens)

	cookies := handler.CookieConfig{Secure: false}
	handlers := router.Handlers{
		Auth: handler.NewAuthHandler(svc, cookies, cfg.MaxUploadSize),
		User: handler.NewUserHandler(svc, cfg.MaxUploadSize),
	}

	return router.New(cfg, middleware.NewAuthMiddleware(svc), handlers), store
}

func pngBytes(t *testing.T, width int, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func registerForm(t *testing.T, username string, email string, withAvatar bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	require.NoError(t, form.WriteField("username", username))
	require.NoError(t, form.WriteField("email", email))
	require.NoError(t, form.WriteField("full_name", "Test User"))
	require.NoError(t, form.WriteField("password", "pw123"))

	if withAvatar {
		part, err := form.CreateFormFile("avatar", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write(pngBytes(t, 16, 16))
		require.NoError(t, err)
	}

	require.NoError(t, form.Close())
	return body, form.FormDataContentType()
}

func doRegister(t *testing.T, srv http.Handler, username string, email string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := registerForm(t, username, email, true)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func doLogin(t *testing.T, srv http.Handler, identifier string, password string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(map[string]string{"identifier": identifier, "password": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) model.APIResponse {
	t.Helper()

	var envelope model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func sessionCookies(t *testing.T, rec *httptest.ResponseRecorder) (access *http.Cookie, refresh *http.Cookie) {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case "access_token":
			access = c
		case "refresh_token":
			refresh = c
		}
	}
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	return access, refresh
}

func TestRegisterEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRegister(t, srv, "alice", "alice@x.com")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)

	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var user map[string]any
	require.NoError(t, json.Unmarshal(raw, &user))
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@x.com", user["email"])
	assert.NotEmpty(t, user["avatar_url"])

	// Hash and refresh token never cross the wire.
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "refresh")
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRegister(t, srv, "alice", "alice@x.com")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRegister(t, srv, "alice2", "alice@x.com")
	assert.Equal(t, http.StatusConflict, rec.Code)

	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "ALREADY_EXISTS", envelope.Error.Code)
}

func TestRegisterEndpoint_MissingAvatar(t *testing.T) {
	srv, _ := newTestServer(t)

	body, contentType := registerForm(t, "alice", "alice@x.com", false)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "BAD_REQUEST", envelope.Error.Code)
}

func TestRegisterEndpoint_NonImageAvatar(t *testing.T) {
	srv, _ := newTestServer(t)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("username", "alice"))
	require.NoError(t, form.WriteField("email", "alice@x.com"))
	require.NoError(t, form.WriteField("full_name", "Alice"))
	require.NoError(t, form.WriteField("password", "pw123"))

	part, err := form.CreateFormFile("avatar", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text, not an image"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRegister(t, srv, "alice", "alice@x.com").Code)

	rec := doLogin(t, srv, "alice", "pw123")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)

	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var pair model.TokenPair
	require.NoError(t, json.Unmarshal(raw, &pair))
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, "alice", pair.User.Username)

	access, refresh := sessionCookies(t, rec)
	assert.Equal(t, pair.AccessToken, access.Value)
	assert.Equal(t, pair.RefreshToken, refresh.Value)
	for _, c := range []*http.Cookie{access, refresh} {
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
		assert.Equal(t, "/", c.Path)
		assert.Positive(t, c.MaxAge)
	}
}

func TestLoginEndpoint_ByEmailField(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRegister(t, srv, "alice", "alice@x.com").Code)

	payload, err := json.Marshal(map[string]string{"email": "alice@x.com", "password": "pw123"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginEndpoint_Failures(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRegister(t, srv, "alice", "alice@x.com").Code)

	rec := doLogin(t, srv, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "UNAUTHORIZED", envelope.Error.Code)

	rec = doLogin(t, srv, "nobody", "pw123")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefreshEndpoint_ViaCookie(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRegister(t, srv, "alice", "alice@x.com").Code)

	loginRec := doLogin(t, srv, "alice", "pw123")
	require.Equal(t, http.StatusOK, loginRec.Code)
	_, refresh := sessionCookies(t, loginRec)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(refresh)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	_, rotated := sessionCookies(t, rec)
	assert.NotEqual(t, refresh.Value, rotated.Value)

	// Replaying the superseded cookie is rejected.
	replay := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	replay.AddCookie(refresh)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, replay)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshEndpoint_ViaBody(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRegister(t, srv, "alice", "alice@x.com").Code)

	loginRec := doLogin(t, srv, "alice", "pw123")
	require.Equal(t, http.StatusOK, loginRec.Code)
	_, refresh := sessionCookies(t, loginRec)

	payload, err := json.Marshal(map[string]string{"refresh_token": refresh.Value})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRefreshEndpoint_NoToken(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRegister(t, srv, "alice", "alice@x.com").Code)

	loginRec := doLogin(t, srv, "alice", "pw123")
	require.Equal(t, http.StatusOK, loginRec.Code)
	access, refresh := sessionCookies(t, loginRec)

	// Unauthenticated logout is rejected by the auth gate.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+access.Value)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Logout expires both session cookies.
	for _, c := range rec.Result().Cookies() {
		assert.Negative(t, c.MaxAge, "cookie %s should be expired", c.Name)
	}

	// The revoked refresh token no longer refreshes.
	replay := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	replay.AddCookie(refresh)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, replay)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Repeating the logout with the still-valid access token is fine.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+access.Value)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChangePasswordEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRegister(t, srv, "alice", "alice@x.com").Code)

	loginRec := doLogin(t, srv, "alice", "pw123")
	require.Equal(t, http.StatusOK, loginRec.Code)
	access, refresh := sessionCookies(t, loginRec)

	do := func(old string, next string, confirm string) *httptest.ResponseRecorder {
		payload, err := json.Marshal(map[string]string{
			"old_password":         old,
			"new_password":         next,
			"confirm_new_password": confirm,
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/change-password", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+access.Value)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, do("pw123", "new-pw", "other").Code)
	assert.Equal(t, http.StatusUnauthorized, do("wrong", "new-pw", "new-pw").Code)

	// The failed attempts left the session alive.
	keepAlive := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	keepAlive.AddCookie(refresh)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, keepAlive)
	require.Equal(t, http.StatusOK, rec.Code)
	_, refresh = sessionCookies(t, rec)

	require.Equal(t, http.StatusOK, do("pw123", "new-pw", "new-pw").Code)

	// The change revoked the session.
	replay := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	replay.AddCookie(refresh)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, replay)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, doLogin(t, srv, "alice", "pw123").Code)
	assert.Equal(t, http.StatusOK, doLogin(t, srv, "alice", "new-pw").Code)
}

func TestMeEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRegister(t, srv, "alice", "alice@x.com").Code)

	loginRec := doLogin(t, srv, "alice", "pw123")
	require.Equal(t, http.StatusOK, loginRec.Code)
	access, _ := sessionCookies(t, loginRec)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+access.Value)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	envelope := decodeEnvelope(t, rec)
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var me model.AuthUser
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, "alice", me.Username)

	// The access cookie alone also authenticates browser clients.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.AddCookie(access)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateAccountEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRegister(t, srv, "alice", "alice@x.com").Code)
	require.Equal(t, http.StatusCreated, doRegister(t, srv, "bob", "bob@x.com").Code)

	loginRec := doLogin(t, srv, "bob", "pw123")
	require.Equal(t, http.StatusOK, loginRec.Code)
	access, _ := sessionCookies(t, loginRec)

	patch := func(fullName string, email string) *httptest.ResponseRecorder {
		payload, err := json.Marshal(map[string]string{"full_name": fullName, "email": email})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/me", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+access.Value)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusConflict, patch("Bob", "alice@x.com").Code)

	rec := patch("Robert Example", "robert@x.com")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	envelope := decodeEnvelope(t, rec)
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var me model.AuthUser
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, "Robert Example", me.FullName)
	assert.Equal(t, "robert@x.com", me.Email)
}

func TestUpdateAvatarEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	require.Equal(t, http.StatusCreated, doRegister(t, srv, "alice", "alice@x.com").Code)

	loginRec := doLogin(t, srv, "alice", "pw123")
	require.Equal(t, http.StatusOK, loginRec.Code)
	access, _ := sessionCookies(t, loginRec)

	user, err := store.FindByIdentifier(context.Background(), "alice")
	require.NoError(t, err)
	oldURL := user.AvatarURL

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("avatar", "new.png")
	require.NoError(t, err)
	_, err = part.Write(pngBytes(t, 16, 16))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/me/avatar", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+access.Value)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	user, err = store.FindByIdentifier(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, oldURL, user.AvatarURL)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"vidstream/internal/middleware"
	"vidstream/internal/model"
	"vidstream/internal/service"
	"vidstream/internal/util"
	"vidstream/pkg/apierror"
)

const (
	avatarMaxEdge = 1024
	coverMaxEdge  = 2048
)

type AuthHandler struct {
	service       *service.AuthService
	cookies       CookieConfig
	maxUploadSize int64
}

func NewAuthHandler(service *service.AuthService, cookies CookieConfig, maxUploadSize int64) *AuthHandler {
	return &AuthHandler{service: service, cookies: cookies, maxUploadSize: maxUploadSize}
}

// Register accepts multipart form data: text fields username, email,
// full_name, password, plus an avatar file part (required) and a
// cover_image file part (optional).
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// Two image parts may arrive, so allow twice the single-file cap.
	r.Body = http.MaxBytesReader(w, r.Body, 2*h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, apierror.Validation("invalid multipart form", err.Error()))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	avatar, err := imageUpload(r, "avatar", avatarMaxEdge)
	if err != nil {
		writeError(w, err)
		return
	}

	cover, err := imageUpload(r, "cover_image", coverMaxEdge)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), service.RegisterInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("full_name"),
		Password: r.FormValue("password"),
		Avatar:   avatar,
		Cover:    cover,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("invalid JSON body", ""))
		return
	}

	identifier := strings.TrimSpace(payload.Identifier)
	if identifier == "" {
		identifier = strings.TrimSpace(payload.Username)
	}
	if identifier == "" {
		identifier = strings.TrimSpace(payload.Email)
	}

	pair, err := h.service.Login(r.Context(), identifier, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	tokens := h.service.Tokens()
	h.cookies.setSession(w, pair.AccessToken, tokens.AccessTTL(), pair.RefreshToken, tokens.RefreshTTL())
	writeSuccess(w, http.StatusOK, pair)
}

// Refresh reads the refresh token from the session cookie, falling
// back to the JSON body for non-browser clients.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	token := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		token = strings.TrimSpace(cookie.Value)
	}
	if token == "" {
		var payload model.RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
			token = strings.TrimSpace(payload.RefreshToken)
		}
	}

	pair, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	tokens := h.service.Tokens()
	h.cookies.setSession(w, pair.AccessToken, tokens.AccessTTL(), pair.RefreshToken, tokens.RefreshTTL())
	writeSuccess(w, http.StatusOK, pair)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	if err := h.service.Logout(r.Context(), identity.ID); err != nil {
		writeError(w, err)
		return
	}

	h.cookies.clearSession(w)
	writeSuccess(w, http.StatusOK, map[string]any{"logged_out": true})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	var payload model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("invalid JSON body", ""))
		return
	}

	err := h.service.ChangePassword(r.Context(), identity.ID, payload.OldPassword, payload.NewPassword, payload.ConfirmNewPassword)
	if err != nil {
		writeError(w, err)
		return
	}

	// The stored refresh token is gone; the cookies are now dead weight.
	h.cookies.clearSession(w)
	writeSuccess(w, http.StatusOK, map[string]any{"password_changed": true})
}

// imageUpload pulls one image part out of the parsed form. A missing
// optional part returns nil without error; presence requirements are
// the service's call.
func imageUpload(r *http.Request, field string, maxEdge int) (*service.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apierror.Validation("invalid file upload", field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apierror.Validation("could not read uploaded file", field)
	}
	if len(data) == 0 {
		return nil, apierror.Validation("uploaded file is empty", field)
	}

	if !util.IsImageMIME(util.DetectMIME(data)) && !util.IsImageExtension(filepath.Ext(header.Filename)) {
		return nil, apierror.Validation("uploaded file must be an image", field)
	}

	filename := filepath.Base(header.Filename)

	// Formats the decoder does not know pass through untouched.
	scaled, ext, err := util.DownscaleImage(bytes.NewReader(data), maxEdge)
	if err != nil {
		scaled = data
	} else if ext != "" {
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ext
	}

	return &service.FileUpload{
		Filename: filename,
		Size:     int64(len(scaled)),
		Reader:   bytes.NewReader(scaled),
	}, nil
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"vidstream/internal/middleware"
	"vidstream/internal/model"
	"vidstream/internal/service"
	"vidstream/pkg/apierror"
)

type UserHandler struct {
	service       *service.AuthService
	maxUploadSize int64
}

func NewUserHandler(service *service.AuthService, maxUploadSize int64) *UserHandler {
	return &UserHandler{service: service, maxUploadSize: maxUploadSize}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	user, err := h.service.GetUserByID(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	var payload model.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("invalid JSON body", ""))
		return
	}

	user, err := h.service.UpdateAccount(r.Context(), identity.ID, payload.FullName, payload.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", avatarMaxEdge, h.service.UpdateAvatar)
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "cover_image", coverMaxEdge, h.service.UpdateCoverImage)
}

func (h *UserHandler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	maxEdge int,
	update func(ctx context.Context, userID string, upload *service.FileUpload) (model.AuthUser, error),
) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, apierror.Validation("invalid multipart form", err.Error()))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	upload, err := imageUpload(r, field, maxEdge)
	if err != nil {
		writeError(w, err)
		return
	}
	if upload == nil {
		writeError(w, apierror.Validation("image file is required", field))
		return
	}

	user, err := update(r.Context(), identity.ID, upload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user)
}

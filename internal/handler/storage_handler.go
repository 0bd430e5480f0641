package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"newsact/internal/storage"
	"newsact/internal/util"
	"newsact/pkg/apierror"
)

type StorageHandler struct {
	provider storage.Provider
	maxBody  int64
}

func NewStorageHandler(provider storage.Provider, maxBody int64) *StorageHandler {
	return &StorageHandler{provider: provider, maxBody: maxBody}
}

type uploadResponse struct {
	URL      string `json:"url"`
	Path     string `json:"path"`
	Provider string `json:"provider"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// bodySlack rides on top of the category limit so the size check happens in
// the provider with a typed error, not as an opaque body-read failure.
const bodySlack = 1 << 20

func (h *StorageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// The cap must be in place before FormValue: reading any form field
	// parses the whole multipart body.
	h.limitBody(w, r)

	category := storage.CategoryGeneric
	switch strings.TrimSpace(r.FormValue("category")) {
	case "avatars":
		category = storage.CategoryAvatar
	case "posts":
		category = storage.CategoryPostImage
	}

	h.upload(w, r, category)
}

func (h *StorageHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)
	h.upload(w, r, storage.CategoryAvatar)
}

func (h *StorageHandler) UploadPostImage(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)
	h.upload(w, r, storage.CategoryPostImage)
}

func (h *StorageHandler) limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody+bodySlack)
}

func (h *StorageHandler) upload(w http.ResponseWriter, r *http.Request, category storage.Category) {
	defer r.Body.Close()

	file, header, err := r.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			writeError(w, apierror.PayloadTooLarge("request body is too large"))
			return
		}
		writeError(w, apierror.BadRequest("multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		if isBodyTooLarge(err) {
			writeError(w, apierror.PayloadTooLarge("request body is too large"))
			return
		}
		writeError(w, apierror.BadRequest("could not read uploaded file"))
		return
	}

	result, err := h.provider.Upload(r.Context(), content, header.Filename, category)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := uploadResponse{
		URL:      result.URL,
		Path:     result.Path,
		Provider: result.Provider,
	}
	if width, height, dimErr := util.ImageDimensions(content); dimErr == nil {
		resp.Width = width
		resp.Height = height
	}

	writeSuccess(w, http.StatusCreated, resp, nil)
}

func (h *StorageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		writeError(w, apierror.BadRequest("query parameter \"url\" is required"))
		return
	}

	if err := h.provider.Delete(r.Context(), url); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}

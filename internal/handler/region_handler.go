package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"newsact/internal/model"
	"newsact/internal/service"
	"newsact/pkg/apierror"
)

type RegionHandler struct {
	service *service.RegionService
}

func NewRegionHandler(service *service.RegionService) *RegionHandler {
	return &RegionHandler{service: service}
}

func (h *RegionHandler) List(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, regions, nil)
}

func (h *RegionHandler) Get(w http.ResponseWriter, r *http.Request) {
	region, err := h.service.Get(r.Context(), chi.URLParam(r, "region_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, region, nil)
}

func (h *RegionHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	region, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, region, nil)
}

func (h *RegionHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegionUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	region, err := h.service.Update(r.Context(), chi.URLParam(r, "region_id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, region, nil)
}

func (h *RegionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "region_id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

func (h *RegionHandler) AddSubZone(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.SubZoneCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	zone, err := h.service.AddSubZone(r.Context(), chi.URLParam(r, "region_id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, zone, nil)
}

func (h *RegionHandler) RemoveSubZone(w http.ResponseWriter, r *http.Request) {
	err := h.service.RemoveSubZone(r.Context(), chi.URLParam(r, "region_id"), chi.URLParam(r, "sub_zone_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

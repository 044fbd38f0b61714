// AngelaMos | 2026
// handler.go

package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/plantsim/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public reference data endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/regions", h.ListRegions)
	r.Get("/regions/{regionID}/species", h.ListSpecies)
	r.Get("/species/{speciesID}", h.GetSpecies)
}

func (h *Handler) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.ListRegions(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, regions, len(regions))
}

func (h *Handler) ListSpecies(w http.ResponseWriter, r *http.Request) {
	regionID, ok := pathID(w, r, "regionID")
	if !ok {
		return
	}

	species, err := h.service.ListSpecies(r.Context(), regionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "region")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.List(w, species, len(species))
}

func (h *Handler) GetSpecies(w http.ResponseWriter, r *http.Request) {
	speciesID, ok := pathID(w, r, "speciesID")
	if !ok {
		return
	}

	sp, err := h.service.GetSpecies(r.Context(), speciesID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "species")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, sp)
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id < 1 {
		core.BadRequest(w, param+" must be a positive integer")
		return 0, false
	}
	return id, true
}

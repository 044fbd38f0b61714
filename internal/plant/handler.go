// AngelaMos | 2026
// handler.go

package plant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/plantsim/internal/core"
	"github.com/carterperez-dev/plantsim/internal/middleware"
	"github.com/carterperez-dev/plantsim/internal/simulation"
)

const codeInvalidWaterInput = "INVALID_WATER_INPUT"

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the plant endpoints. actionLimit, when non-nil,
// guards the two endpoints that advance the simulation.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	actionLimit func(http.Handler) http.Handler,
) {
	r.Route("/plants", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{plantID}", h.Get)

		r.Group(func(r chi.Router) {
			if actionLimit != nil {
				r.Use(actionLimit)
			}
			r.Post("/{plantID}/water", h.Water)
			r.Post("/{plantID}/advance", h.Advance)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), middleware.GetGardenerID(r.Context()), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "species")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToDetailResponse(p))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	plants, err := h.service.List(r.Context(), middleware.GetGardenerID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.List(w, ToResponseList(plants), len(plants))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(
		r.Context(),
		middleware.GetGardenerID(r.Context()),
		chi.URLParam(r, "plantID"),
	)
	if err != nil {
		writeStepError(w, err)
		return
	}

	core.OK(w, ToDetailResponse(p))
}

func (h *Handler) Water(w http.ResponseWriter, r *http.Request) {
	var req WaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	res, err := h.service.Water(
		r.Context(),
		middleware.GetGardenerID(r.Context()),
		chi.URLParam(r, "plantID"),
		string(req.Amount),
	)
	if err != nil {
		writeStepError(w, err)
		return
	}

	core.OK(w, ToOutcomeResponse(res))
}

func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Advance(
		r.Context(),
		middleware.GetGardenerID(r.Context()),
		chi.URLParam(r, "plantID"),
	)
	if err != nil {
		writeStepError(w, err)
		return
	}

	core.OK(w, ToOutcomeResponse(res))
}

func writeStepError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, simulation.ErrInvalidWaterInput):
		core.JSONError(w, core.NewAppError(
			err,
			simulation.ErrInvalidWaterInput.Error(),
			http.StatusBadRequest,
			codeInvalidWaterInput,
		))
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "plant")
	case errors.Is(err, core.ErrConflict):
		core.Conflict(w, "plant was changed by another request, retry")
	default:
		core.InternalServerError(w, err)
	}
}

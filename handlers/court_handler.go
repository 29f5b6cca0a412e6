package handlers

import (
	"net/http"

	"github.com/hoopup/pickup-backend/services"
	"github.com/hoopup/pickup-backend/views"
)

type CourtHandler struct {
	courtService services.CourtService
}

func NewCourtHandler(courtService services.CourtService) *CourtHandler {
	return &CourtHandler{courtService: courtService}
}

func (h *CourtHandler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCourtInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	court, err := h.courtService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, views.NewCourt(court, views.CourtShape{}), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CourtHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.courtService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, views.NewCourts(courts, views.CourtShape{}), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CourtHandler) GetCourtByID(w http.ResponseWriter, r *http.Request) {
	courtID, err := getIDFromURL(r, "courtID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	court, err := h.courtService.GetByID(r.Context(), courtID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, views.NewCourt(court, views.CourtDetail), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CourtHandler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	courtID, err := getIDFromURL(r, "courtID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateCourtInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	court, err := h.courtService.Update(r.Context(), courtID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, views.NewCourt(court, views.CourtShape{}), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CourtHandler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	courtID, err := getIDFromURL(r, "courtID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.courtService.Delete(r.Context(), courtID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"message": "court deleted successfully"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

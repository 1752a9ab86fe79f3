package handler

import (
	"net/http"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/middleware"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/service"

	"github.com/gin-gonic/gin"
)

type JustificationsHandler struct{ svc service.JustificationService }

func NewJustificationsHandler(svc service.JustificationService) *JustificationsHandler {
	return &JustificationsHandler{svc: svc}
}

// Create adds a global justification (Manager) or a company one (Admin).
func (h *JustificationsHandler) Create(c *gin.Context) {
	var req dto.CreateJustificationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *JustificationsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JustificationsHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

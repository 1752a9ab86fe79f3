package handler

import (
	"net/http"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/middleware"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/service"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct{ svc service.RankingService }

func NewRankingHandler(svc service.RankingService) *RankingHandler {
	return &RankingHandler{svc: svc}
}

// Top godoc
// @Summary Leaderboard of the company's active employees
// @Tags ranking
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Rows (default 20, max 100)"
// @Param tenant_id query string false "Company (Managers only)"
// @Success 200 {object} dto.RankingResponse
// @Router /v1/ranking [get]
func (h *RankingHandler) Top(c *gin.Context) {
	tenantID, ok := queryTenant(c)
	if !ok {
		return
	}
	limit := queryInt(c, "limit", service.DefaultRankingLimit)
	resp, err := h.svc.GetTopEmployees(c.Request.Context(), middleware.GetSession(c), tenantID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

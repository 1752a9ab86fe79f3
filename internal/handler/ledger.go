package handler

import (
	"net/http"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/dto"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/middleware"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/service"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	svc       service.LedgerService
	reconcile service.ReconcileService
}

func NewLedgerHandler(svc service.LedgerService, reconcile service.ReconcileService) *LedgerHandler {
	return &LedgerHandler{svc: svc, reconcile: reconcile}
}

// Assign godoc
// @Summary Assign (or deduct) points to an employee
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AssignPointsRequest true "Assignment"
// @Success 201 {object} dto.AssignPointsResponse
// @Failure 422 {object} apierror.ValidationError
// @Failure 500 {object} apierror.APIError
// @Router /v1/ledger/assignments [post]
func (h *LedgerHandler) Assign(c *gin.Context) {
	var req dto.AssignPointsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AssignPoints(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Redeem godoc
// @Summary Redeem a reward with the caller's points
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RedeemRequest true "Reward"
// @Success 201 {object} dto.RedeemResponse
// @Failure 409 {object} apierror.APIError "insufficient balance"
// @Router /v1/ledger/redemptions [post]
func (h *LedgerHandler) Redeem(c *gin.Context) {
	var req dto.RedeemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RedeemReward(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Audit compares stored balances with the applied ledger of the tenant.
func (h *LedgerHandler) Audit(c *gin.Context) {
	tenantID, ok := queryTenant(c)
	if !ok {
		return
	}
	resp, err := h.reconcile.AuditBalances(c.Request.Context(), middleware.GetSession(c), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

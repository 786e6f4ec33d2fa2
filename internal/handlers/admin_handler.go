package handlers

import (
	"net/http"
	"strconv"

	"github.com/naveenreddy007/raju-course--sub000/internal/services"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the back-office surface: settlement and the payout
// review queue.
type AdminHandler struct {
	Payouts     *services.PayoutService
	Commissions *services.CommissionService
}

func NewAdminHandler(payouts *services.PayoutService, commissions *services.CommissionService) *AdminHandler {
	return &AdminHandler{Payouts: payouts, Commissions: commissions}
}

type settleCommissionsRequest struct {
	CommissionIds []int  `json:"commissionIds" binding:"required"`
	SettlementRef string `json:"settlementRef"`
}

func (h *AdminHandler) SettleCommissions(c *gin.Context) {
	var req settleCommissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid request body: "+err.Error(), nil, http.StatusBadRequest))
		return
	}

	settled, err := h.Commissions.SettleCommissions(req.CommissionIds, req.SettlementRef)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"settled": settled}, "Commissions settled successfully"))
}

type reviewPayoutRequest struct {
	AdminNotes string `json:"adminNotes"`
}

func (h *AdminHandler) ApprovePayout(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid payout id", nil, http.StatusBadRequest))
		return
	}

	var req reviewPayoutRequest
	_ = c.ShouldBindJSON(&req)

	request, err := h.Payouts.ApprovePayout(id, req.AdminNotes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(request, "Payout approved for disbursement"))
}

func (h *AdminHandler) RejectPayout(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid payout id", nil, http.StatusBadRequest))
		return
	}

	var req reviewPayoutRequest
	_ = c.ShouldBindJSON(&req)

	request, err := h.Payouts.RejectPayout(id, req.AdminNotes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(request, "Payout rejected"))
}

func (h *AdminHandler) ListPendingPayouts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.Payouts.ListPendingPayouts(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

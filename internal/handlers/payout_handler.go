package handlers

import (
	"net/http"
	"strconv"

	"github.com/naveenreddy007/raju-course--sub000/internal/services"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"

	"github.com/gin-gonic/gin"
)

// PayoutHandler serves the affiliate-facing surface: balance, commissions,
// payout requests and referral stats. The acting user always comes from the
// auth context, never from the request body.
type PayoutHandler struct {
	Payouts     *services.PayoutService
	Commissions *services.CommissionService
	Affiliates  *services.AffiliateService
	Referrals   *services.ReferralService
}

func NewPayoutHandler(payouts *services.PayoutService, commissions *services.CommissionService, affiliates *services.AffiliateService, referrals *services.ReferralService) *PayoutHandler {
	return &PayoutHandler{
		Payouts:     payouts,
		Commissions: commissions,
		Affiliates:  affiliates,
		Referrals:   referrals,
	}
}

type payoutRequestBody struct {
	Amount        float64                 `json:"amount" binding:"required"`
	PaymentMethod string                  `json:"paymentMethod" binding:"required"`
	Details       services.PaymentDetails `json:"details"`
}

func (h *PayoutHandler) RequestPayout(c *gin.Context) {
	var req payoutRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid request body: "+err.Error(), nil, http.StatusBadRequest))
		return
	}

	request, err := h.Payouts.RequestPayout(services.PayoutRequestDTO{
		UserId:        c.GetInt("userId"),
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Details:       req.Details,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(request, "Payout request submitted successfully"))
}

func (h *PayoutHandler) CancelPayout(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid payout id", nil, http.StatusBadRequest))
		return
	}

	request, err := h.Payouts.CancelPayout(c.GetInt("userId"), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(request, "Payout request cancelled"))
}

func (h *PayoutHandler) ListPayouts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.Payouts.ListPayouts(c.GetInt("userId"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PayoutHandler) GetBalance(c *gin.Context) {
	summary, err := h.Payouts.GetBalanceSummary(c.GetInt("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(summary, "Balance fetched successfully"))
}

func (h *PayoutHandler) ListCommissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.Commissions.ListCommissions(services.ListCommissionsDTO{
		UserId: c.GetInt("userId"),
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PayoutHandler) GetAffiliateProfile(c *gin.Context) {
	profile, err := h.Affiliates.GetProfile(c.GetInt("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(profile, "Affiliate profile fetched successfully"))
}

func (h *PayoutHandler) GetReferralStats(c *gin.Context) {
	stats, err := h.Referrals.GetReferralStats(c.GetInt("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(stats, "Referral stats fetched successfully"))
}

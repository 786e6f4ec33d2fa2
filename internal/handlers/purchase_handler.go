package handlers

import (
	"net/http"

	"github.com/naveenreddy007/raju-course--sub000/internal/services"
	"github.com/naveenreddy007/raju-course--sub000/pkg/common"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	Purchases *services.PurchaseService
}

func NewPurchaseHandler(purchases *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{Purchases: purchases}
}

type confirmPurchaseRequest struct {
	UserId     int     `json:"userId" binding:"required"`
	PackageId  int     `json:"packageId" binding:"required"`
	AmountPaid float64 `json:"amountPaid" binding:"required"`
	OrderRef   string  `json:"orderRef" binding:"required"`
	PaymentRef string  `json:"paymentRef"`
}

// ConfirmPurchase records a gateway-confirmed purchase and creates the
// referral commissions it triggers.
func (h *PurchaseHandler) ConfirmPurchase(c *gin.Context) {
	var req confirmPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid request body: "+err.Error(), nil, http.StatusBadRequest))
		return
	}

	purchase, err := h.Purchases.ConfirmPurchase(services.ConfirmPurchaseDTO{
		UserId:     req.UserId,
		PackageId:  req.PackageId,
		AmountPaid: req.AmountPaid,
		OrderRef:   req.OrderRef,
		PaymentRef: req.PaymentRef,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(purchase, "Purchase confirmed successfully"))
}

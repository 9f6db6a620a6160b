package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shanthi551/telecom-data-plan/internal/server/http/dto"
)

// PurchaseHandler manages purchase endpoints for the caller's own account.
type PurchaseHandler struct {
	facade PurchaseFacade
}

// NewPurchaseHandler constructs PurchaseHandler.
func NewPurchaseHandler(facade PurchaseFacade) *PurchaseHandler {
	return &PurchaseHandler{facade: facade}
}

// Create handles POST /api/purchases.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PlanID <= 0 {
		badRequest(c, "plan_id is required")
		return
	}

	purchase, err := h.facade.Purchase(c.Request.Context(), CurrentUser(c), req.PlanID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPurchaseResponse(*purchase))
}

// List handles GET /api/purchases.
func (h *PurchaseHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	purchases, err := h.facade.Purchases(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPurchaseResponses(purchases))
}

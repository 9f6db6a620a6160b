package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/server/http/dto"
)

// PlanHandler serves the catalog and recommendations.
type PlanHandler struct {
	facade CatalogFacade
}

// NewPlanHandler constructs PlanHandler.
func NewPlanHandler(facade CatalogFacade) *PlanHandler {
	return &PlanHandler{facade: facade}
}

// List handles GET /api/plans.
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.facade.Plans(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlanResponses(plans))
}

// Recommend handles POST /api/plans/recommend. No match is an empty list, not an error.
func (h *PlanHandler) Recommend(c *gin.Context) {
	var req dto.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	plans, err := h.facade.Recommend(c.Request.Context(), model.Requirements{
		Budget:         req.Budget,
		DataNeededGB:   req.DataNeededGB,
		ValidityNeeded: req.ValidityNeeded,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlanResponses(plans))
}

package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/export"
	"github.com/Shanthi551/telecom-data-plan/internal/server/http/dto"
)

// ReportHandler serves the analyst and admin views.
type ReportHandler struct {
	facade ReportFacade
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(facade ReportFacade) *ReportHandler {
	return &ReportHandler{facade: facade}
}

// Users handles GET /api/reports/users.
func (h *ReportHandler) Users(c *gin.Context) {
	users, err := h.facade.Users(c.Request.Context(), CurrentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp := make([]dto.UserSummaryResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.UserSummaryResponse{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: string(u.Role)})
	}
	c.JSON(http.StatusOK, resp)
}

// Purchases handles GET /api/reports/purchases.
func (h *ReportHandler) Purchases(c *gin.Context) {
	purchases, err := h.facade.AllPurchases(c.Request.Context(), CurrentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPurchaseResponses(purchases))
}

// Logins handles GET /api/reports/logins.
func (h *ReportHandler) Logins(c *gin.Context) {
	events, err := h.facade.LoginHistory(c.Request.Context(), CurrentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp := make([]dto.LoginEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.LoginEventResponse{ID: e.ID, UserID: e.UserID, FullName: e.UserFullName, LoggedAt: e.LoggedAt})
	}
	c.JSON(http.StatusOK, resp)
}

// Summary handles GET /api/reports/summary.
func (h *ReportHandler) Summary(c *gin.Context) {
	report, err := h.facade.Summary(c.Request.Context(), CurrentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	popular := report.PopularPlans
	if popular == nil {
		popular = map[string]int{}
	}
	c.JSON(http.StatusOK, dto.SummaryResponse{
		PopularPlans:  popular,
		TotalRevenue:  report.TotalRevenue,
		PurchaseCount: report.PurchaseCount,
	})
}

// Export handles GET /api/reports/export and streams an XLSX workbook.
func (h *ReportHandler) Export(c *gin.Context) {
	snap, err := h.facade.Snapshot(c.Request.Context(), CurrentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, snap); err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(snap.GeneratedAt)))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// UpdateRole handles PATCH /api/admin/users/:id/role.
func (h *ReportHandler) UpdateRole(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		badRequest(c, "invalid user id")
		return
	}

	var req dto.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if err := h.facade.UpdateRole(c.Request.Context(), CurrentUser(c), userID, model.Role(req.Role)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/Shanthi551/telecom-data-plan/internal/domain/errors"
	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/server/http/dto"
	"github.com/Shanthi551/telecom-data-plan/internal/server/http/middleware"
)

// CurrentUser extracts the authenticated user from context.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return nil
	}
	u, _ := val.(*model.User)
	return u
}

// CurrentSession extracts the caller's session from context.
func CurrentSession(c *gin.Context) *model.Session {
	val, ok := c.Get(middleware.SessionContextKey)
	if !ok {
		return nil
	}
	s, _ := val.(*model.Session)
	return s
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials), errors.Is(err, domainErrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the mapped status. Internal details stay out of 500 bodies.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toPlanResponse(p model.Plan) dto.PlanResponse {
	return dto.PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		ValidityDays: p.ValidityDays,
		DataLimitGB:  p.DataLimitGB,
		Unlimited:    p.Unlimited(),
	}
}

func toPlanResponses(plans []model.Plan) []dto.PlanResponse {
	out := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanResponse(p))
	}
	return out
}

func toPurchaseResponse(p model.Purchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:           p.ID,
		PlanID:       p.PlanID,
		PlanName:     p.PlanName,
		Price:        p.Price,
		ValidityDays: p.ValidityDays,
		DataLimitGB:  p.DataLimitGB,
		PurchasedAt:  p.PurchasedAt,
		ExpiresAt:    p.ExpiresAt,
		UserID:       p.UserID,
		UserFullName: p.UserFullName,
		UserEmail:    p.UserEmail,
	}
}

func toPurchaseResponses(purchases []model.Purchase) []dto.PurchaseResponse {
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, toPurchaseResponse(p))
	}
	return out
}

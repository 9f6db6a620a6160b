package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
	"github.com/Shanthi551/telecom-data-plan/internal/server/http/dto"
	"github.com/Shanthi551/telecom-data-plan/internal/server/http/middleware"
	"github.com/Shanthi551/telecom-data-plan/internal/session"
	"github.com/Shanthi551/telecom-data-plan/internal/usecase"
)

// AccountHandler processes registration, login and session endpoints.
type AccountHandler struct {
	facade AccountFacade
	now    func() time.Time
}

// NewAccountHandler creates AccountHandler instance.
func NewAccountHandler(facade AccountFacade) *AccountHandler {
	return &AccountHandler{facade: facade, now: time.Now}
}

// Register handles POST /api/register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.facade.Register(c.Request.Context(), usecase.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		FullName:        req.FullName,
		Email:           req.Email,
		Mobile:          req.Mobile,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	grant, err := h.facade.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	expires := grant.Session.ExpiresAt.UTC()
	maxAge := int(expires.Sub(h.now()).Round(time.Second) / time.Second)
	middleware.SetAuthCookie(c, grant.Token, maxAge)
	c.JSON(http.StatusOK, dto.SessionResponse{
		Token:     grant.Token,
		ExpiresAt: &expires,
		User:      toUserResponse(grant.User),
		Pages:     pageNames(grant.User.Role),
	})
}

// Logout handles POST /api/logout.
func (h *AccountHandler) Logout(c *gin.Context) {
	if s := CurrentSession(c); s != nil {
		h.facade.Logout(s.ID)
	}
	middleware.ClearAuthCookie(c)
	c.Status(http.StatusNoContent)
}

// Session handles GET /api/session.
func (h *AccountHandler) Session(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	resp := dto.SessionResponse{User: toUserResponse(user), Pages: pageNames(user.Role)}
	if s := CurrentSession(c); s != nil {
		expires := s.ExpiresAt.UTC()
		resp.ExpiresAt = &expires
	}
	c.JSON(http.StatusOK, resp)
}

func pageNames(role model.Role) []string {
	pages := session.Pages(role)
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, string(p))
	}
	return out
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/carmen-hq/carmen/internal/application/auth/dto"
	"github.com/carmen-hq/carmen/internal/application/auth/usecases"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/utils"
)

// AuthHandler handles console sign-in.
type AuthHandler struct {
	loginUC *usecases.LoginUseCase
	logger  logger.Interface
}

func NewAuthHandler(loginUC *usecases.LoginUseCase, log logger.Interface) *AuthHandler {
	return &AuthHandler{loginUC: loginUC, logger: log}
}

// Login authenticates a console account
// @Summary Sign in
// @Description Authenticate with email or username and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} utils.Envelope{data=dto.LoginResponse}
// @Failure 401 {object} utils.ErrorBody
// @Failure 429 {object} utils.ErrorBody
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid login request body", "error", err)
		utils.ErrorResponse(c, 400, "email and password are required")
		return
	}

	resp, err := h.loginUC.Execute(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.DataResponse(c, 200, resp)
}

// Logout records a sign-out. Tokens are stateless, so nothing is revoked
// server-side; the endpoint exists so clients have a symmetric call and the
// audit log shows when a session ended.
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Envelope
// @Failure 401 {object} utils.ErrorBody
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.logger.Infow("logout", "user_id", currentUserID(c))
	utils.MessageResponse(c, 200, "logged out")
}

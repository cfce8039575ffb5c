package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carmen-hq/carmen/internal/application/user/dto"
	"github.com/carmen-hq/carmen/internal/application/user/usecases"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/utils"
)

// ProfileHandler serves the signed-in user's own account.
type ProfileHandler struct {
	getProfileUC     *usecases.GetProfileUseCase
	updateProfileUC  *usecases.UpdateProfileUseCase
	changePasswordUC *usecases.ChangePasswordUseCase
	logger           logger.Interface
}

func NewProfileHandler(
	getProfileUC *usecases.GetProfileUseCase,
	updateProfileUC *usecases.UpdateProfileUseCase,
	changePasswordUC *usecases.ChangePasswordUseCase,
	log logger.Interface,
) *ProfileHandler {
	return &ProfileHandler{
		getProfileUC:     getProfileUC,
		updateProfileUC:  updateProfileUC,
		changePasswordUC: changePasswordUC,
		logger:           log,
	}
}

// GetProfile returns the signed-in user's profile
// @Summary Get profile
// @Description Account detail plus cluster and business unit assignments
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Envelope{data=dto.ProfileResponse}
// @Failure 401 {object} utils.ErrorBody
// @Router /api/user/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	resp, err := h.getProfileUC.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.DataResponse(c, http.StatusOK, resp)
}

// UpdateProfile handles PUT /api/user/profile. A request carrying
// current_password and new_password rotates the password in the same call.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid profile update body", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	if req.NewPassword != "" || req.CurrentPassword != "" {
		change := dto.ChangePasswordRequest{
			CurrentPassword: req.CurrentPassword,
			NewPassword:     req.NewPassword,
		}
		if err := h.changePasswordUC.Execute(c.Request.Context(), currentUserID(c), change); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	resp, err := h.updateProfileUC.Execute(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.DataResponse(c, http.StatusOK, resp)
}

// ChangePassword handles PUT /api/user/profile/password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid change password body", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	if err := h.changePasswordUC.Execute(c.Request.Context(), currentUserID(c), req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MessageResponse(c, http.StatusOK, "password changed")
}

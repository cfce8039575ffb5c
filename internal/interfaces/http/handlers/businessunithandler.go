package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carmen-hq/carmen/internal/application/businessunit/dto"
	"github.com/carmen-hq/carmen/internal/application/businessunit/usecases"
	domainBU "github.com/carmen-hq/carmen/internal/domain/businessunit"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/utils"
)

// BusinessUnitHandler handles the business unit admin surface.
type BusinessUnitHandler struct {
	createUC *usecases.CreateBusinessUnitUseCase
	getUC    *usecases.GetBusinessUnitUseCase
	listUC   *usecases.ListBusinessUnitsUseCase
	updateUC *usecases.UpdateBusinessUnitUseCase
	deleteUC *usecases.DeleteBusinessUnitUseCase
	usersUC  *usecases.BusinessUnitUsersUseCase
	logger   logger.Interface
}

func NewBusinessUnitHandler(
	createUC *usecases.CreateBusinessUnitUseCase,
	getUC *usecases.GetBusinessUnitUseCase,
	listUC *usecases.ListBusinessUnitsUseCase,
	updateUC *usecases.UpdateBusinessUnitUseCase,
	deleteUC *usecases.DeleteBusinessUnitUseCase,
	usersUC *usecases.BusinessUnitUsersUseCase,
	log logger.Interface,
) *BusinessUnitHandler {
	return &BusinessUnitHandler{
		createUC: createUC,
		getUC:    getUC,
		listUC:   listUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		usersUC:  usersUC,
		logger:   log,
	}
}

// List returns a page of business units
// @Summary List business units
// @Description Server-side paginated list, filterable by cluster_id
// @Tags BusinessUnits
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param perpage query int false "Rows per page, -1 for all"
// @Param search query string false "Search term"
// @Param filter query string false "JSON object of column filters"
// @Param advance query string false "JSON array of advanced conditions"
// @Param sort query string false "field:asc or field:desc"
// @Success 200 {object} utils.Envelope{data=[]dto.BusinessUnitResponse}
// @Router /api-system/business-units [get]
func (h *BusinessUnitHandler) List(c *gin.Context) {
	p, err := utils.ParsePaginate(c, domainBU.DefaultSearchFields)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items, total, err := h.listUC.Execute(c.Request.Context(), p)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListResponse(c, items, total, p.Page, p.Perpage)
}

// Get handles GET /api-system/business-units/:id
func (h *BusinessUnitHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.DataResponse(c, http.StatusOK, resp)
}

// Create handles POST /api-system/business-units
func (h *BusinessUnitHandler) Create(c *gin.Context) {
	var req dto.CreateBusinessUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid create business unit body", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	resp, err := h.createUC.Execute(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, resp)
}

// Update handles PUT /api-system/business-units/:id
func (h *BusinessUnitHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateBusinessUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid update business unit body", "id", id, "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	resp, err := h.updateUC.Execute(c.Request.Context(), id, req, currentUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.DataResponse(c, http.StatusOK, resp)
}

// Delete handles DELETE /api-system/business-units/:id
func (h *BusinessUnitHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MessageResponse(c, http.StatusOK, "business unit deleted")
}

// ListUsers handles GET /api-system/business-units/:id/users
func (h *BusinessUnitHandler) ListUsers(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := utils.ParsePaginate(c, nil)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items, total, err := h.usersUC.List(c.Request.Context(), id, p)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListResponse(c, items, total, p.Page, p.Perpage)
}

// AssignUser handles POST /api-system/business-units/:id/users
func (h *BusinessUnitHandler) AssignUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.AssignBusinessUnitUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid assign business unit user body", "business_unit_id", id, "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	resp, err := h.usersUC.Assign(c.Request.Context(), id, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, resp)
}

// RemoveUser handles DELETE /api-system/business-units/:id/users/:userID
func (h *BusinessUnitHandler) RemoveUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, err := parseIDParam(c, "userID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.usersUC.Remove(c.Request.Context(), id, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MessageResponse(c, http.StatusOK, "user removed from business unit")
}

// SetDefaultUser marks the assignment as the user's default unit
// @Summary Set default business unit
// @Description Clears the user's previous default and marks this one
// @Tags BusinessUnits
// @Security BearerAuth
// @Param id path int true "Business unit ID"
// @Param userID path int true "User ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.ErrorBody
// @Router /api-system/business-units/{id}/users/{userID}/default [put]
func (h *BusinessUnitHandler) SetDefaultUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, err := parseIDParam(c, "userID")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.usersUC.SetDefault(c.Request.Context(), id, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MessageResponse(c, http.StatusOK, "default business unit set")
}

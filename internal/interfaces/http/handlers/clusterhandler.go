package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carmen-hq/carmen/internal/application/cluster/dto"
	"github.com/carmen-hq/carmen/internal/application/cluster/usecases"
	domainCluster "github.com/carmen-hq/carmen/internal/domain/cluster"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/utils"
)

// ClusterHandler handles the cluster admin surface.
type ClusterHandler struct {
	createUC *usecases.CreateClusterUseCase
	getUC    *usecases.GetClusterUseCase
	listUC   *usecases.ListClustersUseCase
	updateUC *usecases.UpdateClusterUseCase
	deleteUC *usecases.DeleteClusterUseCase
	usersUC  *usecases.ClusterUsersUseCase
	logger   logger.Interface
}

func NewClusterHandler(
	createUC *usecases.CreateClusterUseCase,
	getUC *usecases.GetClusterUseCase,
	listUC *usecases.ListClustersUseCase,
	updateUC *usecases.UpdateClusterUseCase,
	deleteUC *usecases.DeleteClusterUseCase,
	usersUC *usecases.ClusterUsersUseCase,
	log logger.Interface,
) *ClusterHandler {
	return &ClusterHandler{
		createUC: createUC,
		getUC:    getUC,
		listUC:   listUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		usersUC:  usersUC,
		logger:   log,
	}
}

// List returns a page of clusters
// @Summary List clusters
// @Description Server-side paginated cluster list
// @Tags Clusters
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param perpage query int false "Rows per page, -1 for all"
// @Param search query string false "Search term"
// @Param filter query string false "JSON object of column filters"
// @Param sort query string false "field:asc or field:desc"
// @Success 200 {object} utils.Envelope{data=[]dto.ClusterResponse}
// @Router /api-system/clusters [get]
func (h *ClusterHandler) List(c *gin.Context) {
	p, err := utils.ParsePaginate(c, domainCluster.DefaultSearchFields)
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

// Get handles GET /api-system/clusters/:id
func (h *ClusterHandler) Get(c *gin.Context) {
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

// Create handles POST /api-system/clusters
func (h *ClusterHandler) Create(c *gin.Context) {
	var req dto.CreateClusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid create cluster body", "error", err)
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

// Update handles PUT /api-system/clusters/:id
func (h *ClusterHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateClusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid update cluster body", "id", id, "error", err)
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

// Delete refuses while the cluster still owns business units
// @Summary Delete cluster
// @Tags Clusters
// @Security BearerAuth
// @Param id path int true "Cluster ID"
// @Success 200 {object} utils.Envelope
// @Failure 422 {object} utils.ErrorBody
// @Router /api-system/clusters/{id} [delete]
func (h *ClusterHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MessageResponse(c, http.StatusOK, "cluster deleted")
}

// ListUsers handles GET /api-system/clusters/:id/users
func (h *ClusterHandler) ListUsers(c *gin.Context) {
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

// AssignUser handles POST /api-system/clusters/:id/users
func (h *ClusterHandler) AssignUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.AssignClusterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid assign cluster user body", "cluster_id", id, "error", err)
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

// RemoveUser handles DELETE /api-system/clusters/:id/users/:userID
func (h *ClusterHandler) RemoveUser(c *gin.Context) {
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
	utils.MessageResponse(c, http.StatusOK, "user removed from cluster")
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maninivas13/farmasthi/internal/middleware"
	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/services"
	"github.com/maninivas13/farmasthi/internal/services/dto"
)

type QueryHandler struct {
	*BaseHandler
	queryService services.QueryService
}

func NewQueryHandler(base *BaseHandler, queryService services.QueryService) *QueryHandler {
	return &QueryHandler{
		BaseHandler:  base,
		queryService: queryService,
	}
}

func (h *QueryHandler) RegisterRoutes(r *gin.RouterGroup) {
	queries := r.Group("/queries")
	queries.Use(middleware.AuthMiddleware())
	{
		queries.POST("", middleware.RequireRoles(models.UserRoleFarmer), h.SubmitQuery)
		queries.GET("", h.ListQueries)
		queries.GET("/statistics", middleware.RequireRoles(models.UserRoleOfficer, models.UserRoleAdmin), h.Statistics)
		queries.GET("/:queryId", h.GetQuery)
		queries.POST("/:queryId/assign", middleware.RequireRoles(models.UserRoleOfficer, models.UserRoleAdmin), h.AssignQuery)
		queries.POST("/:queryId/reply", middleware.RequireRoles(models.UserRoleOfficer, models.UserRoleAdmin), h.ReplyQuery)
		queries.POST("/:queryId/close", middleware.RequireRoles(models.UserRoleAdmin), h.CloseQuery)
	}
}

func (h *QueryHandler) SubmitQuery(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitQueryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	query, err := h.queryService.Submit(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, query)
}

func (h *QueryHandler) ListQueries(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ListQueriesRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	resp, err := h.queryService.List(userID, middleware.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *QueryHandler) GetQuery(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	query, err := h.queryService.Get(c.Param("queryId"), userID, middleware.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, query)
}

func (h *QueryHandler) AssignQuery(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	query, err := h.queryService.Assign(c.Param("queryId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, query)
}

func (h *QueryHandler) ReplyQuery(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	query, err := h.queryService.Reply(c.Param("queryId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, query)
}

func (h *QueryHandler) CloseQuery(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	query, err := h.queryService.Close(c.Param("queryId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, query)
}

func (h *QueryHandler) Statistics(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	stats, err := h.queryService.Statistics()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

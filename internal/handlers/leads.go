package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"estate-cms-backend/internal/database"
	"estate-cms-backend/internal/models"
)

type LeadsHandler struct {
	dbClient *database.Client
}

func NewLeadsHandler(dbClient *database.Client) *LeadsHandler {
	return &LeadsHandler{dbClient: dbClient}
}

// Create accepts a contact request from the public site.
func (h *LeadsHandler) Create(c *gin.Context) {
	var req models.LeadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	lead := &models.Lead{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
	}
	if req.ProjectID != "" {
		id, err := parseObjectID(req.ProjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
			return
		}
		lead.ProjectID = &id
	}

	created, err := h.dbClient.CreateLead(c.Request.Context(), lead)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create lead",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *LeadsHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	leads, total, err := h.dbClient.ListLeads(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list leads",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.LeadListResponse{
		Items: leads,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *LeadsHandler) SetStatus(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "lead not found"})
		return
	}

	var req models.LeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidLeadStatus(req.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid status"})
		return
	}

	lead, err := h.dbClient.UpdateLeadStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "lead not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update lead",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, lead)
}

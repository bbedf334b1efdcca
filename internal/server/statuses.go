package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contentcal/internal/models"
	"contentcal/internal/seed"
)

const defaultColorClass = "bg-gray-100 text-gray-700"

type statusRequest struct {
	Label      string `json:"label" binding:"required"`
	ColorClass string `json:"colorClass"`
	Terminal   *bool  `json:"terminal"`
}

func (r statusRequest) toStatus(id string) models.WorkflowStatus {
	st := models.WorkflowStatus{
		ID:         id,
		Label:      strings.TrimSpace(r.Label),
		ColorClass: r.ColorClass,
		Terminal:   r.Terminal,
	}
	if st.ColorClass == "" {
		st.ColorClass = defaultColorClass
	}
	return st
}

// handleListStatuses returns the workflow, the selectable colors and any post
// labels that no longer match a status.
func (s *Server) handleListStatuses(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{
		"statuses": s.store.Statuses(),
		"colors":   seed.ColorOptions,
		"unknown":  s.store.UnknownStatuses(),
	})
}

// handleCreateStatus appends a status; its id is derived from the label.
func (s *Server) handleCreateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Label) == "" {
		badRequest(c, "status label must not be empty")
		return
	}

	st := req.toStatus(models.StatusID(strings.TrimSpace(req.Label)))
	if _, exists := s.store.Status(st.ID); exists {
		conflict(c, "status already exists")
		return
	}
	if err := s.store.AddStatus(c.Request.Context(), st); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"status": st})
}

// handleUpdateStatus relabels or recolors a status, keeping its id.
func (s *Server) handleUpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if strings.TrimSpace(req.Label) == "" {
		badRequest(c, "status label must not be empty")
		return
	}

	st := req.toStatus(c.Param("id"))
	ok, err := s.store.UpdateStatus(c.Request.Context(), st)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "status not found")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": st})
}

// handleDeleteStatus removes a status. Posts keep their label.
func (s *Server) handleDeleteStatus(c *gin.Context) {
	ok, err := s.store.DeleteStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "status not found")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

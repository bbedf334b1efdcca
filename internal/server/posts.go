package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"contentcal/internal/models"
	"contentcal/internal/report"
)

type postRequest struct {
	ClientID   string         `json:"clientId" binding:"required"`
	Title      string         `json:"title" binding:"required"`
	Date       models.Date    `json:"date"`
	StartDate  *models.Date   `json:"startDate"`
	PostNumber int            `json:"postNumber" binding:"gte=0"`
	Status     string         `json:"status"`
	Network    models.Network `json:"network"`
	Format     string         `json:"format"`
	Copy       string         `json:"copy"`
	Feedback   string         `json:"feedback"`
}

// toPost fills defaults and checks the date order and network.
func (r postRequest) toPost(id, defaultStatus string) (models.Post, error) {
	p := models.Post{
		ID:         id,
		ClientID:   r.ClientID,
		Title:      strings.TrimSpace(r.Title),
		Date:       r.Date,
		StartDate:  r.StartDate,
		PostNumber: r.PostNumber,
		Status:     r.Status,
		Network:    r.Network,
		Format:     strings.TrimSpace(r.Format),
		Copy:       r.Copy,
		Feedback:   r.Feedback,
	}
	if p.Date.IsZero() {
		return models.Post{}, fmt.Errorf("post date is required")
	}
	if p.StartDate != nil && p.StartDate.IsZero() {
		p.StartDate = nil
	}
	if p.StartDate != nil && p.StartDate.After(p.Date) {
		return models.Post{}, fmt.Errorf("start date %s is after delivery date %s", p.StartDate, p.Date)
	}
	if p.Status == "" {
		p.Status = defaultStatus
	}
	if p.Network == "" {
		p.Network = models.NetworkInstagram
	}
	if !p.Network.Valid() {
		return models.Post{}, fmt.Errorf("unknown network %q", p.Network)
	}
	if p.Format == "" {
		p.Format = models.DefaultFormat
	}
	return p, nil
}

// handleListPosts returns posts filtered by client, month and status, by date.
func (s *Server) handleListPosts(c *gin.Context) {
	var filter report.PostFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err.Error())
		return
	}
	if filter.Month != "" {
		if _, err := time.Parse("2006-01", filter.Month); err != nil {
			badRequest(c, "month must be formatted as YYYY-MM")
			return
		}
	}
	respondSuccess(c, http.StatusOK, gin.H{"posts": report.FilterPosts(s.store.Posts(), filter)})
}

// handleCreatePost adds a single post.
func (s *Server) handleCreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	post, err := req.toPost(s.newID(), s.store.DefaultStatusLabel())
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := s.store.AddPost(c.Request.Context(), post); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"post": post})
}

// handleUpdatePost replaces a post, typically to move it through the workflow.
func (s *Server) handleUpdatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	post, err := req.toPost(c.Param("id"), s.store.DefaultStatusLabel())
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	ok, err := s.store.UpdatePost(c.Request.Context(), post)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "post not found")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"post": post})
}

// handleDeletePost removes a post.
func (s *Server) handleDeletePost(c *gin.Context) {
	ok, err := s.store.DeletePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "post not found")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

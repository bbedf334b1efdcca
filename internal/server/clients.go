package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"contentcal/internal/models"
)

type clientRequest struct {
	Name            string              `json:"name" binding:"required"`
	Industry        string              `json:"industry"`
	ContractedPosts int                 `json:"contractedPosts" binding:"gte=0"`
	AvatarURL       string              `json:"avatarUrl"`
	StartDate       models.Date         `json:"startDate"`
	Status          models.ClientStatus `json:"status"`
}

// toClient fills defaults and validates the status. On update, prev supplies
// the quota, status, start date and avatar the request leaves out.
func (r clientRequest) toClient(id string, today models.Date, prev *models.Client) (models.Client, error) {
	c := models.Client{
		ID:              id,
		Name:            strings.TrimSpace(r.Name),
		Industry:        strings.TrimSpace(r.Industry),
		ContractedPosts: r.ContractedPosts,
		AvatarURL:       r.AvatarURL,
		StartDate:       r.StartDate,
		Status:          r.Status,
	}
	if c.Name == "" {
		return models.Client{}, fmt.Errorf("client name must not be empty")
	}
	if prev != nil {
		if c.ContractedPosts == 0 {
			c.ContractedPosts = prev.ContractedPosts
		}
		if c.Status == "" {
			c.Status = prev.Status
		}
		if c.StartDate.IsZero() {
			c.StartDate = prev.StartDate
		}
		if c.AvatarURL == "" {
			c.AvatarURL = prev.AvatarURL
		}
	}
	if c.ContractedPosts == 0 {
		c.ContractedPosts = models.DefaultContractedPosts
	}
	if c.Status == "" {
		c.Status = models.ClientActive
	}
	if !c.Status.Valid() {
		return models.Client{}, fmt.Errorf("unknown client status %q", c.Status)
	}
	if c.StartDate.IsZero() {
		c.StartDate = today
	}
	if c.AvatarURL == "" {
		c.AvatarURL = "https://ui-avatars.com/api/?name=" + url.QueryEscape(c.Name)
	}
	return c, nil
}

// handleListClients returns all clients in insertion order.
func (s *Server) handleListClients(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"clients": s.store.Clients()})
}

// handleGetClient returns a single client.
func (s *Server) handleGetClient(c *gin.Context) {
	client, ok := s.store.Client(c.Param("id"))
	if !ok {
		notFound(c, "client not found")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"client": client})
}

// handleCreateClient registers a new client.
func (s *Server) handleCreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	client, err := req.toClient(s.newID(), s.today(), nil)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := s.store.AddClient(c.Request.Context(), client); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"client": client})
}

// handleUpdateClient replaces an existing client.
func (s *Server) handleUpdateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	prev, found := s.store.Client(c.Param("id"))
	if !found {
		notFound(c, "client not found")
		return
	}
	client, err := req.toClient(prev.ID, s.today(), &prev)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	ok, err := s.store.UpdateClient(c.Request.Context(), client)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "client not found")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"client": client})
}

// handleDeleteClient removes a client. Its posts stay and render as unknown.
func (s *Server) handleDeleteClient(c *gin.Context) {
	ok, err := s.store.DeleteClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !ok {
		notFound(c, "client not found")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contentcal/internal/assistant"
	"contentcal/internal/models"
	"contentcal/internal/report"
)

type ideasRequest struct {
	ClientID string `json:"clientId" binding:"required"`
	Count    int    `json:"count" binding:"gte=0,lte=10"`
}

type saveIdeaRequest struct {
	ClientID string         `json:"clientId" binding:"required"`
	Idea     assistant.Idea `json:"idea"`
}

type captionRequest struct {
	Save bool `json:"save"`
}

// handleGenerateIdeas asks the assistant for post ideas for a client.
func (s *Server) handleGenerateIdeas(c *gin.Context) {
	var req ideasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	client, ok := s.store.Client(req.ClientID)
	if !ok {
		notFound(c, "client not found")
		return
	}

	ideas := s.assistant.Ideas(c.Request.Context(), client.Name, client.Industry, req.Count)
	respondSuccess(c, http.StatusOK, gin.H{"ideas": ideas})
}

// handleSaveIdea stores an accepted idea as a post due today.
func (s *Server) handleSaveIdea(c *gin.Context) {
	var req saveIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Idea.Title == "" {
		badRequest(c, "idea title is required")
		return
	}

	post := assistant.IdeaToPost(req.Idea, req.ClientID, s.today())
	post.ID = s.newID()
	if err := s.store.AddPost(c.Request.Context(), post); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"post": post})
}

// handleGenerateCaption writes copy for a post. With save set, a successful
// caption replaces the post's copy.
func (s *Server) handleGenerateCaption(c *gin.Context) {
	var req captionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}
	post, ok := s.store.Post(c.Param("id"))
	if !ok {
		notFound(c, "post not found")
		return
	}

	clientName := models.ClientName(s.store.Clients(), post.ClientID)
	caption := s.assistant.Caption(c.Request.Context(), post.Title, post.Format, post.Network, clientName)

	saved := false
	if req.Save && caption != assistant.CaptionFallback {
		post.Copy = caption
		if _, err := s.store.UpdatePost(c.Request.Context(), post); err != nil {
			s.respondError(c, err)
			return
		}
		saved = true
	}
	respondSuccess(c, http.StatusOK, gin.H{"caption": caption, "saved": saved, "post": post})
}

// handleAnalyzeSchedule asks for feedback on a client's schedule in date order.
func (s *Server) handleAnalyzeSchedule(c *gin.Context) {
	client, ok := s.store.Client(c.Param("id"))
	if !ok {
		notFound(c, "client not found")
		return
	}

	posts := report.FilterPosts(s.store.Posts(), report.PostFilter{ClientID: client.ID})
	entries := make([]assistant.ScheduleEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, assistant.ScheduleEntry{Date: p.Date, Title: p.Title, Status: p.Status})
	}

	analysis := s.assistant.Analyze(c.Request.Context(), entries, client.Name)
	respondSuccess(c, http.StatusOK, gin.H{"analysis": analysis, "posts": len(entries)})
}

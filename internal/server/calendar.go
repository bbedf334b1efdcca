package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"contentcal/internal/calendar"
)

// generateRequest carries the confirmation for bulk actions. Without it the
// handlers only report what would be created.
type generateRequest struct {
	Confirm bool `json:"confirm"`
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, v any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(v)
}

// handleGenerateMonth fills the current month for one client with the even
// monthly distribution.
func (s *Server) handleGenerateMonth(c *gin.Context) {
	var req generateRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}

	client, ok := s.store.Client(c.Param("id"))
	if !ok {
		notFound(c, "client not found")
		return
	}

	posts := s.generator.CurrentMonth(client, s.store.DefaultStatusLabel())
	var (
		month string
		year  int
	)
	if len(posts) > 0 && posts[0].StartDate != nil {
		month = posts[0].StartDate.MonthKey()
		year = posts[0].StartDate.Year()
	}

	if !req.Confirm {
		respondSuccess(c, http.StatusOK, gin.H{
			"confirmed": false,
			"month":     month,
			"preview":   calendar.Summary{Year: year, Clients: 1, Posts: len(posts)},
		})
		return
	}

	if err := s.store.AppendPosts(c.Request.Context(), posts); err != nil {
		s.respondError(c, err)
		return
	}
	s.logger.Info("month generated", slog.String("client", client.ID), slog.String("month", month), slog.Int("posts", len(posts)))
	respondSuccess(c, http.StatusCreated, gin.H{
		"confirmed": true,
		"month":     month,
		"generated": len(posts),
		"posts":     posts,
	})
}

// handleGenerateYear runs the Monday/Wednesday/Friday cadence for every
// active client.
func (s *Server) handleGenerateYear(c *gin.Context) {
	var req generateRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}

	clients := s.store.Clients()
	summary, err := calendar.Preview(clients, s.plan)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !req.Confirm {
		respondSuccess(c, http.StatusOK, gin.H{"confirmed": false, "preview": summary})
		return
	}

	posts, err := s.generator.Yearly(clients, s.plan, s.store.DefaultStatusLabel())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.store.AppendPosts(c.Request.Context(), posts); err != nil {
		s.respondError(c, err)
		return
	}
	s.logger.Info("yearly calendar generated", slog.Int("year", s.plan.Year), slog.Int("clients", summary.Clients), slog.Int("posts", len(posts)))
	respondSuccess(c, http.StatusCreated, gin.H{
		"confirmed": true,
		"generated": len(posts),
		"summary":   summary,
	})
}

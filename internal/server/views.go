package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contentcal/internal/report"
)

// handleDashboard returns the overview counts and the priority queue.
func (s *Server) handleDashboard(c *gin.Context) {
	view := report.Dashboard(s.store.Posts(), s.store.Clients(), report.NewClassifier(s.store.Statuses()), s.today())
	respondSuccess(c, http.StatusOK, view)
}

// handleReport aggregates posts by client and status under the query filter.
func (s *Server) handleReport(c *gin.Context) {
	var filter report.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err.Error())
		return
	}
	respondSuccess(c, http.StatusOK, report.Report(s.store.Posts(), s.store.Clients(), s.store.Statuses(), filter))
}

package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"contentcal/internal/calendar"
)

const problemMediaType = "application/problem+json"

func writeProblem(c *gin.Context, status int, problem any) {
	c.Header("Content-Type", problemMediaType)
	c.AbortWithStatusJSON(status, problem)
}

func badRequest(c *gin.Context, detail string) {
	writeProblem(c, http.StatusBadRequest, problems.NewStatusProblem(http.StatusBadRequest).
		WithInstance(c.Request.URL.Path).
		WithType("validation_error").
		WithDetail(detail))
}

func notFound(c *gin.Context, detail string) {
	writeProblem(c, http.StatusNotFound, problems.NewStatusProblem(http.StatusNotFound).
		WithInstance(c.Request.URL.Path).
		WithType("not_found").
		WithDetail(detail))
}

func conflict(c *gin.Context, detail string) {
	writeProblem(c, http.StatusConflict, problems.NewStatusProblem(http.StatusConflict).
		WithInstance(c.Request.URL.Path).
		WithType("precondition_failed").
		WithDetail(detail))
}

// respondError maps domain errors to problem documents and logs server faults.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, calendar.ErrNoActiveClients):
		conflict(c, "nenhum cliente ativo para gerar o calendário")
	case errors.Is(err, calendar.ErrInvalidPlan):
		badRequest(c, err.Error())
	default:
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
		writeProblem(c, http.StatusInternalServerError, problems.NewStatusProblem(http.StatusInternalServerError).
			WithInstance(c.Request.URL.Path).
			WithType("internal_error").
			WithError(err))
	}
}

package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"contentcal/internal/models"
)

// DefaultIdeaCount is used when the caller asks for no particular number.
const DefaultIdeaCount = 3

// Idea is one suggested post.
type Idea struct {
	Title   string `json:"title"`
	Format  string `json:"format"`
	Concept string `json:"concept"`
}

// ScheduleEntry is one line of the schedule sent for review.
type ScheduleEntry struct {
	Date   models.Date `json:"date"`
	Title  string      `json:"title"`
	Status string      `json:"status"`
}

// Ideas asks for count post ideas for a client. Any failure, including a
// reply that is not a JSON list, yields an empty slice.
func (c *Client) Ideas(ctx context.Context, clientName, industry string, count int) []Idea {
	if clientName == "" {
		clientName = "Cliente"
	}
	if industry == "" {
		industry = "Geral"
	}
	if count <= 0 {
		count = DefaultIdeaCount
	}

	prompt := fmt.Sprintf(`Atue como social media. Cliente: %q, Setor: %q.
Gere %d ideias de posts.
Retorne APENAS um JSON puro (sem markdown) neste formato de lista:
[{"title": "Titulo", "format": "Reels", "concept": "Resumo"}]`, clientName, industry, count)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("idea generation failed", slog.String("client", clientName), slog.String("error", err.Error()))
		return []Idea{}
	}

	ideas, err := parseIdeas(text)
	if err != nil {
		c.logger.Warn("unreadable idea list", slog.String("client", clientName), slog.String("error", err.Error()))
		return []Idea{}
	}
	return ideas
}

// parseIdeas strips markdown code fences before decoding.
func parseIdeas(text string) ([]Idea, error) {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var ideas []Idea
	if err := json.Unmarshal([]byte(clean), &ideas); err != nil {
		return nil, fmt.Errorf("decode ideas: %w", err)
	}
	if ideas == nil {
		ideas = []Idea{}
	}
	return ideas, nil
}

// Caption writes copy for a post, or CaptionFallback on failure.
func (c *Client) Caption(ctx context.Context, title, format string, network models.Network, clientName string) string {
	if network == "" {
		network = models.NetworkInstagram
	}
	prompt := fmt.Sprintf(`Crie uma legenda %s engajadora.
Cliente: %s. Post: %s. Formato: %s.
Use emojis e hashtags.`, network, clientName, title, format)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("caption generation failed", slog.String("title", title), slog.String("error", err.Error()))
		return CaptionFallback
	}
	return strings.TrimSpace(text)
}

// Analyze asks for short feedback on a client's schedule, or AnalysisFallback
// on failure.
func (c *Client) Analyze(ctx context.Context, entries []ScheduleEntry, clientName string) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", e.Date, e.Title, e.Status))
	}
	prompt := fmt.Sprintf("Analise este cronograma para %s e dê um feedback curto:\n%s", clientName, strings.Join(lines, "\n"))

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("schedule analysis failed", slog.String("client", clientName), slog.String("error", err.Error()))
		return AnalysisFallback
	}
	return strings.TrimSpace(text)
}

// IdeaToPost turns an accepted idea into a post due today in the Ideia status.
func IdeaToPost(idea Idea, clientID string, today models.Date) models.Post {
	format := idea.Format
	if format == "" {
		format = models.DefaultFormat
	}
	return models.Post{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Title:    idea.Title,
		Date:     today,
		Status:   models.IdeaStatusLabel,
		Network:  models.NetworkInstagram,
		Format:   format,
		Copy:     idea.Concept,
	}
}

package calendar

import (
	"fmt"
	"time"

	"contentcal/internal/models"
)

// YearPlan is the span covered by the weekday cadence. January is left out of
// the default plan.
type YearPlan struct {
	Year       int
	FirstMonth time.Month
	LastMonth  time.Month
}

// DefaultYearPlan covers February to December 2026.
func DefaultYearPlan() YearPlan {
	return YearPlan{Year: 2026, FirstMonth: time.February, LastMonth: time.December}
}

// Validate checks the month range.
func (p YearPlan) Validate() error {
	if p.FirstMonth < time.January || p.LastMonth > time.December || p.FirstMonth > p.LastMonth {
		return fmt.Errorf("%w: months %d..%d", ErrInvalidPlan, p.FirstMonth, p.LastMonth)
	}
	return nil
}

// Summary describes what Yearly would produce.
type Summary struct {
	Year    int `json:"year"`
	Clients int `json:"clients"`
	Posts   int `json:"posts"`
}

// cadence reports whether posts are delivered on the given weekday.
func cadence(day time.Weekday) bool {
	return day == time.Monday || day == time.Wednesday || day == time.Friday
}

// DeliveryDays lists every cadence day of the plan in order.
func DeliveryDays(plan YearPlan) []models.Date {
	var days []models.Date
	for month := plan.FirstMonth; month <= plan.LastMonth; month++ {
		for day := 1; day <= models.DaysIn(plan.Year, month); day++ {
			d := models.NewDate(plan.Year, month, day)
			if cadence(d.Weekday()) {
				days = append(days, d)
			}
		}
	}
	return days
}

// ActiveClients keeps the clients eligible for bulk generation.
func ActiveClients(clients []models.Client) []models.Client {
	var active []models.Client
	for _, c := range clients {
		if c.IsActive() {
			active = append(active, c)
		}
	}
	return active
}

// Preview counts the posts Yearly would create without generating them.
func Preview(clients []models.Client, plan YearPlan) (Summary, error) {
	if err := plan.Validate(); err != nil {
		return Summary{}, err
	}
	active := len(ActiveClients(clients))
	if active == 0 {
		return Summary{Year: plan.Year}, ErrNoActiveClients
	}
	return Summary{Year: plan.Year, Clients: active, Posts: active * len(DeliveryDays(plan))}, nil
}

// Yearly generates one post per cadence day for every active client. Post
// numbers run per client across the whole plan.
func (g *Generator) Yearly(clients []models.Client, plan YearPlan, status string) ([]models.Post, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	active := ActiveClients(clients)
	if len(active) == 0 {
		return nil, ErrNoActiveClients
	}

	days := DeliveryDays(plan)
	status = statusOrDefault(status)
	posts := make([]models.Post, 0, len(active)*len(days))
	for _, client := range active {
		for i, delivery := range days {
			number := i + 1
			title := fmt.Sprintf("Post %d - %s", number, client.Name)
			posts = append(posts, g.newPost(client.ID, title, delivery, delivery.AddMonths(-1), number, status))
		}
	}
	return posts, nil
}

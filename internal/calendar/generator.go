// Package calendar turns client contracts into dated post schedules.
//
// Two policies are supported. Month spreads a client's contracted quota evenly
// over days 1..28 of a month and pushes weekend deliveries to Monday; Yearly
// emits one post per Monday, Wednesday and Friday across a span of months with
// a production start one calendar month before each delivery.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentcal/internal/models"
)

// ErrNoActiveClients is returned by Yearly when no client is eligible.
var ErrNoActiveClients = errors.New("no active clients")

// ErrInvalidPlan is returned for month ranges outside January..December.
var ErrInvalidPlan = errors.New("invalid year plan")

// monthSpan is the number of days the even distribution spreads posts over.
const monthSpan = 28

// Generator produces post schedules. Ids come from the configured IDFunc; the
// clock is only consulted by CurrentMonth.
type Generator struct {
	newID func() string
	now   func() time.Time
}

// Option customises a Generator.
type Option func(*Generator)

// WithIDFunc replaces the UUID id source.
func WithIDFunc(fn func() string) Option {
	return func(g *Generator) { g.newID = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(g *Generator) { g.now = fn }
}

// New returns a Generator using UUIDs and the wall clock unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{newID: uuid.NewString, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Month spreads the client's quota over the given month.
func (g *Generator) Month(client models.Client, year int, month time.Month, status string) []models.Post {
	return g.monthly(client, year, month, status, func(i int) string {
		return fmt.Sprintf("Conteúdo #%d", i)
	})
}

// CurrentMonth runs Month for the month of today, or of the client's start
// date when the contract has not started yet.
func (g *Generator) CurrentMonth(client models.Client, status string) []models.Post {
	target := models.DateOf(g.now())
	if client.StartDate.After(target) {
		target = client.StartDate
	}
	return g.Month(client, target.Year(), target.Month(), status)
}

// YearByMonth runs the monthly distribution for every month in [from, to].
// Post numbers restart at 1 each month.
func (g *Generator) YearByMonth(client models.Client, year int, from, to time.Month, status string) []models.Post {
	var posts []models.Post
	for month := from; month <= to; month++ {
		posts = append(posts, g.monthly(client, year, month, status, func(i int) string {
			return fmt.Sprintf("Conteúdo %d/%d #%d", int(month), year, i)
		})...)
	}
	return posts
}

func (g *Generator) monthly(client models.Client, year int, month time.Month, status string, title func(int) string) []models.Post {
	count := client.PostsPerMonth()
	interval := monthSpan / count
	if interval < 1 {
		interval = 1
	}
	start := models.NewDate(year, month, 1)
	status = statusOrDefault(status)

	posts := make([]models.Post, 0, count)
	for i := 1; i <= count; i++ {
		day := min(monthSpan, i*interval)
		delivery := skipWeekend(models.NewDate(year, month, day))
		posts = append(posts, g.newPost(client.ID, title(i), delivery, start, i, status))
	}
	return posts
}

// skipWeekend moves Saturday and Sunday to the following Monday. The result may
// fall in the next month; that is kept as is.
func skipWeekend(d models.Date) models.Date {
	switch d.Weekday() {
	case time.Sunday:
		return d.AddDays(1)
	case time.Saturday:
		return d.AddDays(2)
	}
	return d
}

func (g *Generator) newPost(clientID, title string, delivery, start models.Date, number int, status string) models.Post {
	return models.Post{
		ID:         g.newID(),
		ClientID:   clientID,
		Title:      title,
		Date:       delivery,
		StartDate:  &start,
		PostNumber: number,
		Status:     status,
		Network:    models.NetworkInstagram,
		Format:     models.DefaultFormat,
		Copy:       "",
	}
}

func statusOrDefault(label string) string {
	if label == "" {
		return models.FallbackStatusLabel
	}
	return label
}

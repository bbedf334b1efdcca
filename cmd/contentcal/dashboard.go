package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	cli "github.com/urfave/cli/v3"

	"contentcal/internal/models"
	"contentcal/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	lateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func newDashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Print late, pending and completed counts and the next deadlines",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.close()

			view := report.Dashboard(a.store.Posts(), a.store.Clients(), report.NewClassifier(a.store.Statuses()), models.DateOf(time.Now()))
			renderDashboard(a.out, view)
			return nil
		},
	}
}

func renderDashboard(w io.Writer, view report.DashboardView) {
	fmt.Fprintln(w, titleStyle.Render("Visão geral"))
	fmt.Fprintf(w, "%s  Pendentes: %d  Concluídos: %d\n",
		lateStyle.Render(fmt.Sprintf("Atrasados: %d", view.Late)), view.Pending, view.Completed)

	if len(view.Upcoming) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Nenhum post pendente."))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Data", "Cliente", "Título", "Status", "#")
	for _, u := range view.Upcoming {
		date := u.Date.String()
		if u.Late {
			date += " !"
		}
		t.Row(date, u.ClientName, u.Title, u.Status, strconv.Itoa(u.PostNumber))
	}
	fmt.Fprintln(w, t.String())
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	cli "github.com/urfave/cli/v3"

	"contentcal/internal/calendar"
)

func newGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate scheduled posts",
		Commands: []*cli.Command{
			{
				Name:      "month",
				Usage:     "Fill the current month for one client",
				ArgsUsage: "<client-id>",
				Flags:     []cli.Flag{yesFlag()},
				Action:    runGenerateMonth,
			},
			{
				Name:   "year",
				Usage:  "Generate the Monday/Wednesday/Friday calendar for every active client",
				Flags:  []cli.Flag{yesFlag()},
				Action: runGenerateYear,
			},
		},
	}
}

func yesFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}
}

func runGenerateMonth(ctx context.Context, cmd *cli.Command) error {
	clientID := cmd.Args().First()
	if clientID == "" {
		return errors.New("client id is required")
	}

	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	client, ok := a.store.Client(clientID)
	if !ok {
		return fmt.Errorf("client %q not found", clientID)
	}

	posts := calendar.New().CurrentMonth(client, a.store.DefaultStatusLabel())
	month := ""
	if len(posts) > 0 && posts[0].StartDate != nil {
		month = posts[0].StartDate.MonthKey()
	}

	question := fmt.Sprintf("Gerar %d posts para %s em %s?", len(posts), client.Name, month)
	if !cmd.Bool("yes") && !confirm(a.in, a.out, question) {
		fmt.Fprintln(a.out, "Cancelado.")
		return nil
	}

	if err := a.store.AppendPosts(ctx, posts); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	a.logger.Info("month generated", slog.String("client", client.ID), slog.String("month", month), slog.Int("posts", len(posts)))
	fmt.Fprintf(a.out, "%d posts gerados para %s (%s).\n", len(posts), client.Name, month)
	return nil
}

func runGenerateYear(ctx context.Context, cmd *cli.Command) error {
	a, err := openApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	plan := a.cfg.YearPlan()
	clients := a.store.Clients()
	summary, err := calendar.Preview(clients, plan)
	if errors.Is(err, calendar.ErrNoActiveClients) {
		fmt.Fprintln(a.out, "Nenhum cliente ativo para gerar o calendário.")
		return nil
	}
	if err != nil {
		return err
	}

	question := fmt.Sprintf("Gerar %d posts para %d clientes ativos em %d?", summary.Posts, summary.Clients, summary.Year)
	if !cmd.Bool("yes") && !confirm(a.in, a.out, question) {
		fmt.Fprintln(a.out, "Cancelado.")
		return nil
	}

	posts, err := calendar.New().Yearly(clients, plan, a.store.DefaultStatusLabel())
	if err != nil {
		return err
	}
	if err := a.store.AppendPosts(ctx, posts); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	a.logger.Info("yearly calendar generated", slog.Int("year", plan.Year), slog.Int("clients", summary.Clients), slog.Int("posts", len(posts)))
	fmt.Fprintf(a.out, "%d posts gerados para %d clientes.\n", len(posts), summary.Clients)
	return nil
}

// confirm asks a yes/no question. Only "s", "sim", "y" and "yes" accept.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [s/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

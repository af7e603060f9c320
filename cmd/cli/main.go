package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/amirasaad/crowdfund/infra/initializer"
	"github.com/amirasaad/crowdfund/pkg/app"
	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/amirasaad/crowdfund/pkg/dto"
)

const usage = `Usage: cli <command> [arguments]
Commands: categories, projects [search], project <project_id>, search <text>, popular [limit]`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		fmt.Println("Failed to initialize:", err)
		os.Exit(1)
	}
	a := app.New(deps, cfg)

	code := 0
	if err := runCommand(context.Background(), a, os.Args[1], os.Args[2:]); err != nil {
		fmt.Printf("Error: %s (%s)\n", domain.Message(err), domain.KindOf(err))
		code = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sync.ShutdownTimeout)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		fmt.Println("Shutdown:", err)
	}
	if code != 0 {
		cancel()
		os.Exit(code)
	}
}

func runCommand(ctx context.Context, a *app.App, cmd string, args []string) error {
	switch cmd {
	case "categories":
		res, err := a.Categories.List(ctx)
		if err != nil {
			return err
		}
		offlineNote(res.Offline())
		for _, c := range res.Value {
			fmt.Printf("%d\t%s\n", c.ID, c.Name)
		}
	case "projects":
		q := dto.ProjectQuery{}
		if len(args) > 0 {
			q.Search = args[0]
		}
		page, err := a.Projects.List(ctx, q)
		if err != nil {
			return err
		}
		offlineNote(page.Offline)
		for _, p := range page.Results {
			fmt.Printf("%d\t%s\t%s/%s\t%s\n", p.ID, p.Title, p.CurrentAmount, p.TargetAmount, p.Status)
		}
	case "project":
		if len(args) < 1 {
			fmt.Println("Usage: project <project_id>")
			return nil
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Println("Invalid project id:", err)
			return nil
		}
		res, err := a.Projects.Get(ctx, id)
		if err != nil {
			return err
		}
		offlineNote(res.Offline())
		p := res.Value
		fmt.Printf("%s\n%s\nRaised %s of %s (%.1f%%), %d days left\n",
			p.Title, p.Description, p.CurrentAmount, p.TargetAmount,
			p.ProgressPercentage(), p.DaysLeft(time.Now()))
	case "search":
		if len(args) < 1 {
			fmt.Println("Usage: search <text>")
			return nil
		}
		ps, err := a.Projects.Search(ctx, args[0])
		if err != nil {
			return err
		}
		for _, p := range ps {
			fmt.Printf("%d\t%s\n", p.ID, p.Title)
		}
	case "popular":
		limit := 10
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				limit = n
			}
		}
		ps, err := a.Projects.Popular(ctx, limit)
		if err != nil {
			return err
		}
		for _, p := range ps {
			fmt.Printf("%d\t%s\t%s\n", p.ID, p.Title, p.CurrentAmount)
		}
	default:
		fmt.Println("Unknown command:", cmd)
		fmt.Println(usage)
	}
	return nil
}

func offlineNote(offline bool) {
	if offline {
		fmt.Println("(offline: showing cached data)")
	}
}

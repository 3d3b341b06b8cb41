// Command seed resets the catalog to the sample data set. It wipes projects,
// items, and orders, then inserts three sample projects and three sample
// items. Intended for demos and local development, not production.
package main

import (
	"context"
	"log/slog"
	"os"

	sqliteadapter "github.com/chayanin/showcase/internal/adapter/driven/sqlite"
	"github.com/chayanin/showcase/internal/config"
	"github.com/chayanin/showcase/internal/domain/model"
	"github.com/chayanin/showcase/pkg/logging"
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	ctx := context.Background()

	// Orders reference items by id, so they go too.
	for _, table := range []string{"orders", "items", "projects"} {
		if _, err := db.Writer.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	projects := sqliteadapter.NewProjectRepo(db)
	for _, p := range sampleProjects() {
		if err := projects.Create(ctx, p); err != nil {
			return err
		}
	}

	items := sqliteadapter.NewItemRepo(db)
	for _, it := range sampleItems() {
		if err := items.Create(ctx, it); err != nil {
			return err
		}
	}

	slog.Info("seed completed", "db_path", cfg.DBPath)
	return nil
}

func sampleProjects() []model.Project {
	return []model.Project{
		{
			ID:          "p1",
			Title:       "Personal Blog",
			Description: "A custom blog platform with markdown editor and SSG for SEO.",
			DateISO:     "2023-05-01",
			Tags:        []string{"Next.js", "Markdown", "SSG"},
			Links: []model.Link{
				{Label: "ดูโปรเจกต์", URL: "#"},
				{Label: "GitHub", URL: "#"},
			},
		},
		{
			ID:          "p2",
			Title:       "Task Management App",
			Description: "A sleek and intuitive task app with drag-and-drop and realtime sync.",
			DateISO:     "2023-08-22",
			Tags:        []string{"Vue.js", "Firebase", "Productivity"},
			Links: []model.Link{
				{Label: "ดูโปรเจกต์", URL: "#"},
			},
		},
		{
			ID:          "p3",
			Title:       "E-commerce Platform",
			Description: "A full-featured e-commerce website built with React and Node.js, including payment integration and an admin dashboard.",
			DateISO:     "2023-10-15",
			Tags:        []string{"React", "Node.js", "E-commerce", "Stripe"},
			Links: []model.Link{
				{Label: "ดูโปรเจกต์", URL: "#"},
				{Label: "GitHub", URL: "#"},
			},
		},
	}
}

func sampleItems() []model.Item {
	return []model.Item{
		{
			ID:          "i1",
			Title:       "Canvas Poster 24×36",
			Description: "High-quality print on canvas.",
			DateISO:     "2023-09-01",
			Price:       price(120.00),
		},
		{
			ID:          "i2",
			Title:       "Coffee Grinder",
			Description: "Manual burr grinder with adjustable settings.",
			DateISO:     "2023-09-10",
			Price:       price(24.99),
		},
		{
			ID:          "i3",
			Title:       "Handmade Leather Wallet",
			Description: "A beautifully crafted leather wallet, perfect for everyday use.",
			DateISO:     "2023-09-12",
			Price:       price(49.99),
		},
	}
}

func price(v float64) *float64 {
	return &v
}

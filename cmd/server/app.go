package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/examprep/selection/internal/bandit"
	"github.com/examprep/selection/internal/catalog"
	"github.com/examprep/selection/internal/config"
	"github.com/examprep/selection/internal/database"
	"github.com/examprep/selection/internal/logger"
	"github.com/examprep/selection/internal/mastery"
	"github.com/examprep/selection/internal/resolver"
	"github.com/examprep/selection/internal/selection"
)

type app struct {
	db      *sql.DB
	catalog *catalog.Catalog
	updater *mastery.Updater
	service *selection.Service
}

// newApp connects to the database and wires the selection engine. A missing
// or malformed topic mapping is returned as an error.
func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	mapping, err := catalog.LoadTopicMapping(cfg.Catalog.TopicMappingPath)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	cat := catalog.New(catalog.NewStore(db), mapping)
	if err := cat.Refresh(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("warm catalog: %w", err)
	}

	source := bandit.NewSource()
	if cfg.Bandit.Seed != 0 {
		source = bandit.NewSeededSource(cfg.Bandit.Seed)
	}

	profiles := mastery.NewStore(db)
	updater := mastery.NewUpdater(profiles, profiles, cat, log.With("component", "mastery"))
	selector := bandit.NewSelector(cat, profiles, bandit.NewSampler(cfg.Bandit.Sampler), source)
	res := resolver.New(resolver.NewStore(db), mapping,
		resolver.WithSource(source),
		resolver.WithTaskItemCount(cfg.Bandit.TaskItemCount),
		resolver.WithLogger(log.With("component", "resolver")),
	)

	widths := selection.Widths{
		Questions: cfg.Bandit.QuestionsWidth,
		Rooms:     cfg.Bandit.RoomsWidth,
		Tasks:     cfg.Bandit.TasksWidth,
	}
	service := selection.NewService(selector, res, cat, updater, widths, log.With("component", "selection"))
	service.SetMode(bandit.Mode(cfg.Bandit.Mode))

	log.Info("selection engine ready",
		"topics", mapping.Len(),
		"sampler", cfg.Bandit.Sampler,
		"mode", cfg.Bandit.Mode,
		"seeded", cfg.Bandit.Seed != 0,
	)

	return &app{db: db, catalog: cat, updater: updater, service: service}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

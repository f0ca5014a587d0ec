package main

import (
	"github.com/coopnet-lab/backend/internal/repository"
	"github.com/coopnet-lab/backend/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.ctx = s.newContext()

	if err := migration.AutoMigrate(s.ctx); err != nil {
		return err
	}

	if err := migration.SeedBadges(s.ctx, repository.NewBadgeRepository()); err != nil {
		return err
	}

	s.logger.Infof("Migration completed")
	return nil
}

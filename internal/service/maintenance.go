package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/hotprospects/hotprospects/internal/database"
	"github.com/hotprospects/hotprospects/internal/database/repository"
)

// MaintenanceService houses destructive/ops actions surfaced through the CLI.
type MaintenanceService struct {
	DB        *sqlx.DB
	Prospects *repository.ProspectRepo
	Log       logrus.FieldLogger
}

// Reset wipes all prospects. It keeps the schema intact so the app can continue running.
func (s *MaintenanceService) Reset(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	var removed int64
	if err := database.WithTx(s.DB, func(tx *sqlx.Tx) error {
		n, err := s.Prospects.DeleteAll(ctx, tx)
		if err != nil {
			return fmt.Errorf("reset prospects: %w", err)
		}
		removed = n
		return nil
	}); err != nil {
		return 0, err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	s.Log.WithField("removed", removed).Warn("prospects reset")
	return removed, nil
}

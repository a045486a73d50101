package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/praharilabs/prahari-backend/internal/models"
	"github.com/praharilabs/prahari-backend/internal/policy"
	"github.com/robfig/cron"
	"gorm.io/gorm"
)

// SLAService is the hourly escalation sweep: verified reports older than
// their category deadline get rti_filed set, a monotonic one-way transition.
type SLAService struct {
	db      *gorm.DB
	tables  *policy.Tables
	cron    *cron.Cron
	running atomic.Bool
}

func NewSLAService(db *gorm.DB, tables *policy.Tables) *SLAService {
	return &SLAService{db: db, tables: tables}
}

// Start schedules the hourly sweep. Call Stop on shutdown.
func (s *SLAService) Start() {
	c := cron.New()
	// AddFunc only errors on a bad spec; "@hourly" is constant.
	_ = c.AddFunc("@hourly", func() {
		s.Sweep(context.Background(), time.Now().UTC())
	})
	c.Start()
	s.cron = c
	slog.Info("sla escalation sweep scheduled", "interval", "@hourly")
}

func (s *SLAService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep runs one full escalation pass at the given instant. A sweep still in
// progress causes the new one to be skipped rather than overlap. One failing
// category does not block the others.
func (s *SLAService) Sweep(ctx context.Context, now time.Time) {
	if !s.running.CompareAndSwap(false, true) {
		slog.Warn("sla sweep still running, skipping this pass")
		return
	}
	defer s.running.Store(false)

	for _, category := range s.tables.Categories() {
		if err := s.sweepCategory(ctx, category, now); err != nil {
			slog.Error("sla sweep failed for category",
				"action", "sla_sweep", "category", category, "error", err)
		}
	}
}

func (s *SLAService) sweepCategory(ctx context.Context, category string, now time.Time) error {
	cutoff := now.AddDate(0, 0, -s.tables.SLADays(category))

	var overdue []models.Report
	err := s.db.WithContext(ctx).
		Where("category = ? AND status = ? AND rti_filed = false AND is_deleted = false AND created_at < ?",
			category, models.StatusVerified, cutoff).
		Find(&overdue).Error
	if err != nil {
		return fmt.Errorf("failed to find overdue reports: %w", err)
	}

	for _, report := range overdue {
		// Guard on rti_filed so a concurrent filer never re-files.
		err := s.db.WithContext(ctx).Model(&models.Report{}).
			Where("id = ? AND rti_filed = false", report.ID).
			Updates(map[string]interface{}{
				"rti_filed":    true,
				"rti_filed_at": now,
			}).Error
		if err != nil {
			// Keep going: one stuck row must not block its siblings.
			slog.Error("rti auto-filing failed",
				"action", "sla_sweep", "report_id", report.ID.String(), "error", err)
			continue
		}
		slog.Info("rti auto-filed for overdue report",
			"report_id", report.ID.String(), "category", category, "city", report.City)
	}
	return nil
}

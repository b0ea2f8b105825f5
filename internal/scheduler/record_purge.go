// Package scheduler runs the background jobs of the API.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/royaltyx/royaltyx-api/infrastructure/repository"
	"github.com/royaltyx/royaltyx-api/internal/config"
	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/royaltyx/royaltyx-api/pkg/log"
	"github.com/royaltyx/royaltyx-api/pkg/utils"
)

var ErrPurgeRunning = errors.New("record purge already running")

// RecordPurgeService hard deletes import files that were soft deleted more than
// RetentionDays ago, together with the sales and impressions they imported.
type RecordPurgeService struct {
	scheduler *gocron.Scheduler
	fileRepo  repository.ImportFileRepository
	config    config.RecordPurge
	now       func() time.Time

	mutex           sync.Mutex
	running         bool
	lastRunID       string
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastResult      *domain.PurgeResult
	lastError       string
}

func NewRecordPurgeService(fileRepo repository.ImportFileRepository, cfg *config.Config) *RecordPurgeService {
	log.L.WithFields(log.Fields{
		"cron_schedule":  cfg.RecordPurge.CronSchedule,
		"retention_days": cfg.RecordPurge.RetentionDays,
	}).Info("record purge: configuration loaded")

	return &RecordPurgeService{
		scheduler: gocron.NewScheduler(time.UTC),
		fileRepo:  fileRepo,
		config:    cfg.RecordPurge,
		now:       time.Now,
	}
}

func (s *RecordPurgeService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("record purge: disabled by configuration")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.PurgeDeletedFiles(ctx); err != nil && !errors.Is(err, ErrPurgeRunning) {
			log.L.WithError(err).Error("record purge: scheduled run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling record purge: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("record purge: stopping scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// PurgeDeletedFiles runs one purge. Concurrent calls return ErrPurgeRunning.
func (s *RecordPurgeService) PurgeDeletedFiles(ctx context.Context) (*domain.PurgeResult, error) {
	runID, err := s.begin()
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithField("run_id", runID)
	cutoff := s.now().AddDate(0, 0, -s.config.RetentionDays)

	result, err := s.purge(ctx, cutoff)
	s.finish(result, err)

	if err != nil {
		logger.WithError(err).Error("record purge: failed")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"files":       result.Files,
		"sales":       result.Sales,
		"impressions": result.Impressions,
	}).Info("record purge: completed")

	return result, nil
}

func (s *RecordPurgeService) purge(ctx context.Context, cutoff time.Time) (*domain.PurgeResult, error) {
	files, err := s.fileRepo.ListDeletedBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return &domain.PurgeResult{}, nil
	}

	fileIDs := make([]int64, 0, len(files))
	for _, file := range files {
		fileIDs = append(fileIDs, file.ID)
	}

	return s.fileRepo.PurgeRecords(ctx, fileIDs)
}

func (s *RecordPurgeService) begin() (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return "", ErrPurgeRunning
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("generating run id: %w", err)
	}

	s.running = true
	s.lastRunID = runID
	s.lastStartedAt = s.now()
	return runID, nil
}

func (s *RecordPurgeService) finish(result *domain.PurgeResult, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.running = false
	s.lastCompletedAt = s.now()
	s.lastResult = result
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
}

// TriggerManualRun starts a purge in the background unless one is already running.
func (s *RecordPurgeService) TriggerManualRun() bool {
	s.mutex.Lock()
	running := s.running
	s.mutex.Unlock()

	if running {
		log.L.Info("record purge: already running, ignoring manual trigger")
		return false
	}

	go func() {
		if _, err := s.PurgeDeletedFiles(context.Background()); err != nil && !errors.Is(err, ErrPurgeRunning) {
			log.L.WithError(err).Error("record purge: manual run failed")
		}
	}()

	return true
}

func (s *RecordPurgeService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return map[string]any{
		"enabled":           s.config.Enabled,
		"cron":              s.config.CronSchedule,
		"retention_days":    s.config.RetentionDays,
		"running":           s.running,
		"last_run_id":       s.lastRunID,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
		"last_result":       s.lastResult,
		"last_error":        s.lastError,
	}
}

package admin

import (
	"context"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// staleReportLockKey keeps a single instance producing the report.
const staleReportLockKey = "medtour:stale-authorization-report:leader"

// StaleAuthorizationWorker periodically logs stage-2 holds that are older than
// the configured age so an operator can capture or void them in time.
type StaleAuthorizationWorker struct {
	log          *zap.Logger
	cfg          *config.InternalConfig
	locker       contracts.LockerService
	adminUsecase contracts.AdminUsecase
	cron         *cron.Cron
	runCtx       context.Context
	cancel       context.CancelFunc
}

func NewStaleAuthorizationWorker(log *zap.Logger, cfg *config.InternalConfig, lockerService contracts.LockerService, adminUsecase contracts.AdminUsecase) *StaleAuthorizationWorker {
	return &StaleAuthorizationWorker{log: log, cfg: cfg, locker: lockerService, adminUsecase: adminUsecase}
}

// Start schedules the report. It does nothing when the report is disabled.
func (w *StaleAuthorizationWorker) Start(ctx context.Context) {
	if w.cfg.Escrow.StaleAuthorizationAfterInHours <= 0 {
		w.log.Info("staleAuthorizationWorker disabled")
		return
	}

	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Escrow.StaleAuthorizationReportCronSpec
	_, err := c.AddFunc(spec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("staleAuthorizationWorker invalid cron spec; falling back to @hourly",
			zap.String("cron_spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc("@hourly", func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for a running report to finish.
func (w *StaleAuthorizationWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// RunOnce produces one report and returns how many stale holds it found.
func (w *StaleAuthorizationWorker) RunOnce(ctx context.Context) int {
	if w.locker != nil {
		acquired, token, err := w.locker.TryLock(ctx, staleReportLockKey, 2*time.Minute)
		if err != nil {
			w.log.Warn("staleAuthorizationWorker leader lock attempt failed", zap.Error(err))
			return 0
		}
		if !acquired {
			w.log.Info("staleAuthorizationWorker leader lock held by another instance")
			return 0
		}
		defer w.locker.Unlock(ctx, staleReportLockKey, token)
	}

	stale, err := w.adminUsecase.FindStaleAuthorizations(ctx)
	if err != nil {
		w.log.Error("staleAuthorizationWorker report failed", zap.Error(err))
		return 0
	}

	for _, item := range stale {
		w.log.Warn("staleAuthorizationWorker stage 2 authorization awaiting capture or void",
			zap.String(constvars.LoggingCaseIDKey, item.Case.ID),
			zap.String(constvars.LoggingAuthorizationIDKey, item.Case.Stage2AuthID),
			zap.Float64("authorized_hours", item.AuthorizedHours),
		)
	}
	w.log.Info("staleAuthorizationWorker report finished",
		zap.Int(constvars.LoggingCasesCountKey, len(stale)),
	)
	return len(stale)
}

package jobs

import (
	"projecthub-backend/internal/config"
	"projecthub-backend/internal/logger"
	"projecthub-backend/internal/repository"
	"projecthub-backend/internal/service"
)

// JobRunner executes scheduled maintenance jobs.
type JobRunner struct {
	cfg         *config.Config
	inviteRepo  repository.InvitationRepository
	projectRepo repository.ProjectRepository
	emailSvc    service.EmailService
}

func NewJobRunner(
	cfg *config.Config,
	inviteRepo repository.InvitationRepository,
	projectRepo repository.ProjectRepository,
	emailSvc service.EmailService,
) *JobRunner {
	return &JobRunner{
		cfg:         cfg,
		inviteRepo:  inviteRepo,
		projectRepo: projectRepo,
		emailSvc:    emailSvc,
	}
}

// Config returns the application configuration the runner was built with.
func (jr *JobRunner) Config() *config.Config {
	return jr.cfg
}

// runWithRecovery executes a job function and recovers from panics so a
// failing job cannot take down the scheduler.
func (jr *JobRunner) runWithRecovery(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", name, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", name)
	fn()
	logger.Info("Job finished", "job", name)
}

package worker

import (
	"context"
	"fmt"

	"go-destinations-api/core/jobs"
	"go-destinations-api/core/logger"

	"github.com/hibiken/asynq"
)

type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
}

// Worker hosts the asynq task server and its cron-style scheduler.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func New(config Config) *Worker {
	if config.Concurrency <= 0 {
		config.Concurrency = 5
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: config.Concurrency,
	})
	scheduler := asynq.NewScheduler(redisOpt, nil)

	return &Worker{
		server:    server,
		scheduler: scheduler,
		mux:       asynq.NewServeMux(),
	}
}

// HandleJob binds a tracked job runner to a task type. The task payload is
// ignored; the runner's own result decides success.
func (w *Worker) HandleJob(taskType string, runner *jobs.Runner) {
	w.mux.HandleFunc(taskType, func(ctx context.Context, t *asynq.Task) error {
		result := runner.Run(ctx)
		if !result.Success {
			logger.Error("Worker:HandleJob:JobFailed", "task", taskType, "message", result.Message)
			return fmt.Errorf("task %s failed: %s", taskType, result.Message)
		}
		logger.Info("Worker:HandleJob:JobCompleted", "task", taskType, "message", result.Message)
		return nil
	})
}

// RegisterPeriodic schedules a task with a cron spec.
func (w *Worker) RegisterPeriodic(spec string, taskType string) error {
	entryID, err := w.scheduler.Register(spec, asynq.NewTask(taskType, nil))
	if err != nil {
		logger.Error("Worker:RegisterPeriodic:Error:", err, "task", taskType, "spec", spec)
		return fmt.Errorf("register periodic task %s: %w", taskType, err)
	}
	logger.Info("Worker:RegisterPeriodic", "task", taskType, "spec", spec, "entry_id", entryID)
	return nil
}

// Start runs the scheduler and the task server in the background.
func (w *Worker) Start() error {
	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start worker server: %w", err)
	}
	logger.Info("Worker started")
	return nil
}

// Shutdown stops the scheduler and waits for in-flight tasks.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

package worker

import (
	"time"

	"forotrix/config"
	"forotrix/services/audit"
	"forotrix/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitAuditWorker runs the async audit persistence worker in the background.
func InitAuditWorker(recorder *audit.Recorder) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(audit.TypeAuditRecord, recorder.HandleAuditRecordTask)

	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			logger.Info("Starting audit worker", zap.Int("attempt", attempt))
			if err := srv.Run(mux); err != nil {
				logger.Error("Audit worker failed", zap.Int("attempt", attempt), zap.Error(err))
				if attempt == maxAttempts {
					logger.Fatal("Audit worker exhausted retries")
				}
				time.Sleep(time.Duration(attempt*2) * time.Second)
				continue
			}
			break
		}
	}()
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forotrix/config"
	"forotrix/database"
	adRepoPkg "forotrix/database/repository/ad"
	auditRepoPkg "forotrix/database/repository/audit"
	commentRepoPkg "forotrix/database/repository/comment"
	eventRepoPkg "forotrix/database/repository/eventlog"
	mediaRepoPkg "forotrix/database/repository/media"
	userRepoPkg "forotrix/database/repository/user"
	"forotrix/handlers"
	"forotrix/routes"
	adService "forotrix/services/ad"
	"forotrix/services/audit"
	commentService "forotrix/services/comment"
	"forotrix/services/event"
	"forotrix/services/feed"
	mediaService "forotrix/services/media"
	userService "forotrix/services/user"
	"forotrix/utils"
	"forotrix/worker"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	provider, err := mediaService.NewCloudinaryProvider()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize media provider: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	adRepo := adRepoPkg.NewMongoAdRepo()
	mediaRepo := mediaRepoPkg.NewMongoMediaRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	commentRepo := commentRepoPkg.NewMongoCommentRepo()
	eventRepo := eventRepoPkg.NewMongoEventLogRepo()
	auditRepo := auditRepoPkg.NewMongoAuditRepo()

	// Audit pipeline: mutations enqueue, the worker persists.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	auditSink := audit.NewQueueSink(asynqClient, logger)
	worker.InitAuditWorker(&audit.Recorder{Repo: auditRepo})

	// Services.
	mediaSvc := &mediaService.DefaultMediaService{
		Repo:     mediaRepo,
		Ads:      adRepo,
		Provider: provider,
		Audit:    auditSink,
	}
	adSvc := &adService.DefaultAdService{
		Repo:  adRepo,
		Media: mediaRepo,
		Mgr:   mediaSvc,
		Audit: auditSink,
	}
	userSvc := &userService.DefaultUserService{
		Repo:     userRepo,
		Ads:      adRepo,
		Comments: commentRepo,
		Media:    mediaSvc,
		Audit:    auditSink,
	}
	commentSvc := &commentService.DefaultCommentService{
		Repo:  commentRepo,
		Ads:   adRepo,
		Users: userRepo,
	}
	eventSvc := &event.DefaultEventService{Repo: eventRepo}
	feedSvc := feed.NewFeedService(adSvc, utils.GetCacheClient())

	handlerBundle := &handlers.HandlerBundle{
		// Auth endpoints.
		RegisterHandler:       handlers.RegisterHandler(userSvc),
		LoginHandler:          handlers.LoginHandler(userSvc),
		RefreshHandler:        handlers.RefreshHandler(userSvc),
		LogoutHandler:         handlers.LogoutHandler(userSvc),
		GetProfileHandler:     handlers.GetProfileHandler(userSvc),
		UpdateProfileHandler:  handlers.UpdateProfileHandler(userSvc),
		UpdatePasswordHandler: handlers.UpdatePasswordHandler(userSvc),
		DeleteAccountHandler:  handlers.DeleteAccountHandler(userSvc),

		// Ad endpoints.
		ListAdsHandler:      handlers.ListAdsHandler(adSvc),
		ListFiltersHandler:  handlers.ListFiltersHandler(),
		ListOwnAdsHandler:   handlers.ListOwnAdsHandler(adSvc),
		GetAdHandler:        handlers.GetAdHandler(adSvc),
		CreateAdHandler:     handlers.CreateAdHandler(adSvc),
		UpdateAdHandler:     handlers.UpdateAdHandler(adSvc),
		PublishAdHandler:    handlers.PublishAdHandler(adSvc),
		UnpublishAdHandler:  handlers.UnpublishAdHandler(adSvc),
		DeleteAdHandler:     handlers.DeleteAdHandler(adSvc),
		ListCommentsHandler: handlers.ListCommentsHandler(commentSvc),
		AddCommentHandler:   handlers.AddCommentHandler(commentSvc),

		// Media endpoints.
		UploadConfigHandler:    handlers.UploadConfigHandler(mediaSvc),
		UploadSignatureHandler: handlers.UploadSignatureHandler(mediaSvc),
		RegisterMediaHandler:   handlers.RegisterMediaHandler(mediaSvc),
		DeleteMediaHandler:     handlers.DeleteMediaHandler(mediaSvc),

		// Feed, events, assets.
		FeedHandler:       handlers.FeedHandler(feedSvc),
		LogEventHandler:   handlers.LogEventHandler(eventSvc),
		HeroAssetsHandler: handlers.HeroAssetsHandler(),
	}

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

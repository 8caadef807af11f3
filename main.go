package main

import (
	"context"
	"log"

	api "minwon-backend/cmd/api"
	adminrepo "minwon-backend/internal/admin/repository"
	adminusecase "minwon-backend/internal/admin/usecase"
	adminwatcher "minwon-backend/internal/admin/watcher"
	complaintrepo "minwon-backend/internal/complaint/repository"
	complaintwatcher "minwon-backend/internal/complaint/watcher"
	"minwon-backend/internal/notification"
	userrepo "minwon-backend/internal/user/repository"
	"minwon-backend/internal/watcher"
	"minwon-backend/pkg/config"
	"minwon-backend/pkg/fcm"
	"minwon-backend/pkg/firebase"
	"minwon-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	appLogger := logger.NewStructured(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// Initialize Firebase clients (Firestore, Auth, Messaging)
	clients, err := firebase.NewClients(ctx, cfg.GoogleProjectID, cfg.FirebaseCredentials)
	if err != nil {
		log.Fatal("Failed to initialize Firebase clients:", err)
	}
	defer clients.Close()

	// Initialize repositories (dependency injection)
	tokenStore := userrepo.NewTokenRepository(clients.Firestore, appLogger)
	complaintRepository := complaintrepo.NewComplaintRepository(clients.Firestore)
	adminRepository := adminrepo.NewAdminRepository(clients.Firestore)

	// Notification dispatcher over FCM
	dispatcher := notification.NewDispatcher(tokenStore, fcm.New(clients.Messaging), appLogger)

	// Trigger handlers
	complaintWatcher := complaintwatcher.NewWatcher(complaintRepository, dispatcher, appLogger)
	claimsSynchronizer := adminusecase.NewClaimsSynchronizer(clients.Auth, appLogger)
	adminWatcher := adminwatcher.NewWatcher(claimsSynchronizer)

	// Change event runtime (Pub/Sub)
	if cfg.GoogleProjectID != "" {
		watcherService, err := watcher.NewService(cfg.GoogleProjectID, cfg.EventsTopic, cfg.FirebaseCredentials, appLogger)
		if err != nil {
			log.Fatal("Failed to initialize change event watcher:", err)
		}
		watcherService.Handle(watcher.KindUpdated, "complaints/{id}", complaintWatcher.OnStatusChanged)
		watcherService.Handle(watcher.KindCreated, "complaints/{complaintId}/replies/{replyId}", complaintWatcher.OnReplyAdded)
		watcherService.Handle(watcher.KindCreated, "admins/{uid}", adminWatcher.OnAdminCreated)
		watcherService.Handle(watcher.KindUpdated, "admins/{uid}", adminWatcher.OnAdminUpdated)
		go watcherService.Start(ctx)
	} else {
		appLogger.Warn("GOOGLE_PROJECT_ID not configured, change event watcher disabled", nil)
	}

	// Privileged operations
	adminUsecase := adminusecase.NewAdminUsecase(adminRepository, clients.Auth, appLogger)

	// Initialize HTTP handler
	handler := api.NewHandler(clients.Auth, adminUsecase, tokenStore)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

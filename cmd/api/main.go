package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/rentbook/rentbook/internal/config"
	"github.com/rentbook/rentbook/internal/handler"
	"github.com/rentbook/rentbook/internal/models"
	"github.com/rentbook/rentbook/internal/notify"
	"github.com/rentbook/rentbook/internal/service"
	"github.com/rentbook/rentbook/internal/state"
	"github.com/rentbook/rentbook/internal/upstream"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Load persisted app state
	appState := state.NewStore(cfg.StateFile, logger)
	if err := appState.Load(); err != nil {
		logger.Fatalf("Failed to load app state: %v", err)
	}

	// Initialize layers
	profileClient := upstream.NewProfileClient(cfg, logger)
	transactionClient := upstream.NewTransactionClient(cfg, logger)
	svc := service.NewService(profileClient, transactionClient, appState, logger)
	balanceSvc := service.NewBalanceService(profileClient, transactionClient, cfg.RentDueDay, logger)
	reminder := notify.NewSender(cfg, logger)
	h := handler.NewHandler(svc, balanceSvc, appState, logger)

	// Setup router
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	// Day boundaries move fines and overdue counts, so the cached balance
	// is refreshed once a day for the active profile.
	c := cron.New()
	_, err = c.AddFunc("@daily", func() {
		profileID, profileName := appState.ActiveProfile()
		if profileID == "" {
			return
		}
		logger.Infof("Refreshing balance for profile %s after day rollover", profileID)

		summary, err := balanceSvc.ComputeMonthlyBalance(context.Background(), profileID)
		if err != nil {
			logger.WithError(err).Error("Failed to refresh balance")
			// The old snapshot belongs to yesterday; drop it rather than
			// keep serving it.
			if err := appState.InvalidateBalance(); err != nil {
				logger.WithError(err).Error("Failed to invalidate cached balance")
			}
			return
		}
		if err := appState.SetBalance(summary); err != nil {
			logger.WithError(err).Error("Failed to persist balance snapshot")
		}

		if reminder.Enabled() && summary.Status != models.StatusPaid {
			if err := reminder.SendRentReminder(profileName, summary); err != nil {
				logger.WithError(err).Error("Failed to send rent reminder")
			}
		}
	})
	if err != nil {
		logger.Fatalf("Failed to schedule balance refresh: %v", err)
	}
	c.Start()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

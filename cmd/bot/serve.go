package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/nathanl0204/project-bot/internal/clock"
	"github.com/nathanl0204/project-bot/internal/config"
	"github.com/nathanl0204/project-bot/internal/database"
	"github.com/nathanl0204/project-bot/internal/delivery"
	"github.com/nathanl0204/project-bot/internal/handlers"
	"github.com/nathanl0204/project-bot/internal/privilege"
	"github.com/nathanl0204/project-bot/internal/repository"
	"github.com/nathanl0204/project-bot/internal/scheduler"
	"github.com/nathanl0204/project-bot/internal/services"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot backend: HTTP surface plus the reminder loop",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg := config.MustLoad(configPath)

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	taskRepo := repository.NewTaskRepository(db)
	annRepo := repository.NewAnnouncementRepository(db)

	clk := clock.System()
	deliver := delivery.NewLogDelivery()
	priv := privilege.NewStaticChecker(cfg.ModeratorIDs)

	taskService := services.NewTaskService(taskRepo)
	projectionService := services.NewProjectionService(taskService, annRepo, deliver, priv)

	reminder := scheduler.NewReminder(taskRepo, deliver, clk, cfg.ChannelID, cfg.ReminderHours, cfg.ReminderIntervalMinutes)
	reminder.Start(context.Background())
	defer reminder.Stop()

	router := handlers.SetupRouter(handlers.RouterDeps{
		Tasks:        handlers.NewTaskHandler(taskService, priv),
		Weeks:        handlers.NewWeekHandler(taskService, projectionService, clk, cfg.ChannelID),
		Interactions: handlers.NewInteractionHandler(projectionService),
		ChannelID:    cfg.ChannelID,
	})

	log.Printf("Server starting on %s", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

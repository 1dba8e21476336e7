package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/pflag"
	"github.com/wheelibin/hadash/internal/cards"
	"github.com/wheelibin/hadash/internal/commands"
	"github.com/wheelibin/hadash/internal/config"
	"github.com/wheelibin/hadash/internal/constants"
	"github.com/wheelibin/hadash/internal/dashboard"
	"github.com/wheelibin/hadash/internal/daylight"
	"github.com/wheelibin/hadash/internal/homeassistant"
	"github.com/wheelibin/hadash/internal/repos"
	statestore "github.com/wheelibin/hadash/internal/stateStore"
	"github.com/wheelibin/hadash/internal/tui"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "path to the config file")
	pflag.Parse()

	// read the config file, before logging moves off the terminal
	if err := config.InitialiseConfig(*configFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.ReadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(&lumberjack.Logger{
		Filename: cfg.LogFile,
		MaxAge:   3,
	}, log.Options{
		Level:      log.InfoLevel,
		TimeFormat: "2006/01/02 15:04:05",
	})
	logger.Info("hadash starting")

	if err := run(logger, cfg); err != nil {
		logger.Error(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("hadash is closing")
}

func run(logger *log.Logger, cfg *config.Config) error {
	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer db.Close()

	repo, err := repos.NewEntityRepo(logger, db)
	if err != nil {
		return err
	}
	if err := repo.SeedRooms(cfg.RoomAssignments()); err != nil {
		return err
	}

	// create/wire up services
	filter, err := statestore.NewEntityFilter(cfg.Entities.Include, cfg.Entities.Exclude)
	if err != nil {
		return err
	}
	daylightService, err := daylight.NewService(logger, cfg.GeoLocation, cfg.Daylight)
	if err != nil {
		return err
	}

	store := statestore.NewStateStore(logger, filter)
	api := homeassistant.NewAPIService(logger, cfg.HomeAssistant)
	consumer := homeassistant.NewEventConsumer(logger, cfg.HomeAssistant)
	dispatcher := commands.NewDispatcher(logger, cfg.Commands, api)
	board := cards.NewBoard(dispatcher)

	dash := dashboard.NewDashboard(logger, api, consumer, repo, store, board, dispatcher.Failures())
	consumer.OnConnect = dash.RequestResync

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ui := tui.NewTUI(ctx, board, board.Views(), daylightService.Theme(time.Now()))
	dash.AddPublisher(ui)

	go dispatcher.Run(ctx)
	go func() {
		if err := dash.Initialise(ctx); err != nil {
			logger.Error(err)
		}
		dash.Run(ctx)
	}()
	go followTheme(ctx, ui, daylightService)

	// run the terminal UI until the user quits
	return ui.Run()
}

func followTheme(ctx context.Context, ui *tui.TUI, daylightService *daylight.Service) {
	ticker := time.NewTicker(constants.MainUpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			ui.SetTheme(daylightService.Theme(now))
		}
	}
}

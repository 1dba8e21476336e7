package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/pflag"
	"github.com/wheelibin/hadash/internal/cards"
	"github.com/wheelibin/hadash/internal/commands"
	"github.com/wheelibin/hadash/internal/config"
	"github.com/wheelibin/hadash/internal/dashboard"
	"github.com/wheelibin/hadash/internal/daylight"
	"github.com/wheelibin/hadash/internal/homeassistant"
	"github.com/wheelibin/hadash/internal/mqttbridge"
	"github.com/wheelibin/hadash/internal/repos"
	statestore "github.com/wheelibin/hadash/internal/stateStore"
	"github.com/wheelibin/hadash/internal/web"
)

var version = "dev"

func main() {
	configFile := pflag.StringP("config", "c", "", "path to the config file")
	pflag.String("listen", "", "address the web dashboard listens on")
	debug := pflag.Bool("debug", false, "log debug messages")
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: true,
		ReportCaller:    true,
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}
	logger.Info("hadashd starting", "version", version)

	// read the config file
	if err := config.InitialiseConfig(*configFile); err != nil {
		logger.Fatal(err)
	}
	if pflag.Lookup("listen").Changed {
		if err := config.BindFlag("listenAddr", pflag.Lookup("listen")); err != nil {
			logger.Fatal(err)
		}
	}
	cfg, err := config.ReadConfig()
	if err != nil {
		logger.Fatal(err)
	}

	// open the database
	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		logger.Fatal("Error opening database", "path", cfg.DBPath, "err", err)
	}
	defer db.Close()

	repo, err := repos.NewEntityRepo(logger, db)
	if err != nil {
		logger.Fatal(err)
	}
	if err := repo.SeedRooms(cfg.RoomAssignments()); err != nil {
		logger.Fatal(err)
	}

	// create/wire up services
	filter, err := statestore.NewEntityFilter(cfg.Entities.Include, cfg.Entities.Exclude)
	if err != nil {
		logger.Fatal(err)
	}
	daylightService, err := daylight.NewService(logger, cfg.GeoLocation, cfg.Daylight)
	if err != nil {
		logger.Fatal(err)
	}

	store := statestore.NewStateStore(logger, filter)
	api := homeassistant.NewAPIService(logger, cfg.HomeAssistant)
	consumer := homeassistant.NewEventConsumer(logger, cfg.HomeAssistant)
	dispatcher := commands.NewDispatcher(logger, cfg.Commands, api)
	board := cards.NewBoard(dispatcher)

	dash := dashboard.NewDashboard(logger, api, consumer, repo, store, board, dispatcher.Failures())
	// events missed while disconnected are caught up with a full resync
	consumer.OnConnect = dash.RequestResync

	server, err := web.NewServer(logger, cfg.ListenAddr, version, board, dash, daylightService)
	if err != nil {
		logger.Fatal(err)
	}
	dash.AddPublisher(server)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MQTT.Broker != "" {
		bridge := mqttbridge.NewBridge(logger, cfg.MQTT, board)
		if err := bridge.Connect(ctx); err != nil {
			logger.Warn("MQTT broker not reachable yet, retrying in the background", "broker", cfg.MQTT.Broker, "err", err)
		}
		defer bridge.Close()
		dash.AddPublisher(bridge)
	}

	// the saved snapshots are still shown when the hub is down
	if err := dash.Initialise(ctx); err != nil {
		logger.Error(err)
	}

	go dispatcher.Run(ctx)
	go dash.Run(ctx)

	if err := server.Run(ctx); err != nil {
		logger.Error(err)
		stop()
	}

	logger.Info("hadashd is closing")
}

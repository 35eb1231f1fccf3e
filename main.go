package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/habitat-fund/backend/internal/config"
	"github.com/habitat-fund/backend/internal/metrics"
	"github.com/habitat-fund/backend/internal/models"
	"github.com/habitat-fund/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	output := io.Writer(os.Stdout)
	if cfg.HumanLogs(gin.IsDebugging()) {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	if cfg.Postgres() {
		err = models.ConnectPostgres(cfg.PostgresDSN())
	} else {
		err = os.MkdirAll(cfg.DataDir, os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		err = models.Connect(filepath.Join(cfg.DataDir, "gorm.db"))
	}
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	stopRefresher, err := metrics.StartRefresher(cfg.MetricsRefreshSchedule)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer stopRefresher()

	r, teardown, err := router.Config(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(cfg, r.Group("/"))

	if err := r.Run(); err != nil {
		log.Error().Msg(err.Error())
	}
}

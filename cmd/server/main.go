package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/clinicore/go-clinic-server/internal/config"
	"github.com/clinicore/go-clinic-server/server"
	"github.com/clinicore/go-clinic-server/storage/sqlite"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
	logger.Info().Msg("server stopped")
}

func run(logger zerolog.Logger) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	ctx := context.Background()
	storage, err := sqlite.New(ctx, c.GetDatabasePath())
	if err != nil {
		return fmt.Errorf("sqlite.New: %w", err)
	}
	defer storage.Close()

	repos := server.Repos{
		Users:        sqlite.NewUserRepo(storage),
		Doctors:      sqlite.NewDoctorRepo(storage),
		Appointments: sqlite.NewAppointmentRepo(storage),
	}

	handler, err := server.New(c, repos, logger)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer, logger)
	waitForStopSignal()
	return shutdown(httpServer)
}

func listenAndServe(server *http.Server, logger zerolog.Logger) {
	logger.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

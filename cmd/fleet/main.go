package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mateusmacedo/go-fleet/internal/auth"
	"github.com/mateusmacedo/go-fleet/internal/config"
	"github.com/mateusmacedo/go-fleet/internal/console"
	"github.com/mateusmacedo/go-fleet/internal/fleet"
	"github.com/mateusmacedo/go-fleet/internal/fleet/application"
	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	"github.com/mateusmacedo/go-fleet/internal/fleet/infrastructure"
	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
	pkgInfra "github.com/mateusmacedo/go-fleet/pkg/infrastructure"
	zapAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/zaplogger/adapter"
)

const usage = `Usage: fleet [flags] [console|serve|watch]

Commands:
  console   interactive menu (default)
  serve     HTTP API with graceful shutdown
  watch     log fleet events received from a broker (redis, kafka, rabbitmq)

Flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "fleet:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("fleet", pflag.ContinueOnError)
	configPath := flags.String("config", "", "YAML configuration file (default "+config.DefaultPath+" when present)")
	dataDir := flags.String("data-dir", "", "directory holding the data files")
	addr := flags.String("addr", "", "HTTP listen address for serve")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn, error")
	transport := flags.String("events", "", "event transport: memory, channel, redis, kafka, rabbitmq")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	command := "console"
	if flags.NArg() > 0 {
		command = flags.Arg(0)
	}
	if command != "console" && command != "serve" && command != "watch" {
		flags.Usage()
		return fmt.Errorf("unknown command %q", command)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	// flags explícitas prevalecem sobre arquivo e ambiente
	for _, o := range []struct {
		value  string
		target *string
	}{
		{*dataDir, &cfg.Data.Dir},
		{*addr, &cfg.HTTP.Addr},
		{*logLevel, &cfg.Logging.Level},
		{*transport, &cfg.Events.Transport},
	} {
		if o.value != "" {
			*o.target = o.value
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if command == "watch" {
		if err := checkWatchTransport(cfg.Events.Transport); err != nil {
			return err
		}
	}

	appLogger, err := zapAdapter.NewZapAppLogger(zapAdapter.Config{
		AppName:     "go-fleet",
		Level:       cfg.Logging.Level,
		OutputPaths: cfg.Logging.Output,
	})
	if err != nil {
		return err
	}

	// no console o Ctrl+C encerra o processo; serve e watch desligam com calma
	ctx := context.Background()
	if command != "console" {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
	}

	events, err := infrastructure.NewEventTransport(cfg.Events, appLogger)
	if err != nil {
		return fmt.Errorf("event transport %s: %w", cfg.Events.Transport, err)
	}
	defer func() {
		if err := events.Close(); err != nil {
			pkgApp.LogError(context.Background(), appLogger, "error closing event transport", err, nil)
		}
	}()

	if command == "watch" {
		return watch(ctx, cfg.Events.Transport, events.Bus, appLogger)
	}

	fleetSlice, err := fleet.NewFleetSlice(
		ctx,
		newStores(cfg.Data, appLogger),
		pkgInfra.NewSimpleCommandBus[application.ScheduleCommand, application.ScheduleCommandData](appLogger),
		pkgInfra.NewSimpleQueryBus[application.SchedulesQuery, application.FindSchedulesData, []domain.Schedule](appLogger),
		events.Bus,
		pkgInfra.GenerateUUID,
		fleet.ReferentialPolicy(cfg.Fleet.ReferentialPolicy),
		appLogger,
	)
	if err != nil {
		return err
	}

	if command == "serve" {
		return serve(ctx, cfg.HTTP, fleetSlice, appLogger)
	}

	var opts []console.Option
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		opts = append(opts, console.WithPasswordReader(console.TerminalPasswordReader(fd, os.Stdout)))
	}
	return console.New(fleetSlice, os.Stdin, os.Stdout, appLogger, opts...).Run(ctx)
}

func newStores(data config.DataConfig, logger pkgApp.AppLogger) fleet.Stores {
	return fleet.Stores{
		Buses:     infrastructure.NewFlatFileStore[domain.Bus](data.Path(data.Buses), infrastructure.BusCodec{}, logger),
		Drivers:   infrastructure.NewFlatFileStore[domain.Driver](data.Path(data.Drivers), infrastructure.DriverCodec{}, logger),
		Routes:    infrastructure.NewFlatFileStore[domain.Route](data.Path(data.Routes), infrastructure.RouteCodec{}, logger),
		Schedules: infrastructure.NewFlatFileStore[domain.Schedule](data.Path(data.Schedules), infrastructure.ScheduleCodec{}, logger),
		Users:     infrastructure.NewFlatFileStore[domain.User](data.Path(data.Credentials), infrastructure.UserCodec{}, logger),
		DayOffs:   infrastructure.NewDayOffLog(data.Path(data.DayOff), logger),
	}
}

func serve(ctx context.Context, cfg config.HTTPConfig, fleetSlice *fleet.Fleet, logger pkgApp.AppLogger) error {
	router := infrastructure.NewRouter(cfg, logger)
	fleetSlice.RegisterRoutes(router, auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		pkgApp.LogInfo(ctx, logger, "server starting", map[string]interface{}{"addr": cfg.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}
	pkgApp.LogInfo(context.Background(), logger, "shutting down server", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		pkgApp.LogError(context.Background(), logger, "error shutting down server", err, nil)
		return err
	}

	pkgApp.LogInfo(context.Background(), logger, "server stopped", nil)
	return nil
}

// checkWatchTransport recusa os transportes em processo: memory e channel
// nunca recebem eventos publicados por outro processo.
func checkWatchTransport(transport string) error {
	switch transport {
	case "redis", "kafka", "rabbitmq":
		return nil
	}
	return fmt.Errorf("watch needs a broker transport (redis, kafka or rabbitmq), got %q", transport)
}

// watch só consome: os eventos chegam de outros processos que publicam no
// mesmo transporte.
func watch(ctx context.Context, transport string, bus application.FleetEventBus, logger pkgApp.AppLogger) error {
	audit := application.NewAuditEventHandler(logger)
	for _, name := range application.FleetEventNames() {
		bus.RegisterHandler(name, audit)
	}
	pkgApp.LogInfo(ctx, logger, "watching fleet events", map[string]interface{}{"transport": transport})
	<-ctx.Done()
	return nil
}

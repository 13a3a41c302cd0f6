// Command demo drives a declarative traffic light through a service and
// prints every state, a WALK availability probe and the final DOT graph.
//
// Configuration comes from the environment:
//
//	REDUCERX_LOG_LEVEL     debug, info, warn or error (default info)
//	REDUCERX_MACHINE_FILE  YAML machine to load instead of the built-in one
//	REDUCERX_METRICS_ADDR  serve Prometheus metrics on this address
//	REDUCERX_STEPS         number of TIMER events to send (default 6)
//	REDUCERX_TICK          delay between events, 0 sends them back to back
//	REDUCERX_FORMAT        snapshot format, yaml or json (default yaml)
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/comalice/reducerx"
	promadapter "github.com/comalice/reducerx/adapters/prometheus"
	"github.com/comalice/reducerx/definition"
	"github.com/comalice/reducerx/internal/extensibility"
	"github.com/comalice/reducerx/internal/production"
)

//go:embed traffic.yaml
var trafficYAML []byte

type config struct {
	LogLevel    slog.Level    `env:"REDUCERX_LOG_LEVEL" envDefault:"info"`
	MachineFile string        `env:"REDUCERX_MACHINE_FILE"`
	MetricsAddr string        `env:"REDUCERX_METRICS_ADDR"`
	Steps       int           `env:"REDUCERX_STEPS" envDefault:"6"`
	Tick        time.Duration `env:"REDUCERX_TICK" envDefault:"0s"`
	Format      string        `env:"REDUCERX_FORMAT" envDefault:"yaml"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parse env: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if err := run(ctx, cfg, log, os.Stdout); err != nil {
		log.Error("demo failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func implementations(log *slog.Logger) definition.Implementations {
	count := func(key string) reducerx.Assign[definition.Context] {
		return definition.AssignKey(key, func(ctx definition.Context, _ reducerx.Event) any {
			n, _ := ctx[key].(int)
			return n + 1
		})
	}
	return definition.Implementations{
		Actions: map[string]reducerx.Assign[definition.Context]{
			"cycle": count("cycles"),
			"walk":  count("walks"),
		},
		Logger: log,
	}
}

func loadMachine(cfg config, log *slog.Logger) (*reducerx.Machine[definition.Context], error) {
	if cfg.MachineFile != "" {
		return definition.LoadFile(cfg.MachineFile, implementations(log))
	}
	return definition.Load(trafficYAML, implementations(log))
}

func run(ctx context.Context, cfg config, log *slog.Logger, out io.Writer) error {
	if cfg.Steps < 1 {
		return fmt.Errorf("REDUCERX_STEPS must be positive, got %d", cfg.Steps)
	}
	format, err := production.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	machine, err := loadMachine(cfg, log)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := promadapter.NewActorMetrics(reg)
	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info("serving metrics", slog.String("addr", cfg.MetricsAddr))
	}

	svc := reducerx.Interpret(machine, reducerx.WithLogger(log), reducerx.WithMetrics(metrics), reducerx.WithID(machine.ID()))
	if err := svc.Start(); err != nil {
		return err
	}
	defer svc.Stop()

	// Every state plus the initial replay fits, so nothing is dropped.
	snapshots := make(chan production.Snapshot, cfg.Steps+1)
	publisher := production.NewChannelPublisher[definition.Context](snapshots)
	svc.Subscribe(publisher.Observe)

	walk, err := reducerx.NewTransitionProbe[definition.Context](svc, "WALK", reducerx.WithLogger(log))
	if err != nil {
		return err
	}
	defer walk.Close()
	walk.Subscribe(func(ok bool) {
		log.Info("walk availability", slog.Bool("available", ok))
	})

	var src extensibility.EventSource
	timer := reducerx.NewEvent("TIMER", nil)
	if cfg.Tick > 0 {
		ticker := extensibility.NewTimerEventSource(timer, cfg.Tick)
		defer ticker.Stop()
		src = ticker
	} else {
		ch := make(chan reducerx.Event, cfg.Steps)
		for i := 0; i < cfg.Steps; i++ {
			ch <- timer
		}
		close(ch)
		src = extensibility.NewChannelEventSource(ch)
	}

	sent, err := extensibility.Pump(ctx, src, svc, cfg.Steps)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("events sent", slog.Int("sent", sent))

	_ = publisher.Close()
	for s := range snapshots {
		fmt.Fprintln(out, "---")
		if err := production.WriteSnapshot(out, s, format); err != nil {
			return err
		}
	}

	final := svc.State()
	fmt.Fprintf(out, "---\n# walk available: %t\n", walk.Value())
	fmt.Fprint(out, production.ExportDOT(machine.Describe(), final.Value))
	return nil
}

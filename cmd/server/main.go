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

	httpadapter "daynight/internal/adapter/http"
	"daynight/internal/adapter/logging"
	metricsinmem "daynight/internal/adapter/metrics/inmemory"
	gormrepo "daynight/internal/adapter/repo/gorm"
	memrepo "daynight/internal/adapter/repo/memory"
	"daynight/internal/adapter/scene"
	"daynight/internal/adapter/terminal"
	"daynight/internal/adapter/ws"
	"daynight/internal/app/control"
	"daynight/internal/app/history"
	"daynight/internal/app/ports"
	"daynight/internal/app/status"
	"daynight/internal/app/tick"
	"daynight/internal/config"
	"daynight/internal/domain/cycle"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(settings.LogLevel, settings.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, settings, logger); err != nil {
		logger.Error("daynight stopped", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("daynight stopped")
}

type stores struct {
	States ports.PhaseStateStore
	Events ports.PhaseEventRepository
	Tx     ports.TxManager
}

func run(ctx context.Context, settings config.Settings, logger *zap.Logger) error {
	st, err := buildStores(ctx, settings, logger)
	if err != nil {
		return err
	}

	c, err := cycle.New(settings.Cycle)
	if err != nil {
		return fmt.Errorf("build cycle: %w", err)
	}

	kpi := metricsinmem.NewRecorder()
	light := scene.NewLight(settings.Cycle.InitialIntensity)
	material := scene.NewMaterial()
	lightmaps := scene.NewLightmapRegistry()
	label := &scene.Label{}
	lightmaps.OnSwap(func(phase cycle.Phase, entries []cycle.LightmapEntry) {
		logger.Debug("lightmaps swapped", zap.String("phase", string(phase)), zap.Int("count", len(entries)))
	})

	runID := uuid.NewString()
	runner := tick.NewRunner(c, tick.Config{
		TickHz:    settings.TickHz,
		QueueSize: settings.QueueSize,
		Resume:    settings.Resume,
		RunID:     runID,
	}, tick.Deps{
		Light:     light,
		Material:  material,
		Lightmaps: lightmaps,
		Display:   label,
		States:    st.States,
		Events:    st.Events,
		TxManager: st.Tx,
		Metrics:   kpi,
		Logger:    logger,
	})

	hub := ws.NewHub(runner, logger)
	runner.Subscribe(hub)

	var view *terminal.View
	if settings.TUI {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		view = terminal.NewView(screen, runner)
		runner.Subscribe(view)
	}

	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start cycle: %w", err)
	}

	h := httpadapter.Handler{
		StatusUC:  status.UseCase{Frames: runner, States: st.States, Lightmaps: lightmaps},
		ControlUC: control.UseCase{Controls: runner},
		HistoryUC: history.UseCase{Events: st.Events},
		KPI:       kpi,
		Logger:    logger,
	}
	hz := server.Default(server.WithHostPorts(settings.HTTPAddr))
	h.RegisterRoutes(hz)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub.Handler())
	wsServer := &http.Server{Addr: settings.WSAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ignoreCanceled(runner.Run(gctx))
	})
	g.Go(func() error {
		if err := hz.Run(); err != nil && gctx.Err() == nil {
			return fmt.Errorf("http api: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("websocket: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer scancel()
		return errors.Join(hz.Shutdown(sctx), wsServer.Shutdown(sctx))
	})
	if view != nil {
		g.Go(func() error {
			defer cancel()
			return ignoreCanceled(view.Run(gctx))
		})
	}

	logger.Info("daynight started",
		zap.String("run_id", runID),
		zap.String("http_addr", settings.HTTPAddr),
		zap.String("ws_addr", settings.WSAddr),
		zap.Int("tick_hz", settings.TickHz),
		zap.Bool("persistent", settings.DSN != ""),
	)
	return g.Wait()
}

func buildStores(ctx context.Context, settings config.Settings, logger *zap.Logger) (stores, error) {
	if settings.DSN == "" {
		store := memrepo.NewStore()
		return stores{
			States: memrepo.NewPhaseStateRepo(store),
			Events: memrepo.NewPhaseEventRepo(store),
			Tx:     memrepo.NewTxManager(store),
		}, nil
	}

	db, err := gormrepo.OpenPostgres(settings.DSN, logger)
	if err != nil {
		return stores{}, err
	}
	if settings.MigrationsDir != "" {
		applied, err := gormrepo.ApplyMigrations(ctx, db, os.DirFS(settings.MigrationsDir))
		if err != nil {
			return stores{}, fmt.Errorf("apply migrations: %w", err)
		}
		if len(applied) > 0 {
			logger.Info("migrations applied", zap.Strings("versions", applied))
		}
	}
	return stores{
		States: gormrepo.NewPhaseStateRepo(db),
		Events: gormrepo.NewPhaseEventRepo(db),
		Tx:     gormrepo.NewTxManager(db),
	}, nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

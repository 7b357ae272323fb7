// cmd/camwatch/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/fdot3/camwatch/pkg/alerts"
	"github.com/fdot3/camwatch/pkg/api"
	"github.com/fdot3/camwatch/pkg/config"
	"github.com/fdot3/camwatch/pkg/db"
	"github.com/fdot3/camwatch/pkg/health"
	"github.com/fdot3/camwatch/pkg/lifecycle"
	"github.com/fdot3/camwatch/pkg/metrics"
	"github.com/fdot3/camwatch/pkg/notify"
	"github.com/fdot3/camwatch/pkg/probe"
	"github.com/fdot3/camwatch/pkg/remediation"
	"github.com/fdot3/camwatch/pkg/rules"
)

func main() {
	log.Printf("Starting camwatch...")

	configPath := flag.String("config", "/etc/camwatch/camwatch.json", "Path to config file")
	flag.Parse()

	var cfg config.CamwatchConfig
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	tracker := health.NewTracker(store)
	if err := tracker.Rehydrate(); err != nil {
		log.Fatalf("Failed to rehydrate device state: %v", err)
	}

	prober := probe.NewCameraProber(cfg.Probe)
	monitor := health.NewMonitor(cfg.Devices, prober, tracker,
		time.Duration(cfg.CheckInterval), cfg.Probe.Concurrency)

	notifier := buildNotifier(&cfg)

	alertCtrl := alerts.NewController(store, notifier, cfg.Alerting)
	alertCtrl.Rehydrate(cfg.Devices)

	rebootAction := remediation.NewHTTPRebootAction(
		cfg.Probe.Username, cfg.Probe.Password, time.Duration(cfg.Probe.Timeout))
	remediationCtrl := remediation.NewController(store, rebootAction, cfg.Remediation)
	remediationCtrl.Rehydrate(cfg.Devices)

	collector := metrics.NewManager(0)
	engine := rules.NewEngine(store, notifier, cfg.Devices, cfg.RuleInterval)
	server := api.NewServer(cfg.ListenAddr, store, tracker, monitor, collector, remediationCtrl, alertCtrl)

	monitor.OnOutcome(alertCtrl)
	monitor.OnOutcome(remediationCtrl)
	monitor.OnOutcome(collector)
	monitor.OnOutcome(server.Hub())

	err = lifecycle.RunServer(context.Background(), &lifecycle.ServerOptions{
		ServiceName: "camwatch",
		Services: []lifecycle.Service{
			server,
			monitorService{monitor},
			engineService{engine},
			summaryService{ctrl: alertCtrl, interval: time.Duration(cfg.SummaryInterval)},
			cleanupService{store: store, retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour},
		},
	})
	if err != nil {
		log.Fatalf("camwatch failed: %v", err)
	}
}

func buildNotifier(cfg *config.CamwatchConfig) *notify.Multi {
	var notifiers []notify.Notifier

	for _, hook := range cfg.Webhooks {
		notifiers = append(notifiers, notify.NewWebhookNotifier(hook))
	}

	if cfg.SMTP != nil {
		notifiers = append(notifiers, notify.NewSMTPNotifier(*cfg.SMTP))
	}

	if len(notifiers) == 0 {
		log.Printf("No notification channels configured, alerts will only be recorded")
	}

	return notify.NewMulti(notifiers...)
}

type monitorService struct {
	monitor *health.Monitor
}

func (s monitorService) Start(ctx context.Context) error {
	err := s.monitor.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func (s monitorService) Stop(context.Context) error {
	s.monitor.Stop()
	return nil
}

type engineService struct {
	engine *rules.Engine
}

func (s engineService) Start(ctx context.Context) error {
	err := s.engine.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func (s engineService) Stop(context.Context) error {
	s.engine.Stop()
	return nil
}

type summaryService struct {
	ctrl     *alerts.Controller
	interval time.Duration
}

func (s summaryService) Start(ctx context.Context) error {
	s.ctrl.RunSummaryLoop(ctx, s.interval)
	return nil
}

func (summaryService) Stop(context.Context) error {
	return nil
}

// cleanupService prunes old health events and closed downtime intervals
// a few times a day.
type cleanupService struct {
	store     db.Service
	retention time.Duration
}

func (s cleanupService) Start(ctx context.Context) error {
	if err := s.store.CleanOldData(s.retention); err != nil {
		log.Printf("Data cleanup failed: %v", err)
	}

	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.store.CleanOldData(s.retention); err != nil {
				log.Printf("Data cleanup failed: %v", err)
			}
		}
	}
}

func (cleanupService) Stop(context.Context) error {
	return nil
}

package main

import (
	"fmt"
	"os"
	"time"

	"subcontrol-be/internal/bootstrap"
	"subcontrol-be/internal/config"
	"subcontrol-be/internal/pkg/logger"
	"subcontrol-be/internal/repository/unitofwork"
	adminEvents "subcontrol-be/pkg/admin/events"
	"subcontrol-be/pkg/admin/subscription"
	"subcontrol-be/pkg/billing"
	pktNats "subcontrol-be/pkg/nats"

	"github.com/spf13/cobra"
)

var (
	atFlag   string
	jsonFlag bool
)

var rootCmd = &cobra.Command{
	Use:           "subctl",
	Short:         "Operator tool for the subscription billing store",
	Long:          `Inspects and reconciles the configured store (STORE_BACKEND) without going through the HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&atFlag, "at", "", "evaluate as of this date (YYYY-MM-DD or RFC3339) instead of now")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "print JSON instead of a table")

	rootCmd.AddCommand(dashboardCmd, attentionCmd, reconcileCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is what every store-backed command needs.
type env struct {
	cfg     *config.Config
	log     logger.ILogger
	factory unitofwork.RepositoryFactory
	manager *subscription.Manager
	close   func()
}

func setup() (*env, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.NewConsoleLogger()

	factory, closeStore, err := bootstrap.OpenStore(cfg, log)
	if err != nil {
		return nil, err
	}
	closers := []func(){func() { _ = closeStore() }}

	// Overdue events from reconcile go to NATS when it is configured; otherwise they are dropped.
	var sink adminEvents.Sink
	if cfg.App.NatsURL != "" {
		if pub, err := pktNats.NewPublisher(cfg.App.NatsURL, log); err == nil {
			sink = pub
			closers = append(closers, pub.Close)
		}
	}

	manager := subscription.NewManager(log, adminEvents.NewBusPublisher(sink, log))
	if atFlag != "" {
		at, err := billing.ParseDate("at", atFlag)
		if err != nil {
			return nil, err
		}
		manager.SetClock(func() time.Time { return at })
	}

	return &env{
		cfg:     cfg,
		log:     log,
		factory: factory,
		manager: manager,
		close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			_ = log.Sync()
		},
	}, nil
}

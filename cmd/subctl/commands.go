package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/pkg/logger"
	"subcontrol-be/pkg/admin/dashboard"
	"subcontrol-be/pkg/admin/mapper"
	"subcontrol-be/pkg/billing"
	"subcontrol-be/pkg/events"
	pktNats "subcontrol-be/pkg/nats"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print headline metrics and the attention list",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDashboard(cmd.Context())
		if err != nil {
			return err
		}
		return renderDashboard(cmd.OutOrStdout(), d, jsonFlag)
	},
}

var attentionCmd = &cobra.Command{
	Use:   "attention",
	Short: "List overdue subscriptions and those renewing within three days",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDashboard(cmd.Context())
		if err != nil {
			return err
		}
		return renderAttention(cmd.OutOrStdout(), d.Attention, jsonFlag)
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Mark expired active subscriptions overdue and persist the change",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		ctx := cmd.Context()
		changed, err := e.manager.Reconcile(ctx, e.factory.NewUnitOfWork(ctx))
		if err != nil {
			return err
		}
		return renderReconciled(cmd.OutOrStdout(), changed, jsonFlag)
	},
}

var durableFlag string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream billing events from NATS until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()
		if e.cfg.App.NatsURL == "" {
			return fmt.Errorf("NATS_URL is not set")
		}
		return watch(cmd.Context(), e.cfg.App.NatsURL, e.log, cmd.OutOrStdout())
	},
}

func init() {
	watchCmd.Flags().StringVar(&durableFlag, "durable", "", "durable consumer name; empty only shows new events")
}

func loadDashboard(ctx context.Context) (*dashboard.Dashboard, error) {
	e, err := setup()
	if err != nil {
		return nil, err
	}
	defer e.close()

	// one-shot process, nothing to cache
	agg := dashboard.NewAggregator(e.log, e.manager, 0)
	return agg.GetDashboard(ctx, e.factory.NewUnitOfWork(ctx))
}

func watch(ctx context.Context, url string, log logger.ILogger, out io.Writer) error {
	sub, err := pktNats.NewSubscriber(url, log)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	enc := json.NewEncoder(out)
	err = sub.Subscribe(ctx, "events.>", durableFlag, func(_ context.Context, ev events.Event) error {
		return enc.Encode(map[string]interface{}{
			"type":        ev.EventType(),
			"occurred_at": ev.Timestamp().Format(time.RFC3339),
			"data":        ev.Payload(),
		})
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

func renderDashboard(w io.Writer, d *dashboard.Dashboard, asJSON bool) error {
	if asJSON {
		return writeJSON(w, mapper.DashboardToResponse(d))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "As of\t%s\n", d.TakenAt.Format(time.DateOnly))
	fmt.Fprintf(tw, "Customers\t%d\n", d.Stats.TotalCustomers)
	fmt.Fprintf(tw, "Active subscriptions\t%d\n", d.Stats.ActiveSubscriptions)
	fmt.Fprintf(tw, "Overdue subscriptions\t%d\n", d.Stats.OverdueSubscriptions)
	fmt.Fprintf(tw, "MRR\t%s\n", d.Stats.MRR.StringFixed(2))
	fmt.Fprintf(tw, "Total revenue\t%s\n", d.Stats.TotalRevenue.StringFixed(2))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	return renderAttention(w, d.Attention, false)
}

func renderAttention(w io.Writer, items []billing.AttentionItem, asJSON bool) error {
	if asJSON {
		return writeJSON(w, mapper.DashboardToResponse(&dashboard.Dashboard{Attention: items}).Attention)
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "Nothing needs attention.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CUSTOMER\tPLAN\tAMOUNT\tRENEWAL\tSTATUS")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			item.CustomerName,
			item.PlanName,
			item.Amount.StringFixed(2),
			item.Subscription.NextRenewal.Format(time.DateOnly),
			item.Subscription.Status,
		)
	}
	return tw.Flush()
}

func renderReconciled(w io.Writer, changed []*entity.Subscription, asJSON bool) error {
	if asJSON {
		ids := make([]string, 0, len(changed))
		for _, s := range changed {
			ids = append(ids, s.Id.String())
		}
		return writeJSON(w, map[string]interface{}{"marked_overdue": ids})
	}
	if len(changed) == 0 {
		_, err := fmt.Fprintln(w, "All subscriptions are up to date.")
		return err
	}
	for _, s := range changed {
		fmt.Fprintf(w, "%s overdue since %s\n", s.Id, s.NextRenewal.Format(time.DateOnly))
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

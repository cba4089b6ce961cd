package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maglo/maglo/internal/config"
	"github.com/maglo/maglo/internal/format"
	"github.com/maglo/maglo/internal/query"
	"github.com/maglo/maglo/internal/session"
	"github.com/maglo/maglo/pkg/client"
	"github.com/maglo/maglo/pkg/domain"
)

// runSnapshot fetches every dashboard resource once and prints a plain-text
// report. Partial failures print what loaded plus the per-resource errors.
func runSnapshot(cfg *config.Config, store *session.Store) error {
	if !store.IsAuthenticated() {
		return fmt.Errorf("not signed in — run maglo and sign in first")
	}

	c := client.NewWithTimeout(cfg.APIBaseURL, store.Token(), cfg.HTTPTimeout)
	d := query.NewDashboard(c, query.NopNotifier{}, dashConfig(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	d.FetchAll(ctx) //nolint:errcheck // per-resource errors are reported below

	fmt.Print(renderSnapshot(d.Data(), d.Flags(), store.Locale()))
	if d.Flags().HasError {
		return fmt.Errorf("some resources failed to load")
	}
	return nil
}

// renderSnapshot formats the dashboard data as a plain report.
func renderSnapshot(data query.Data, flags query.Flags, locale string) string {
	var b strings.Builder

	section := func(title, resource string, write func()) {
		fmt.Fprintf(&b, "%s\n", strings.ToUpper(title))
		if err := flags.Errors[resource]; err != nil {
			fmt.Fprintf(&b, "  error: %v\n\n", err)
			return
		}
		write()
		b.WriteString("\n")
	}

	section("summary", query.ResourceSummary, func() {
		if data.Summary == nil {
			return
		}
		metric := func(label string, v domain.Metric) {
			dir := "+"
			if v.Change.Trend == "down" {
				dir = "-"
			}
			fmt.Fprintf(&b, "  %-14s %12s  (%s%s)\n", label,
				format.Amount(v.Amount, v.Currency), dir, format.Percent(v.Change.Percentage))
		}
		metric("total balance", data.Summary.TotalBalance)
		metric("total expense", data.Summary.TotalExpense)
		metric("total savings", data.Summary.TotalSavings)
	})

	section("working capital", query.ResourceCapital, func() {
		if data.Capital == nil {
			return
		}
		wc := data.Capital
		fmt.Fprintf(&b, "  %s  (assets %s, liabilities %s, current ratio %.2f)\n",
			format.Amount(wc.WorkingCapital, wc.Currency),
			format.Amount(wc.CurrentAssets, wc.Currency),
			format.Amount(wc.CurrentLiabilities, wc.Currency),
			wc.CurrentRatio)
	})

	section("wallets", query.ResourceWallets, func() {
		for _, w := range data.Wallets {
			fmt.Fprintf(&b, "  %-10s %-20s %12s\n", w.Type, w.Name, format.Amount(w.Balance, w.Currency))
		}
	})

	section("recent transactions", query.ResourceTransactions, func() {
		for _, tx := range data.Transactions {
			fmt.Fprintf(&b, "  %-12s %-24s %12s\n", format.Date(tx.Date, locale),
				tx.Description, format.SignedAmount(tx.Amount, tx.Currency, tx.Type))
		}
	})

	section("scheduled transfers", query.ResourceTransfers, func() {
		for _, tr := range data.Transfers {
			if !tr.IsActive {
				continue
			}
			fmt.Fprintf(&b, "  %-12s %-24s %12s  %s\n", format.Date(tr.ScheduledDate, locale),
				tr.Description, format.Amount(tr.Amount, tr.Currency), tr.Frequency)
		}
	})

	return b.String()
}

package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/maglo/maglo/internal/config"
	"github.com/maglo/maglo/internal/query"
	"github.com/maglo/maglo/pkg/domain"
)

func testConfig() *config.Config {
	return config.Load()
}

func snapshotFixture() (query.Data, query.Flags) {
	data := query.Data{
		Summary: &domain.FinancialSummary{
			TotalBalance: domain.Metric{Amount: 5240.21, Currency: "USD", Change: domain.Change{Percentage: 12.5, Trend: "up"}},
			TotalExpense: domain.Metric{Amount: 250.8, Currency: "USD", Change: domain.Change{Percentage: 3.1, Trend: "down"}},
			TotalSavings: domain.Metric{Amount: 550.25, Currency: "USD", Change: domain.Change{Percentage: 8.2, Trend: "up"}},
		},
		Capital: &domain.WorkingCapital{WorkingCapital: 1200, CurrentAssets: 2000, CurrentLiabilities: 800, CurrentRatio: 2.5, Currency: "USD"},
		Wallets: []domain.Wallet{
			{Name: "Everyday", Type: domain.WalletChecking, Balance: 1800.5, Currency: "USD", IsActive: true},
		},
		Transactions: []domain.Transaction{
			{Description: "Salary", Amount: 3100, Currency: "USD", Type: domain.TxIncome, Date: "2026-08-01"},
		},
		Transfers: []domain.ScheduledTransfer{
			{Description: "Rent", Amount: 1500, Currency: "USD", ScheduledDate: "2026-09-01", Frequency: "monthly", IsActive: true},
			{Description: "Old gym", Amount: 45, Currency: "USD", ScheduledDate: "2026-09-03", Frequency: "monthly", IsActive: false},
		},
	}
	flags := query.Flags{
		IsSuccess: true,
		Errors: map[string]error{
			query.ResourceSummary:      nil,
			query.ResourceCapital:      nil,
			query.ResourceWallets:      nil,
			query.ResourceTransactions: nil,
			query.ResourceTransfers:    nil,
		},
	}
	return data, flags
}

func TestRenderSnapshot(t *testing.T) {
	data, flags := snapshotFixture()
	out := renderSnapshot(data, flags, "en-US")

	for _, want := range []string{
		"SUMMARY",
		"WORKING CAPITAL",
		"WALLETS",
		"RECENT TRANSACTIONS",
		"SCHEDULED TRANSFERS",
		"$5,240.21",
		"+12.5%",
		"-3.1%",
		"Everyday",
		"+$3,100.00",
		"Aug 1, 2026",
		"Rent",
		"monthly",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Old gym") {
		t.Errorf("inactive transfer must not print:\n%s", out)
	}
}

func TestRenderSnapshotPartialFailure(t *testing.T) {
	data, flags := snapshotFixture()
	data.Capital = nil
	flags.IsSuccess = false
	flags.HasError = true
	flags.Errors[query.ResourceCapital] = errors.New("token expired")

	out := renderSnapshot(data, flags, "en-US")
	if !strings.Contains(out, "error: token expired") {
		t.Errorf("expected capital error line:\n%s", out)
	}
	// Surviving sections still print.
	if !strings.Contains(out, "$5,240.21") {
		t.Errorf("summary should still print:\n%s", out)
	}
}

func TestDashConfigMapsEverySetting(t *testing.T) {
	cfg := testConfig()
	qc := dashConfig(cfg)

	if qc.RecentLimit != cfg.RecentLimit {
		t.Errorf("RecentLimit = %d, want %d", qc.RecentLimit, cfg.RecentLimit)
	}
	if qc.Retries != cfg.RetryCount || qc.RetryDelay != cfg.RetryDelay || qc.Backoff != cfg.RetryBackoff {
		t.Error("retry policy not carried over")
	}
	if qc.StaleTransactions != cfg.StaleTransactions || qc.StaleSummary != cfg.StaleSummary {
		t.Error("staleness windows not carried over")
	}
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maglo/maglo/internal/format"
	"github.com/maglo/maglo/internal/query"
	"github.com/maglo/maglo/pkg/domain"
)

// staleCheckInterval is how often the dashboard looks for outlived staleness
// windows and kicks off background refetches.
const staleCheckInterval = 30 * time.Second

// fetchedMsg signals that one resource fetch has settled; the view reads the
// resulting state straight from the dashboard.
type fetchedMsg struct {
	resource string
}

type staleTickMsg time.Time

func staleTickCmd() tea.Cmd {
	return tea.Tick(staleCheckInterval, func(t time.Time) tea.Msg {
		return staleTickMsg(t)
	})
}

type dashModel struct {
	dash      *query.Dashboard
	user      *domain.User
	locale    string
	cursor    int // selected recent transaction
	frame     int
	statusMsg string
	width     int
	height    int
}

func newDashModel(d *query.Dashboard, user *domain.User, locale string) dashModel {
	return dashModel{dash: d, user: user, locale: locale}
}

func (m dashModel) Init() tea.Cmd {
	cmds := append(m.fetchCmds(), staleTickCmd())
	return tea.Batch(cmds...)
}

// fetchCmds returns one command per resource so each fetch settles
// independently; a failing section never blocks the rest.
func (m dashModel) fetchCmds() []tea.Cmd {
	d := m.dash
	return []tea.Cmd{
		func() tea.Msg {
			d.Summary.Fetch(context.Background())
			return fetchedMsg{resource: query.ResourceSummary}
		},
		func() tea.Msg {
			d.Capital.Fetch(context.Background())
			return fetchedMsg{resource: query.ResourceCapital}
		},
		func() tea.Msg {
			d.Wallets.Fetch(context.Background())
			return fetchedMsg{resource: query.ResourceWallets}
		},
		func() tea.Msg {
			d.Transactions.Fetch(context.Background())
			return fetchedMsg{resource: query.ResourceTransactions}
		},
		func() tea.Msg {
			d.Transfers.Fetch(context.Background())
			return fetchedMsg{resource: query.ResourceTransfers}
		},
	}
}

func (m dashModel) Update(msg tea.Msg) (dashModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pulseTickMsg:
		m.frame++
		return m, nil

	case fetchedMsg:
		// Clamp the cursor in case the transaction list shrank.
		if n := len(m.dash.Transactions.State().Data); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case staleTickMsg:
		m.dash.RefetchStale(context.Background())
		return m, staleTickCmd()

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m dashModel) updateKeys(msg tea.KeyMsg) (dashModel, tea.Cmd) {
	m.statusMsg = ""

	switch msg.String() {
	case "r":
		return m, tea.Batch(m.fetchCmds()...)
	case "j", "down":
		if m.cursor < len(m.dash.Transactions.State().Data)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "c":
		txs := m.dash.Transactions.State().Data
		if m.cursor < len(txs) {
			tx := txs[m.cursor]
			line := fmt.Sprintf("%s %s %s", tx.Description,
				format.SignedAmount(tx.Amount, tx.Currency, tx.Type),
				format.Date(tx.Date, m.locale))
			if err := clipboard.WriteAll(line); err != nil {
				m.statusMsg = "clipboard unavailable"
			} else {
				m.statusMsg = "transaction copied"
			}
		}
	}
	return m, nil
}

// sectionHeader renders a section title with its live fetch indicator: a
// spinner on first load, a refresh marker when stale data is still shown.
func (m dashModel) sectionHeader(title string, loading, hasData bool) string {
	h := sectionHeaderStyle.Render(strings.ToUpper(title))
	if loading && hasData {
		return h + " " + refreshStyle.Render("⟳ refreshing")
	}
	if loading {
		return h + " " + spinner(m.frame)
	}
	return h
}

// sectionError renders the failure line shown under a section header. Stale
// data, when present, stays rendered below it.
func sectionError(err error) string {
	msg := "request failed"
	if err != nil {
		msg = err.Error()
	}
	return errorStyle.Render("  ✗ "+msg) + metaStyle.Render("  (r to retry)")
}

func (m dashModel) View() string {
	var b strings.Builder

	greeting := "Welcome back"
	if m.user != nil && m.user.FullName != "" {
		greeting = greetingFor(time.Now().Hour()) + ", " + firstName(m.user.FullName)
	}
	fmt.Fprintf(&b, " %s\n\n", normalStyle.Render(greeting))

	m.viewSummary(&b)
	m.viewCapital(&b)
	m.viewWallets(&b)
	m.viewTransactions(&b)
	m.viewTransfers(&b)

	if m.statusMsg != "" {
		fmt.Fprintf(&b, " %s\n", successStyle.Render(m.statusMsg))
	}
	return b.String()
}

func (m dashModel) viewSummary(b *strings.Builder) {
	st := m.dash.Summary.State()
	fmt.Fprintf(b, " %s\n", m.sectionHeader("summary", st.IsLoading, st.HasData))
	if st.IsError {
		fmt.Fprintf(b, "%s\n", sectionError(st.Err))
	}
	if st.HasData {
		s := st.Data
		metric := func(label string, v domain.Metric) string {
			return fmt.Sprintf("  %s %s %s",
				dimStyle.Render(fmt.Sprintf("%-14s", label)),
				selectedStyle.Render(format.Amount(v.Amount, v.Currency)),
				trendArrow(v.Change.Trend, v.Change.Percentage))
		}
		fmt.Fprintf(b, "%s\n%s\n%s\n",
			metric("total balance", s.TotalBalance),
			metric("total expense", s.TotalExpense),
			metric("total savings", s.TotalSavings))
		if !st.LastUpdated.IsZero() {
			fmt.Fprintf(b, "  %s\n", metaStyle.Render("updated "+format.Relative(st.LastUpdated)))
		}
	}
	b.WriteString("\n")
}

func (m dashModel) viewCapital(b *strings.Builder) {
	st := m.dash.Capital.State()
	fmt.Fprintf(b, " %s\n", m.sectionHeader("working capital", st.IsLoading, st.HasData))
	if st.IsError {
		fmt.Fprintf(b, "%s\n", sectionError(st.Err))
	}
	if st.HasData && st.Data != nil {
		wc := st.Data
		fmt.Fprintf(b, "  %s %s\n",
			tealStyle.Render(format.Amount(wc.WorkingCapital, wc.Currency)),
			metaStyle.Render(fmt.Sprintf("assets %s · liabilities %s · current ratio %.2f",
				format.Amount(wc.CurrentAssets, wc.Currency),
				format.Amount(wc.CurrentLiabilities, wc.Currency),
				wc.CurrentRatio)))
	}
	b.WriteString("\n")
}

func (m dashModel) viewWallets(b *strings.Builder) {
	st := m.dash.Wallets.State()
	fmt.Fprintf(b, " %s\n", m.sectionHeader("wallets", st.IsLoading, st.HasData))
	if st.IsError {
		fmt.Fprintf(b, "%s\n", sectionError(st.Err))
	}
	if st.HasData {
		if len(st.Data) == 0 {
			fmt.Fprintf(b, "  %s\n", dimStyle.Render("no wallets yet"))
		}
		for _, w := range st.Data {
			status := ""
			if !w.IsActive {
				status = metaStyle.Render("  inactive")
			}
			fmt.Fprintf(b, "  %s %s %s%s\n",
				WalletStyle(w.Type).Render(fmt.Sprintf("%-10s", w.Type)),
				normalStyle.Render(fmt.Sprintf("%-20s", truncStr(w.Name, 20))),
				selectedStyle.Render(format.Amount(w.Balance, w.Currency)),
				status)
		}
	}
	b.WriteString("\n")
}

func (m dashModel) viewTransactions(b *strings.Builder) {
	st := m.dash.Transactions.State()
	fmt.Fprintf(b, " %s\n", m.sectionHeader("recent transactions", st.IsLoading, st.HasData))
	if st.IsError {
		fmt.Fprintf(b, "%s\n", sectionError(st.Err))
	}
	if st.HasData {
		if len(st.Data) == 0 {
			fmt.Fprintf(b, "  %s\n", dimStyle.Render("no transactions yet"))
		}
		for i, tx := range st.Data {
			amountStyle := expenseStyle
			if tx.Type == domain.TxIncome {
				amountStyle = incomeStyle
			}
			line := fmt.Sprintf("%-24s %-12s %s",
				truncStr(tx.Description, 24),
				format.Date(tx.Date, m.locale),
				amountStyle.Render(format.SignedAmount(tx.Amount, tx.Currency, tx.Type)))
			if i == m.cursor {
				fmt.Fprintf(b, "  %s %s\n", accentStyle.Render(">"), selectedRowBg.Render(line))
			} else {
				fmt.Fprintf(b, "    %s\n", normalStyle.Render(line))
			}
		}
	}
	b.WriteString("\n")
}

func (m dashModel) viewTransfers(b *strings.Builder) {
	st := m.dash.Transfers.State()
	fmt.Fprintf(b, " %s\n", m.sectionHeader("scheduled transfers", st.IsLoading, st.HasData))
	if st.IsError {
		fmt.Fprintf(b, "%s\n", sectionError(st.Err))
	}
	if st.HasData {
		if len(st.Data) == 0 {
			fmt.Fprintf(b, "  %s\n", dimStyle.Render("no scheduled transfers"))
		}
		var total float64
		currency := ""
		for _, tr := range st.Data {
			if !tr.IsActive {
				continue
			}
			total += tr.Amount
			currency = tr.Currency
			fmt.Fprintf(b, "  %s %s %s %s\n",
				dimStyle.Render(fmt.Sprintf("%-12s", format.Date(tr.ScheduledDate, m.locale))),
				normalStyle.Render(fmt.Sprintf("%-24s", truncStr(tr.Description, 24))),
				expenseStyle.Render(format.Amount(tr.Amount, tr.Currency)),
				metaStyle.Render(tr.Frequency))
		}
		if total > 0 {
			fmt.Fprintf(b, "  %s %s\n",
				metaStyle.Render("total scheduled"),
				selectedStyle.Render(format.Amount(total, currency)))
		}
	}
	b.WriteString("\n")
}

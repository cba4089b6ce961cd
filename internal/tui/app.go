package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	maglog "github.com/maglo/maglo/internal/log"
	"github.com/maglo/maglo/internal/query"
	"github.com/maglo/maglo/internal/session"
	"github.com/maglo/maglo/pkg/client"
	"github.com/maglo/maglo/pkg/domain"
)

type view int

const (
	viewAuth view = iota
	viewDashboard
)

// App is the root Bubbletea model.
type App struct {
	client  *client.Client
	store   *session.Store
	dashCfg query.DashboardConfig
	logger  *maglog.Logger
	toasts  *Toasts
	toast   toastModel
	view    view
	auth    authModel
	dash    dashModel
	user    *domain.User
	width   int
	height  int
	frame   int
}

// NewApp creates the TUI application. A stored session skips the auth form
// and opens straight on the dashboard.
func NewApp(c *client.Client, store *session.Store, dashCfg query.DashboardConfig, logger *maglog.Logger) App {
	if logger == nil {
		logger = maglog.Discard("tui")
	}
	a := App{
		client:  c,
		store:   store,
		dashCfg: dashCfg,
		logger:  logger,
		toasts:  NewToasts(),
		auth:    newAuthModel(c),
	}
	if tok := store.Token(); tok != "" {
		a.client = c.WithToken(tok)
		a.user = store.User()
		a.view = viewDashboard
		a.dash = a.newDashboard()
	}
	return a
}

func (a App) newDashboard() dashModel {
	d := query.NewDashboard(a.client, a.toasts, a.dashCfg)
	return newDashModel(d, a.user, a.store.Locale())
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{pulseTickCmd(), a.toasts.listen()}
	if a.view == viewDashboard {
		cmds = append(cmds, a.dash.Init())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + toast(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.auth, _ = a.auth.Update(bodyMsg)
		a.dash, _ = a.dash.Update(bodyMsg)
		return a, nil

	case pulseTickMsg:
		a.frame++
		a.dash, _ = a.dash.Update(msg)
		return a, pulseTickCmd()

	case toastMsg:
		a.logger.Info("notification", "resource", msg.resource, "error", msg.isError, "text", msg.text)
		return a, tea.Batch(a.toast.show(msg), a.toasts.listen())

	case toastGoneMsg:
		a.toast.expire(msg)
		return a, nil

	case authDoneMsg:
		var cmd tea.Cmd
		a.auth, cmd = a.auth.Update(msg)
		if msg.err == nil && msg.mode == modeSignIn && msg.result != nil {
			res := msg.result
			if err := a.store.Set(res.AccessToken, res.User); err != nil {
				a.logger.Warn("persist session", "err", err)
			}
			a.client = a.client.WithToken(res.AccessToken)
			a.user = &res.User
			a.view = viewDashboard
			a.dash = a.newDashboard()
			return a, a.dash.Init()
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.view == viewDashboard {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "ctrl+l":
				return a.logout()
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewAuth:
		a.auth, cmd = a.auth.Update(msg)
	case viewDashboard:
		a.dash, cmd = a.dash.Update(msg)
	}
	return a, cmd
}

// logout clears the stored session and drops back to the sign-in form.
func (a App) logout() (tea.Model, tea.Cmd) {
	if err := a.store.Clear(); err != nil {
		a.logger.Warn("clear session", "err", err)
	}
	a.client = a.client.WithToken("")
	a.user = nil
	a.view = viewAuth
	a.auth = newAuthModel(a.client)
	return a, nil
}

func (a App) View() string {
	logo := renderLogo(a.frame)
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo + "\n"

	var body, help string
	switch a.view {
	case viewAuth:
		body = a.auth.View()
		help = " " + helpEntry("tab", "next field") + "  " + helpEntry("enter", "submit") + "  " +
			helpEntry("ctrl+t", "switch mode") + "  " + helpEntry("ctrl+c", "quit")
	case viewDashboard:
		body = a.dash.View()
		help = " " + helpEntry("r", "refresh") + "  " + helpEntry("j/k", "select") + "  " +
			helpEntry("c", "copy") + "  " + helpEntry("ctrl+l", "logout") + "  " + helpEntry("q", "quit")
	}

	toastLine := " " + a.toast.View()

	// Chrome budget: header(2) + toast(1) + help(1) = 4 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, body, toastLine, help)
}

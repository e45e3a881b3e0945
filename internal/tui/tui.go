package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/roster/internal/config"
	"github.com/charmbracelet/roster/internal/customer"
	"github.com/charmbracelet/roster/internal/tui/components/customers"
	"github.com/charmbracelet/roster/internal/tui/styles"
	"github.com/charmbracelet/roster/internal/tui/util"
)

const defaultStatusTTL = 3 * time.Second

// appModel hosts the customer table and the status line.
type appModel struct {
	width, height int
	keyMap        KeyMap
	cfg           *config.Config

	customers customers.Customers
	status    *util.InfoMsg
	statusSeq int
}

type clearStatusMsg struct {
	seq int
}

func (a *appModel) Init() tea.Cmd {
	return tea.Batch(a.customers.Init(), a.initHint())
}

// initHint points first time users of a project at `roster config init`.
// The hint is shown once per project.
func (a *appModel) initHint() tea.Cmd {
	needs, err := config.ProjectNeedsInitialization(a.cfg)
	if err != nil {
		return util.ReportError(err)
	}
	if !needs {
		return nil
	}
	if err := config.MarkProjectInitialized(a.cfg); err != nil {
		return util.ReportError(err)
	}
	return util.CmdHandler(util.InfoMsg{
		Type: util.InfoTypeInfo,
		Msg:  "Run roster config init to tune the list for this project",
		TTL:  10 * time.Second,
	})
}

func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, a.customers.SetSize(msg.Width, max(0, msg.Height-1))
	case util.InfoMsg:
		a.status = &msg
		a.statusSeq++
		ttl := msg.TTL
		if ttl == 0 {
			ttl = defaultStatusTTL
		}
		seq := a.statusSeq
		return a, tea.Tick(ttl, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		})
	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.status = nil
		}
		return a, nil
	case util.ClearStatusMsg:
		a.status = nil
		return a, nil
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" || (!a.customers.Searching() && key.Matches(msg, a.keyMap.Quit)) {
			a.customers.Close()
			return a, tea.Quit
		}
	}
	_, cmd := a.customers.Update(msg)
	return a, cmd
}

func (a *appModel) statusView() string {
	t := styles.CurrentTheme()
	if a.status == nil {
		return t.S().Subtle.Render("q quit")
	}
	switch a.status.Type {
	case util.InfoTypeError:
		return t.S().Error.Render(styles.ErrorIcon + " " + a.status.Msg)
	case util.InfoTypeWarn:
		return t.S().Warning.Render(styles.WarningIcon + " " + a.status.Msg)
	default:
		return t.S().Info.Render(styles.InfoIcon + " " + a.status.Msg)
	}
}

func (a *appModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.customers.View(),
		a.statusView(),
	)
}

// New creates the application model for d configured by cfg.
func New(cfg *config.Config, d *customer.Dataset) tea.Model {
	l := cfg.Options.List
	return &appModel{
		keyMap: DefaultKeyMap(),
		cfg:    cfg,
		customers: customers.New(d,
			customers.WithPageSize(l.PageSize),
			customers.WithLoadThreshold(l.LoadThreshold),
			customers.WithOverscan(l.Overscan),
			customers.WithEstimatedRowHeight(l.EstimatedRowHeight),
			customers.WithDebounce(l.DebounceDelay()),
			customers.WithFrameInterval(l.FrameInterval()),
			customers.WithCompact(cfg.Options.TUI.CompactMode),
			customers.WithCompactChanged(func(compact bool) tea.Cmd {
				if err := cfg.SetCompactMode(compact); err != nil {
					return util.ReportError(err)
				}
				return nil
			}),
		),
	}
}

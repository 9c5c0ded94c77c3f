package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/hotprospects/hotprospects/internal/config"
	"github.com/hotprospects/hotprospects/internal/notify"
	"github.com/hotprospects/hotprospects/internal/prefs"
	"github.com/hotprospects/hotprospects/internal/prospect"
	"github.com/hotprospects/hotprospects/internal/service"
)

// App ties together the tabs: one list per filter, then the Me tab.
type App struct {
	ctx      context.Context
	services Services
	cfg      config.Config
	log      logrus.FieldLogger
	keys     keyMap
	help     help.Model
	lists    []*listTab
	me       *meTab
	reloads  uint64
	active   int
	status   string
	isError  bool
	fullHelp bool
	width    int

	// prospect id -> pending reminder id
	reminders map[string]string
}

type Services struct {
	Prospects *service.ProspectService
	Notifier  *notify.Scheduler
}

func New(ctx context.Context, cfg config.Config, services Services, profile prefs.Profile, log logrus.FieldLogger) *App {
	a := &App{
		ctx:      ctx,
		services: services,
		cfg:      cfg,
		log:      log,
		keys:     defaultKeys(),
		help:     help.New(),
	}
	a.reminders = make(map[string]string)
	for _, f := range prospect.Filters() {
		a.lists = append(a.lists, newListTab(f))
	}
	a.me = newMeTab(profile, cfg.Profile.Path)
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.reload(), a.waitForNotification())
}

// reload re-reads every filtered view from the store.
func (a *App) reload() tea.Cmd {
	a.reloads++
	cmds := make([]tea.Cmd, 0, len(a.lists))
	for _, t := range a.lists {
		cmds = append(cmds, a.loadRows(t.filter, a.reloads))
	}
	return tea.Batch(cmds...)
}

func (a *App) loadRows(f prospect.Filter, seq uint64) tea.Cmd {
	return func() tea.Msg {
		rows, err := a.services.Prospects.ByFilter(a.ctx, f)
		if err != nil {
			return errMsg{err}
		}
		return rowsMsg{filter: f, seq: seq, rows: rows}
	}
}

func (a *App) waitForNotification() tea.Cmd {
	if a.services.Notifier == nil {
		return nil
	}
	ch := a.services.Notifier.Delivered()
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg(n)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
	case tea.KeyMsg:
		return a.handleKey(m)
	case rowsMsg:
		if t := a.listFor(m.filter); t != nil && m.seq >= t.loaded {
			t.loaded = m.seq
			t.setRows(m.rows)
		}
	case changedMsg:
		if m.err != nil {
			a.setError(m.err)
		} else {
			a.setStatus(m.status)
		}
		return a, a.reload()
	case statusMsg:
		a.setStatus(string(m))
	case errMsg:
		a.setError(m.error)
	case notificationMsg:
		a.setStatus(fmt.Sprintf("Reminder: %s (%s)", m.Title, m.Subtitle))
		for pid, id := range a.reminders {
			if id == m.ID {
				delete(a.reminders, pid)
			}
		}
		cmds := []tea.Cmd{a.waitForNotification()}
		if m.Sound {
			cmds = append(cmds, bell)
		}
		return a, tea.Batch(cmds...)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	// text entry owns the keyboard until it is submitted or cancelled
	if t := a.activeList(); t != nil && t.mode != modeBrowse {
		return a, a.handleListInput(t, m)
	}
	if a.onMe() && a.me.editing() {
		return a, a.handleMeEdit(m)
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.NextTab):
		a.switchTab(a.active + 1)
		return a, nil
	case key.Matches(m, a.keys.PrevTab):
		a.switchTab(a.active - 1)
		return a, nil
	case key.Matches(m, a.keys.JumpTab):
		a.switchTab(int(m.String()[0] - '1'))
		return a, nil
	case key.Matches(m, a.keys.Help):
		a.fullHelp = !a.fullHelp
		return a, nil
	}

	if a.onMe() {
		return a, a.handleMeKey(m)
	}
	return a, a.handleListKey(a.activeList(), m)
}

func (a *App) switchTab(i int) {
	n := len(a.lists) + 1
	a.active = ((i % n) + n) % n
	a.status = ""
	a.isError = false
}

func (a *App) onMe() bool { return a.active == len(a.lists) }

func (a *App) activeList() *listTab {
	if a.active < len(a.lists) {
		return a.lists[a.active]
	}
	return nil
}

func (a *App) listFor(f prospect.Filter) *listTab {
	for _, t := range a.lists {
		if t.filter == f {
			return t
		}
	}
	return nil
}

func (a *App) setStatus(s string) {
	a.status = s
	a.isError = false
}

func (a *App) setError(err error) {
	a.log.WithError(err).Error("tui action failed")
	a.status = "error: " + err.Error()
	a.isError = true
}

// mutate runs fn against the store and reports back with a changedMsg.
func (a *App) mutate(done string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(a.ctx); err != nil {
			return changedMsg{err: err}
		}
		return changedMsg{status: done}
	}
}

func bell() tea.Msg {
	fmt.Fprint(os.Stderr, "\a")
	return nil
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")
	if a.onMe() {
		b.WriteString(a.me.view())
	} else {
		b.WriteString(a.activeList().view())
	}
	b.WriteString("\n")
	if a.status != "" {
		style := statusStyle
		if a.isError {
			style = errorStyle
		}
		b.WriteString(style.Render(a.status) + "\n")
	}
	b.WriteString(a.help.ShortHelpView(a.helpBindings()))
	return b.String()
}

func (a *App) renderTabs() string {
	labels := make([]string, 0, len(a.lists)+1)
	for i, t := range a.lists {
		labels = append(labels, a.tabLabel(i, t.filter.Title()))
	}
	labels = append(labels, a.tabLabel(len(a.lists), "Me"))
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

func (a *App) tabLabel(i int, title string) string {
	label := fmt.Sprintf("%d %s", i+1, title)
	if i == a.active {
		return activeTabStyle.Render(label)
	}
	return tabStyle.Render(label)
}

func (a *App) helpBindings() []key.Binding {
	if a.onMe() {
		if a.me.editing() {
			return a.keys.editHelp()
		}
		return a.keys.meHelp()
	}
	if a.activeList().mode != modeBrowse {
		return a.keys.inputHelp()
	}
	return a.keys.listHelp(a.fullHelp)
}

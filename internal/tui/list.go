package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/hotprospects/hotprospects/internal/database/repository"
	"github.com/hotprospects/hotprospects/internal/notify"
	"github.com/hotprospects/hotprospects/internal/prospect"
)

type listMode int

const (
	modeBrowse listMode = iota
	modeScan
	modeSearch
)

// listTab shows the prospects matching one filter.
type listTab struct {
	filter    prospect.Filter
	rows      []repository.Prospect
	cursor    int
	selection prospect.Selection
	mode      listMode
	input     textinput.Model
	query     string
	loaded    uint64
}

func newListTab(f prospect.Filter) *listTab {
	return &listTab{filter: f, input: newInput("")}
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// setRows replaces the tab's rows with a fresh read and drops selected ids
// that are gone.
func (t *listTab) setRows(rows []repository.Prospect) {
	t.rows = rows
	ids := make([]string, len(rows))
	for i, p := range rows {
		ids[i] = p.ID
	}
	t.selection.Prune(ids)
	t.clampCursor()
}

// visible is rows narrowed by the search query.
func (t *listTab) visible() []repository.Prospect {
	return prospect.Apply(t.rows, prospect.Search(t.query))
}

func (t *listTab) clampCursor() {
	n := len(t.visible())
	if t.cursor >= n {
		t.cursor = n - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *listTab) current() (repository.Prospect, bool) {
	rows := t.visible()
	if t.cursor < 0 || t.cursor >= len(rows) {
		return repository.Prospect{}, false
	}
	return rows[t.cursor], true
}

// selectedNames lists selected prospects by name, in list order.
func (t *listTab) selectedNames() []string {
	var names []string
	for _, p := range t.rows {
		if t.selection.Contains(p.ID) {
			names = append(names, p.Name)
		}
	}
	return names
}

func (t *listTab) selected() []repository.Prospect {
	var out []repository.Prospect
	for _, p := range t.rows {
		if t.selection.Contains(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func (t *listTab) openInput(mode listMode, placeholder, value string) {
	t.mode = mode
	t.input.Placeholder = placeholder
	t.input.SetValue(value)
	t.input.CursorEnd()
	t.input.Focus()
}

func (t *listTab) closeInput() {
	t.mode = modeBrowse
	t.input.Blur()
	t.input.SetValue("")
}

func (a *App) handleListKey(t *listTab, m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if t.cursor < len(t.visible())-1 {
			t.cursor++
		}
	case key.Matches(m, a.keys.Toggle):
		if p, ok := t.current(); ok {
			t.selection.Toggle(p.ID)
		}
	case key.Matches(m, a.keys.Delete):
		return a.deleteRows(t)
	case key.Matches(m, a.keys.Contacted):
		return a.markContacted(t)
	case key.Matches(m, a.keys.Pin):
		p, ok := t.current()
		if !ok {
			return nil
		}
		verb := "Pinned"
		if p.IsPinned {
			verb = "Unpinned"
		}
		return a.mutate(verb+" "+p.Name, func(ctx context.Context) error {
			return a.services.Prospects.TogglePinned(ctx, p)
		})
	case key.Matches(m, a.keys.Remind):
		if p, ok := t.current(); ok {
			return a.remind(p)
		}
	case key.Matches(m, a.keys.Scan):
		return func() tea.Msg {
			p, err := a.services.Prospects.AddSample(a.ctx)
			if err != nil {
				return changedMsg{err: err}
			}
			return changedMsg{status: "Scanned " + p.Name}
		}
	case key.Matches(m, a.keys.ScanInput):
		t.openInput(modeScan, "name|email", "")
	case key.Matches(m, a.keys.Search):
		t.openInput(modeSearch, "search", t.query)
	case key.Matches(m, a.keys.Clear):
		t.query = ""
		t.selection.Clear()
		t.clampCursor()
	}
	return nil
}

func (a *App) handleListInput(t *listTab, m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Submit):
		value := t.input.Value()
		mode := t.mode
		t.closeInput()
		if mode == modeSearch {
			return nil
		}
		return a.scan(value)
	case key.Matches(m, a.keys.Cancel):
		if t.mode == modeSearch {
			t.query = ""
			t.clampCursor()
		}
		t.closeInput()
		return nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(m)
	if t.mode == modeSearch {
		t.query = t.input.Value()
		t.cursor = 0
	}
	return cmd
}

// deleteRows removes the selection, or the row under the cursor when
// nothing is selected.
func (a *App) deleteRows(t *listTab) tea.Cmd {
	targets := t.selected()
	if len(targets) == 0 {
		p, ok := t.current()
		if !ok {
			return nil
		}
		targets = []repository.Prospect{p}
	}
	t.selection.Clear()
	ids := idsOf(targets)
	return a.mutate(fmt.Sprintf("Deleted %s", describe(targets)), func(ctx context.Context) error {
		return a.services.Prospects.Delete(ctx, ids...)
	})
}

// markContacted toggles the row under the cursor. With a selection, every
// selected row is marked contacted unless all already are, in which case
// they are all marked uncontacted.
func (a *App) markContacted(t *listTab) tea.Cmd {
	targets := t.selected()
	if len(targets) == 0 {
		p, ok := t.current()
		if !ok {
			return nil
		}
		verb := "Marked contacted:"
		if p.IsContacted {
			verb = "Marked uncontacted:"
		}
		return a.mutate(verb+" "+p.Name, func(ctx context.Context) error {
			return a.services.Prospects.ToggleContacted(ctx, p)
		})
	}

	contacted := false
	for _, p := range targets {
		if !p.IsContacted {
			contacted = true
			break
		}
	}
	t.selection.Clear()
	ids := idsOf(targets)
	verb := "Marked uncontacted:"
	if contacted {
		verb = "Marked contacted:"
	}
	return a.mutate(verb+" "+describe(targets), func(ctx context.Context) error {
		return a.services.Prospects.SetContacted(ctx, contacted, ids...)
	})
}

func (a *App) scan(payload string) tea.Cmd {
	return func() tea.Msg {
		p, err := a.services.Prospects.Scan(a.ctx, payload)
		if errors.Is(err, prospect.ErrInvalidScan) {
			return errMsg{fmt.Errorf("scanning failed: %w", err)}
		}
		if err != nil {
			return changedMsg{err: err}
		}
		return changedMsg{status: "Scanned " + p.Name}
	}
}

// remind schedules a reminder for p, or cancels the one already pending.
func (a *App) remind(p repository.Prospect) tea.Cmd {
	n := a.services.Notifier
	if n == nil {
		return func() tea.Msg { return statusMsg("Reminders are unavailable") }
	}
	if id, ok := a.reminders[p.ID]; ok {
		delete(a.reminders, p.ID)
		if n.Cancel(id) {
			return func() tea.Msg { return statusMsg("Cancelled reminder for " + p.Name) }
		}
	}

	req := notify.Request{
		ID:       uuid.NewString(),
		Title:    "Contact " + p.Name,
		Subtitle: p.EmailAddress,
		Sound:    true,
		Delay:    a.cfg.Notify.Delay,
	}
	id, err := n.Schedule(req)
	if errors.Is(err, notify.ErrNotPermitted) {
		return func() tea.Msg { return statusMsg("Notifications are turned off") }
	}
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	a.reminders[p.ID] = id
	return func() tea.Msg {
		return statusMsg(fmt.Sprintf("Reminder for %s in %s", p.Name, req.Delay))
	}
}

func (t *listTab) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(t.filter.Title()))
	b.WriteString("\n")

	rows := t.visible()
	fmt.Fprintf(&b, "People: %d", len(rows))
	if t.query != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (search %q)", t.query)))
	}
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("Nobody here yet. Press s to scan someone in."))
		b.WriteString("\n")
	}
	for i, p := range rows {
		b.WriteString(t.renderRow(i, p))
		b.WriteString("\n")
	}

	if names := t.selectedNames(); len(names) > 0 {
		b.WriteString("\nYou selected: " + strings.Join(names, ", ") + "\n")
	}

	switch t.mode {
	case modeScan:
		b.WriteString("\nScan: " + t.input.View() + "\n")
	case modeSearch:
		b.WriteString("\nSearch: " + t.input.View() + "\n")
	}
	return b.String()
}

func (t *listTab) renderRow(i int, p repository.Prospect) string {
	marker := "  "
	if i == t.cursor {
		marker = cursorStyle.Render("▶ ")
	}
	check := "[ ]"
	if t.selection.Contains(p.ID) {
		check = "[x]"
	}
	pin := " "
	if p.IsPinned {
		pin = "*"
	}
	name := p.Name
	if p.IsContacted && t.filter == prospect.FilterNone {
		name = contactedStyle.Render(name + " ✓")
	}
	return fmt.Sprintf("%s%s %s %s  %s", marker, check, pin, name, dimStyle.Render(p.EmailAddress))
}

func idsOf(list []repository.Prospect) []string {
	ids := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	return ids
}

func describe(list []repository.Prospect) string {
	if len(list) == 1 {
		return list[0].Name
	}
	return fmt.Sprintf("%d people", len(list))
}

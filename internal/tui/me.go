package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hotprospects/hotprospects/internal/prefs"
	"github.com/hotprospects/hotprospects/internal/qr"
)

const (
	fieldName = iota
	fieldEmail
)

// meTab edits the user's profile and shows its QR code.
type meTab struct {
	profile   prefs.Profile
	fields    [2]textinput.Model
	focus     int
	isEditing bool
	code      qr.Code
	saver     *profileSaver
}

// profileSaver writes profile edits in the order they were made. A save
// overtaken by a newer one is skipped.
type profileSaver struct {
	path   string
	issued uint64

	mu      sync.Mutex
	written uint64
}

// save is called from Update only; the returned cmd may run on any goroutine.
func (s *profileSaver) save(p prefs.Profile) tea.Cmd {
	s.issued++
	seq := s.issued
	return func() tea.Msg {
		s.mu.Lock()
		defer s.mu.Unlock()
		if seq <= s.written {
			return nil
		}
		if err := prefs.SaveProfile(s.path, p); err != nil {
			return errMsg{err}
		}
		s.written = seq
		return nil
	}
}

func newMeTab(p prefs.Profile, path string) *meTab {
	m := &meTab{profile: p, saver: &profileSaver{path: path}}
	m.fields[fieldName] = newInput("Name")
	m.fields[fieldName].SetValue(p.Name)
	m.fields[fieldEmail] = newInput("Email address")
	m.fields[fieldEmail].SetValue(p.EmailAddress)
	m.code = qr.Generate(p.Payload())
	return m
}

func (m *meTab) editing() bool { return m.isEditing }

func (m *meTab) startEditing() {
	m.isEditing = true
	m.focusField(m.focus)
}

func (m *meTab) stopEditing() {
	m.isEditing = false
	for i := range m.fields {
		m.fields[i].Blur()
	}
}

func (m *meTab) focusField(i int) {
	m.focus = (i + len(m.fields)) % len(m.fields)
	for j := range m.fields {
		if j == m.focus {
			m.fields[j].Focus()
			m.fields[j].CursorEnd()
		} else {
			m.fields[j].Blur()
		}
	}
}

func (a *App) handleMeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Edit):
		a.me.startEditing()
	case key.Matches(msg, a.keys.Export):
		return a.exportQR()
	}
	return nil
}

func (a *App) handleMeEdit(msg tea.KeyMsg) tea.Cmd {
	m := a.me
	switch {
	case key.Matches(msg, a.keys.Cancel):
		m.stopEditing()
		return nil
	case key.Matches(msg, a.keys.NextField):
		m.focusField(m.focus + 1)
		return nil
	case key.Matches(msg, a.keys.PrevField):
		m.focusField(m.focus - 1)
		return nil
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	next := prefs.Profile{
		Name:         m.fields[fieldName].Value(),
		EmailAddress: m.fields[fieldEmail].Value(),
	}
	if next == m.profile {
		return cmd
	}
	m.profile = next
	m.code = qr.Generate(next.Payload())
	if m.code.Failed() {
		a.log.WithError(m.code.Err()).Warn("qr generation failed")
	}
	return tea.Batch(cmd, m.saver.save(next))
}

// exportQR writes the current code as a PNG to the configured export path.
func (a *App) exportQR() tea.Cmd {
	code := a.me.code
	path := a.cfg.Share.ExportPath
	size := a.cfg.Share.QRSize
	return func() tea.Msg {
		data, err := code.PNG(size)
		if err != nil {
			return errMsg{fmt.Errorf("export qr: %w", err)}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errMsg{fmt.Errorf("export qr: %w", err)}
		}
		a.log.WithField("path", path).Info("qr exported")
		return statusMsg("Shared QR code to " + path)
	}
}

func (m *meTab) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your code"))
	b.WriteString("\n\n")
	b.WriteString("Name:  " + m.fieldView(fieldName) + "\n")
	b.WriteString("Email: " + m.fieldView(fieldEmail) + "\n\n")
	b.WriteString(m.code.String())
	b.WriteString("\n")
	return b.String()
}

func (m *meTab) fieldView(i int) string {
	if m.isEditing {
		return m.fields[i].View()
	}
	return m.fields[i].Value()
}

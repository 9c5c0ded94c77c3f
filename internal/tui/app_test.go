package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/hotprospects/hotprospects/internal/config"
	"github.com/hotprospects/hotprospects/internal/database"
	"github.com/hotprospects/hotprospects/internal/database/repository"
	"github.com/hotprospects/hotprospects/internal/logging"
	"github.com/hotprospects/hotprospects/internal/notify"
	"github.com/hotprospects/hotprospects/internal/prefs"
	"github.com/hotprospects/hotprospects/internal/service"
)

type fixture struct {
	app *App
	svc *service.ProspectService
	db  *sqlx.DB
	cfg config.Config
}

func newFixture(t *testing.T, notifier *notify.Scheduler) fixture {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{
		Profile: config.ProfileConfig{Path: filepath.Join(dir, "profile.toml")},
		Notify:  config.NotifyConfig{Enabled: true, Delay: time.Hour},
		Share:   config.ShareConfig{ExportPath: filepath.Join(dir, "qrcode.png"), QRSize: 128},
	}
	log := logging.Discard()
	svc := &service.ProspectService{Prospects: repository.NewProspectRepo(db), Log: log}
	app := New(context.Background(), cfg, Services{Prospects: svc, Notifier: notifier}, prefs.DefaultProfile(), log)
	run(t, app, app.reload())
	return fixture{app: app, svc: svc, db: db, cfg: cfg}
}

// run executes cmd and feeds its messages back into the app until nothing
// is left to do.
func run(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			run(t, a, c)
		}
	default:
		_, next := a.Update(msg)
		run(t, a, next)
	}
}

func press(t *testing.T, a *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := a.Update(keyPress(k))
		run(t, a, cmd)
	}
}

func typeText(t *testing.T, a *App, s string) {
	t.Helper()
	for _, r := range s {
		press(t, a, string(r))
	}
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func rowNames(rows []repository.Prospect) []string {
	out := make([]string, 0, len(rows))
	for _, p := range rows {
		out = append(out, p.Name)
	}
	return out
}

func TestSampleScanShowsInEveryoneAndUncontacted(t *testing.T) {
	f := newFixture(t, nil)
	require.Contains(t, f.app.View(), "People: 0")

	press(t, f.app, "s")

	everyone, contacted, uncontacted := f.app.lists[0], f.app.lists[1], f.app.lists[2]
	require.Equal(t, []string{"Paul Hudson"}, rowNames(everyone.rows))
	require.Equal(t, "paul@hackingwithswift.com", everyone.rows[0].EmailAddress)
	require.False(t, everyone.rows[0].IsContacted)
	require.Empty(t, contacted.rows)
	require.Equal(t, []string{"Paul Hudson"}, rowNames(uncontacted.rows))

	view := f.app.View()
	require.Contains(t, view, "Everyone")
	require.Contains(t, view, "People: 1")
	require.Contains(t, view, "Scanned Paul Hudson")
}

func TestScanInputParsesPayload(t *testing.T) {
	f := newFixture(t, nil)

	press(t, f.app, "S")
	require.Equal(t, modeScan, f.app.lists[0].mode)
	typeText(t, f.app, "Amy|amy@example.com")
	press(t, f.app, "enter")

	require.Equal(t, modeBrowse, f.app.lists[0].mode)
	require.Equal(t, []string{"Amy"}, rowNames(f.app.lists[0].rows))
	require.Equal(t, "amy@example.com", f.app.lists[0].rows[0].EmailAddress)
}

func TestScanInputRejectsInvalidPayload(t *testing.T) {
	f := newFixture(t, nil)

	press(t, f.app, "S")
	typeText(t, f.app, "nobody")
	press(t, f.app, "enter")

	require.Empty(t, f.app.lists[0].rows)
	require.Contains(t, f.app.status, "invalid scan")
	require.True(t, f.app.isError)
}

func TestKeysInsideInputDoNotTriggerActions(t *testing.T) {
	f := newFixture(t, nil)

	press(t, f.app, "S")
	typeText(t, f.app, "qs4")
	require.Equal(t, 0, f.app.active)
	require.Empty(t, f.app.lists[0].rows)
	press(t, f.app, "esc")
	require.Equal(t, modeBrowse, f.app.lists[0].mode)
	require.Empty(t, f.app.lists[0].rows)
}

func TestOrderingIsByNameWhateverTheInsertOrder(t *testing.T) {
	for _, order := range [][]string{{"Bob", "Amy"}, {"Amy", "Bob"}} {
		f := newFixture(t, nil)
		for _, name := range order {
			_, err := f.svc.Add(context.Background(), name, name+"@example.com")
			require.NoError(t, err)
		}
		run(t, f.app, f.app.reload())
		require.Equal(t, []string{"Amy", "Bob"}, rowNames(f.app.lists[0].rows))
		require.Equal(t, []string{"Amy", "Bob"}, rowNames(f.app.lists[2].rows))
	}
}

func TestContactedToggleMovesRowBetweenTabs(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Add(context.Background(), "Amy", "amy@example.com")
	require.NoError(t, err)
	run(t, f.app, f.app.reload())

	press(t, f.app, "c")
	require.Equal(t, []string{"Amy"}, rowNames(f.app.lists[1].rows))
	require.Empty(t, f.app.lists[2].rows)

	press(t, f.app, "c")
	require.Empty(t, f.app.lists[1].rows)
	require.Equal(t, []string{"Amy"}, rowNames(f.app.lists[2].rows))
}

func TestSelectionAndBulkContacted(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for _, name := range []string{"Bob", "Amy", "Cal"} {
		_, err := f.svc.Add(ctx, name, "")
		require.NoError(t, err)
	}
	run(t, f.app, f.app.reload())
	list := f.app.lists[0]

	press(t, f.app, " ", " ")
	require.True(t, list.selection.IsEmpty())

	press(t, f.app, " ", "j", " ")
	require.Equal(t, 2, list.selection.Len())
	require.Contains(t, f.app.View(), "You selected: Amy, Bob")

	press(t, f.app, "c")
	require.True(t, list.selection.IsEmpty())
	require.Equal(t, []string{"Amy", "Bob"}, rowNames(f.app.lists[1].rows))
	require.Equal(t, []string{"Cal"}, rowNames(f.app.lists[2].rows))
}

func TestSelectionIsLocalToTab(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Add(context.Background(), "Amy", "")
	require.NoError(t, err)
	run(t, f.app, f.app.reload())

	press(t, f.app, " ")
	require.Equal(t, 1, f.app.lists[0].selection.Len())
	require.True(t, f.app.lists[2].selection.IsEmpty())
}

func TestDeleteRowAndSelection(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for _, name := range []string{"Amy", "Bob", "Cal"} {
		_, err := f.svc.Add(ctx, name, "")
		require.NoError(t, err)
	}
	run(t, f.app, f.app.reload())

	press(t, f.app, "d")
	require.Equal(t, []string{"Bob", "Cal"}, rowNames(f.app.lists[0].rows))

	press(t, f.app, " ", "j", " ", "d")
	require.Empty(t, f.app.lists[0].rows)
	require.True(t, f.app.lists[0].selection.IsEmpty())
}

func TestPinMarksRowWithoutReordering(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for _, name := range []string{"Amy", "Bob"} {
		_, err := f.svc.Add(ctx, name, "")
		require.NoError(t, err)
	}
	run(t, f.app, f.app.reload())

	press(t, f.app, "j", "p")
	rows := f.app.lists[0].rows
	require.Equal(t, []string{"Amy", "Bob"}, rowNames(rows))
	require.False(t, rows[0].IsPinned)
	require.True(t, rows[1].IsPinned)
}

func TestSearchNarrowsRows(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for _, name := range []string{"Amy Adams", "Bob Brown"} {
		_, err := f.svc.Add(ctx, name, "")
		require.NoError(t, err)
	}
	run(t, f.app, f.app.reload())
	list := f.app.lists[0]

	press(t, f.app, "/")
	typeText(t, f.app, "bob")
	require.Equal(t, []string{"Bob Brown"}, rowNames(list.visible()))

	press(t, f.app, "enter")
	require.Equal(t, "bob", list.query)
	require.Contains(t, f.app.View(), "People: 1")

	press(t, f.app, "esc")
	require.Empty(t, list.query)
	require.Len(t, list.visible(), 2)
}

func TestTabNavigation(t *testing.T) {
	f := newFixture(t, nil)

	press(t, f.app, "tab")
	require.Equal(t, 1, f.app.active)
	require.Contains(t, f.app.activeList().view(), "Contacted people")
	press(t, f.app, "tab")
	require.Contains(t, f.app.activeList().view(), "Uncontacted people")
	press(t, f.app, "tab")
	require.True(t, f.app.onMe())
	press(t, f.app, "tab")
	require.Equal(t, 0, f.app.active)

	press(t, f.app, "4")
	require.True(t, f.app.onMe())
	press(t, f.app, "h")
	require.Equal(t, 2, f.app.active)
}

func TestMeEditSavesProfileAndRegeneratesCode(t *testing.T) {
	f := newFixture(t, nil)

	press(t, f.app, "4")
	require.Contains(t, f.app.View(), "Anonymous")
	require.Equal(t, "Anonymous\nyou@yoursite.com", f.app.me.code.Payload())

	press(t, f.app, "e")
	require.True(t, f.app.me.editing())
	typeText(t, f.app, "X")

	saved, err := prefs.LoadProfile(f.cfg.Profile.Path)
	require.NoError(t, err)
	require.Equal(t, "AnonymousX", saved.Name)
	require.Equal(t, "AnonymousX\nyou@yoursite.com", f.app.me.code.Payload())
	require.False(t, f.app.me.code.Failed())

	press(t, f.app, "tab")
	typeText(t, f.app, "m")
	press(t, f.app, "esc")
	require.False(t, f.app.me.editing())

	saved, err = prefs.LoadProfile(f.cfg.Profile.Path)
	require.NoError(t, err)
	require.Equal(t, "you@yoursite.comm", saved.EmailAddress)
}

func TestExportWritesPNG(t *testing.T) {
	f := newFixture(t, nil)

	press(t, f.app, "4", "x")

	data, err := os.ReadFile(f.cfg.Share.ExportPath)
	require.NoError(t, err)
	require.Equal(t, []byte("\x89PNG"), data[:4])
	require.Contains(t, f.app.status, f.cfg.Share.ExportPath)
}

func TestRemindSchedulesNotification(t *testing.T) {
	sched := notify.NewScheduler(true, logging.Discard())
	t.Cleanup(sched.Close)
	f := newFixture(t, sched)
	_, err := f.svc.Add(context.Background(), "Amy", "amy@example.com")
	require.NoError(t, err)
	run(t, f.app, f.app.reload())

	press(t, f.app, "r")
	require.Equal(t, 1, sched.Pending())
	require.Contains(t, f.app.status, "Reminder for Amy")
}

func TestRemindWithoutPermission(t *testing.T) {
	sched := notify.NewScheduler(false, logging.Discard())
	t.Cleanup(sched.Close)
	f := newFixture(t, sched)
	_, err := f.svc.Add(context.Background(), "Amy", "amy@example.com")
	require.NoError(t, err)
	run(t, f.app, f.app.reload())

	press(t, f.app, "r")
	require.Equal(t, 0, sched.Pending())
	require.Equal(t, "Notifications are turned off", f.app.status)
}

func TestDeliveredNotificationShowsInStatus(t *testing.T) {
	f := newFixture(t, nil)

	f.app.Update(notificationMsg(notify.Notification{
		Request: notify.Request{Title: "Contact Amy", Subtitle: "amy@example.com"},
	}))
	require.Equal(t, "Reminder: Contact Amy (amy@example.com)", f.app.status)
}

func TestStorageFailureShowsError(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.db.Close())

	press(t, f.app, "s")
	require.True(t, f.app.isError)
	require.Contains(t, f.app.status, "error: ")
	require.Empty(t, f.app.lists[0].rows)
}

// collect runs cmd without feeding anything back, so reads can be replayed
// in any order.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func TestOlderReadNeverReplacesNewerOne(t *testing.T) {
	f := newFixture(t, nil)

	older := collect(f.app.reload())
	_, err := f.svc.Add(context.Background(), "Amy", "amy@example.com")
	require.NoError(t, err)
	newer := collect(f.app.reload())

	for _, msg := range newer {
		f.app.Update(msg)
	}
	for _, msg := range older {
		f.app.Update(msg)
	}
	require.Equal(t, []string{"Amy"}, rowNames(f.app.lists[0].rows))
	require.Equal(t, []string{"Amy"}, rowNames(f.app.lists[2].rows))
}

func TestProfileSavesLandInEditOrder(t *testing.T) {
	f := newFixture(t, nil)
	first := prefs.Profile{Name: "Am", EmailAddress: "a@x.com"}
	second := prefs.Profile{Name: "Amy", EmailAddress: "a@x.com"}

	saveFirst := f.app.me.saver.save(first)
	saveSecond := f.app.me.saver.save(second)
	run(t, f.app, saveSecond)
	run(t, f.app, saveFirst)

	saved, err := prefs.LoadProfile(f.cfg.Profile.Path)
	require.NoError(t, err)
	require.Equal(t, second, saved)
	require.False(t, f.app.isError)
}

func TestRemindTwiceCancels(t *testing.T) {
	sched := notify.NewScheduler(true, logging.Discard())
	t.Cleanup(sched.Close)
	f := newFixture(t, sched)
	_, err := f.svc.Add(context.Background(), "Amy", "amy@example.com")
	require.NoError(t, err)
	run(t, f.app, f.app.reload())

	press(t, f.app, "r")
	require.Equal(t, 1, sched.Pending())

	press(t, f.app, "r")
	require.Equal(t, 0, sched.Pending())
	require.Equal(t, "Cancelled reminder for Amy", f.app.status)

	press(t, f.app, "r")
	require.Equal(t, 1, sched.Pending())
}

func TestDeliveredReminderCanBeScheduledAgain(t *testing.T) {
	sched := notify.NewScheduler(true, logging.Discard())
	t.Cleanup(sched.Close)
	f := newFixture(t, sched)
	p, err := f.svc.Add(context.Background(), "Amy", "amy@example.com")
	require.NoError(t, err)
	run(t, f.app, f.app.reload())

	press(t, f.app, "r")
	id := f.app.reminders[p.ID]
	require.NotEmpty(t, id)

	f.app.Update(notificationMsg(notify.Notification{Request: notify.Request{ID: id, Title: "Contact Amy"}}))
	require.NotContains(t, f.app.reminders, p.ID)
}

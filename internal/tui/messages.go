package tui

import (
	"github.com/hotprospects/hotprospects/internal/database/repository"
	"github.com/hotprospects/hotprospects/internal/notify"
	"github.com/hotprospects/hotprospects/internal/prospect"
)

// rowsMsg carries a read of one filtered view. seq orders reads so a slow
// one never replaces a newer one.
type rowsMsg struct {
	filter prospect.Filter
	seq    uint64
	rows   []repository.Prospect
}

// changedMsg follows every store mutation; handling it reloads all views.
type changedMsg struct {
	status string
	err    error
}

type statusMsg string

type errMsg struct{ error }

type notificationMsg notify.Notification

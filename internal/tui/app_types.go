package tui

import (
	"context"
	"log/slog"
	"time"

	"countdown-cli/internal/document"
	"countdown-cli/internal/store"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
)

type tab int

const (
	tabEvents tab = iota
	tabSecrets
)

func (t tab) String() string {
	if t == tabSecrets {
		return "Secrets"
	}
	return "Events"
}

type modalKind int

const (
	modalNone modalKind = iota
	modalEditEvent
	modalConfirmQuit
	modalConfirmOpen
	modalPickFile
)

const unsavedChangesMsg = "Changes you made may not be saved."

type appModel struct {
	ctx     context.Context
	file    store.ConfigFile
	journal *store.Journal
	pretty  bool
	log     *slog.Logger
	now     func() time.Time

	doc *document.Document

	width  int
	height int

	tab     tab
	list    list.Model
	rows    *rowState
	secrets secretsForm

	modal        modalKind
	edit         editForm
	confirmFocus confirmModalFocus
	picker       filepicker.Model

	status    string
	statusErr bool
}

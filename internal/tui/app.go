package tui

import (
	"fmt"
	"time"

	"quire-cli/internal/editor"
	"quire-cli/internal/journal"
	"quire-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewPage view = iota
	viewNotebooks
	viewReading
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNewNotebook
	modalConfirmTear
	modalConfirmDelete
)

type minibufferClearMsg struct{ seq int }

type appModel struct {
	dir  string
	svc  *journal.Service
	sink *feedbackSink
	ctrl *editor.Controller

	width  int
	height int

	view    view
	editing bool

	notebooksList list.Model
	input         textinput.Model
	modal         modalKind
	modalForID    string

	minibufferText string
	minibufferSeq  int
}

func newAppModel(dir string, svc *journal.Service, sink *feedbackSink) appModel {
	if sink == nil {
		sink = NewFeedbackSink()
	}
	m := appModel{
		dir:  dir,
		svc:  svc,
		sink: sink,
		view: viewPage,
	}
	m.ctrl = editor.New(model.MaxPageClusters, func(f editor.Feedback) {
		sink.PushMessage(f.Message)
	})

	m.notebooksList = newList()
	m.input = textinput.New()
	m.input.Placeholder = "notebook name"
	m.input.CharLimit = 80

	m.bindCurrent()
	m.refreshNotebooks()
	return m
}

func newList() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("notebook", "notebooks")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases (common muscle memory).
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(cursorUpKeys, "ctrl+p")...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(cursorDownKeys, "ctrl+n")...)
	return l
}

// bindCurrent points the edit controller at the current page's buffer.
// Binding confirms the whole buffer, so it must happen after every page
// or notebook switch.
func (m *appModel) bindCurrent() {
	nb, ok := m.svc.Current()
	if !ok {
		return
	}
	p := nb.CurrentPage()
	if p == nil {
		return
	}
	m.ctrl.Bind(p.ID, p.Content)
}

func (m *appModel) refreshNotebooks() {
	curID := ""
	if it, ok := m.notebooksList.SelectedItem().(notebookItem); ok {
		curID = it.nb.ID
	}
	db := m.svc.DB()
	var items []list.Item
	for _, nb := range db.Notebooks {
		items = append(items, notebookItem{nb: nb, current: nb.ID == db.CurrentNotebookID})
	}
	m.notebooksList.SetItems(items)
	if curID != "" {
		for i, it := range m.notebooksList.Items() {
			if n, ok := it.(notebookItem); ok && n.nb.ID == curID {
				m.notebooksList.Select(i)
				break
			}
		}
	}
}

type notebookItem struct {
	nb      model.Notebook
	current bool
}

func (it notebookItem) Title() string {
	title := it.nb.Name
	if it.nb.Default {
		title += " (default)"
	}
	if it.current {
		title = "* " + title
	}
	return title
}

func (it notebookItem) Description() string {
	return fmt.Sprintf("%d pages used, %d torn", it.nb.UsedPagesCount(), it.nb.TornPagesCount())
}

func (it notebookItem) FilterValue() string { return it.nb.Name }

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case tea.BlurMsg:
		// Terminal focus loss locks the page being written.
		if m.editing {
			m.ctrl.OnFocusLost()
			m.editing = false
			m.svc.LockCurrentPage()
			m.bindCurrent()
		}
		return m, m.drainFeedback()

	case tea.FocusMsg:
		m.ctrl.OnFocusGained()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.view == viewNotebooks && m.modal == modalNone {
		var cmd tea.Cmd
		m.notebooksList, cmd = m.notebooksList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}
	if m.editing && m.view == viewPage {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	switch m.view {
	case viewPage:
		return m.handlePageKey(msg)
	case viewReading:
		return m.handleReadingKey(msg)
	case viewNotebooks:
		return m.handleNotebooksKey(msg)
	}
	return m, nil
}

func (m appModel) handlePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.svc.Navigate(-1)
		m.bindCurrent()
	case "right", "l":
		m.svc.Navigate(+1)
		m.bindCurrent()
	case "enter", "i":
		nb, ok := m.svc.Current()
		if !ok {
			break
		}
		p := nb.CurrentPage()
		switch {
		case p == nil:
		case p.Torn:
			m.sink.PushMessage("this page is torn")
		case p.Locked:
			m.sink.PushMessage("this page is completed")
		default:
			m.editing = true
			m.ctrl.Bind(p.ID, p.Content)
		}
	case "t":
		m.modal = modalConfirmTear
	case "n":
		m.refreshNotebooks()
		m.view = viewNotebooks
	case "v":
		m.view = viewReading
	}
	return m, m.drainFeedback()
}

func (m appModel) handleReadingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "v":
		m.view = viewPage
	case "left", "h":
		m.svc.Navigate(-1)
		m.bindCurrent()
	case "right", "l":
		m.svc.Navigate(+1)
		m.bindCurrent()
	}
	return m, m.drainFeedback()
}

func (m appModel) handleNotebooksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.view = viewPage
		return m, nil
	case "enter":
		if it, ok := m.notebooksList.SelectedItem().(notebookItem); ok {
			if err := m.svc.SelectNotebook(it.nb.ID); err == nil {
				m.bindCurrent()
				m.view = viewPage
			}
		}
		return m, m.drainFeedback()
	case "a":
		m.modal = modalNewNotebook
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case "d":
		if it, ok := m.notebooksList.SelectedItem().(notebookItem); ok {
			m.modal = modalConfirmDelete
			m.modalForID = it.nb.ID
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.notebooksList, cmd = m.notebooksList.Update(msg)
	return m, cmd
}

func (m appModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Stop writing without locking; the page stays resumable.
		m.ctrl.OnFocusLost()
		m.editing = false
		return m, m.drainFeedback()
	case "backspace":
		res := m.ctrl.DeleteRange(m.ctrl.Len()-1, m.ctrl.Len())
		if res.Accepted {
			// We host the controller's own buffer, so the echo always
			// matches; this settles a widened cluster delete.
			m.ctrl.OnDidChangeText(m.ctrl.Text())
			m.persistBuffer()
		}
		return m, m.drainFeedback()
	case "ctrl+v":
		m.ctrl.Paste("")
		return m, m.drainFeedback()
	case "ctrl+x":
		m.ctrl.Cut(editor.Range{Start: 0, End: m.ctrl.Len()})
		return m, m.drainFeedback()
	case "enter":
		return m.insertText("\n")
	case "tab":
		return m.insertText("\t")
	case "left", "right", "up", "down", "home", "end":
		// The cursor is pinned to the end of the buffer.
		m.ctrl.OnSelectionChanged(m.ctrl.Len())
		return m, nil
	}
	if msg.Type == tea.KeySpace {
		return m.insertText(" ")
	}
	if msg.Type == tea.KeyRunes && !msg.Alt {
		return m.insertText(string(msg.Runes))
	}
	return m, nil
}

func (m appModel) insertText(s string) (tea.Model, tea.Cmd) {
	if m.ctrl.Insert(m.ctrl.Len(), s) {
		m.persistBuffer()
	}
	return m, m.drainFeedback()
}

func (m *appModel) persistBuffer() {
	if err := m.svc.UpdateCurrentPageContent(m.ctrl.Text()); err != nil {
		m.sink.PushMessage("this page can no longer be edited")
		m.editing = false
		m.bindCurrent()
	}
}

func (m appModel) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalNewNotebook:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			m.input.Blur()
			return m, nil
		case "enter":
			if _, err := m.svc.CreateNotebook(m.input.Value()); err == nil {
				m.modal = modalNone
				m.input.Blur()
				m.refreshNotebooks()
				m.bindCurrent()
				m.view = viewPage
			}
			return m, m.drainFeedback()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modalConfirmTear:
		m.modal = modalNone
		if s := msg.String(); s == "y" || s == "enter" {
			if err := m.svc.TearCurrentPage(); err == nil {
				m.editing = false
				m.bindCurrent()
			}
		}
		return m, m.drainFeedback()

	case modalConfirmDelete:
		m.modal = modalNone
		id := m.modalForID
		m.modalForID = ""
		if s := msg.String(); s == "y" || s == "enter" {
			if err := m.svc.DeleteNotebook(id); err == nil {
				m.refreshNotebooks()
				m.bindCurrent()
			}
		}
		return m, m.drainFeedback()
	}
	m.modal = modalNone
	return m, nil
}

// drainFeedback flashes the newest queued signal in the minibuffer and
// schedules its auto-clear.
func (m *appModel) drainFeedback() tea.Cmd {
	msgs := m.sink.Drain()
	if len(msgs) == 0 {
		return nil
	}
	m.minibufferText = msgs[len(msgs)-1]
	m.minibufferSeq++
	seq := m.minibufferSeq
	return tea.Tick(journal.FeedbackTTL, func(time.Time) tea.Msg {
		return minibufferClearMsg{seq: seq}
	})
}

func (m *appModel) resize() {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.notebooksList.SetSize(w, h)
}

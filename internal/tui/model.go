// Package tui is the terminal front end of the library browser. It renders
// the library, lets the user choose a folder to scan or add a single file,
// and keeps the scan off the UI loop.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vrsandeep/storysphere/internal/core"
	"github.com/vrsandeep/storysphere/internal/jobs"
	"github.com/vrsandeep/storysphere/internal/library"
	"github.com/vrsandeep/storysphere/internal/models"
)

type mode int

const (
	modeBrowse mode = iota
	modeChooseFolder
	modeAddFile
	modeScanning
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusError
)

const initialStatus = "Pick a folder to begin…"

// scanDoneMsg carries the single outcome of a background scan.
type scanDoneMsg struct {
	root   string
	result *library.ScanResult
	err    error
}

// bookItem adapts a Book to the list component.
type bookItem struct{ book models.Book }

func (i bookItem) Title() string { return i.book.Title }

func (i bookItem) Description() string {
	if !i.book.HasFile() {
		return i.book.Author
	}
	return i.book.Author + " — " + i.book.Path
}

func (i bookItem) FilterValue() string { return i.book.Title + " " + i.book.Author }

// Model is the bubbletea model for the library browser.
type Model struct {
	app   *core.App
	mode  mode
	list  list.Model
	input textinput.Model
	spin  spinner.Model

	status     string
	statusKind statusKind

	// scanning is set from StartScan until its scanDoneMsg arrives, in
	// whatever mode the model is in meanwhile.
	scanning bool

	// lastDir is the folder most recently chosen; it pre-fills the
	// folder prompt and is never passed to the core.
	lastDir string
}

// New creates the model for app, showing whatever the library already holds.
func New(app *core.App) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Books"
	l.SetStatusBarItemName("book", "books")
	l.SetShowHelp(false)

	in := textinput.New()
	in.CharLimit = 4096

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		app:     app,
		list:    l,
		input:   in,
		spin:    s,
		status:  initialStatus,
		lastDir: app.Config().Library.Path,
	}
	m.refresh()
	return m
}

// INIT
func (m Model) Init() tea.Cmd { return nil }

// UPDATE
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(msg.Height-4, 1))
		return m, nil
	case scanDoneMsg:
		return m.finishScan(msg), nil
	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	switch m.mode {
	case modeChooseFolder, modeAddFile:
		return m.updateInput(msg)
	default:
		return m.updateBrowse(msg)
	}
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch key.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "o":
			if m.scanning {
				m.setStatus("A scan is already running.", statusError)
				return m, nil
			}
			return m.openPrompt(modeChooseFolder, "Folder: ", m.lastDir)
		case "a":
			return m.openPrompt(modeAddFile, "File: ", m.lastDir)
		case "r":
			m.app.Reset()
			m.refresh()
			m.setStatus("Library reset.", statusInfo)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.closePrompt()
			return m, nil
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			submitted := m.mode
			m.closePrompt()
			if value == "" {
				return m, nil
			}
			if submitted == modeChooseFolder {
				return m.startScan(value)
			}
			return m.addFile(value), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) openPrompt(md mode, prompt, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// closePrompt returns to browsing, or to the spinner if a scan is still
// in flight.
func (m *Model) closePrompt() {
	m.input.Blur()
	m.mode = modeBrowse
	if m.scanning {
		m.mode = modeScanning
	}
}

func (m Model) startScan(root string) (tea.Model, tea.Cmd) {
	ch, err := m.app.StartScan(root)
	if err != nil {
		if errors.Is(err, jobs.ErrAlreadyRunning) {
			m.setStatus("A scan is already running.", statusError)
		} else {
			m.setStatus("Scan failed: "+err.Error(), statusError)
		}
		return m, nil
	}

	m.mode = modeScanning
	m.scanning = true
	m.lastDir = root
	m.setStatus(fmt.Sprintf("Scanning %s…", root), statusInfo)
	return m, tea.Batch(m.spin.Tick, waitForScan(root, ch))
}

// waitForScan turns the scan's single outcome into a message.
func waitForScan(root string, ch <-chan core.ScanOutcome) tea.Cmd {
	return func() tea.Msg {
		out := <-ch
		return scanDoneMsg{root: root, result: out.Value, err: out.Err}
	}
}

func (m Model) finishScan(msg scanDoneMsg) Model {
	m.scanning = false
	if m.mode == modeScanning {
		m.mode = modeBrowse
	}
	if msg.err != nil {
		m.setStatus(scanStatus(nil, 0, msg.err), statusError)
		return m
	}

	added := m.app.ApplyScan(msg.result)
	m.refresh()
	kind := statusOK
	if len(msg.result.Books) == 0 {
		kind = statusInfo
	}
	m.setStatus(scanStatus(msg.result, added, nil), kind)
	return m
}

func (m Model) addFile(path string) Model {
	book, err := m.app.AddFile(path)
	if err != nil {
		m.setStatus("Could not add file: "+err.Error(), statusError)
		return m
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("Added %s.", book.Title), statusOK)
	return m
}

func (m *Model) refresh() {
	books := m.app.Books()
	items := make([]list.Item, len(books))
	for i, b := range books {
		items[i] = bookItem{book: b}
	}
	m.list.SetItems(items)
}

func (m *Model) setStatus(s string, kind statusKind) {
	m.status = s
	m.statusKind = kind
}

// scanStatus is the status line shown once a scan has finished.
func scanStatus(res *library.ScanResult, added int, err error) string {
	if err != nil {
		return "Scan failed: " + err.Error()
	}
	if len(res.Books) == 0 {
		return "No books found in that folder."
	}
	s := fmt.Sprintf("Done. %d new book(s), %d found", added, len(res.Books))
	if n := len(res.Degraded); n > 0 {
		s += fmt.Sprintf(", %d degraded", n)
	}
	return s + "."
}

// VIEW
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.list.View())
	b.WriteString("\n")

	switch m.mode {
	case modeChooseFolder, modeAddFile:
		b.WriteString(m.input.View())
	case modeScanning:
		b.WriteString(m.spin.View() + " " + statusStyle.Render(m.status))
	default:
		b.WriteString(m.renderStatus())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("o choose folder • a add file • r reset • / filter • q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render("📚 My E-Book Library"), b.String())
}

func (m Model) renderStatus() string {
	switch m.statusKind {
	case statusOK:
		return okStyle.Render(m.status)
	case statusError:
		return errorStyle.Render(m.status)
	default:
		return statusStyle.Render(m.status)
	}
}

// Package ui is the view-switching terminal front end: Home (assistant and
// expiring-soon overview), Items (filterable catalog) and Add (item form with
// photo analysis). All state changes happen in Update; the two enrichment
// calls run as commands whose completion messages re-enter the loop.
package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stash/internal/assist"
	"stash/internal/imaging"
	"stash/internal/inventory"
	"stash/internal/models"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0a84ff")).
			PaddingLeft(2)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9f0a"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	expiredBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1).
			Render("Expired")
)

// Views the front end switches between.
const (
	viewHome  = "home"
	viewAdd   = "add"
	viewItems = "items"
)

// Enricher is the AI surface the front end depends on.
type Enricher interface {
	AnalyzeImage(ctx context.Context, image []byte) (*models.AIAnalysisResult, error)
	Ask(ctx context.Context, query string, items []models.InventoryItem) string
}

// Model defines the application state
type Model struct {
	view string
	inv  *inventory.Collection
	ai   Enricher

	spinner spinner.Model
	width   int
	height  int

	// Home
	askInput textinput.Model
	asking   assist.Call
	answer   string

	// Items
	searchInput textinput.Model
	categoryIdx int
	catalog     list.Model

	// Add
	form      addForm
	analyzing assist.Call
	notice    string
	status    string
}

// New builds the front end over an item collection and enrichment client.
func New(inv *inventory.Collection, ai Enricher) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ask := textinput.New()
	ask.Placeholder = "Where are my batteries?"
	ask.CharLimit = 200
	ask.Width = 48
	ask.Focus()

	search := textinput.New()
	search.Placeholder = "Search items..."
	search.CharLimit = 100
	search.Width = 32

	catalog := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	catalog.Title = "My Items"
	catalog.SetFilteringEnabled(false)
	catalog.SetShowStatusBar(false)

	m := Model{
		view:        viewHome,
		inv:         inv,
		ai:          ai,
		spinner:     s,
		askInput:    ask,
		searchInput: search,
		catalog:     catalog,
		form:        newAddForm(),
	}
	m.refreshCatalog()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// filterCategory returns the category pill currently selected in the
// catalog view. Index 0 is the All sentinel.
func (m Model) filterCategory() models.Category {
	if m.categoryIdx == 0 {
		return models.CategoryAll
	}
	return models.Categories[m.categoryIdx-1]
}

// catalogEntry adapts an inventory item to the list widget.
type catalogEntry struct {
	item models.InventoryItem
}

func (e catalogEntry) Title() string { return e.item.Name }

func (e catalogEntry) Description() string {
	desc := e.item.Location
	if e.item.ExpiryDate != nil {
		desc += " · expires " + e.item.ExpiryDate.Format("Jan 2 2006")
	}
	return desc
}

func (e catalogEntry) FilterValue() string { return e.item.Name }

// refreshCatalog recomputes the filtered projection backing the list.
func (m *Model) refreshCatalog() {
	filtered := inventory.Filter(m.inv.Items(), m.searchInput.Value(), m.filterCategory())
	entries := make([]list.Item, len(filtered))
	for i, item := range filtered {
		entries[i] = catalogEntry{item: item}
	}
	m.catalog.SetItems(entries)
}

// Custom message types for the tea.Model
type answerMsg struct {
	text string
}

type analysisMsg struct {
	result  *models.AIAnalysisResult
	dataURL string
}

type analysisErrMsg struct {
	err error
}

// askAssistant queries the enrichment service about the current inventory.
// The client never fails outward, so this always yields an answerMsg.
func askAssistant(ai Enricher, query string, items []models.InventoryItem) tea.Cmd {
	return func() tea.Msg {
		return answerMsg{text: ai.Ask(context.Background(), query, items)}
	}
}

// analyzePhoto prepares the photo at path and requests a draft record for it.
func analyzePhoto(ai Enricher, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return analysisErrMsg{err: fmt.Errorf("opening photo: %w", err)}
		}
		defer f.Close()

		photo, err := imaging.Prepare(f)
		if err != nil {
			return analysisErrMsg{err: err}
		}

		result, err := ai.AnalyzeImage(context.Background(), photo.Data)
		if err != nil {
			return analysisErrMsg{err: err}
		}
		return analysisMsg{result: result, dataURL: photo.DataURL()}
	}
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		frameW, frameH := docStyle.GetFrameSize()
		m.catalog.SetSize(msg.Width-frameW, msg.Height-frameH-6)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case answerMsg:
		m.asking.Succeed()
		m.answer = msg.text
		return m, nil

	case analysisMsg:
		m.analyzing.Succeed()
		m.notice = ""
		m.form.merge(msg.result, msg.dataURL)
		return m, nil

	case analysisErrMsg:
		m.analyzing.Fail(msg.err)
		m.notice = "Could not auto-detect details. Please enter manually."
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+a":
			if m.view != viewAdd {
				m.switchTo(viewAdd)
				return m, nil
			}
		case "ctrl+l":
			if m.view != viewItems {
				m.switchTo(viewItems)
				return m, nil
			}
		case "esc":
			if m.view != viewHome {
				m.switchTo(viewHome)
				return m, nil
			}
		}
	}

	switch m.view {
	case viewHome:
		return m.updateHome(msg)
	case viewItems:
		return m.updateItems(msg)
	case viewAdd:
		return m.updateAdd(msg)
	}
	return m, nil
}

// switchTo changes the current view, resetting per-view transient state.
// An in-flight analysis keeps running; its result message finds the form
// state untouched when it lands.
func (m *Model) switchTo(view string) {
	m.view = view
	m.status = ""
	switch view {
	case viewHome:
		m.askInput.Focus()
		m.searchInput.Blur()
	case viewItems:
		m.searchInput.Focus()
		m.askInput.Blur()
		m.refreshCatalog()
	case viewAdd:
		m.askInput.Blur()
		m.searchInput.Blur()
		if !m.analyzing.Busy() {
			m.form = newAddForm()
			m.notice = ""
			m.analyzing = assist.Call{}
		}
		m.form.focusFirst()
	}
}

// View renders the UI
func (m Model) View() string {
	var body string
	switch m.view {
	case viewHome:
		body = m.viewHome()
	case viewItems:
		body = m.viewItems()
	case viewAdd:
		body = m.viewAdd()
	default:
		body = "Loading..."
	}
	return docStyle.Render(body + "\n\n" + m.navBar())
}

// navBar renders the persistent view-switch footer.
func (m Model) navBar() string {
	nav := "esc: home · ctrl+a: add · ctrl+l: items · ctrl+c: quit"
	if m.status != "" {
		nav = m.status + "\n" + nav
	}
	return subtleStyle.Render(nav)
}

func formatExpiry(item models.InventoryItem, now time.Time) string {
	label := item.ExpiryDate.Format("Jan 2 2006")
	if inventory.IsExpired(item, now) {
		return label + " " + expiredBadge
	}
	return warnStyle.Render(label)
}

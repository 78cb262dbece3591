package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"stash/internal/assist"
	"stash/internal/models"
)

// Form rows, in focus order. The category row cycles instead of taking text.
const (
	fieldName = iota
	fieldLocation
	fieldCategory
	fieldExpiry
	fieldNotes
	fieldPhoto
	fieldCount
)

// addForm holds the in-progress draft for a new item. An analysis result is
// merged into it; the draft is discarded on save or cancel.
type addForm struct {
	inputs   []textinput.Model
	focus    int
	category int // index into models.Categories
	imageURL string
	errText  string
}

func newAddForm() addForm {
	mk := func(placeholder string, width int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 200
		in.Width = width
		return in
	}
	f := addForm{
		inputs: []textinput.Model{
			fieldName:     mk("Item name", 40),
			fieldLocation: mk("Location (default: Unassigned)", 40),
			fieldCategory: {}, // cycled, not typed
			fieldExpiry:   mk("Expiry date YYYY-MM-DD (optional)", 40),
			fieldNotes:    mk("Notes (optional)", 40),
			fieldPhoto:    mk("Photo path — enter to analyze (optional)", 40),
		},
		category: categoryIndex(models.CategoryMisc),
	}
	return f
}

func categoryIndex(c models.Category) int {
	for i, known := range models.Categories {
		if known == c {
			return i
		}
	}
	return categoryIndex(models.CategoryMisc)
}

func (f *addForm) focusFirst() {
	f.focus = fieldName
	f.applyFocus()
}

func (f *addForm) applyFocus() {
	for i := range f.inputs {
		if i == f.focus && i != fieldCategory {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *addForm) moveFocus(delta int) {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.applyFocus()
}

// merge applies an analysis draft to the form: name and category always,
// the optional fields only when the draft carries them.
func (f *addForm) merge(result *models.AIAnalysisResult, dataURL string) {
	f.inputs[fieldName].SetValue(result.Name)
	f.category = categoryIndex(result.Category)
	if result.SuggestedLocation != "" {
		f.inputs[fieldLocation].SetValue(result.SuggestedLocation)
	}
	if result.ExpiryDate != nil {
		f.inputs[fieldExpiry].SetValue(result.ExpiryDate.Format("2006-01-02"))
	}
	if result.Notes != "" {
		f.inputs[fieldNotes].SetValue(result.Notes)
	}
	f.imageURL = dataURL
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "shift+tab":
			m.form.moveFocus(-1)
			return m, nil
		case "down", "tab":
			m.form.moveFocus(1)
			return m, nil
		case "left", "right":
			if m.form.focus == fieldCategory {
				delta := 1
				if key.String() == "left" {
					delta = -1
				}
				n := len(models.Categories)
				m.form.category = (m.form.category + delta + n) % n
				return m, nil
			}
		case "enter":
			if m.form.focus == fieldPhoto {
				path := strings.TrimSpace(m.form.inputs[fieldPhoto].Value())
				// The analyze control is disabled while a request is in flight.
				if path == "" || m.analyzing.Busy() {
					return m, nil
				}
				m.analyzing.Begin()
				m.notice = ""
				return m, analyzePhoto(m.ai, path)
			}
			m.form.moveFocus(1)
			return m, nil
		case "ctrl+s":
			return m.saveItem()
		}
	}

	if m.form.focus != fieldCategory {
		var cmd tea.Cmd
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// saveItem validates the draft and commits it. Nothing is mutated when
// validation fails, and saving is disabled while analysis is in flight.
func (m Model) saveItem() (tea.Model, tea.Cmd) {
	if m.analyzing.Busy() {
		return m, nil
	}

	name := strings.TrimSpace(m.form.inputs[fieldName].Value())
	if name == "" {
		m.form.errText = "Item name is required"
		return m, nil
	}

	var expiry *time.Time
	if raw := strings.TrimSpace(m.form.inputs[fieldExpiry].Value()); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			m.form.errText = "Expiry date must be YYYY-MM-DD"
			return m, nil
		}
		expiry = &t
	}

	item := models.NewItem(name,
		strings.TrimSpace(m.form.inputs[fieldLocation].Value()),
		models.Categories[m.form.category])
	item.ExpiryDate = expiry
	item.Notes = strings.TrimSpace(m.form.inputs[fieldNotes].Value())
	item.ImageURL = m.form.imageURL

	if err := m.inv.Add(item); err != nil {
		m.form.errText = err.Error()
		return m, nil
	}

	m.form = newAddForm()
	m.notice = ""
	m.analyzing = assist.Call{}
	m.switchTo(viewItems)
	m.status = "Item saved."
	return m, nil
}

func (m Model) viewAdd() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Add Item") + "\n\n")

	labels := []string{"Name", "Location", "Category", "Expiry", "Notes", "Photo"}
	for i, label := range labels {
		marker := "  "
		if m.form.focus == i {
			marker = "> "
		}
		b.WriteString(marker + label + "\n")
		if i == fieldCategory {
			cat := string(models.Categories[m.form.category])
			if m.form.focus == fieldCategory {
				cat = "< " + cat + " >"
			}
			b.WriteString("    " + cat + "\n")
		} else {
			b.WriteString("    " + m.form.inputs[i].View() + "\n")
		}
	}

	if m.analyzing.Busy() {
		b.WriteString("\n" + m.spinner.View() + " Analyzing photo... (save disabled)\n")
	}
	if m.notice != "" {
		b.WriteString("\n" + warnStyle.Render(m.notice) + "\n")
	}
	if m.form.errText != "" {
		b.WriteString("\n" + errorStyle.Render(m.form.errText) + "\n")
	}
	if m.form.imageURL != "" {
		b.WriteString("\n" + subtleStyle.Render("Photo attached.") + "\n")
	}

	b.WriteString("\n" + subtleStyle.Render("ctrl+s: save · tab/arrows: move · esc: cancel"))
	return b.String()
}

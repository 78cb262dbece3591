package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"stash/internal/models"
)

func (m Model) updateItems(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			m.categoryIdx = (m.categoryIdx + 1) % (len(models.Categories) + 1)
			m.refreshCatalog()
			return m, nil
		case "shift+tab":
			m.categoryIdx--
			if m.categoryIdx < 0 {
				m.categoryIdx = len(models.Categories)
			}
			m.refreshCatalog()
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.catalog, cmd = m.catalog.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.refreshCatalog()
	return m, cmd
}

func (m Model) viewItems() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("My Items") + "\n\n")
	b.WriteString(m.searchInput.View() + "\n")
	b.WriteString(m.categoryPills() + "\n\n")

	if len(m.catalog.Items()) == 0 {
		b.WriteString(subtleStyle.Render("No items found."))
	} else {
		b.WriteString(m.catalog.View())
	}

	b.WriteString("\n" + subtleStyle.Render("tab: next category · up/down: browse"))
	return b.String()
}

// categoryPills renders the category filter row with the selection marked.
func (m Model) categoryPills() string {
	pills := make([]string, 0, len(models.Categories)+1)
	for i, c := range append([]models.Category{models.CategoryAll}, models.Categories...) {
		label := string(c)
		if i == m.categoryIdx {
			label = titleStyle.Render(label)
		} else {
			label = subtleStyle.Render(label)
		}
		pills = append(pills, label)
	}
	return fmt.Sprintf("  %s", strings.Join(pills, " "))
}

package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stash/internal/inventory"
	"stash/internal/models"
)

func (m Model) expiringSoon(now time.Time) []models.InventoryItem {
	return inventory.ExpiringSoon(m.inv.Items(), now)
}

func (m Model) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		query := strings.TrimSpace(m.askInput.Value())
		// The submit control is disabled while a question is in flight.
		if query == "" || m.asking.Busy() {
			return m, nil
		}
		m.asking.Begin()
		m.answer = ""
		return m, askAssistant(m.ai, query, m.inv.Items())
	}

	var cmd tea.Cmd
	m.askInput, cmd = m.askInput.Update(msg)
	return m, cmd
}

func (m Model) viewHome() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("StashAI") + "\n")
	b.WriteString(subtleStyle.Render("Your intelligent home organizer.") + "\n\n")

	b.WriteString(m.askInput.View() + "\n")
	if m.asking.Busy() {
		b.WriteString(m.spinner.View() + " Thinking...\n")
	} else if m.answer != "" {
		b.WriteString(answerStyle.Render(m.answer) + "\n")
	}

	now := time.Now()
	expiring := m.expiringSoon(now)

	b.WriteString("\n" + warnStyle.Render("Expiring Soon"))
	if len(expiring) > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf(" (%d)", len(expiring))))
	}
	b.WriteString("\n")

	if len(expiring) == 0 {
		b.WriteString(subtleStyle.Render("No items expiring soon. You're good!") + "\n")
	} else {
		for _, item := range expiring {
			b.WriteString(fmt.Sprintf("  %s — %s — %s\n",
				item.Name, subtleStyle.Render(item.Location), formatExpiry(item, now)))
		}
	}

	b.WriteString("\n" + subtleStyle.Render(fmt.Sprintf("%d items tracked", m.inv.Len())))
	return b.String()
}

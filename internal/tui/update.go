package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bloom-app/bloom/internal/engine"
	"github.com/bloom-app/bloom/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.state == StateCheckinForm {
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Wake):
			m.quickCheckin(engine.QuickWake)
		case key.Matches(msg, m.keys.Sleep):
			m.quickCheckin(engine.QuickSleep)
		case key.Matches(msg, m.keys.Add):
			return m.openCheckinForm()
		}
	}

	return m, nil
}

func (m *Model) quickCheckin(kind engine.QuickKind) {
	_, err := m.engine.MarkQuickCheckin(kind)
	if errors.Is(err, engine.ErrAlreadyCheckedIn) {
		m.toast = "Already checked in today. See you tomorrow!"
		return
	}
	if err != nil {
		m.toast = fmt.Sprintf("Check-in failed: %v", err)
		return
	}
	m.toast = ""
	m.drainToast()
	if m.toast == "" {
		m.toast = "✓ Checked in!"
	}
}

func (m Model) openCheckinForm() (tea.Model, tea.Cmd) {
	m.checkinForm = &CheckinFormModel{Category: string(models.CategoryLife)}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("What did you do?").
			Key("task").
			Value(&m.checkinForm.Task),
		huh.NewSelect[string]().
			Title("Category").
			Key("category").
			Options(
				huh.NewOption("Life", string(models.CategoryLife)),
				huh.NewOption("Study", string(models.CategoryStudy)),
				huh.NewOption("Work", string(models.CategoryWork)),
			).
			Value(&m.checkinForm.Category),
	))
	m.previousState = m.state
	m.state = StateCheckinForm
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.state = m.previousState
		task := m.checkinForm.Task
		category := models.Category(m.checkinForm.Category)
		m.form = nil

		if task == "" {
			m.toast = "Check-in needs a task name."
			return m, cmd
		}

		if _, err := m.engine.RecordCheckin(task, category); err != nil {
			m.toast = fmt.Sprintf("Check-in failed: %v", err)
			return m, cmd
		}
		m.toast = ""
		m.drainToast()
		if m.toast == "" {
			m.toast = fmt.Sprintf("✓ Checked in: %s", task)
		}
	}

	return m, cmd
}

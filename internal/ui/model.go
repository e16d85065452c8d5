// Package ui implements the interactive terminal interface: browse the
// template catalog, fill in a template's fields, and preview the compiled
// prompt rendered as markdown.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/promptforge/prompt-forge/internal/clipboard"
	"github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/models"
	"github.com/promptforge/prompt-forge/internal/service"
)

// UI states
const (
	stateBrowse = iota
	stateForm
	statePreview
)

// createGlamourRenderer creates a glamour renderer honoring the
// GLAMOUR_STYLE override used elsewhere in the app.
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	if style := os.Getenv("GLAMOUR_STYLE"); style == "light" || style == "dark" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
}

// Model is the bubble tea model for the whole TUI
type Model struct {
	service      *service.Service
	errorHandler *errors.TUIErrorHandler

	state    int
	list     list.Model
	form     *FieldForm
	template *models.Template

	viewport        viewport.Model
	glamourRenderer *glamour.TermRenderer
	result          models.CompileResult

	status     string
	statusType string

	width  int
	height int
}

// NewModel creates the TUI model over the service layer
func NewModel(svc *service.Service) (*Model, error) {
	initializeColors()

	templates := svc.ListTemplates()
	items := make([]list.Item, len(templates))
	for i, t := range templates {
		items[i] = t
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Prompt Forge"
	l.SetShowStatusBar(false)
	l.Styles.Title = StyleTitle

	vp := viewport.New(80, 20)

	renderer, err := createGlamourRenderer(78)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	return &Model{
		service:         svc,
		errorHandler:    errors.NewTUIErrorHandler(os.Getenv("DEBUG") == "true"),
		state:           stateBrowse,
		list:            l,
		viewport:        vp,
		glamourRenderer: renderer,
	}, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-4)
		m.viewport.Width = msg.Width - 6
		m.viewport.Height = msg.Height - 8
		if m.form != nil {
			m.form.SetWidth(msg.Width)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateBrowse:
			return m.updateBrowse(msg)
		case stateForm:
			return m.updateForm(msg)
		case statePreview:
			return m.updatePreview(msg)
		}
	}

	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.list.FilterState() != list.Filtering {
			return m, tea.Quit
		}
	case "enter":
		if m.list.FilterState() == list.Filtering {
			break
		}
		template, ok := m.list.SelectedItem().(*models.Template)
		if !ok {
			return m, nil
		}
		if _, err := m.service.StartSession(template.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.template = template
		m.form = NewFieldForm(template)
		if m.width > 0 {
			m.form.SetWidth(m.width)
		}
		m.status = ""
		m.state = stateForm
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateBrowse
		m.status = ""
		return m, nil
	}

	cmd, submitted := m.form.Update(msg)
	if !submitted {
		return m, cmd
	}

	for key, value := range m.form.Values() {
		if err := m.service.SetField(m.template.ID, key, value); err != nil {
			m.setError(err)
			return m, nil
		}
	}

	result, err := m.service.CompileSession(m.template.ID)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.result = result

	if !result.Success {
		m.setStatus("Compilation failed: "+result.Error, "error")
		return m, nil
	}

	rendered, err := m.glamourRenderer.Render(result.Content)
	if err != nil {
		rendered = result.Content
	}
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()

	if len(result.Warnings) > 0 {
		m.setStatus(result.Warnings[0], "warning")
	} else {
		m.setStatus(fmt.Sprintf("Compiled %d characters in %dms",
			result.Metadata.ResultLength, result.Metadata.ProcessingTimeMs), "success")
	}
	m.state = statePreview
	return m, nil
}

func (m *Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateForm
		m.status = ""
		return m, nil
	case "q":
		m.state = stateBrowse
		m.status = ""
		return m, nil
	case "c":
		if copied, err := clipboard.CopyWithFallback(m.result.Content); err != nil {
			m.setError(err)
		} else {
			m.setStatus(copied, "success")
		}
		return m, nil
	case "b":
		bookmark := &models.Bookmark{
			Title:       fmt.Sprintf("%s %s", m.template.Name, time.Now().Format("2006-01-02 15:04")),
			TemplateID:  m.template.ID,
			FinalPrompt: m.result.Content,
			Selections:  m.form.Values(),
		}
		if err := m.service.SaveBookmark(bookmark); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Saved bookmark "+bookmark.ID, "success")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setStatus(text, statusType string) {
	m.status = text
	m.statusType = statusType
}

// setError logs the error through the TUI handler and surfaces its
// formatted message in the status line.
func (m *Model) setError(err error) {
	m.errorHandler.HandleError(err)
	m.setStatus(m.errorHandler.FormatError(err), "error")
}

// View implements tea.Model
func (m *Model) View() string {
	switch m.state {
	case stateForm:
		return m.viewForm()
	case statePreview:
		return m.viewPreview()
	default:
		return m.viewBrowse()
	}
}

func (m *Model) viewBrowse() string {
	view := m.list.View()
	if m.status != "" {
		view += "\n" + CreateStatus(m.status, m.statusType)
	}
	return view
}

func (m *Model) viewForm() string {
	header := StyleTitle.Render(m.template.Name)
	if m.template.Summary != "" {
		header = lipgloss.JoinVertical(lipgloss.Left, header, StyleMetadata.Render(m.template.Summary))
	}

	sections := []string{header, "", m.form.View()}
	if m.status != "" {
		sections = append(sections, CreateStatus(m.status, m.statusType))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) viewPreview() string {
	header := StyleTitle.Render(m.template.Name + " (preview)")
	content := StyleContentContainer.Render(m.viewport.View())
	help := CreateHelp("c: copy • b: bookmark • esc: edit fields • q: back to list")

	sections := []string{header, content, help}
	if m.status != "" {
		sections = append(sections, CreateStatus(m.status, m.statusType))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

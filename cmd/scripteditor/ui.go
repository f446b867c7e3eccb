package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/script-editor/pkg/script"
	"github.com/jwebster45206/script-editor/pkg/store"
	"github.com/muesli/reflow/wordwrap"
)

type pane int

const (
	paneScenes pane = iota
	paneDialogue
	paneChoices
)

type promptKind int

const (
	promptNone promptKind = iota
	promptScene
	promptLine
	promptChoice
)

const choiceArrow = "->"

// EditorUI is the BubbleTea model for the terminal script editor.
// https://github.com/charmbracelet/bubbletea
type EditorUI struct {
	store  *store.Store
	logger *slog.Logger

	scenes   []string
	selected int
	focus    pane
	line     int
	choice   int

	detail viewport.Model
	input  textinput.Model
	prompt promptKind

	confirmDelete bool
	showQuitModal bool

	status string
	err    error
	width  int
	height int
	ready  bool

	copyText func(string) error
}

var (
	panelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	danglingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

func NewEditorUI(st *store.Store, logger *slog.Logger) EditorUI {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 1000

	vp := viewport.New(60, 20)
	vp.MouseWheelEnabled = true

	m := EditorUI{
		store:    st,
		logger:   logger,
		detail:   vp,
		input:    ti,
		copyText: clipboard.WriteAll,
	}
	m.refresh()
	return m
}

func (m EditorUI) Init() tea.Cmd {
	return nil
}

func (m EditorUI) currentScene() (string, script.Scene, bool) {
	if len(m.scenes) == 0 {
		return "", script.Scene{}, false
	}
	name := m.scenes[m.selected]
	scene, ok := m.store.ViewScene(name)
	return name, scene, ok
}

// refresh re-reads the store and clamps every cursor.
func (m *EditorUI) refresh() {
	m.scenes = m.store.ListScenes()
	m.selected = clamp(m.selected, len(m.scenes))

	_, scene, _ := m.currentScene()
	m.line = clamp(m.line, len(scene.Dialogue))
	m.choice = clamp(m.choice, len(scene.Choices))

	m.detail.SetContent(m.renderDetail())
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m *EditorUI) layout() {
	listWidth := m.width / 4
	m.detail.Width = m.width - listWidth - 6
	m.detail.Height = m.height - 6
	m.input.Width = m.width - 8
}

func (m EditorUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.layout()
		m.ready = true
		m.refresh()
		return m, nil
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}
	if m.confirmDelete {
		return m.updateConfirmDelete(msg)
	}
	if m.prompt != promptNone {
		return m.updatePrompt(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	m.status = ""
	m.err = nil

	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.showQuitModal = true
		return m, nil
	case "tab":
		m.focus = (m.focus + 1) % 3
	case "shift+tab":
		m.focus = (m.focus + 2) % 3
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "a":
		return m.openPrompt(promptScene, "new scene name")
	case "l":
		if len(m.scenes) > 0 {
			return m.openPrompt(promptLine, "Character: line of dialogue")
		}
	case "c":
		if len(m.scenes) > 0 {
			return m.openPrompt(promptChoice, "choice text "+choiceArrow+" next scene")
		}
	case "d", "delete":
		m.deleteFocused()
	case "y":
		m.copyScene()
	}

	m.refresh()
	return m, nil
}

func (m *EditorUI) move(delta int) {
	switch m.focus {
	case paneScenes:
		m.selected += delta
		m.line, m.choice = 0, 0
	case paneDialogue:
		m.line += delta
	case paneChoices:
		m.choice += delta
	}
}

func (m EditorUI) openPrompt(kind promptKind, placeholder string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.input.Reset()
	m.input.Placeholder = placeholder
	return m, m.input.Focus()
}

func (m EditorUI) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.closePrompt()
			return m, nil
		case tea.KeyEnter:
			m.submitPrompt(m.input.Value())
			m.closePrompt()
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditorUI) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.Reset()
}

func (m *EditorUI) submitPrompt(value string) {
	switch m.prompt {
	case promptScene:
		res, err := m.store.AddScene(value)
		if m.apply(res, err, fmt.Sprintf("scene %q", value)) {
			m.selected = len(m.store.ListScenes()) - 1
			m.status = fmt.Sprintf("Added scene %q", value)
		}

	case promptLine:
		character, text, ok := strings.Cut(value, ":")
		if !ok {
			m.err = fmt.Errorf("dialogue must look like %q", "Character: text")
			return
		}
		name := m.scenes[m.selected]
		res, err := m.store.AddDialogue(name, strings.TrimSpace(character), strings.TrimSpace(text))
		if m.apply(res, err, fmt.Sprintf("scene %q", name)) {
			scene, _ := m.store.ViewScene(name)
			m.line = len(scene.Dialogue) - 1
			m.status = "Added dialogue line"
		}

	case promptChoice:
		idx := strings.LastIndex(value, choiceArrow)
		if idx < 0 {
			m.err = fmt.Errorf("choice must look like %q", "text "+choiceArrow+" next scene")
			return
		}
		text := strings.TrimSpace(value[:idx])
		next := strings.TrimSpace(value[idx+len(choiceArrow):])
		name := m.scenes[m.selected]
		res, err := m.store.AddChoice(name, text, next)
		if m.apply(res, err, fmt.Sprintf("scene %q", name)) {
			scene, _ := m.store.ViewScene(name)
			m.choice = len(scene.Choices) - 1
			m.status = "Added choice"
		}
	}
}

// apply turns a store outcome into status or error text and reports
// whether the change was applied.
func (m *EditorUI) apply(res store.Result, err error, subject string) bool {
	if err != nil {
		m.logger.Error("Failed to save script", "script", m.store.Path(), "error", err)
		m.err = err
		return false
	}
	if !res.OK() {
		m.err = fmt.Errorf("%s: %s", subject, res)
		return false
	}
	return true
}

func (m *EditorUI) deleteFocused() {
	name, scene, ok := m.currentScene()
	if !ok {
		return
	}

	switch m.focus {
	case paneScenes:
		m.confirmDelete = true
	case paneDialogue:
		if len(scene.Dialogue) == 0 {
			return
		}
		res, err := m.store.DeleteDialogue(name, m.line)
		if m.apply(res, err, fmt.Sprintf("dialogue %d", m.line)) {
			m.status = "Deleted dialogue line"
		}
	case paneChoices:
		if len(scene.Choices) == 0 {
			return
		}
		res, err := m.store.DeleteChoice(name, m.choice)
		if m.apply(res, err, fmt.Sprintf("choice %d", m.choice)) {
			m.status = "Deleted choice"
		}
	}
}

func (m EditorUI) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y", "enter":
		name := m.scenes[m.selected]
		res, err := m.store.DeleteScene(name)
		if m.apply(res, err, fmt.Sprintf("scene %q", name)) {
			m.status = fmt.Sprintf("Deleted scene %q", name)
		}
		m.confirmDelete = false
		m.line, m.choice = 0, 0
		m.refresh()
	case "n", "N", "esc", "ctrl+c":
		m.confirmDelete = false
	}
	return m, nil
}

func (m *EditorUI) copyScene() {
	name, scene, ok := m.currentScene()
	if !ok {
		return
	}
	data, err := json.MarshalIndent(scene, "", "    ")
	if err != nil {
		m.err = err
		return
	}
	if err := m.copyText(string(data)); err != nil {
		m.logger.Warn("Clipboard unavailable", "error", err)
		m.err = fmt.Errorf("failed to copy scene: %w", err)
		return
	}
	m.status = fmt.Sprintf("Copied scene %q to clipboard", name)
}

func (m EditorUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "enter", "y", "Y":
		return m, tea.Quit
	case "n", "N", "esc":
		m.showQuitModal = false
	}
	return m, nil
}

// renderDetail builds the scene panel: wrapped dialogue and the choice list.
func (m EditorUI) renderDetail() string {
	name, scene, ok := m.currentScene()
	if !ok {
		return promptStyle.Render("No scenes yet. Press a to add one.")
	}

	width := m.detail.Width - 4
	if width < 20 {
		width = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(fmt.Sprintf("SCENE %q", name)) + "\n\n")

	content.WriteString(titleStyle.Render("Dialogue") + "\n")
	if len(scene.Dialogue) == 0 {
		content.WriteString(promptStyle.Render("  (none)") + "\n")
	}
	for i, line := range scene.Dialogue {
		marker := "  "
		if m.focus == paneDialogue && i == m.line {
			marker = "▶ "
		}
		wrap := width - len(line.Character) - 4
		if wrap < 10 {
			wrap = 10
		}
		wrapped := wordwrap.String(line.Text, wrap)
		content.WriteString(marker + speakerStyle.Render(line.Character+":") + " " + wrapped + "\n")
	}

	content.WriteString("\n" + titleStyle.Render("Choices") + "\n")
	if len(scene.Choices) == 0 {
		content.WriteString(promptStyle.Render("  (none)") + "\n")
	}
	for i, c := range scene.Choices {
		marker := "  "
		if m.focus == paneChoices && i == m.choice {
			marker = "▶ "
		}
		target := choiceStyle.Render(c.NextScene)
		if !m.hasScene(c.NextScene) {
			target = danglingStyle.Render(c.NextScene + " (missing)")
		}
		content.WriteString(fmt.Sprintf("%s%s %s %s\n", marker, wordwrap.String(c.Text, width/2), choiceArrow, target))
	}

	return content.String()
}

func (m EditorUI) hasScene(name string) bool {
	for _, s := range m.scenes {
		if s == name {
			return true
		}
	}
	return false
}

func (m EditorUI) renderSceneList(height int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("SCENES") + "\n\n")
	for i, name := range m.scenes {
		label := name
		if label == "" {
			label = `""`
		}
		if i == m.selected {
			style := selectedStyle
			if m.focus != paneScenes {
				style = speakerStyle
			}
			content.WriteString(style.Render("▶ "+label) + "\n")
		} else {
			content.WriteString("  " + label + "\n")
		}
	}
	return lipgloss.NewStyle().Height(height).Render(content.String())
}

func (m EditorUI) renderModal(title, body string) string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(title))
	content.WriteString("\n\n")
	content.WriteString(body)
	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m EditorUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	if m.showQuitModal {
		return m.renderModal("Quit Editor?", "Every change is already saved.\n\n"+
			promptStyle.Render("Press Y to quit, N to keep editing"))
	}

	if m.confirmDelete {
		return m.renderModal("Delete Scene?", fmt.Sprintf("Delete scene %q and all of its lines and choices?\n"+
			"Choices that lead here are kept.\n\n", m.scenes[m.selected])+
			promptStyle.Render("Press Y to delete, N to cancel"))
	}

	listWidth := m.width / 4
	list := panelStyle.Width(listWidth).Render(m.renderSceneList(m.height - 6))
	detail := panelStyle.Render(m.detail.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	var footer string
	switch {
	case m.prompt != promptNone:
		footer = m.input.View()
	case m.err != nil:
		footer = errorStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		footer = choiceStyle.Render(m.status)
	default:
		footer = promptStyle.Render("tab: switch pane • ↑/↓: move • a: scene • l: line • c: choice • d: delete • y: copy • q: quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", footer)
}

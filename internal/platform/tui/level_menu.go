package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/motion-lab/internal/core"
	"github.com/vovakirdan/motion-lab/internal/lab"
	"github.com/vovakirdan/motion-lab/internal/storage"
)

// LevelSelectModel lets users choose the starting level.
type LevelSelectModel struct {
	levels   []lab.LevelInfo
	best     map[int]int
	cursor   int
	width    int
	height   int
	selected int
	quitting bool
	progress bool // Tab opens the progress board
}

// NewLevelSelectModel creates a level picker. store may be nil.
func NewLevelSelectModel(store *storage.Store, width, height int) LevelSelectModel {
	m := LevelSelectModel{
		levels: lab.Levels(),
		best:   make(map[int]int),
		width:  width,
		height: height,
	}
	if store != nil {
		for _, info := range m.levels {
			if ticks, err := store.BestTicks(info.Number); err == nil && ticks > 0 {
				m.best[info.Number] = ticks
			}
		}
	}
	return m
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" {
		m.progress = true
		return m, tea.Quit
	}

	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selected = m.levels[m.cursor].Number
		return m, tea.Quit
	}

	// Digits jump straight to a level.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'0') <= len(m.levels) {
		m.selected = int(s[0] - '0')
		return m, tea.Quit
	}
	return m, nil
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	if m.quitting || m.progress {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("M O T I O N   L A B", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level:", m.width))
	b.WriteString("\n\n")

	for i, info := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%d. %-14s", cursor, info.Number, info.Name)
		if ticks, ok := m.best[info.Number]; ok {
			line += fmt.Sprintf("  best %d ticks", ticks)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.cursor < len(m.levels) {
		info := m.levels[m.cursor]
		b.WriteString("\n")
		b.WriteString(centerText(info.Summary, m.width))
		b.WriteString("\n")
		b.WriteString(centerText("Controls: "+info.Controls, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  1-5: Jump  |  Tab: Progress  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen level, or 0 if none was chosen.
func (m LevelSelectModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsProgress returns true if user asked for the progress board.
func (m LevelSelectModel) WantsProgress() bool {
	return m.progress
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// LevelSelectResult holds the result of running the level picker.
type LevelSelectResult struct {
	Level         int // 0 if nothing was chosen
	WantsProgress bool
	Quit          bool
}

// RunLevelSelector runs the level picker.
func RunLevelSelector(store *storage.Store, cfg core.RuntimeConfig) (LevelSelectResult, error) {
	model := NewLevelSelectModel(store, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return LevelSelectResult{}, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok || m.IsQuitting() {
		return LevelSelectResult{Quit: true}, nil
	}
	if m.WantsProgress() {
		return LevelSelectResult{WantsProgress: true}, nil
	}
	return LevelSelectResult{Level: m.Selected(), Quit: m.Selected() == 0}, nil
}

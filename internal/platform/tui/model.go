package tui

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/motion-lab/internal/config"
	"github.com/vovakirdan/motion-lab/internal/core"
	"github.com/vovakirdan/motion-lab/internal/lab"
	"github.com/vovakirdan/motion-lab/internal/storage"
)

// statusTTL is how many ticks a transient status message stays visible.
const statusTTL = 120

// ConfigReloadedMsg carries a configuration picked up by the file watcher.
type ConfigReloadedMsg struct {
	Config config.LabConfig
}

// Model is the Bubble Tea model that drives the lab.
type Model struct {
	machine    *lab.Machine
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	showHelp   bool
	inputFrame core.InputFrame
	snapshot   lab.Snapshot
	paused     bool
	quitting   bool

	// Progress bookkeeping
	run         *runTracker
	overSeen    bool    // Over already counted for the current attempt
	saved       bool    // Completion stored for the current attempt
	peak        float64 // Largest |velocity| in the current attempt
	motionTicks int     // Ticks since the box first moved in this attempt
	bestTicks   int

	status      string
	statusTicks int
}

// NewModel creates a new Bubble Tea model around machine and opens a run
// for it. store and logger may be nil.
func NewModel(machine *lab.Machine, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, showHelp bool) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	run := newRunTracker(store, logger)
	run.begin()
	return newModel(machine, store, logger, cfg, showHelp, run)
}

func newModel(machine *lab.Machine, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, showHelp bool, run *runTracker) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := Model{
		machine:    machine,
		screen:     core.NewScreen(cfg.ScreenW, viewHeight(cfg.ScreenH, showHelp)),
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		showHelp:   showHelp,
		inputFrame: core.NewInputFrame(),
		snapshot:   machine.Snapshot(),
		run:        run,
	}
	m.loadBest()
	return m
}

// viewHeight leaves room for the help line below the lab view.
func viewHeight(h int, showHelp bool) int {
	if showHelp {
		return h - 1
	}
	return h
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, viewHeight(msg.Height, m.showHelp))
		m.help.Width = msg.Width
		return m, nil

	case ConfigReloadedMsg:
		m.machine.Reconfigure(msg.Config)
		if msg.Config.Display.TickRate > 0 {
			m.config.TickRate = msg.Config.Display.TickRate
		}
		m.enteredLevel()
		m.setStatus("configuration reloaded")
		m.logger.Info("configuration applied", "level", m.machine.Level(), "mass", msg.Config.Physics.Mass, "tick_rate", m.config.TickRate)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Lab actions are queued and applied
// on the next tick, in arrival order.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copyReadout()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.run.finish()
		return m, tea.Quit
	}
	m.inputFrame.Push(action)
	return m, nil
}

// handleTick applies queued input and advances the simulation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	for _, a := range m.inputFrame.Actions() {
		m.apply(a)
	}
	m.inputFrame.Clear()

	if m.statusTicks > 0 {
		m.statusTicks--
		if m.statusTicks == 0 {
			m.status = ""
		}
	}

	if m.paused {
		return m, tickCmd(m.config.TickRate)
	}

	m.snapshot = m.machine.Tick()
	m.peak = math.Max(m.peak, math.Abs(m.machine.State().Velocity))
	if m.peak > 0 {
		m.motionTicks++
	}

	if m.snapshot.Over && !m.overSeen {
		m.overSeen = true
		m.run.levelCleared()
		m.logger.Info("level over", "level", m.snapshot.Level, "ticks", m.snapshot.Ticks)
	}
	// Only an attempt in which the box actually moved counts as a time.
	// A resting level 4 or a box already on the floor ends without one.
	if m.snapshot.Terminal && m.peak > 0 && !m.saved {
		m.recordCompletion()
	}

	return m, tickCmd(m.config.TickRate)
}

// apply routes one action to the machine.
func (m *Model) apply(a core.Action) {
	switch a {
	case core.ActionUp:
		_ = m.machine.Input(lab.Up)
	case core.ActionDown:
		_ = m.machine.Input(lab.Down)
	case core.ActionRestart:
		m.machine.Reset(true)
		m.paused = false
		m.enteredLevel()
		m.logger.Info("lab restarted")
	case core.ActionNext:
		// The next control only exists while a non-final level is over.
		if !m.machine.Over() || m.machine.Complete() {
			return
		}
		if err := m.machine.Advance(); err != nil {
			m.logger.Warn("advance refused", "level", m.machine.Level(), "error", err)
			return
		}
		m.enteredLevel()
		m.logger.Info("level entered", "level", m.machine.Level())
	case core.ActionPause:
		m.paused = !m.paused
	}
	m.snapshot = m.machine.Snapshot()
}

// enteredLevel resets per-attempt bookkeeping after a reset or advance.
func (m *Model) enteredLevel() {
	m.overSeen = false
	m.saved = false
	m.peak = 0
	m.motionTicks = 0
	m.snapshot = m.machine.Snapshot()
	m.loadBest()
}

func (m *Model) loadBest() {
	m.bestTicks = 0
	if m.store == nil {
		return
	}
	best, err := m.store.BestTicks(m.machine.Level())
	if err != nil {
		m.logger.Warn("could not load best time", "level", m.machine.Level(), "error", err)
		return
	}
	m.bestTicks = best
}

// recordCompletion stores the first end of a moving attempt, timed from the
// first tick the box moved.
func (m *Model) recordCompletion() {
	m.saved = true
	level, ticks := m.snapshot.Level, m.motionTicks
	m.logger.Info("level complete", "level", level, "ticks", ticks, "peak_velocity", m.peak)

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveCompletion(level, ticks, m.peak); err != nil {
		m.logger.Error("could not save completion", "level", level, "error", err)
		return
	}
	if m.bestTicks == 0 || ticks < m.bestTicks {
		m.bestTicks = ticks
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusTicks = statusTTL
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	drawLab(m.screen, m.snapshot, m.machine.Arena(), m.hud())

	home, err := os.UserHomeDir()
	if err != nil {
		m.setStatus("screenshot failed")
		return
	}
	dir := filepath.Join(home, ".motionlab", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("could not create screenshot directory", "dir", dir, "error", err)
		m.setStatus("screenshot failed")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("level%d_%s.txt", m.snapshot.Level, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("could not save screenshot", "path", path, "error", err)
		m.setStatus("screenshot failed")
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.setStatus("screenshot saved to " + path)
}

// copyReadout puts the current readout on the system clipboard.
func (m *Model) copyReadout() {
	if err := clipboard.WriteAll(m.snapshot.Label); err != nil {
		m.logger.Warn("clipboard unavailable", "error", err)
		m.setStatus("clipboard unavailable")
		return
	}
	m.setStatus("readout copied")
}

func (m Model) hud() hud {
	return hud{
		Paused:    m.paused,
		Status:    m.status,
		BestTicks: m.bestTicks,
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	drawLab(m.screen, m.snapshot, m.machine.Arena(), m.hud())
	out := RenderScreen(m.screen)
	if m.showHelp {
		out += "\n" + m.help.View(m.keys)
	}
	return out
}

// Snapshot returns the last snapshot the model displayed.
func (m Model) Snapshot() lab.Snapshot {
	return m.snapshot
}

// Cleared returns how many levels were completed in this run.
func (m Model) Cleared() int {
	return m.run.levelsCleared()
}

// RunOptions configure Run.
type RunOptions struct {
	Store     *storage.Store
	Logger    *log.Logger
	ShowHelp  bool
	WatchPath string // Reload the lab configuration when this file changes
}

// Run starts the Bubble Tea program for machine.
func Run(machine *lab.Machine, cfg core.RuntimeConfig, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	model := NewModel(machine, opts.Store, logger, cfg, opts.ShowHelp)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.WatchPath != "" {
		go func() {
			err := config.Watch(ctx, opts.WatchPath, logger, func(c config.LabConfig) {
				p.Send(ConfigReloadedMsg{Config: c})
			})
			if err != nil {
				logger.Error("config watch stopped", "error", err)
			}
		}()
	}

	_, err := p.Run()
	model.run.finish()
	return err
}

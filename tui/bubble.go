// Package tui provides the interactive scenario browser and replay interface.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/slideplay/slideplay/color"
	"github.com/slideplay/slideplay/filesystem"
	"github.com/slideplay/slideplay/history"
	"github.com/slideplay/slideplay/key"
	"github.com/slideplay/slideplay/log"
	"github.com/slideplay/slideplay/scenario"
	"github.com/slideplay/slideplay/script"
	"github.com/slideplay/slideplay/settings"
	"github.com/slideplay/slideplay/sim"
	"github.com/slideplay/slideplay/style"
	"github.com/slideplay/slideplay/util"
	"github.com/slideplay/slideplay/where"
)

// statefulBubble encapsulates the application state, component models, and
// the active replay session.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	scenariosC list.Model
	logC       viewport.Model
	helpC      help.Model

	// replay session
	scenarioPath string
	scenario     *scenario.Scenario
	world        *sim.World
	handler      *script.Handler
	result       *sim.Result
	stepIndex    int
	logLines     []string
	replayDone   bool

	lastError error

	width, height int
	options       *Options
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()

	scenarios := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	scenarios.Title = "Scenarios"
	scenarios.SetStatusBarItemName("scenario", "scenarios")
	scenarios.KeyMap = keymap.forList()

	return &statefulBubble{
		keymap:     keymap,
		scenariosC: scenarios,
		logC:       viewport.New(0, 0),
		helpC:      help.New(),
		options:    options,
	}
}

func (b *statefulBubble) Init() tea.Cmd {
	return nil
}

// raiseError dispatches a terminal error and transitions to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow
// and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to a target state, recording the previous state in the
// navigation history.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	b.statesHistory.Push(b.state)
	b.setState(s)
}

// previousState restores the immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.scenariosC.SetSize(width-xx, height-yy)
	b.scenariosC.Help.Width = width - xx

	logHeight := util.Min(viper.GetInt(key.TUILogLines), b.height-replayChromeLines)
	if logHeight < 1 {
		logHeight = 1
	}
	b.logC.Width = b.width
	b.logC.Height = logHeight
	b.helpC.Width = b.width
}

// loadScenarios populates the browser list from the scenarios directory.
func (b *statefulBubble) loadScenarios() error {
	entries, err := filesystem.API().ReadDir(where.Scenarios())
	if err != nil {
		return err
	}

	var items []list.Item
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}

		path := filepath.Join(where.Scenarios(), entry.Name())
		s, err := scenario.Load(path)
		if err != nil {
			log.Warnf("skipping scenario %s: %v", path, err)
			continue
		}

		items = append(items, listItem{path: path, scenario: s})
	}

	b.scenariosC.SetItems(items)
	return nil
}

// startReplay builds a fresh world for the scenario file and resets the log.
func (b *statefulBubble) startReplay(path string) error {
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}

	world, err := sim.NewWorld(s, settings.FromGlobal())
	if err != nil {
		return err
	}

	if b.handler != nil {
		b.handler.Close()
		b.handler = nil
	}
	if s.Script != "" {
		b.handler, err = script.Load(s.Script, world.Controls())
		if err != nil {
			return err
		}
	}

	b.scenarioPath = path
	b.scenario = s
	b.world = world
	b.result = &sim.Result{Scenario: s.Name}
	b.stepIndex = 0
	b.logLines = nil
	b.replayDone = len(s.Timeline) == 0

	world.Doc.OnTrigger = func(name string) {
		entry := sim.Entry{AtMs: world.ElapsedMs(), Name: name}
		b.result.Triggers = append(b.result.Triggers, entry)
		b.appendLog(style.Fg(color.Purple)(fmt.Sprintf("%6dms  %s", entry.AtMs, name)))

		if b.handler != nil {
			event, video := sim.SplitTrigger(name)
			if err := b.handler.OnTrigger(event, video); err != nil {
				log.Warnf("trigger handler failed on %q: %v", name, err)
			}
		}
	}

	return nil
}

// applyStep replays the next timeline step of the active session.
func (b *statefulBubble) applyStep() {
	if b.replayDone || b.world == nil {
		return
	}

	step := b.scenario.Timeline[b.stepIndex]
	b.appendLog(style.Faint(fmt.Sprintf("── step %d/%d: %s", b.stepIndex+1, len(b.scenario.Timeline), describeStep(step))))

	if err := b.world.Apply(step); err != nil {
		b.raiseError(err)
		return
	}

	b.stepIndex++
	b.result.Steps++

	if b.stepIndex >= len(b.scenario.Timeline) {
		b.finishReplay()
	}
}

// runToEnd replays every remaining timeline step.
func (b *statefulBubble) runToEnd() {
	for !b.replayDone && b.state != errorState {
		b.applyStep()
	}
}

func (b *statefulBubble) finishReplay() {
	b.replayDone = true
	b.appendLog(style.Faint("── end of timeline"))

	if viper.GetBool(key.HistorySaveOnRun) {
		if err := history.Save(b.scenarioPath, b.result); err != nil {
			log.Warnf("saving replay history: %v", err)
		}
	}
}

func (b *statefulBubble) appendLog(line string) {
	b.logLines = append(b.logLines, line)
	b.logC.SetContent(strings.Join(b.logLines, "\n"))
	b.logC.GotoBottom()
}

func describeStep(step scenario.Step) string {
	switch step.Verb {
	case scenario.VerbShow, scenario.VerbHide:
		return fmt.Sprintf("%s %s", step.Verb, step.Scene)
	case scenario.VerbAdvance, scenario.VerbTick:
		return fmt.Sprintf("%s %dms", step.Verb, step.Ms)
	case scenario.VerbSeekPct:
		return fmt.Sprintf("%s %s %.0f%%", step.Verb, step.Video, step.Pct)
	case scenario.VerbVolume:
		return fmt.Sprintf("%s %s %.2f", step.Verb, step.Video, step.Volume)
	default:
		if step.Video != "" {
			return fmt.Sprintf("%s %s", step.Verb, step.Video)
		}
		return step.Verb
	}
}

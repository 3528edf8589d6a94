package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcotoniut/carcenisation/pkg/game"
)

const frameInterval = time.Second / 60

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9BBC0F")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BAC0F")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0F8D0"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Italic(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#306230")).Padding(0, 1)
	speedLevels = []int{1, 2, 4, 8, 16, 32}
)

// tickMsg 驱动模拟前进一帧
type tickMsg time.Time

// simModel 模拟器的终端界面
type simModel struct {
	sim      *simulator
	bar      progress.Model
	speedIdx int
	paused   bool
	width    int
}

func newSimModel(sim *simulator, speed int) simModel {
	m := simModel{
		sim: sim,
		bar: progress.New(progress.WithGradient("#306230", "#9BBC0F")),
	}
	for i, s := range speedLevels {
		if s <= speed {
			m.speedIdx = i
		}
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m simModel) Init() tea.Cmd {
	return tick()
}

func (m simModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+", "=":
			if m.speedIdx < len(speedLevels)-1 {
				m.speedIdx++
			}
		case "-":
			if m.speedIdx > 0 {
				m.speedIdx--
			}
		case "n":
			// 单步
			m.sim.step()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(20, min(60, msg.Width-4))
		return m, nil

	case tickMsg:
		if !m.paused {
			m.sim.run(speedLevels[m.speedIdx])
		}
		return m, tick()
	}
	return m, nil
}

func (m simModel) View() string {
	snap := m.sim.snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("CARCINISATION stage sim · " + snap.Stage))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(snap.Ratio()))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("state", snap.Progress.String())
	row("step", fmt.Sprintf("%d/%d %s", snap.Step, snap.Steps, snap.StepKind))
	row("time", fmt.Sprintf("%.2fs stage / %.2fs sim", snap.StageTime, snap.SimTime))
	row("camera", fmt.Sprintf("(%.1f, %.1f)", snap.Camera.X(), snap.Camera.Y()))
	row("score", fmt.Sprintf("%d", snap.Score))
	row("lives", fmt.Sprintf("%d  hp %d", snap.Lives, snap.Health))
	row("enemies", fmt.Sprintf("%d alive / %d entities / %d auto-killed", snap.Enemies, snap.Entities, m.sim.kills))

	events := m.sim.recentEvents(8)
	if len(events) > 0 {
		lines := make([]string, len(events))
		for i, e := range events {
			lines[i] = eventStyle.Render(e)
		}
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.sim.done() {
		b.WriteString(resultLine(snap))
		b.WriteString("\n")
	}
	status := fmt.Sprintf("x%d", speedLevels[m.speedIdx])
	if m.paused {
		status += " paused"
	}
	b.WriteString(hintStyle.Render(status + " · space pause · n step · +/- speed · q quit"))
	return b.String()
}

// resultLine 模拟结束时的结论
func resultLine(snap simSnapshot) string {
	switch snap.Progress {
	case game.StageCleared:
		return doneStyle.Render(fmt.Sprintf("cleared in %.2fs, score %d", snap.StageTime, snap.Score))
	case game.StageDeath, game.StageGameOver:
		return failStyle.Render(fmt.Sprintf("player died at step %d (%.2fs)", snap.Step, snap.StageTime))
	default:
		return failStyle.Render(fmt.Sprintf("time limit reached at step %d/%d", snap.Step, snap.Steps))
	}
}

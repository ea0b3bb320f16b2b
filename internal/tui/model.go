package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"habitflow/internal/engine"
	"habitflow/internal/storage"
	"habitflow/internal/ui"
)

type boardModel struct {
	ctx    context.Context
	svc    *engine.Service
	userID string

	width  int
	height int

	user  *storage.User
	tasks []storage.Task
	done  map[string]bool
	stats *engine.DashboardStats

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	user  *storage.User
	tasks []storage.Task
	done  map[string]bool
	stats *engine.DashboardStats
	err   error
}

type completedMsg struct {
	taskID  string
	res     *engine.CompleteResult
	already bool
	err     error
}

func newBoardModel(ctx context.Context, svc *engine.Service, userID string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		userID:  userID,
		done:    map[string]bool{},
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		u, err := m.svc.GetUser(m.ctx, m.userID)
		if err != nil {
			return loadedMsg{err: err}
		}
		tasks, err := m.svc.ListActiveTasks(m.ctx, m.userID)
		if err != nil {
			return loadedMsg{err: err}
		}
		stats, err := m.svc.Stats(m.ctx, m.userID)
		if err != nil {
			return loadedMsg{err: err}
		}
		done, err := m.svc.CompletedToday(m.ctx, m.userID, stats.Date)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{user: u, tasks: tasks, done: done, stats: stats}
	}
}

func (m boardModel) completeCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTaskToday(m.ctx, m.userID, taskID)
		if errors.Is(err, engine.ErrAlreadyCompleted) {
			return completedMsg{taskID: taskID, already: true}
		}
		return completedMsg{taskID: taskID, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.tasks = msg.tasks
		m.done = msg.done
		m.stats = msg.stats
		if m.selected >= len(m.tasks) {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.already {
			m.lastLog = "Already done today."
			return m, m.loadCmd()
		}
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		line := fmt.Sprintf("+%d %s", msg.res.TotalCoins(), ui.IconCoin)
		if msg.res.LevelUp {
			line += " " + ui.BadgeLevelUp + fmt.Sprintf(" → %d", msg.res.NewLevel)
		}
		for _, def := range msg.res.UnlockedAchievements {
			line += fmt.Sprintf("  %s %s", def.Icon, def.Name)
		}
		m.lastLog = line
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			if m.selected >= 0 && m.selected < len(m.tasks) {
				return m, m.completeCmd(m.tasks[m.selected].ID)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.loading {
		return "Loading…\n"
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconSparkle, "Today — "+string(m.stats.Date)) + "\n")
	b.WriteString(fmt.Sprintf("%s %d  %s %d  %s %d day streak  (best %d)\n\n",
		ui.Key.Render("Lvl"), m.stats.Level,
		ui.IconCoin, m.stats.Coins,
		ui.IconFire, m.stats.CurrentStreak, m.stats.LongestStreak))

	if len(m.tasks) == 0 {
		b.WriteString(ui.Muted.Render("No active tasks. Add one with `habitflow add`.") + "\n")
	}
	for i, t := range m.tasks {
		mark := "☐"
		if m.done[t.ID] {
			mark = ui.IconDone
		}
		line := fmt.Sprintf("%s %s %s %s", mark, ui.CategoryIcon(t.Category), t.Title,
			ui.Muted.Render(fmt.Sprintf("(%d %s)", t.CoinValue, ui.IconCoin)))
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render(fmt.Sprintf("%d/%d daily tasks done", m.stats.CompletedToday, m.stats.TodayTasks)) + "\n")
	b.WriteString(ui.Muted.Render("enter: complete  r: refresh  q: quit") + "\n")
	b.WriteString(m.lastLog + "\n")
	return b.String()
}

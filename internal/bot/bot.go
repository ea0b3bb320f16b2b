package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"habitflow/internal/engine"
)

// Bot is the Telegram front door. It holds no state of its own: every command
// resolves the chat to a user and asks the engine.
type Bot struct {
	api *tgbotapi.BotAPI
	svc *engine.Service
}

func New(token string, svc *engine.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{api: api, svc: svc}, nil
}

// Run consumes updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	log.Printf("bot authorized as @%s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.svc.GetOrCreateByTelegram(ctx, msg.From.ID, msg.From.FirstName)
	if err != nil {
		log.Printf("resolve user %d: %v", msg.From.ID, err)
		b.reply(msg.Chat.ID, "🧨 Something went wrong, try again later.")
		return
	}

	var text string
	switch msg.Command() {
	case "start", "help":
		text = "🎯 HabitFlow — daily tasks, coins, streaks.\n\n" +
			"/tasks — today's tasks\n" +
			"/done <n> — complete task n from /tasks\n" +
			"/streak — current streak\n" +
			"/stats — progress overview"
	case "tasks":
		text = b.tasksText(ctx, user.ID)
	case "done":
		text = b.doneText(ctx, user.ID, msg.CommandArguments())
	case "streak":
		text = fmt.Sprintf("🔥 Current streak: %d days (best %d)", user.CurrentStreak, user.LongestStreak)
	case "stats":
		text = b.statsText(ctx, user.ID)
	default:
		text = "ℹ️ Unknown command, see /help"
	}
	b.reply(msg.Chat.ID, text)
}

func (b *Bot) tasksText(ctx context.Context, userID string) string {
	tasks, err := b.svc.ListActiveTasks(ctx, userID)
	if err != nil {
		return "🧨 Could not load tasks."
	}
	if len(tasks) == 0 {
		return "No active tasks yet."
	}
	stats, err := b.svc.Stats(ctx, userID)
	if err != nil {
		return "🧨 Could not load tasks."
	}
	done, err := b.svc.CompletedToday(ctx, userID, stats.Date)
	if err != nil {
		return "🧨 Could not load tasks."
	}

	var sb strings.Builder
	sb.WriteString("📋 Today:\n")
	for i, t := range tasks {
		mark := "☐"
		if done[t.ID] {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "%d. %s %s (+%d 🪙)\n", i+1, mark, t.Title, t.CoinValue)
	}
	sb.WriteString("\nComplete one with /done <n>")
	return sb.String()
}

func (b *Bot) doneText(ctx context.Context, userID, args string) string {
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || n < 1 {
		return "Format: /done <task number from /tasks>"
	}
	tasks, err := b.svc.ListActiveTasks(ctx, userID)
	if err != nil || n > len(tasks) {
		return "No such task; check /tasks"
	}

	res, err := b.svc.CompleteTaskToday(ctx, userID, tasks[n-1].ID)
	switch {
	case errors.Is(err, engine.ErrAlreadyCompleted):
		// Expected outcome, not an error banner.
		return "✅ Already done today — nice and consistent!"
	case err != nil:
		log.Printf("complete task for %s: %v", userID, err)
		return "🧨 Could not complete the task, try again."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ +%d 🪙", res.CoinsEarned)
	if res.StreakBonus > 0 {
		fmt.Fprintf(&sb, " (+%d streak bonus)", res.StreakBonus)
	}
	if res.CompletionBonus > 0 {
		fmt.Fprintf(&sb, " (+%d all-done bonus)", res.CompletionBonus)
	}
	fmt.Fprintf(&sb, "\n🔥 Streak: %d days", res.NewStreak)
	if res.LevelUp {
		fmt.Fprintf(&sb, "\n⚡ Level up! You are now level %d", res.NewLevel)
	}
	for _, def := range res.UnlockedAchievements {
		fmt.Fprintf(&sb, "\n%s Achievement unlocked: %s (+%d 🪙)", def.Icon, def.Name, def.CoinReward)
	}
	return sb.String()
}

func (b *Bot) statsText(ctx context.Context, userID string) string {
	stats, err := b.svc.Stats(ctx, userID)
	if err != nil {
		return "🧨 Could not load stats."
	}
	return fmt.Sprintf(
		"📈 Level %d (%.0f%% to next)\n🪙 %d coins (%d today)\n🔥 %d day streak (best %d)\n📋 %d/%d daily tasks done",
		stats.Level, stats.LevelProgress,
		stats.Coins, stats.CoinsToday,
		stats.CurrentStreak, stats.LongestStreak,
		stats.CompletedToday, stats.TodayTasks,
	)
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("send to %d: %v", chatID, err)
	}
}

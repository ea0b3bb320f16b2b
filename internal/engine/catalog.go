package engine

type AchievementType string

const (
	AchievementFirstTask      AchievementType = "first_task"
	AchievementWeekWarrior    AchievementType = "week_warrior"
	AchievementMonthMaster    AchievementType = "month_master"
	AchievementTaskChampion   AchievementType = "task_champion"
	AchievementPerfectWeek    AchievementType = "perfect_week"
	AchievementCategoryExpert AchievementType = "category_expert"
)

// AchievementDef is one entry of the static achievement catalog.
type AchievementDef struct {
	Type        AchievementType
	Name        string
	Description string
	Icon        string
	Target      int
	CoinReward  int
}

// CatalogVersion identifies the catalog revision; bump when targets or
// entries change so stored progress rows can be reconciled.
const CatalogVersion = 1

// Catalog returns the fixed achievement definitions. Read-only to the engine.
func Catalog() []AchievementDef {
	return []AchievementDef{
		{Type: AchievementFirstTask, Name: "First Steps", Description: "Complete your first task", Icon: "✓", Target: 1, CoinReward: 10},
		{Type: AchievementWeekWarrior, Name: "Week Warrior", Description: "Hold a 7-day streak", Icon: "🔥", Target: 7, CoinReward: 25},
		{Type: AchievementMonthMaster, Name: "Month Master", Description: "Hold a 30-day streak", Icon: "🏆", Target: 30, CoinReward: 100},
		{Type: AchievementTaskChampion, Name: "Task Champion", Description: "Complete 100 tasks", Icon: "🏅", Target: 100, CoinReward: 75},
		{Type: AchievementPerfectWeek, Name: "Perfect Week", Description: "Clear every daily task 7 days in a row", Icon: "⭐", Target: 7, CoinReward: 50},
		{Type: AchievementCategoryExpert, Name: "Category Expert", Description: "Complete 50 tasks in one category", Icon: "🎯", Target: 50, CoinReward: 50},
	}
}

// CatalogDef looks up one definition by type.
func CatalogDef(t AchievementType) (AchievementDef, bool) {
	for _, def := range Catalog() {
		if def.Type == t {
			return def, true
		}
	}
	return AchievementDef{}, false
}

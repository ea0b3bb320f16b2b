package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"habitflow/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "habitflow",
	Short:         "HabitFlow — gamified daily-task tracker",
	Long:          "HabitFlow turns daily tasks into coins, streaks, and levels.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoneCmd(),
		newListCmd(),
		newStatusCmd(),
		newAchievementsCmd(),
		newBoardCmd(),
		newBotCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vstrozzi/monkey-3d-game/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List recorded rounds",
	Long: `Display the most recent rounds recorded by the monitor, with totals.
Given a round ID, print that round's full configuration as YAML; it can be
fed back to 'monkey publish'.

Examples:
  monkey history
  monkey history --limit 50
  monkey history 12 > round.yaml
  monkey history --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of rounds to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded round")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadSettings(cmd)

	// Open round storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRounds(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	if len(args) == 1 {
		showRound(store, args[0])
		return
	}

	rounds, err := store.RecentRounds(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Rounds")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Run 'monkey monitor' to record rounds.")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-20s  %-4s  %-8s  %-8s  %-9s  %-3s  %s\n",
		"ID", "Seed", "Door", "Attempts", "Elapsed", "Win time", "Won", "Date")
	fmt.Printf("  %-5s  %-20s  %-4s  %-8s  %-8s  %-9s  %-3s  %s\n",
		"--", "----", "----", "--------", "-------", "--------", "---", "----")

	for _, r := range rounds {
		won := "no"
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-5d  %-20d  %-4d  %-8d  %-8.2f  %-9.2f  %-3s  %s\n",
			r.ID, r.Seed, r.TargetDoor, r.Attempts, r.ElapsedSecs, r.WinTime, won,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	// Show totals
	fmt.Println()
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Rounds: %d  Wins: %d  Avg attempts: %.1f  Avg win time: %.2fs\n",
			stats.Rounds, stats.Wins, stats.AvgAttempts, stats.AvgWinTime)
	}
}

func showRound(store *storage.Store, arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid round ID %q\n", arg)
		os.Exit(1)
	}

	rec, err := store.RoundByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving round: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "Error: no round with ID %d\n", id)
		os.Exit(1)
	}

	rc, err := rec.Round()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding round: %v\n", err)
		os.Exit(1)
	}
	out, err := yaml.Marshal(rc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding round: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}

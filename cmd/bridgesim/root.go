package main

import (
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bridgesim/deal"
	"bridgesim/dealer"
	"bridgesim/dds"
	"bridgesim/simulation"
)

var rootCmd = &cobra.Command{
	Use:   "bridgesim",
	Short: "Constrained bridge deal simulation with a double-dummy oracle.",
	Long: `Generate uniformly random deals under constraints, solve them
double-dummy and aggregate the results to compare contracts or leads.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Int64("seed", 0, "random seed (0 = use current time)")
	rootCmd.PersistentFlags().Int("trials", 100, "number of accepted deals to collect")
	rootCmd.PersistentFlags().Int("max-attempts", 0, "attempt cap (0 = 1000x trials)")
	rootCmd.PersistentFlags().Int("workers", 0, "worker goroutines (0 or 1 = serial)")
	rootCmd.PersistentFlags().Bool("demo", false, "use the built-in heuristic estimator instead of the native solver")
	rootCmd.PersistentFlags().StringArray("fix", nil, "fix a seat's hand, e.g. S=AQ2.K953.T87.J42 (repeatable)")
	rootCmd.PersistentFlags().StringArray("min-hcp", nil, "minimum HCP for a seat, e.g. S:10 (repeatable)")
	rootCmd.PersistentFlags().StringArray("min-suit", nil, "minimum suit length, e.g. S:H:5 for five hearts with South (repeatable)")
	rootCmd.PersistentFlags().StringArray("shape", nil, "shape pattern for a seat, e.g. S:5/4-3-1 (repeatable)")
}

func getFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func getInt(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func getInt64(cmd *cobra.Command, name string) int64 {
	v, err := cmd.Flags().GetInt64(name)
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func getString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func getStringArray(cmd *cobra.Command, name string) []string {
	v, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		log.Fatal(err)
	}
	return v
}

// fixedHands parses the repeatable --fix flags into per-seat hands.
func fixedHands(cmd *cobra.Command) map[deal.Seat]deal.Hand {
	fixed := map[deal.Seat]deal.Hand{}
	for _, spec := range getStringArray(cmd, "fix") {
		seatStr, handStr, ok := strings.Cut(spec, "=")
		if !ok {
			log.Fatalf("--fix %q: want SEAT=HAND", spec)
		}
		seat, err := deal.ParseSeat(seatStr)
		if err != nil {
			log.Fatalf("--fix %q: %v", spec, err)
		}
		hand, err := deal.ParseHand(handStr)
		if err != nil {
			log.Fatalf("--fix %q: %v", spec, err)
		}
		fixed[seat] = hand
	}
	return fixed
}

// seatFilters parses --min-hcp and --min-suit into per-seat hand filters,
// conjoining multiple constraints on the same seat.
func seatFilters(cmd *cobra.Command) map[deal.Seat]dealer.HandFilter {
	filters := map[deal.Seat]dealer.HandFilter{}
	add := func(seat deal.Seat, f dealer.HandFilter) {
		if prev, ok := filters[seat]; ok {
			filters[seat] = func(h deal.Hand) bool { return prev(h) && f(h) }
			return
		}
		filters[seat] = f
	}

	for _, spec := range getStringArray(cmd, "min-hcp") {
		parts := strings.Split(spec, ":")
		if len(parts) != 2 {
			log.Fatalf("--min-hcp %q: want SEAT:POINTS", spec)
		}
		seat, err := deal.ParseSeat(parts[0])
		if err != nil {
			log.Fatalf("--min-hcp %q: %v", spec, err)
		}
		min, err := strconv.Atoi(parts[1])
		if err != nil {
			log.Fatalf("--min-hcp %q: %v", spec, err)
		}
		add(seat, func(h deal.Hand) bool { return h.HCP() >= min })
	}

	for _, spec := range getStringArray(cmd, "min-suit") {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			log.Fatalf("--min-suit %q: want SEAT:SUIT:LENGTH", spec)
		}
		seat, err := deal.ParseSeat(parts[0])
		if err != nil {
			log.Fatalf("--min-suit %q: %v", spec, err)
		}
		strain, err := deal.ParseStrain(parts[1])
		if err != nil || strain == deal.NoTrump {
			log.Fatalf("--min-suit %q: not a suit", spec)
		}
		suit := deal.Suit(strain)
		min, err := strconv.Atoi(parts[2])
		if err != nil {
			log.Fatalf("--min-suit %q: %v", spec, err)
		}
		add(seat, func(h deal.Hand) bool { return h.SuitLength(suit) >= min })
	}

	for _, spec := range getStringArray(cmd, "shape") {
		seatStr, pattern, ok := strings.Cut(spec, ":")
		if !ok {
			log.Fatalf("--shape %q: want SEAT:PATTERN", spec)
		}
		seat, err := deal.ParseSeat(seatStr)
		if err != nil {
			log.Fatalf("--shape %q: %v", spec, err)
		}
		f, err := dealer.ShapeFilter(pattern)
		if err != nil {
			log.Fatalf("--shape %q: %v", spec, err)
		}
		add(seat, f)
	}
	return filters
}

// baseConfig assembles the simulation config shared by all subcommands.
func baseConfig(cmd *cobra.Command) simulation.Config {
	return simulation.Config{
		Target:        getInt(cmd, "trials"),
		MaxAttempts:   getInt(cmd, "max-attempts"),
		Seed:          getInt64(cmd, "seed"),
		Workers:       getInt(cmd, "workers"),
		Fixed:         fixedHands(cmd),
		Filters:       seatFilters(cmd),
		RetainRecords: true,
	}
}

// solvers picks the oracle: the native double-dummy library, or the
// heuristic estimator under --demo.
func solvers(cmd *cobra.Command) (dds.Solver, dds.LeadSolver) {
	if getFlag(cmd, "demo") {
		log.Warn("running with the heuristic estimator; results are not double-dummy accurate")
		s := dds.HeuristicSolver()
		return s, s
	}
	s, err := dds.NewNativeSolver()
	if err != nil {
		log.Fatalf("%v (or pass --demo)", err)
	}
	return s, s
}

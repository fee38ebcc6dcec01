package main

import (
	"math/rand"
	"time"

	"github.com/pterm/pterm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bridgesim/deal"
	"bridgesim/dealer"
	"bridgesim/simulation"
)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Generate and print constrained deals.",
	Long: `Deal uniformly random boards honouring the --fix, --min-hcp and
--min-suit constraints, without solving them.`,
	Run: func(cmd *cobra.Command, args []string) {
		target := getInt(cmd, "trials")
		maxAttempts := getInt(cmd, "max-attempts")
		if maxAttempts == 0 {
			maxAttempts = target * simulation.DefaultAttemptFactor
		}
		seed := getInt64(cmd, "seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		layout, err := dealer.NewLayout(fixedHands(cmd))
		if err != nil {
			log.Fatal(err)
		}
		var filters [4]dealer.HandFilter
		for seat, f := range seatFilters(cmd) {
			filters[seat] = f
		}

		log.Debugf("dealing %d boards, seed=%d", target, seed)
		rng := rand.New(rand.NewSource(seed))
		dealt := 0
		for attempts := 0; dealt < target; attempts++ {
			if attempts >= maxAttempts {
				log.Fatalf("gave up after %d attempts with %d of %d boards dealt", attempts, dealt, target)
			}
			b, ok := layout.DealFiltered(rng, filters)
			if !ok {
				continue
			}
			dealt++
			pterm.DefaultSection.Printf("Board %d", dealt)
			pterm.Println(b.String())
			for _, seat := range deal.Seats {
				h := b.Hand(seat)
				pterm.Printf("%s: %d HCP\n", seat, h.HCP())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(dealCmd)
}

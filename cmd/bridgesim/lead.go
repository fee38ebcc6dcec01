package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bridgesim/analysis"
	"bridgesim/contract"
	"bridgesim/deal"
)

var leadCmd = &cobra.Command{
	Use:   "lead [flags] CONTRACT",
	Short: "Compare opening leads against a contract.",
	Long: `Fix the opening leader's hand, simulate the unseen hands under
the given constraints, and solve declarer's tricks against every distinct
lead. Reports how often each lead beats the contract and the pairwise IMP
gains from the defender's side.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		declarer, err := deal.ParseSeat(getString(cmd, "declarer"))
		if err != nil {
			log.Fatal(err)
		}
		c, err := contract.Parse(args[0], getFlag(cmd, "vul"))
		if err != nil {
			log.Fatal(err)
		}
		leader, err := deal.ParseHand(getString(cmd, "leader"))
		if err != nil {
			log.Fatalf("--leader: %v", err)
		}

		cfg := baseConfig(cmd)
		if _, taken := cfg.Fixed[declarer.LHO()]; taken {
			log.Fatalf("seat %s is the opening leader; use --leader instead of --fix", declarer.LHO())
		}
		cfg.Fixed[declarer.LHO()] = leader
		solver, leadSolver := solvers(cmd)
		cfg.Solver = solver
		result := runSimulation(cfg)

		boards := make([]deal.Board, len(result.Records))
		for i, rec := range result.Records {
			boards[i] = rec.Board
		}
		study, err := analysis.NewLeadStudy(boards, declarer, c, leadSolver)
		if err != nil {
			log.Fatal(err)
		}
		renderLeadStudy(study, c, len(boards))

		if path := getString(cmd, "json"); path != "" {
			if err := exportLeadStudy(study, c, path); err != nil {
				log.Fatal(err)
			}
		}
	},
}

func init() {
	leadCmd.Flags().String("declarer", "E", "declaring seat (N, E, S or W)")
	leadCmd.Flags().String("leader", "", "opening leader's hand, e.g. Q8.9875.JT74.Q98")
	leadCmd.Flags().Bool("vul", false, "declaring side is vulnerable")
	leadCmd.Flags().String("json", "", "write the study as JSON to this file")
	leadCmd.MarkFlagRequired("leader")
	rootCmd.AddCommand(leadCmd)
}

func renderLeadStudy(study *analysis.LeadStudy, c contract.Contract, boards int) {
	leads := study.Leads()
	rates := study.BeatRates()

	beaten := pterm.TableData{{"Lead", "Beats " + c.String()}}
	labels := make([]string, len(leads))
	for i, lead := range leads {
		labels[i] = lead.String()
		beaten = append(beaten, []string{lead.String(), fmt.Sprintf("%.1f%%", rates[i]*100)})
	}
	pterm.DefaultSection.Printf("Leads against %s over %d deals", c, boards)
	pterm.DefaultTable.WithHasHeader().WithData(beaten).Render()

	pterm.DefaultSection.Println("IMP gain (row over column)")
	pterm.DefaultTable.WithHasHeader().WithData(impTable(labels, study.IMPMatrix())).Render()
}

// leadStudyOutput is the JSON structure for an exported study.
type leadStudyOutput struct {
	Contract  string      `json:"contract"`
	Leads     []string    `json:"leads"`
	BeatRates []float64   `json:"beat_rates"`
	IMPMatrix [][]float64 `json:"imp_matrix"`
}

func exportLeadStudy(study *analysis.LeadStudy, c contract.Contract, path string) error {
	labels := make([]string, len(study.Leads()))
	for i, lead := range study.Leads() {
		labels[i] = lead.String()
	}
	out := leadStudyOutput{
		Contract:  c.String(),
		Leads:     labels,
		BeatRates: study.BeatRates(),
		IMPMatrix: study.IMPMatrix(),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

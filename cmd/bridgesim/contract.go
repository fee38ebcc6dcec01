package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bridgesim/analysis"
	"bridgesim/contract"
	"bridgesim/deal"
	"bridgesim/simulation"
)

var contractCmd = &cobra.Command{
	Use:   "contract [flags] CONTRACT...",
	Short: "Compare candidate contracts over constrained deals.",
	Long: `Simulate deals under the given constraints, solve each one
double-dummy and score every candidate contract on every deal. Reports
how often each contract makes and the pairwise IMP gains.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		declarer, err := deal.ParseSeat(getString(cmd, "declarer"))
		if err != nil {
			log.Fatal(err)
		}
		vul := getFlag(cmd, "vul")
		contracts := make([]contract.Contract, len(args))
		for i, arg := range args {
			if contracts[i], err = contract.Parse(arg, vul); err != nil {
				log.Fatal(err)
			}
		}

		cfg := baseConfig(cmd)
		cfg.Solver, _ = solvers(cmd)
		result := runSimulation(cfg)

		study, err := analysis.NewContractStudy(result.Records, declarer, contracts)
		if err != nil {
			log.Fatal(err)
		}
		renderContractStudy(study, result)

		if path := getString(cmd, "json"); path != "" {
			if err := exportContractStudy(study, result, path); err != nil {
				log.Fatal(err)
			}
		}
	},
}

func init() {
	contractCmd.Flags().String("declarer", "S", "declaring seat (N, E, S or W)")
	contractCmd.Flags().Bool("vul", false, "declaring side is vulnerable")
	contractCmd.Flags().String("json", "", "write the study as JSON to this file")
	rootCmd.AddCommand(contractCmd)
}

// runSimulation runs the engine and tolerates an exhausted attempt budget
// as long as some deals were accepted.
func runSimulation(cfg simulation.Config) *simulation.Result {
	engine, err := simulation.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	result, err := engine.Run(context.Background())
	switch {
	case err == nil:
	case errors.Is(err, simulation.ErrBudgetExhausted) && result.Accepted > 0:
		log.Warnf("attempt budget exhausted: continuing with %d of %d deals", result.Accepted, cfg.Target)
	default:
		log.Fatal(err)
	}
	log.Infof("accepted %d deals in %d attempts (%s, seed %d)",
		result.Accepted, result.Attempts, result.Elapsed.Round(1e6), result.Seed)
	return result
}

func renderContractStudy(study *analysis.ContractStudy, result *simulation.Result) {
	contracts := study.Contracts()
	rates := study.MadeRates()

	made := pterm.TableData{{"Contract", "Made"}}
	for i, c := range contracts {
		made = append(made, []string{c.String(), fmt.Sprintf("%.1f%%", rates[i]*100)})
	}
	pterm.DefaultSection.Printf("Contracts over %d deals", result.Stats.Trials())
	pterm.DefaultTable.WithHasHeader().WithData(made).Render()

	pterm.DefaultSection.Println("IMP gain (row over column)")
	pterm.DefaultTable.WithHasHeader().WithData(impTable(names(contracts), study.IMPMatrix())).Render()
}

// impTable lays out an IMP matrix with row and column labels.
func impTable(labels []string, m [][]float64) pterm.TableData {
	header := append([]string{""}, labels...)
	data := pterm.TableData{header}
	for i, label := range labels {
		row := []string{label}
		for j := range labels {
			row = append(row, fmt.Sprintf("%+.2f", m[i][j]))
		}
		data = append(data, row)
	}
	return data
}

func names(contracts []contract.Contract) []string {
	out := make([]string, len(contracts))
	for i, c := range contracts {
		out[i] = c.String()
	}
	return out
}

// contractStudyOutput is the JSON structure for an exported study.
type contractStudyOutput struct {
	Trials    uint64      `json:"trials"`
	Attempts  uint64      `json:"attempts"`
	Seed      int64       `json:"seed"`
	Contracts []string    `json:"contracts"`
	MadeRates []float64   `json:"made_rates"`
	IMPMatrix [][]float64 `json:"imp_matrix"`
}

func exportContractStudy(study *analysis.ContractStudy, result *simulation.Result, path string) error {
	out := contractStudyOutput{
		Trials:    result.Stats.Trials(),
		Attempts:  result.Attempts,
		Seed:      result.Seed,
		Contracts: names(study.Contracts()),
		MadeRates: study.MadeRates(),
		IMPMatrix: study.IMPMatrix(),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

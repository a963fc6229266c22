// firmscan — find the public companies a law firm represents in SEC filings.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/finlawtools/firmscan/internal/config"
	"github.com/finlawtools/firmscan/internal/counsel"
	"github.com/finlawtools/firmscan/internal/edgar"
	"github.com/finlawtools/firmscan/internal/reference"
	"github.com/finlawtools/firmscan/internal/stockloan"
	"github.com/finlawtools/firmscan/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "firmscan",
	Short: "firmscan — law firm client discovery from SEC filings",
	Long: `firmscan searches SEC EDGAR full-text search for filings that mention a
law firm, deduplicates the filing companies, enriches them with market cap
and stock loan availability, and attributes the most recently associated
lawyer per company.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("firmscan %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Search Command ---

var searchCmd = &cobra.Command{
	Use:   "search [law firm]",
	Short: "Find companies a law firm represented in SEC filings",
	Long: `Search EDGAR full-text search for filings mentioning a law firm and
build the enriched company table.

Examples:
  firmscan search "Doe & Partners LLP"
  firmscan search "Doe & Partners LLP" --start 2022-01-01 --end 2023-12-31
  firmscan search "Doe & Partners LLP" --output csv --out clients.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		firm := args[0]

		start, end, err := dateRange(cmd)
		if err != nil {
			return err
		}

		refPath, _ := cmd.Flags().GetString("reference")
		if refPath == "" {
			refPath = cfg.Reference.Path
		}
		ref, err := reference.Load(refPath)
		if err != nil {
			return fmt.Errorf("load reference dataset: %w", err)
		}

		source := edgar.NewClient(cfg.Edgar)

		var loan counsel.LoanFeed
		if cfg.StockLoan.URL != "" {
			loan = stockloan.NewClient(cfg.StockLoan.URL)
		}

		obs := counsel.ObserverFunc(func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
		})

		pipeline := counsel.New(source, ref, loan, cfg.Search, obs)
		table, err := pipeline.Run(cmd.Context(), firm, start, end)
		if err != nil {
			return err
		}

		out := os.Stdout
		if path, _ := cmd.Flags().GetString("out"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		format, _ := cmd.Flags().GetString("output")
		switch format {
		case "csv":
			return table.WriteCSV(out)
		case "table", "":
			_, err := fmt.Fprint(out, table.String())
			return err
		default:
			return fmt.Errorf("unknown output format %q (want table or csv)", format)
		}
	},
}

func init() {
	searchCmd.Flags().String("start", "", "start of filing date range, YYYY-MM-DD (default: one year ago)")
	searchCmd.Flags().String("end", "", "end of filing date range, YYYY-MM-DD (default: today)")
	searchCmd.Flags().String("output", "table", "output format: table or csv")
	searchCmd.Flags().String("out", "", "write output to file instead of stdout")
	searchCmd.Flags().String("reference", "", "ticker reference CSV path (overrides config)")
}

// dateRange resolves the --start/--end flags into a concrete window.
func dateRange(cmd *cobra.Command) (start, end time.Time, err error) {
	end = time.Now().UTC().Truncate(24 * time.Hour)
	start = end.AddDate(-1, 0, 0)

	if s, _ := cmd.Flags().GetString("start"); s != "" {
		start, err = time.Parse(utils.FilingDateLayout, s)
		if err != nil {
			return start, end, fmt.Errorf("invalid --start date %q: %w", s, err)
		}
	}
	if s, _ := cmd.Flags().GetString("end"); s != "" {
		end, err = time.Parse(utils.FilingDateLayout, s)
		if err != nil {
			return start, end, fmt.Errorf("invalid --end date %q: %w", s, err)
		}
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("--end %s is before --start %s",
			utils.FormatFilingDate(end), utils.FormatFilingDate(start))
	}
	return start, end, nil
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and data source reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  firmscan — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:        %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    EDGAR search:   %s\n", cfg.Edgar.SearchBaseURL)
		fmt.Printf("    EDGAR contact:  %s\n", orUnset(cfg.Edgar.Contact))
		fmt.Printf("    Reference CSV:  %s\n", cfg.Reference.Path)
		fmt.Printf("    Stock loan URL: %s\n", orUnset(cfg.StockLoan.URL))
		fmt.Printf("    Concurrency:    %d\n", cfg.Search.Concurrency)
		fmt.Printf("    Cap floor:      %.0f\n", cfg.Search.MarketCapFloor)
		fmt.Println()

		fmt.Println("  Data Sources:")

		edgarStatus := "✅ reachable"
		if err := edgar.NewClient(cfg.Edgar).Ping(cmd.Context()); err != nil {
			edgarStatus = fmt.Sprintf("❌ %v", err)
		}
		fmt.Printf("    %-15s %s\n", "EDGAR:", edgarStatus)

		refStatus := "❌ not found"
		if ref, err := reference.Load(cfg.Reference.Path); err == nil {
			refStatus = fmt.Sprintf("✅ %d tickers", ref.Len())
		}
		fmt.Printf("    %-15s %s\n", "Reference:", refStatus)

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

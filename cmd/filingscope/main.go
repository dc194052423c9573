// FilingScope - SEC filing analyzer
// Main CLI entrypoint using cobra command framework
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/avikram/filingscope/api"
	"github.com/avikram/filingscope/internal/analysis"
	"github.com/avikram/filingscope/internal/config"
	"github.com/avikram/filingscope/internal/edgar"
	"github.com/avikram/filingscope/internal/ingest"
	"github.com/avikram/filingscope/internal/logging"
	"github.com/avikram/filingscope/internal/report"
	"github.com/avikram/filingscope/internal/search"
	"github.com/avikram/filingscope/internal/store"
	"github.com/avikram/filingscope/pkg/utils"
)

var (
	// Build-time variables (set via ldflags)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// --- Root Command ---

var rootCmd = &cobra.Command{
	Use:   "filingscope",
	Short: "FilingScope - SEC filing analyzer",
	Long: `FilingScope fetches a company's SEC filings from EDGAR, extracts
financial metrics and business signals from their text, and builds
trend, ratio, and health analyses over the stored history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real config comes from files and env vars.
		_ = godotenv.Load()

		var err error
		if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
			cfg, err = config.LoadFromFile(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		logging.Setup(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(rdCmd)
	rootCmd.AddCommand(cashCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// --- Fetch Command ---

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch filings from EDGAR and store them locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		forms, _ := cmd.Flags().GetStringSlice("forms")
		years, _ := cmd.Flags().GetInt("years")
		limit, _ := cmd.Flags().GetInt("limit")
		refresh, _ := cmd.Flags().GetBool("refresh")

		fmt.Printf("📥 Fetching filings for %s (%s)...\n", cfg.Company.Name, cfg.Company.Ticker)

		client := edgar.NewClient(cfg.EDGAR, cfg.Company)
		ing := ingest.New(client, st, cfg.Extraction)
		result, err := ing.FetchAndStore(ctx, ingest.FetchOptions{
			FormTypes:    forms,
			YearsBack:    years,
			Limit:        limit,
			ForceRefresh: refresh,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✅ Found %d filings: %d stored, %d skipped, %d failed\n",
			result.Found, len(result.Stored), result.Skipped, result.Failed)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringSlice("forms", nil, "form types to fetch (default: all supported)")
	fetchCmd.Flags().Int("years", 5, "how many years back to fetch")
	fetchCmd.Flags().Int("limit", 0, "maximum filings to fetch (0 = config default)")
	fetchCmd.Flags().Bool("refresh", false, "re-fetch filings already in the store")
}

// --- Report Command ---

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the full financial analysis report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Println("📊 Generating comprehensive financial report...")

		rep := report.NewBuilder(st, cfg.Company).Build(ctx)

		if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
			data, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("\nCompany: %s (%s)\n", rep.Company, rep.Ticker)
		fmt.Printf("Analysis Date: %s\n", rep.AnalysisDate)
		fmt.Printf("Filings Analyzed: %d\n", rep.DataSummary.TotalFilings)

		hs := rep.FinancialHealthScore
		fmt.Printf("\n🏥 Financial Health Score: %.1f%% (Grade: %s)\n", hs.Percentage, hs.Grade)

		fmt.Println("\n📈 Key Financial Trends:")
		for _, metric := range analysis.TrendMetrics {
			trend, ok := rep.FinancialTrends[metric]
			if !ok {
				continue
			}
			fmt.Printf("  %s: %s latest, %s growth (%s)\n",
				titleCase(metric), money(trend.LatestValue),
				pct(trend.LatestGrowthRate), trend.TrendDirection)
		}

		if rd := rep.RDAnalysis; rd != nil {
			fmt.Println("\n🔬 R&D Analysis:")
			fmt.Printf("  Total R&D Investment: %s\n", money(rd.TotalInvestment))
			fmt.Printf("  R&D as %% of Revenue: %s\n", pct(rd.PercentOfRevenue))
		}

		if cash := rep.CashAnalysis; cash != nil {
			fmt.Println("\n💰 Cash Analysis:")
			fmt.Printf("  Current Cash Position: %s\n", money(cash.CurrentCash))
			fmt.Printf("  Cash Trend: %s\n", cash.Trend)
		}

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			data, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("\n📤 Report written to %s\n", out)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().String("out", "", "write the full report as JSON to this file")
	reportCmd.Flags().Bool("pretty", false, "print the full report as indented JSON")
}

// --- Trends Command ---

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show financial metric trends across stored filings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Println("📈 Analyzing financial trends...")

		trends, err := report.NewBuilder(st, cfg.Company).Trends(ctx)
		if err != nil {
			return err
		}
		if len(trends) == 0 {
			fmt.Println("No trend data available. Run 'filingscope fetch' first.")
			return nil
		}

		for _, metric := range analysis.TrendMetrics {
			trend, ok := trends[metric]
			if !ok {
				continue
			}
			fmt.Printf("\n%s:\n", titleCase(metric))
			fmt.Printf("  Latest Value: %s (%s)\n", money(trend.LatestValue), trend.LatestDate)
			fmt.Printf("  Latest Growth Rate: %s\n", pct(trend.LatestGrowthRate))
			fmt.Printf("  Average Growth Rate: %s\n", pct(trend.AverageGrowthRate))
			fmt.Printf("  Trend Direction: %s\n", trend.TrendDirection)
			fmt.Printf("  Data Points: %d\n", trend.DataPoints)
		}
		return nil
	},
}

// --- Health Command ---

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show the composite financial health score",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Println("🏥 Calculating financial health score...")

		hs, err := report.NewBuilder(st, cfg.Company).HealthScore(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("\nOverall Score: %d/%d (%.1f%%)\n", hs.TotalScore, hs.MaxScore, hs.Percentage)
		fmt.Printf("Grade: %s\n", hs.Grade)

		fmt.Println("\nComponents:")
		names := make([]string, 0, len(hs.Components))
		for name := range hs.Components {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %d\n", titleCase(name), hs.Components[name])
		}
		return nil
	},
}

// --- R&D Command ---

var rdCmd = &cobra.Command{
	Use:   "rd",
	Short: "Analyze research and development spending",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Println("🔬 Analyzing R&D investment...")

		rd, err := report.NewBuilder(st, cfg.Company).RDInvestment(ctx)
		if err != nil {
			return err
		}
		if rd == nil {
			fmt.Println("No R&D data available. Run 'filingscope fetch' first.")
			return nil
		}

		fmt.Printf("\nTotal R&D Investment: %s\n", money(rd.TotalInvestment))
		fmt.Printf("Average Quarterly R&D: %s\n", money(rd.AverageSpend))
		fmt.Printf("R&D Growth Rate: %s\n", pct(rd.GrowthRate))
		fmt.Printf("R&D as %% of Revenue: %s\n", pct(rd.PercentOfRevenue))
		fmt.Printf("R&D Trend: %s\n", rd.Trend)
		return nil
	},
}

// --- Cash Command ---

var cashCmd = &cobra.Command{
	Use:   "cash",
	Short: "Analyze the cash position across filings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Println("💰 Analyzing cash position...")

		cash, err := report.NewBuilder(st, cfg.Company).CashManagement(ctx)
		if err != nil {
			return err
		}
		if cash == nil {
			fmt.Println("No cash data available. Run 'filingscope fetch' first.")
			return nil
		}

		fmt.Printf("\nCurrent Cash Position: %s\n", money(cash.CurrentCash))
		fmt.Printf("Average Cash Position: %s\n", money(cash.AverageCash))
		fmt.Printf("Cash Growth Rate: %s\n", pct(cash.GrowthRate))
		fmt.Printf("Cash Trend: %s\n", cash.Trend)
		return nil
	},
}

// --- Search Command ---

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the stored filing texts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := args[0]

		forms, _ := cmd.Flags().GetStringSlice("forms")

		if remote, _ := cmd.Flags().GetBool("remote"); remote {
			fmt.Printf("🔍 Searching EDGAR full-text index for %q...\n", query)
			client := edgar.NewClient(cfg.EDGAR, cfg.Company)
			results, err := client.SearchRemote(ctx, query, edgar.SearchOptions{FormTypes: forms})
			if err != nil {
				return err
			}
			fmt.Printf("✅ Found %d results:\n", len(results))
			for i, r := range results {
				fmt.Printf("%d. %s - %s\n", i+1, r.FormType, r.FilingDate)
				fmt.Printf("   Company: %s\n", r.CompanyName)
			}
			return nil
		}

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		engine := search.NewEngine(st, cfg.Search)

		if withReport, _ := cmd.Flags().GetBool("report"); withReport {
			rep := engine.BuildSearchReport(ctx, query)
			data, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
		wholeWords, _ := cmd.Flags().GetBool("whole-words")

		fmt.Printf("🔍 Searching stored filings for %q...\n", query)
		results := engine.Search(ctx, query, search.Options{
			FormTypes:     forms,
			CaseSensitive: caseSensitive,
			WholeWords:    wholeWords,
		})

		fmt.Printf("✅ Found %d results:\n", len(results))
		for i, r := range results {
			if i >= 10 {
				fmt.Printf("   ... and %d more\n", len(results)-10)
				break
			}
			fmt.Printf("%d. %s - %s\n", i+1, r.FormType, r.FilingDate)
			fmt.Printf("   Matches: %d\n", r.MatchCount)
			fmt.Printf("   Company: %s\n", r.CompanyName)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringSlice("forms", nil, "restrict the search to these form types")
	searchCmd.Flags().Bool("case-sensitive", false, "match the query case sensitively")
	searchCmd.Flags().Bool("whole-words", false, "match whole words only")
	searchCmd.Flags().Bool("remote", false, "search the EDGAR full-text index instead of the local store")
	searchCmd.Flags().Bool("report", false, "print the full search report (keywords, pipeline, risks) as JSON")
}

// --- Summary Command ---

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a summary of the stored filings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		sum, err := report.NewBuilder(st, cfg.Company).Summary(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("📋 Data Summary for %s\n", cfg.Company.Name)
		fmt.Printf("\nTotal Filings: %d\n", sum.TotalFilings)
		fmt.Printf("Financial Metrics Available: %d\n", sum.FinancialMetricsAvailable)
		fmt.Printf("Last Updated: %s\n", sum.LastUpdated)

		if len(sum.FilingTypes) > 0 {
			fmt.Println("\nFiling Types:")
			forms := make([]string, 0, len(sum.FilingTypes))
			for form := range sum.FilingTypes {
				forms = append(forms, form)
			}
			sort.Strings(forms)
			for _, form := range forms {
				fmt.Printf("  %s: %d\n", form, sum.FilingTypes[form])
			}
		}

		if sum.DateRange != nil {
			fmt.Printf("\nDate Range: %s to %s\n", sum.DateRange.Earliest, sum.DateRange.Latest)
		}
		return nil
	},
}

// --- Export Command ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the financial timeline and keyword analysis as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		dir, _ := cmd.Flags().GetString("dir")

		fmt.Printf("📤 Exporting analysis data to %s...\n", dir)

		engine := search.NewEngine(st, cfg.Search)
		files, err := report.NewExporter(st, engine, cfg.Search).ExportCSV(ctx, dir)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Exported %d files:\n", len(files))
		for _, f := range files {
			fmt.Printf("  %s\n", f)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("dir", "data/reports", "directory to write CSV files into")
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := api.NewServer(cfg, st)
		srv.SetVersion(version)

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("🌐 Starting FilingScope API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  FilingScope - System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:    %s (%s)\n", version, commit)
		fmt.Printf("  Company:    %s (%s)\n", cfg.Company.Name, cfg.Company.Ticker)
		fmt.Printf("  CIK:        %s\n", cfg.Company.CIK)
		fmt.Println()
		fmt.Printf("  Store:      %s\n", cfg.Store.Backend)
		fmt.Printf("  EDGAR Rate: %.1f req/s\n", cfg.EDGAR.RateLimitRPS)
		fmt.Printf("  API Server: %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println()
		fmt.Println("  Settings:")
		for _, s := range config.CheckSettings(cfg) {
			status := "❌"
			if s.IsSet {
				status = "✅"
			}
			fmt.Printf("    %s %s: %s (%s)\n", status, s.Name, s.Value, s.Source)
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("FilingScope %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

// --- Display Helpers ---

// money renders a metric amount. Extracted figures keep the scale they were
// printed with in the filing, usually millions, unless extraction.apply_scale
// rewrote them into raw dollars.
func money(v float64) string {
	if cfg != nil && cfg.Extraction.ApplyScale {
		return utils.FormatUSD(v)
	}
	return fmt.Sprintf("$%.1fM", v)
}

// pct renders an optional percentage, "n/a" when undefined.
func pct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return utils.FormatPct(*v)
}

// titleCase renders a snake_case metric or component name for display.
func titleCase(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

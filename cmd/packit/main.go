// PACKIT4.0 command line planner.
//
// Loads pallet manifests, runs loading strategies, compares them side by
// side, audits saved plans, and exports PDF, DXF and QR label documents
// without the desktop UI.
//
// Configuration is layered: built-in defaults, then an optional packit.json
// (working directory or ~/.packit), then PACKIT_* environment variables,
// then flags.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adamsulik/PACKIT4.0/internal/engine"
	"github.com/adamsulik/PACKIT4.0/internal/export"
	"github.com/adamsulik/PACKIT4.0/internal/importer"
	"github.com/adamsulik/PACKIT4.0/internal/model"
	"github.com/adamsulik/PACKIT4.0/internal/project"
	"github.com/adamsulik/PACKIT4.0/internal/validate"
)

const version = "1.0.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("packit failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packit",
		Short: "Trailer loading planner",
		Long: `PACKIT4.0 plans truck and trailer loads from pallet manifests.

It places pallets with one of several loading strategies, audits the
result for collisions, stacking legality and axle balance, and exports
loading plans as JSON, PDF, DXF floor plans or QR label sheets.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cmd); err != nil {
				return err
			}
			setupLogging()
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default packit.json in . or ~/.packit)")
	cmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().Int("trailer-length", 0, "cargo space length in mm")
	cmd.PersistentFlags().Int("trailer-width", 0, "cargo space width in mm")
	cmd.PersistentFlags().Int("trailer-height", 0, "cargo space height in mm")
	cmd.PersistentFlags().Int("max-load", 0, "maximum load in kg")
	cmd.PersistentFlags().Int("resolution", 0, "occupancy grid cell size in mm")

	cmd.AddCommand(
		newRunCommand(),
		newCompareCommand(),
		newEstimateCommand(),
		newExportCommand(),
		newGenerateCommand(),
		newValidateCommand(),
		newImportCommand(),
		newListCommand(),
	)
	return cmd
}

// initConfig wires the configuration layers together: defaults, an optional
// JSON config file, PACKIT_* environment variables, and finally any flags
// the caller set.
func initConfig(cmd *cobra.Command) error {
	// Set default values
	spec := model.DefaultTrailerSpec()
	viper.SetDefault("log_level", "info")
	viper.SetDefault("strategy", "axis_scan")
	viper.SetDefault("trailer.length", spec.Length)
	viper.SetDefault("trailer.width", spec.Width)
	viper.SetDefault("trailer.height", spec.Height)
	viper.SetDefault("trailer.max_load", spec.MaxLoad)
	viper.SetDefault("trailer.resolution", spec.Resolution)
	viper.SetDefault("trailer.balance_threshold", spec.Balance.Threshold)
	viper.SetDefault("trailer.front_share_target", spec.Balance.FrontBackTarget)

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("packit")
		viper.SetConfigType("json")
		viper.AddConfigPath(".")
		viper.AddConfigPath(project.DefaultDataDir())
	}

	viper.SetEnvPrefix("PACKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Flags set by the caller win over the file and the environment. The
	// lookup map covers every subcommand; flags a command does not define
	// are skipped.
	bindings := map[string]string{
		"log_level":                  "log-level",
		"strategy":                   "strategy",
		"zones":                      "zones",
		"balancing_factor":           "balancing-factor",
		"start":                      "start",
		"sort_by":                    "sort-by",
		"reserved_type":              "reserved-type",
		"stacking":                   "stacking",
		"layers":                     "layers",
		"weight_factor":              "weight-factor",
		"trailer.length":             "trailer-length",
		"trailer.width":              "trailer-width",
		"trailer.height":             "trailer-height",
		"trailer.max_load":           "max-load",
		"trailer.resolution":         "resolution",
		"trailer.balance_threshold":  "balance-threshold",
		"trailer.front_share_target": "front-share-target",
	}
	for key, name := range bindings {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			if err := viper.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func setupLogging() {
	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString("log_level")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

// trailerFromConfig assembles the trailer spec from the resolved config.
func trailerFromConfig() model.TrailerSpec {
	return model.TrailerSpec{
		Length:     viper.GetInt("trailer.length"),
		Width:      viper.GetInt("trailer.width"),
		Height:     viper.GetInt("trailer.height"),
		MaxLoad:    viper.GetInt("trailer.max_load"),
		Resolution: viper.GetInt("trailer.resolution"),
		Balance: model.BalanceSpec{
			Threshold:       viper.GetFloat64("trailer.balance_threshold"),
			FrontBackTarget: viper.GetFloat64("trailer.front_share_target"),
		},
	}
}

// optionsFromConfig assembles the strategy options from the resolved config.
func optionsFromConfig() engine.Options {
	opts := engine.Options{
		Zones:           viper.GetInt("zones"),
		BalancingFactor: viper.GetFloat64("balancing_factor"),
		Start:           viper.GetString("start"),
		SortBy:          engine.SortOrder(viper.GetString("sort_by")),
		ReservedType:    viper.GetString("reserved_type"),
		Layers:          viper.GetInt("layers"),
		WeightFactor:    viper.GetFloat64("weight_factor"),
	}
	switch viper.GetString("stacking") {
	case "allow":
		v := true
		opts.AllowStacking = &v
	case "forbid":
		v := false
		opts.AllowStacking = &v
	}
	return opts
}

// ─── run ───────────────────────────────────────────────────

func newRunCommand() *cobra.Command {
	var (
		outJSON   string
		outPDF    string
		outDXF    string
		outLabels string
	)

	cmd := &cobra.Command{
		Use:   "run MANIFEST",
		Short: "Load a manifest into the trailer with one strategy",
		Long: `Run places the pallets of a JSON manifest into the trailer using the
configured strategy and prints the loading statistics. The resulting
plan can be written as JSON, as a PDF loading plan, as a DXF floor
plan, or as a QR label sheet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pallets, err := project.LoadPallets(args[0])
			if err != nil {
				return err
			}
			if len(pallets) == 0 {
				return fmt.Errorf("manifest %s holds no pallets", args[0])
			}

			kind := engine.Kind(viper.GetString("strategy"))
			strategy, err := engine.New(kind, optionsFromConfig())
			if err != nil {
				return err
			}
			spec := trailerFromConfig()

			log.Info().
				Str("strategy", string(kind)).
				Int("pallets", len(pallets)).
				Msg("loading trailer")

			loader := engine.NewLoader(strategy, spec)
			placed := loader.Run(pallets, true)
			plan := project.NewPlan(kind, spec, placed, engine.Unplaced(pallets, placed), loader.Statistics())

			printRunSummary(plan)

			for _, f := range validate.FormatFindings(validate.Check(placed, spec)) {
				log.Warn().Msg(f)
			}

			if outJSON != "" {
				if err := project.SavePlan(outJSON, plan); err != nil {
					return err
				}
				log.Info().Str("path", outJSON).Msg("plan written")
			}
			if outPDF != "" {
				if err := export.WritePDF(outPDF, plan); err != nil {
					return err
				}
				log.Info().Str("path", outPDF).Msg("loading plan PDF written")
			}
			if outDXF != "" {
				if err := export.WriteDXF(outDXF, loader.Trailer()); err != nil {
					return err
				}
				log.Info().Str("path", outDXF).Msg("DXF floor plan written")
			}
			if outLabels != "" {
				if err := export.WriteLabels(outLabels, placed); err != nil {
					return err
				}
				log.Info().Str("path", outLabels).Msg("label sheet written")
			}
			return nil
		},
	}

	cmd.Flags().StringP("strategy", "s", "", "loading strategy (see 'packit list')")
	cmd.Flags().Int("zones", 0, "number of zones for x_zone and y_zone (0 = default)")
	cmd.Flags().Float64("balancing-factor", 0, "left/right balancing factor for x_zone (0 = default)")
	cmd.Flags().String("start", "", "scan direction for axis_scan: front or back")
	cmd.Flags().String("sort-by", "", "sort manifest before loading: weight or volume")
	cmd.Flags().String("reserved-type", "", "format that keeps its orientation in y_zone")
	cmd.Flags().String("stacking", "", "stacking override: allow or forbid (empty = strategy default)")
	cmd.Flags().Int("layers", 0, "number of height layers for z_layer (0 = default)")
	cmd.Flags().Float64("weight-factor", 0, "weight ordering factor for z_layer (0 = default)")
	cmd.Flags().Float64("balance-threshold", 0, "allowed deviation from the balance targets")
	cmd.Flags().Float64("front-share-target", 0, "desired share of weight on the front half")
	cmd.Flags().StringVar(&outJSON, "out-json", "", "write the plan as JSON to this path")
	cmd.Flags().StringVar(&outPDF, "out-pdf", "", "write the loading plan PDF to this path")
	cmd.Flags().StringVar(&outDXF, "out-dxf", "", "write the DXF floor plan to this path")
	cmd.Flags().StringVar(&outLabels, "out-labels", "", "write the QR label sheet to this path")

	return cmd
}

func printRunSummary(plan project.Plan) {
	e := plan.Statistics.Efficiency
	w := plan.Statistics.WeightDistribution
	fmt.Printf("Strategy:       %s\n", plan.Strategy)
	fmt.Printf("Pallets loaded: %d (%d left behind)\n", len(plan.Placed), len(plan.Unplaced))
	fmt.Printf("Space used:     %.1f%%\n", e.SpaceUtilization)
	fmt.Printf("Weight:         %d / %d kg (%.1f%%)\n", w.Total, plan.Trailer.MaxLoad, e.WeightUtilization)
	fmt.Printf("Balance:        %.2f left/right, %.2f front share\n", e.SideBalance, e.FrontBackBalance)
	if plan.Statistics.Balance.Valid {
		fmt.Printf("Balance check:  ok\n")
	} else {
		fmt.Printf("Balance check:  OUT OF WINDOW\n")
	}
	for _, p := range plan.Unplaced {
		fmt.Printf("  left behind: %s\n", p)
	}
}

// ─── compare ───────────────────────────────────────────────

func newCompareCommand() *cobra.Command {
	var outPDF string

	cmd := &cobra.Command{
		Use:   "compare MANIFEST",
		Short: "Run every strategy over a manifest and compare the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pallets, err := project.LoadPallets(args[0])
			if err != nil {
				return err
			}
			if len(pallets) == 0 {
				return fmt.Errorf("manifest %s holds no pallets", args[0])
			}

			spec := trailerFromConfig()
			results, err := engine.CompareScenarios(engine.BuildDefaultScenarios(), spec, pallets)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCENARIO\tLOADED\tUNPLACED\tSPACE %\tWEIGHT %\tBALANCED")
			for _, r := range results {
				balanced := "yes"
				if !r.BalanceValid {
					balanced = "no"
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%.1f\t%s\n",
					r.Scenario.Name, r.PlacedCount, r.UnplacedCount,
					r.Statistics.Efficiency.SpaceUtilization,
					r.Statistics.Efficiency.WeightUtilization,
					balanced)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if outPDF != "" {
				if err := export.WriteComparisonPDF(outPDF, spec, results); err != nil {
					return err
				}
				log.Info().Str("path", outPDF).Msg("comparison PDF written")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outPDF, "out-pdf", "", "write the comparison PDF to this path")
	return cmd
}

// ─── estimate ──────────────────────────────────────────────

func newEstimateCommand() *cobra.Command {
	var (
		fillFactor     float64
		costPerTrailer float64
	)

	cmd := &cobra.Command{
		Use:   "estimate MANIFEST",
		Short: "Estimate how many trailers a manifest needs",
		Long: `Estimate checks the manifest against the trailer's volume, payload and
floor length without running a placement. Use it to size a transport
order before planning the individual loads.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pallets, err := project.LoadPallets(args[0])
			if err != nil {
				return err
			}

			est := model.CalculateFleetEstimate(pallets, trailerFromConfig(), fillFactor, costPerTrailer)

			fmt.Printf("Cargo volume:   %.1f m3 (%.1f loading meters, %d kg)\n",
				est.TotalVolume, est.TotalLoadingMeters, est.TotalWeight)
			fmt.Printf("By volume:      %.2f trailers\n", est.TrailersByVolume)
			fmt.Printf("By payload:     %.2f trailers\n", est.TrailersByWeight)
			fmt.Printf("By floor:       %.2f trailers\n", est.TrailersByFloor)
			fmt.Printf("Minimum:        %d\n", est.TrailersMin)
			fmt.Printf("Recommended:    %d (at %.0f%% fill)\n", est.TrailersRecommended, est.FillFactor*100)
			if costPerTrailer > 0 {
				fmt.Printf("Estimated cost: %.2f\n", est.EstimatedCost)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&fillFactor, "fill-factor", 0.85, "achievable fill share of the cargo space (0-1)")
	cmd.Flags().Float64Var(&costPerTrailer, "cost-per-trailer", 0, "freight cost per trailer for the cost estimate")
	return cmd
}

// ─── export ────────────────────────────────────────────────

func newExportCommand() *cobra.Command {
	var (
		outPDF    string
		outDXF    string
		outLabels string
	)

	cmd := &cobra.Command{
		Use:   "export PLAN",
		Short: "Render a saved plan as PDF, DXF or QR labels",
		Long: `Export reads a plan written by 'run --out-json' and renders it without
running the strategy again. At least one output flag is required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPDF == "" && outDXF == "" && outLabels == "" {
				return errors.New("nothing to do: pass --out-pdf, --out-dxf or --out-labels")
			}
			plan, err := project.LoadPlan(args[0])
			if err != nil {
				return err
			}
			if outPDF != "" {
				if err := export.WritePDF(outPDF, plan); err != nil {
					return err
				}
				log.Info().Str("path", outPDF).Msg("loading plan PDF written")
			}
			if outDXF != "" {
				trailer := model.NewTrailer(plan.Trailer)
				trailer.Restore(plan.Placed)
				if err := export.WriteDXF(outDXF, trailer); err != nil {
					return err
				}
				log.Info().Str("path", outDXF).Msg("DXF floor plan written")
			}
			if outLabels != "" {
				if err := export.WriteLabels(outLabels, plan.Placed); err != nil {
					return err
				}
				log.Info().Str("path", outLabels).Msg("label sheet written")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outPDF, "out-pdf", "", "write the loading plan PDF to this path")
	cmd.Flags().StringVar(&outDXF, "out-dxf", "", "write the DXF floor plan to this path")
	cmd.Flags().StringVar(&outLabels, "out-labels", "", "write the QR label sheet to this path")
	return cmd
}

// ─── generate ──────────────────────────────────────────────

func newGenerateCommand() *cobra.Command {
	var (
		count  int
		seed   int64
		sample string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sample cargo manifest",
		Long: `Generate writes a JSON manifest of random pallets, or one of the
built-in sample sets (use --sample with one of: Even mix, Heavy
formats, Light formats, Random mix, By loading meters).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			var pallets []*model.Pallet
			if sample != "" {
				sets := project.SampleSets(seed)
				names := make([]string, len(sets))
				for i, s := range sets {
					names[i] = s.Name
					if strings.EqualFold(s.Name, sample) {
						pallets = s.Pallets
					}
				}
				if pallets == nil {
					return fmt.Errorf("unknown sample set %q, available: %s", sample, strings.Join(names, ", "))
				}
			} else {
				pallets = project.GenerateTestPallets(count, seed)
			}

			if err := project.SavePallets(out, pallets); err != nil {
				return err
			}
			fmt.Printf("Wrote %d pallets to %s\n", len(pallets), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "number of random pallets")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().StringVar(&sample, "sample", "", "built-in sample set instead of random pallets")
	cmd.Flags().StringVarP(&out, "out", "o", "manifest.json", "output manifest path")
	return cmd
}

// ─── validate ──────────────────────────────────────────────

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Audit a saved plan or placed manifest",
		Long: `Validate audits placements for collisions, stacking legality, container
bounds, total weight, and axle balance. FILE may be a plan written by
'run --out-json' or a manifest whose pallets carry positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pallets, spec, err := loadPlacements(args[0])
			if err != nil {
				return err
			}

			findings := validate.FormatFindings(validate.Check(pallets, spec))
			if len(findings) == 0 {
				fmt.Printf("OK: %d pallets, no findings\n", len(pallets))
				return nil
			}
			for _, f := range findings {
				fmt.Println(f)
			}
			return fmt.Errorf("found %d problems", len(findings))
		},
	}
}

// loadPlacements reads placed pallets from a plan file or, failing that,
// from a bare manifest audited against the configured trailer.
func loadPlacements(path string) ([]*model.Pallet, model.TrailerSpec, error) {
	if plan, err := project.LoadPlan(path); err == nil {
		return plan.Placed, plan.Trailer, nil
	}
	pallets, err := project.LoadPallets(path)
	if err != nil {
		return nil, model.TrailerSpec{}, fmt.Errorf("%s is neither a plan nor a manifest: %w", path, err)
	}
	return pallets, trailerFromConfig(), nil
}

// ─── import ────────────────────────────────────────────────

func newImportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Convert a CSV or Excel pallet list into a JSON manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result importer.ImportResult
			switch ext := strings.ToLower(filepath.Ext(args[0])); ext {
			case ".csv", ".txt":
				result = importer.ImportCSV(args[0])
			case ".xlsx", ".xlsm":
				result = importer.ImportExcel(args[0])
			default:
				return fmt.Errorf("unsupported file type %q, want .csv or .xlsx", ext)
			}

			for _, w := range result.Warnings {
				log.Warn().Msg(w)
			}
			for _, e := range result.Errors {
				log.Error().Msg(e)
			}
			if len(result.Pallets) == 0 {
				return fmt.Errorf("no pallets imported from %s", args[0])
			}

			if err := project.SavePallets(out, result.Pallets); err != nil {
				return err
			}
			fmt.Printf("Imported %d pallets to %s", len(result.Pallets), out)
			if len(result.Errors) > 0 {
				fmt.Printf(" (%d rows skipped)", len(result.Errors))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "manifest.json", "output manifest path")
	return cmd
}

// ─── list ──────────────────────────────────────────────────

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available strategies and pallet formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STRATEGY\tDESCRIPTION")
			for _, k := range engine.Kinds() {
				fmt.Fprintf(w, "%s\t%s\n", k, engine.Describe(k))
			}
			fmt.Fprintln(w, "\t")
			fmt.Fprintln(w, "FORMAT\tFOOTPRINT\tTARE\tLOADING METERS")
			for _, pt := range model.PalletTypes {
				fmt.Fprintf(w, "%s\t%d x %d mm\t%d kg\t%.2f\n",
					pt.Name, pt.Length, pt.Width, pt.TareWeight, pt.LoadingMeters())
			}
			return w.Flush()
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/agentx-labs/aotreflect/internal/diag"
	"github.com/agentx-labs/aotreflect/internal/pipeline"
	"github.com/agentx-labs/aotreflect/internal/tracing"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	buildDryRun bool
	buildIndex  string
	buildOutput string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compute the reflection closure and write native-image configuration",
	Long: `Load the type index, resolve seeds from the configuration, compute which types
and members must stay reflectively accessible, validate them against the runtime
classpath and write reflect-config.json and resource-config.json.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Compute and report without writing files")
	buildCmd.Flags().StringVar(&buildIndex, "index", "", "Type index path (overrides config)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory (overrides config)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if buildIndex != "" {
		cfg.Index = buildIndex
	}
	if buildOutput != "" {
		cfg.Output = buildOutput
	}

	log := diag.New(cmd.ErrOrStderr(), cfg.Trace.Verbose)
	defer func() { _ = log.Sync() }()

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	report, err := pipeline.Run(cmd.Context(), cfg, pipeline.Options{
		DryRun: buildDryRun,
		Log:    log,
		Tracer: provider.Tracer(),
	})
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report, buildDryRun)
	return nil
}

func printReport(w io.Writer, r *pipeline.Report, dryRun bool) {
	if r.Disabled {
		color.New(color.FgYellow).Fprintln(w, "Reflection registration is disabled (reflection.enabled=false).")
		return
	}

	p := message.NewPrinter(language.English)
	bold := color.New(color.Bold, color.FgCyan)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	gray := color.New(color.FgHiBlack)

	bold.Fprintf(w, "Reflection closure %s\n", r.PassID)
	p.Fprintf(w, "  Indexed types:   %d\n", r.Types)
	if r.ClasspathClasses > 0 {
		p.Fprintf(w, "  Runtime classes: %d\n", r.ClasspathClasses)
	}
	green.Fprint(w, "  Registered:      ")
	p.Fprintf(w, "%d types, %d fields, %d methods, %d constructors\n",
		r.Summary.Emitted, r.Summary.Fields, r.Summary.Methods, r.Summary.Constructors)
	p.Fprintf(w, "  Resources:       %d\n", len(r.Resources))

	if len(r.Summary.Dropped) > 0 {
		red.Fprint(w, "  Dropped:         ")
		p.Fprintf(w, "%d\n", len(r.Summary.Dropped))
		for _, d := range r.Summary.Dropped {
			fmt.Fprintf(w, "    %s (missing %s)\n", d.Type, d.Missing)
		}
	}

	if dryRun {
		gray.Fprintln(w, "Dry run: no files written.")
		return
	}
	for _, path := range r.Written {
		gray.Fprintf(w, "  wrote %s\n", path)
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/agentx-labs/aotreflect/internal/classpath"
	"github.com/spf13/cobra"
)

var classpathJSON bool

func init() {
	classpathListCmd.Flags().BoolVar(&classpathJSON, "json", false, "Output in JSON format")
	classpathCmd.AddCommand(classpathListCmd)
	classpathCmd.AddCommand(classpathResolveCmd)
	rootCmd.AddCommand(classpathCmd)
}

var classpathCmd = &cobra.Command{
	Use:   "classpath",
	Short: "Inspect the runtime classpath",
}

var classpathListCmd = &cobra.Command{
	Use:   "list",
	Short: "List classes on the runtime classpath",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sources := classpath.SourcesFromPaths(cfg.Classpath)
		var entries []classpath.Entry
		if cfg.Cache != "" {
			entries, err = classpath.ListCached(sources, cfg.Cache)
		} else {
			entries, err = classpath.Walk(sources)
		}
		if err != nil {
			return fmt.Errorf("listing classpath: %w", err)
		}

		out := cmd.OutOrStdout()
		if classpathJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling entries: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No classes found.")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CLASS\tSOURCE")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Source)
		}
		return tw.Flush()
	},
}

var classpathResolveCmd = &cobra.Command{
	Use:   "resolve <class>...",
	Short: "Check whether classes resolve on the runtime classpath",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cp := classpath.New(classpath.SourcesFromPaths(cfg.Classpath), cfg.PlatformPackages)

		out := cmd.OutOrStdout()
		missing := 0
		for _, name := range args {
			loc, err := cp.Locate(name)
			switch {
			case err == nil:
				fmt.Fprintf(out, "%s\t%s\n", name, loc.Path)
			case cp.Resolve(name):
				fmt.Fprintf(out, "%s\t(platform)\n", name)
			default:
				fmt.Fprintf(out, "%s\tmissing\n", name)
				missing++
			}
		}
		if missing > 0 {
			return fmt.Errorf("%d class(es) not on the runtime classpath", missing)
		}
		return nil
	},
}

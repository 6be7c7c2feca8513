package cli

import (
	"context"

	"github.com/agentx-labs/aotreflect/internal/branding"
	"github.com/agentx-labs/aotreflect/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` computes the set of types and members an ahead-of-time compiled
image must keep introspectable, starting from configured seeds and a type index,
and writes the native-image reflection and resource configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ./"+config.FileName()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write per-type trace diagnostics")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.ExecuteContext(context.Background())
}

// loadConfig reads the configuration selected by --config and applies the
// global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Trace.Verbose = true
	}
	return cfg, nil
}

package cli

import (
	"fmt"

	"github.com/agentx-labs/aotreflect/internal/typeindex"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	indexCmd.AddCommand(indexValidateCmd)
	indexCmd.AddCommand(indexTreeCmd)
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect the type index",
}

var indexValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a type index against the schema",
	Long:  `Validate a type index document against the embedded schema and check its version. Defaults to the configured index.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := indexPath(args)
		if err != nil {
			return err
		}

		result, err := typeindex.ValidateFile(path)
		if err != nil {
			return fmt.Errorf("validating %s: %w", path, err)
		}

		out := cmd.OutOrStdout()
		if !result.Valid {
			color.New(color.FgRed).Fprintf(out, "%s is invalid:\n", path)
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "  %s\n", issue)
			}
			return fmt.Errorf("%w: %d issue(s)", typeindex.ErrInvalidDocument, len(result.Issues))
		}

		idx, err := typeindex.Load(path)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(out, "%s is valid (%d types, %d services)\n", path, idx.Len(), len(idx.Services()))
		return nil
	},
}

var indexTreeCmd = &cobra.Command{
	Use:   "tree <type>",
	Short: "Show the subtype hierarchy of a type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := indexPath(nil)
		if err != nil {
			return err
		}
		idx, err := typeindex.Load(path)
		if err != nil {
			return fmt.Errorf("loading type index: %w", err)
		}

		root := typeindex.BuildHierarchyTree(idx, args[0])
		out := cmd.OutOrStdout()
		typeindex.PrintTree(out, root, "", true)
		fmt.Fprintf(out, "\n%d type(s)\n", typeindex.CountTypes(root))
		return nil
	},
}

func indexPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Index, nil
}

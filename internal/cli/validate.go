package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skeinproject/skein/internal/catalog"
)

// CatalogSummary is the JSON payload of a successful validation.
type CatalogSummary struct {
	Functions []FunctionSummary `json:"functions"`
}

// FunctionSummary describes one catalog entry.
type FunctionSummary struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Doc       string `json:"doc,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog-dir>",
		Short: "Validate a function catalog",
		Long: `Validate the CUE function catalog: every entry must carry a
signature that parses as a Haskell type. Prints the resolved entries on
success.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := catalog.LoadDir(dir)
	if err != nil {
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return WrapExitError(ExitFailure, "catalog validation failed", err)
	}

	formatter.VerboseLog("Loaded %d catalog function(s) from %s", cat.Len(), dir)

	if formatter.Format == "json" {
		summary := CatalogSummary{}
		for _, name := range cat.Names() {
			entry, _ := cat.Lookup(name)
			summary.Functions = append(summary.Functions, FunctionSummary{
				Name:      entry.Name,
				Signature: entry.Signature,
				Doc:       entry.Doc,
			})
		}
		return formatter.Success(summary)
	}

	fmt.Fprintf(formatter.Writer, "✓ Catalog valid (%d functions)\n", cat.Len())
	for _, name := range cat.Names() {
		entry, _ := cat.Lookup(name)
		fmt.Fprintf(formatter.Writer, "  %s :: %s\n", entry.Name, entry.Signature)
	}
	return nil
}

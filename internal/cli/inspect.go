package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skeinproject/skein/internal/catalog"
	"github.com/skeinproject/skein/internal/diagram"
	"github.com/skeinproject/skein/internal/inspect"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	CatalogDir string
	Block      string
}

// InspectResult is the JSON payload of a successful inspect.
type InspectResult struct {
	Block string `json:"block"`
	Tree  string `json:"tree"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <diagram.yaml>",
		Short: "Show the type breakdown of a block's expression",
		Long: `Build the diagram and print the inspector tree for one block:
every subexpression annotated with its inferred type, "?" where a
subexpression cannot be typed in isolation.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CatalogDir, "catalog", "", "function catalog directory (required)")
	cmd.Flags().StringVar(&opts.Block, "block", "", "block id to inspect (required)")
	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("block")
	return cmd
}

func runInspect(rootOpts *RootOptions, opts *InspectOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	cat, err := catalog.LoadDir(opts.CatalogDir)
	if err != nil {
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading catalog", err)
	}
	doc, err := diagram.LoadFile(path)
	if err != nil {
		_ = formatter.Error(ErrCodeDiagram, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading diagram", err)
	}
	pane, err := diagram.Build(doc, cat)
	if err != nil {
		_ = formatter.Error(ErrCodeBuild, err.Error(), nil)
		return WrapExitError(ExitFailure, "building diagram", err)
	}

	b, ok := pane.Graph().Block(opts.Block)
	if !ok {
		msg := fmt.Sprintf("block %q not in diagram %q", opts.Block, doc.Name)
		_ = formatter.Error(ErrCodeBlock, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	tree := inspect.Tree(cat.Env(), b.Expression())
	if formatter.Format == "json" {
		return formatter.Success(InspectResult{Block: opts.Block, Tree: tree})
	}
	fmt.Fprint(formatter.Writer, tree)
	return nil
}

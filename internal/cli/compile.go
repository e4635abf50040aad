package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skeinproject/skein/internal/catalog"
	"github.com/skeinproject/skein/internal/diagram"
	"github.com/skeinproject/skein/internal/hs"
	"github.com/skeinproject/skein/internal/store"
	"github.com/skeinproject/skein/internal/wire"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	CatalogDir string
	Journal    string
}

// CompileResult is the JSON payload of a successful compile.
type CompileResult struct {
	Diagram     string           `json:"diagram"`
	Expressions []CompiledExpr   `json:"expressions"`
	TypeErrors  []TypeErrorEntry `json:"type_errors,omitempty"`
}

// CompiledExpr is one sink block's Haskell rendition.
type CompiledExpr struct {
	Block      string `json:"block"`
	Expression string `json:"expression"`
	Type       string `json:"type"`
}

// TypeErrorEntry reports a type mismatch recorded on an input anchor.
// Mismatches never block compilation; ill-typed inputs compile through
// their holes.
type TypeErrorEntry struct {
	Anchor  string `json:"anchor"`
	Message string `json:"message"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{}

	cmd := &cobra.Command{
		Use:   "compile <diagram.yaml>",
		Short: "Compile a diagram to Haskell expressions",
		Long: `Build the diagram against the function catalog and print the
Haskell expression of every sink block (blocks whose output feeds
nothing). Unconnected inputs compile to undefined.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CatalogDir, "catalog", "", "function catalog directory (required)")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the build as an edit session in this journal")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func runCompile(rootOpts *RootOptions, opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	pane, doc, err := buildDiagram(formatter, opts.CatalogDir, opts.Journal, path)
	if err != nil {
		return err
	}

	result := CompileResult{Diagram: doc.Name}
	for _, b := range sinkBlocks(pane.Graph()) {
		result.Expressions = append(result.Expressions, CompiledExpr{
			Block:      b.ID(),
			Expression: b.Expression().ToHaskell(),
			Type:       hs.TypeString(b.Outputs()[0].Type()),
		})
	}
	result.TypeErrors = collectTypeErrors(pane.Graph())

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, e := range result.Expressions {
		fmt.Fprintf(formatter.Writer, "%s = %s\n", e.Block, e.Expression)
		fmt.Fprintf(formatter.Writer, "  :: %s\n", e.Type)
	}
	for _, te := range result.TypeErrors {
		fmt.Fprintf(formatter.Writer, "warning: %s: %s\n", te.Anchor, te.Message)
	}
	return nil
}

// buildDiagram loads the catalog and diagram and replays the document
// into a pane, optionally journaling the build.
func buildDiagram(formatter *OutputFormatter, catalogDir, journalPath, path string) (*wire.Pane, *diagram.Document, error) {
	cat, err := catalog.LoadDir(catalogDir)
	if err != nil {
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return nil, nil, WrapExitError(ExitCommandError, "loading catalog", err)
	}
	doc, err := diagram.LoadFile(path)
	if err != nil {
		_ = formatter.Error(ErrCodeDiagram, err.Error(), nil)
		return nil, nil, WrapExitError(ExitCommandError, "loading diagram", err)
	}
	formatter.VerboseLog("Loaded diagram %q: %d block(s), %d connection(s)",
		doc.Name, len(doc.Blocks), len(doc.Connections))

	var paneOpts []wire.PaneOption
	var j *store.Journal
	if journalPath != "" {
		j, err = store.Open(journalPath)
		if err != nil {
			_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
			return nil, nil, WrapExitError(ExitCommandError, "opening journal", err)
		}
		defer j.Close()
		paneOpts = append(paneOpts, wire.WithRecorder(j))
	}

	pane, err := diagram.Build(doc, cat, paneOpts...)
	if err != nil {
		_ = formatter.Error(ErrCodeBuild, err.Error(), nil)
		return nil, nil, WrapExitError(ExitFailure, "building diagram", err)
	}
	return pane, doc, nil
}

// sinkBlocks returns the blocks whose outputs feed nothing, in
// creation order. These are the diagram's results.
func sinkBlocks(g *wire.Graph) []*wire.Block {
	var sinks []*wire.Block
	for _, b := range g.Blocks() {
		if _, top := b.Container().(*wire.TopLevel); !top {
			continue
		}
		used := false
		for _, out := range b.Outputs() {
			if len(out.Connections()) > 0 {
				used = true
				break
			}
		}
		if !used {
			sinks = append(sinks, b)
		}
	}
	return sinks
}

// collectTypeErrors gathers recorded unification failures across all
// input anchors.
func collectTypeErrors(g *wire.Graph) []TypeErrorEntry {
	var out []TypeErrorEntry
	for _, b := range g.Blocks() {
		for _, in := range b.Inputs() {
			if err := in.TypeError(); err != nil {
				out = append(out, TypeErrorEntry{
					Anchor:  in.Ref().String(),
					Message: err.Error(),
				})
			}
		}
		if lc := b.Lambda(); lc != nil {
			if err := lc.Result().TypeError(); err != nil {
				out = append(out, TypeErrorEntry{
					Anchor:  lc.Result().Ref().String(),
					Message: err.Error(),
				})
			}
		}
	}
	return out
}

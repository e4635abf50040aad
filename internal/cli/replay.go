package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skeinproject/skein/internal/hs"
	"github.com/skeinproject/skein/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	Journal string
	Session string
}

// ReplayResult is the JSON payload of a successful replay.
type ReplayResult struct {
	Session string        `json:"session"`
	LastSeq int64         `json:"last_seq"`
	Blocks  []ReplayBlock `json:"blocks"`
}

// ReplayBlock summarizes one rebuilt block.
type ReplayBlock struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Expression string `json:"expression"`
	Type       string `json:"type,omitempty"`
}

// SessionList is the JSON payload when no session is selected.
type SessionList struct {
	Sessions []string `json:"sessions"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild a pane from its edit journal",
		Long: `Replay a journaled edit session against a fresh pane and print
the rebuilt blocks. Without --session, lists the sessions in the
journal instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "journal database path (required)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session token to replay")
	_ = cmd.MarkFlagRequired("journal")
	return cmd
}

func runReplay(rootOpts *RootOptions, opts *ReplayOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}
	ctx := cmd.Context()

	j, err := store.Open(opts.Journal)
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening journal", err)
	}
	defer j.Close()

	if opts.Session == "" {
		sessions, err := j.Sessions(ctx)
		if err != nil {
			_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
			return WrapExitError(ExitCommandError, "listing sessions", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(SessionList{Sessions: sessions})
		}
		for _, s := range sessions {
			fmt.Fprintln(formatter.Writer, s)
		}
		return nil
	}

	pane, err := j.Replay(ctx, opts.Session)
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitFailure, "replaying session", err)
	}

	result := ReplayResult{
		Session: opts.Session,
		LastSeq: pane.Clock().Current(),
	}
	for _, b := range pane.Graph().Blocks() {
		rb := ReplayBlock{
			ID:         b.ID(),
			Kind:       string(b.Kind()),
			Expression: b.Expression().ToHaskell(),
		}
		if outs := b.Outputs(); len(outs) > 0 {
			rb.Type = hs.TypeString(outs[0].Type())
		}
		result.Blocks = append(result.Blocks, rb)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "session %s (%d edits)\n", result.Session, result.LastSeq)
	for _, b := range result.Blocks {
		fmt.Fprintf(formatter.Writer, "  %s [%s] = %s :: %s\n", b.ID, b.Kind, b.Expression, b.Type)
	}
	return nil
}

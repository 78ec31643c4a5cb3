package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"matrixdesk/internal/matrix"
	"matrixdesk/internal/notation"
	"matrixdesk/internal/store"
	"matrixdesk/internal/ui"
)

// NewShowCommand prints one slot typeset.
func NewShowCommand(env *Env) *cobra.Command {
	var source bool
	cmd := &cobra.Command{
		Use:   "show <slot>",
		Short: "Print a stored matrix",
		Long: `Print the matrix stored in a slot (ans or 1 through 7) from the
configured store.

Examples:
  matrixdesk show ans
  matrixdesk show 3 --source
  matrixdesk show 3 --store sqlite --db-path ./matrices.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			st, err := env.OpenStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			v := notation.NewRenderer(st, nil).Select(ctx, args[0])
			if v.Err != nil {
				return fmt.Errorf("slot %s: %w", args[0], v.Err)
			}
			if v.Empty {
				if !matrix.IsSlot(args[0]) {
					return fmt.Errorf("unknown slot %q, want ans or 1 to 7", args[0])
				}
				return fmt.Errorf("slot %s: %w", args[0], store.ErrNotFound)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n\n", ui.HeaderStyle.Render(v.Name), ui.SubHeaderStyle.Render(v.Dimension))
			if source {
				fmt.Fprintln(out, ui.HighlightNotation(v.Notation))
				return nil
			}
			fmt.Fprintln(out, v.Body)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&source, "source", "s", false, "print the notation source instead of the typeset matrix")
	return cmd
}

// NewHealthCommand probes the service.
func NewHealthCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the matrix service answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := env.Client.Health(ctx); err != nil {
				return fmt.Errorf("%s: %w", env.Client.Endpoint(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is up\n", env.Client.Endpoint())
			return nil
		},
	}
}

// NewSeedCommand stores the placeholder matrices in a writable store.
func NewSeedCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill a database store with the placeholder matrices",
		Long: `Write the built-in placeholder matrices for ans and slots 1 through 7 into
the sqlite or postgres store, then list the stored slots.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			st, err := env.OpenStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()
			return Seed(ctx, cmd.OutOrStdout(), st)
		},
	}
}

// errReadOnly is returned by Seed for stores without a Put.
var errReadOnly = errors.New("cli: store is read-only, use --store sqlite or --store postgres")

// Seed writes the placeholder records into st and prints the stored slots.
func Seed(ctx context.Context, out io.Writer, st store.Store) error {
	w, ok := st.(store.Writer)
	if !ok {
		return errReadOnly
	}
	if err := w.Put(ctx, store.NewFixture().Records()); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	slots, err := w.Slots(ctx)
	if err != nil {
		return fmt.Errorf("list slots: %w", err)
	}
	for _, id := range slots {
		fmt.Fprintln(out, id)
	}
	return nil
}

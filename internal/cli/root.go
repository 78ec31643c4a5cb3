package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"matrixdesk/internal/app"
	"matrixdesk/internal/config"
	"matrixdesk/internal/notation"
)

// NewRootCommand builds the matrixdesk command tree. Run without a
// subcommand it starts the terminal UI.
func NewRootCommand(version string) *cobra.Command {
	env := &Env{}
	cmd := &cobra.Command{
		Use:   "matrixdesk",
		Short: "Enter matrices and view them typeset",
		Long: `matrixdesk is a terminal front end for a local matrix service.

The input screen sends integer matrices to one of seven slots; the display
screen shows stored slots and the last result typeset as a bracketed
matrix.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := env.load(); err != nil {
				return err
			}
			return env.startLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), env)
		},
	}
	env.bindFlags(cmd)

	cmd.AddCommand(
		NewSubmitCommand(env),
		NewShowCommand(env),
		NewHealthCommand(env),
		NewSeedCommand(env),
		NewVersionCommand(version),
	)
	return cmd
}

func runTUI(ctx context.Context, env *Env) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := env.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	model := app.NewModel(app.Options{
		Submitter:     env.Client,
		Renderer:      notation.NewRenderer(st, nil),
		Exports:       config.NewExports(env.Config.ExportDir()),
		SubmitTimeout: env.Config.Service.SubmitTimeout,
		FadeDelay:     env.Config.Service.FadeDelay,
		Info:          env.Describe(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}

// NewVersionCommand prints the build version.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		// Skip loading config for version.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "matrixdesk version %s\n", version)
		},
	}
}

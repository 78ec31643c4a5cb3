package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"matrixdesk/internal/editor"
	"matrixdesk/internal/ui"
)

// ErrSubmitFailed is returned when the service rejected a submission or
// could not be reached.
var ErrSubmitFailed = errors.New("cli: submission failed")

// ErrSubmitTimedOut is returned when no answer came within the timeout.
var ErrSubmitTimedOut = errors.New("cli: submission timed out")

// MatrixFile is the YAML form of a submission. Cells are text so they go
// through the same sanitizing as typed input.
type MatrixFile struct {
	Slot int        `yaml:"slot"`
	Name string     `yaml:"name"`
	Rows int        `yaml:"rows"`
	Cols int        `yaml:"cols"`
	Data [][]string `yaml:"data"`
}

// ReadMatrixFile decodes a MatrixFile.
func ReadMatrixFile(r io.Reader) (MatrixFile, error) {
	var f MatrixFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return MatrixFile{}, fmt.Errorf("parse matrix file: %w", err)
	}
	return f, nil
}

// State loads the file into a form. Missing dimensions come from the data;
// cells beyond the dimensions are ignored.
func (f MatrixFile) State() *editor.State {
	s := editor.NewState()
	if f.Slot != 0 {
		s.SetSlot(f.Slot)
	}
	if f.Name != "" {
		s.SetName(f.Name)
	}
	rows, cols := f.Rows, f.Cols
	if rows == 0 {
		rows = len(f.Data)
	}
	if cols == 0 {
		for _, row := range f.Data {
			cols = max(cols, len(row))
		}
	}
	s.SetDimensions(rows, cols)
	for r, row := range f.Data {
		for c, text := range row {
			s.Input(r, c, text)
		}
	}
	return s
}

// Submit validates s and sends it through sub, racing the answer against
// timeout. Exactly one outcome line is written to out.
func Submit(ctx context.Context, out io.Writer, sub ui.Submitter, s *editor.State, timeout time.Duration) error {
	req, err := s.Prepare()
	if err != nil {
		fmt.Fprintln(out, editor.Message(err))
		return &ReportedError{Err: err}
	}

	tracker := editor.NewTracker()
	seq := tracker.Begin()

	type shown struct {
		outcome editor.Outcome
		text    string
	}
	results := make(chan shown, 2)

	timer := time.AfterFunc(timeout, func() {
		if tracker.Resolve(seq, editor.OutcomeTimedOut) {
			results <- shown{editor.OutcomeTimedOut, editor.TimeoutWarning}
		}
	})
	defer timer.Stop()

	go func() {
		resp, err := sub.Submit(ctx, req)
		outcome, text := editor.Classify(resp, err)
		if tracker.Resolve(seq, outcome) {
			results <- shown{outcome, text}
			return
		}
		log.Printf("[submit] #%d late answer suppressed (%s): %s", seq, outcome.Phase(), text)
	}()

	log.Printf("[submit] #%d slot %d %q %dx%d", seq, req.ID, req.Name, req.Rows, req.Cols)
	var res shown
	select {
	case res = <-results:
	case <-ctx.Done():
		return ctx.Err()
	}
	fmt.Fprintln(out, res.text)

	switch res.outcome {
	case editor.OutcomeSucceeded:
		return nil
	case editor.OutcomeTimedOut:
		return &ReportedError{Err: ErrSubmitTimedOut}
	default:
		return &ReportedError{Err: ErrSubmitFailed}
	}
}

// NewSubmitCommand sends a matrix file without the terminal UI.
func NewSubmitCommand(env *Env) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "submit -f matrix.yaml",
		Short: "Send a matrix file to the service",
		Long: `Send a matrix described in YAML to the service, with the same checks
as the input screen.

Example file:
  slot: 2
  name: Matrix_B
  data:
    - [1, 2, 3]
    - [4, -5, 6]

Use "-" as the file to read standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := io.Reader(cmd.InOrStdin())
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			mf, err := ReadMatrixFile(r)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return Submit(ctx, cmd.OutOrStdout(), env.Client, mf.State(), env.Config.Service.SubmitTimeout)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "matrix file to send")
	cmd.MarkFlagRequired("file")
	return cmd
}

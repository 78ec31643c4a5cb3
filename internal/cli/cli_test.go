package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"matrixdesk/internal/api"
	"matrixdesk/internal/editor"
	"matrixdesk/internal/store"
)

func TestReadMatrixFile(t *testing.T) {
	f, err := ReadMatrixFile(strings.NewReader(`
slot: 2
name: Matrix_B
data:
  - [1, 2, 3]
  - [4, "-5x", ""]
`))
	require.NoError(t, err)
	s := f.State()
	require.Equal(t, 2, s.Slot())
	require.Equal(t, 2, s.Rows())
	require.Equal(t, 3, s.Cols())
	require.Equal(t, "-5", s.Text(1, 1))

	data, err := s.Collect()
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 2, 3}, {4, -5, 0}}, data)
}

func TestMatrixFileExplicitDimensions(t *testing.T) {
	f := MatrixFile{Rows: 40, Cols: 1, Data: [][]string{{"7", "8"}}}
	s := f.State()
	require.Equal(t, 32, s.Rows())
	require.Equal(t, 1, s.Cols())
	require.Equal(t, "7", s.Text(0, 0))
	require.Equal(t, "Matrix_A", s.Name())
}

func TestReadMatrixFileBadYAML(t *testing.T) {
	_, err := ReadMatrixFile(strings.NewReader("data: [[1, 2"))
	require.Error(t, err)
}

func serve(t *testing.T, h http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL)
}

func TestSubmitSuccess(t *testing.T) {
	var got api.SubmitRequest
	client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success": true, "message": "stored in slot 3"}`))
	})

	f := MatrixFile{Slot: 3, Data: [][]string{{"1", "-2"}}}
	var out bytes.Buffer
	require.NoError(t, Submit(context.Background(), &out, client, f.State(), time.Second))
	require.Equal(t, "stored in slot 3\n", out.String())
	require.Equal(t, api.SubmitRequest{ID: 3, Name: "Matrix_C", Rows: 1, Cols: 2, Data: [][]int{{1, -2}}}, got)
}

func TestSubmitServiceFailure(t *testing.T) {
	client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "error": "rows out of range"}`))
	})

	var out bytes.Buffer
	err := Submit(context.Background(), &out, client, MatrixFile{Data: [][]string{{"1"}}}.State(), time.Second)
	require.ErrorIs(t, err, ErrSubmitFailed)
	var reported *ReportedError
	require.ErrorAs(t, err, &reported)
	require.Equal(t, "Submit failed: rows out of range\n", out.String())
}

func TestSubmitTimeoutShowsOneOutcome(t *testing.T) {
	release := make(chan struct{})
	client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"success": true}`))
	})
	defer close(release)

	var out bytes.Buffer
	err := Submit(context.Background(), &out, client, MatrixFile{Data: [][]string{{"1"}}}.State(), 20*time.Millisecond)
	require.ErrorIs(t, err, ErrSubmitTimedOut)
	require.Equal(t, editor.TimeoutWarning+"\n", out.String())
}

func TestSubmitValidationSendsNothing(t *testing.T) {
	called := false
	client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	var out bytes.Buffer
	err := Submit(context.Background(), &out, client, MatrixFile{Data: [][]string{{"1", "-"}}}.State(), time.Second)
	var lone *editor.LoneSignError
	require.ErrorAs(t, err, &lone)
	require.Contains(t, out.String(), "cell (1, 2)")

	f := MatrixFile{Name: "Ωmega", Data: [][]string{{"1"}}}
	out.Reset()
	err = Submit(context.Background(), &out, client, f.State(), time.Second)
	require.ErrorIs(t, err, editor.ErrNonASCIIName)
	require.False(t, called)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	st, err := store.OpenSQLite(ctx, filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer st.Close()

	var out bytes.Buffer
	require.NoError(t, Seed(ctx, &out, st))
	require.Equal(t, "1\n2\n3\n4\n5\n6\n7\nans\n", out.String())

	require.ErrorIs(t, Seed(ctx, &out, store.NewFixture()), errReadOnly)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestShowCommand(t *testing.T) {
	out, err := execute(t, "show", "6")
	require.NoError(t, err)
	require.Contains(t, out, "Matrix_F")
	require.Contains(t, out, "2 × 2")
	require.Contains(t, out, "300  400")

	out, err = execute(t, "show", "ans", "--source")
	require.NoError(t, err)
	require.Contains(t, out, "bmatrix")

	_, err = execute(t, "show", "9")
	require.EqualError(t, err, `unknown slot "9", want ans or 1 to 7`)
}

func TestShowCommandSQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "m.db")
	out, err := execute(t, "--store", "sqlite", "--db-path", db, "seed")
	require.NoError(t, err)
	require.Contains(t, out, "ans")

	out, err = execute(t, "--store", "sqlite", "--db-path", db, "show", "7")
	require.NoError(t, err)
	require.Contains(t, out, "Matrix_G")
}

func TestSubmitCommand(t *testing.T) {
	client := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	}))
	defer client.Close()

	path := filepath.Join(t.TempDir(), "m.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Identity\ndata: [[1, 0], [0, 1]]\n"), 0600))

	out, err := execute(t, "--endpoint", client.URL, "submit", "-f", path)
	require.NoError(t, err)
	require.Equal(t, "Matrix saved\n", out)
}

func TestHealthCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	out, err := execute(t, "--endpoint", srv.URL, "health")
	require.NoError(t, err)
	require.Contains(t, out, "is up")

	srv.Close()
	_, err = execute(t, "--endpoint", srv.URL, "health")
	var ne *api.NetworkError
	require.True(t, errors.As(err, &ne))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "matrixdesk version 1.2.3\n", out)
}

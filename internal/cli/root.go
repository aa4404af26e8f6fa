package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"quire-cli/internal/journal"
	"quire-cli/internal/store"
	"quire-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "quire",
		Short:        "Quire: append-only notebooks in your terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive notebook
  quire

  # Scriptable commands
  quire notebooks list
  quire write "dear diary"
  quire pages show 1
  quire export -o journal.md
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("QUIRE_DIR", ""), "Path to the data dir (default: nearest .quire, or ./.quire)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newNotebooksCmd(app))
	cmd.AddCommand(newPagesCmd(app))
	cmd.AddCommand(newWriteCmd(app))
	cmd.AddCommand(newTearCmd(app))
	cmd.AddCommand(newExportCmd(app))

	return cmd
}

func runTUI(app *App) error {
	st, err := resolveStore(app)
	if err != nil {
		return err
	}
	sink := tui.NewFeedbackSink()
	svc := journal.Open(journal.Options{Store: st, OnFeedback: sink.Push})
	defer svc.Close()
	return tui.Run(st.Dir, svc, sink)
}

func resolveStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	return store.Store{Dir: dir}, nil
}

// openService resolves the data dir and opens the journal with the
// periodic save loop disabled; one-shot commands flush on Close.
func openService(app *App) (*journal.Service, error) {
	st, err := resolveStore(app)
	if err != nil {
		return nil, err
	}
	return journal.Open(journal.Options{Store: st, Interval: -1}), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

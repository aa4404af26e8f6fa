package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"quire-cli/internal/model"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var notebookID string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a notebook as markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer svc.Close()

			db := svc.DB()
			id := notebookID
			if id == "" {
				id = db.CurrentNotebookID
			}
			nb, _, ok := db.FindNotebook(id)
			if !ok {
				return writeErr(cmd, fmt.Errorf("notebook not found: %s", id))
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				w = f
			}
			return exportMarkdown(w, nb)
		},
	}

	cmd.Flags().StringVar(&notebookID, "notebook", "", "Notebook id (default: current)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: stdout)")
	return cmd
}

// exportMarkdown writes one section per used page. Blank pages are
// skipped; torn pages leave a visible stub so the gap in page numbers is
// explained.
func exportMarkdown(w io.Writer, nb model.Notebook) error {
	var b strings.Builder
	b.WriteString("# " + nb.Name + "\n")
	for _, p := range nb.Pages {
		switch p.State() {
		case model.PageEmpty:
			continue
		case model.PageTorn:
			fmt.Fprintf(&b, "\n## Page %d\n\n*This page was torn out.*\n", p.PageNumber)
		default:
			fmt.Fprintf(&b, "\n## Page %d\n\n%s\n", p.PageNumber, strings.TrimRight(p.Content, "\n"))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

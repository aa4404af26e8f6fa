package cli

import (
	"quire-cli/internal/model"

	"github.com/spf13/cobra"
)

func newWriteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "write <text>",
		Short: "Write the current page (fails on completed or torn pages)",
		Long: "Write sets the current page's content in one step. Text beyond the " +
			"page capacity is truncated on a character boundary; a page already " +
			"completed or torn rejects the write.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer svc.Close()

			if err := svc.UpdateCurrentPageContent(args[0]); err != nil {
				return writeErr(cmd, err)
			}
			nb, _ := svc.Current()
			p := nb.CurrentPage()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"pageNumber": p.PageNumber,
				"clusters":   model.ClusterCount(p.Content),
			}})
		},
	}
}

func newTearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tear",
		Short: "Tear out the current page (irreversible)",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer svc.Close()

			if err := svc.TearCurrentPage(); err != nil {
				return writeErr(cmd, err)
			}
			nb, _ := svc.Current()
			return writeOut(cmd, app, map[string]any{"data": map[string]int{
				"pageNumber": nb.CurrentPageIndex + 1,
			}})
		},
	}
}

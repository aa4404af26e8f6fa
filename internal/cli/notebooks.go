package cli

import (
	"github.com/spf13/cobra"
)

func newNotebooksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebooks",
		Short: "Notebook commands",
	}
	cmd.AddCommand(newNotebooksListCmd(app))
	cmd.AddCommand(newNotebooksCreateCmd(app))
	cmd.AddCommand(newNotebooksDeleteCmd(app))
	cmd.AddCommand(newNotebooksSelectCmd(app))
	return cmd
}

type notebookSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Default   bool   `json:"default"`
	Current   bool   `json:"current"`
	UsedPages int    `json:"usedPages"`
	TornPages int    `json:"tornPages"`
}

func newNotebooksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notebooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer svc.Close()

			db := svc.DB()
			out := make([]notebookSummary, 0, len(db.Notebooks))
			for _, nb := range db.Notebooks {
				out = append(out, notebookSummary{
					ID:        nb.ID,
					Name:      nb.Name,
					Default:   nb.Default,
					Current:   nb.ID == db.CurrentNotebookID,
					UsedPages: nb.UsedPagesCount(),
					TornPages: nb.TornPagesCount(),
				})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newNotebooksCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a notebook and make it current",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer svc.Close()

			nb, err := svc.CreateNotebook(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": notebookSummary{
				ID:      nb.ID,
				Name:    nb.Name,
				Default: nb.Default,
				Current: true,
			}})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Notebook name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newNotebooksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <notebook-id>",
		Short: "Delete a notebook (the default notebook is protected)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer svc.Close()

			if err := svc.DeleteNotebook(args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"deleted": args[0]}})
		},
	}
}

func newNotebooksSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select <notebook-id>",
		Short: "Make a notebook current (locks the outgoing page)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer svc.Close()

			if err := svc.SelectNotebook(args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"selected": args[0]}})
		},
	}
}

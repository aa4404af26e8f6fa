package cli

import (
	"errors"
	"strconv"
	"time"

	"quire-cli/internal/model"

	"github.com/spf13/cobra"
)

func newPagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Page commands for the current notebook",
	}
	cmd.AddCommand(newPagesListCmd(app))
	cmd.AddCommand(newPagesShowCmd(app))
	cmd.AddCommand(newPagesGotoCmd(app))
	cmd.AddCommand(newPagesNextCmd(app))
	cmd.AddCommand(newPagesPrevCmd(app))
	return cmd
}

type pageSummary struct {
	PageNumber int             `json:"pageNumber"`
	State      model.PageState `json:"state"`
	Clusters   int             `json:"clusters"`
	Current    bool            `json:"current"`
}

type pageDetail struct {
	ID           string          `json:"id"`
	PageNumber   int             `json:"pageNumber"`
	State        model.PageState `json:"state"`
	Content      string          `json:"content"`
	Clusters     int             `json:"clusters"`
	CreatedAt    time.Time       `json:"createdAt"`
	LastModified time.Time       `json:"lastModified"`
}

var errNoCurrentNotebook = errors.New("no current notebook")

func newPagesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the pages of the current notebook",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer svc.Close()

			nb, ok := svc.Current()
			if !ok {
				return writeErr(cmd, errNoCurrentNotebook)
			}
			out := make([]pageSummary, 0, len(nb.Pages))
			for i, p := range nb.Pages {
				out = append(out, pageSummary{
					PageNumber: p.PageNumber,
					State:      p.State(),
					Clusters:   model.ClusterCount(p.Content),
					Current:    i == nb.CurrentPageIndex,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newPagesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [page-number]",
		Short: "Show a page (default: the current page)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer svc.Close()

			nb, ok := svc.Current()
			if !ok {
				return writeErr(cmd, errNoCurrentNotebook)
			}
			idx := nb.CurrentPageIndex
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 || n > len(nb.Pages) {
					return writeErr(cmd, model.ErrNoPage)
				}
				idx = n - 1
			}
			p := nb.Pages[idx]
			return writeOut(cmd, app, map[string]any{"data": pageDetail{
				ID:           p.ID,
				PageNumber:   p.PageNumber,
				State:        p.State(),
				Content:      p.Content,
				Clusters:     model.ClusterCount(p.Content),
				CreatedAt:    p.CreatedAt,
				LastModified: p.LastModified,
			}})
		},
	}
}

func newPagesGotoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "goto <page-number>",
		Short: "Move to a page (locks the page being left)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer svc.Close()

			n, convErr := strconv.Atoi(args[0])
			if convErr != nil {
				return writeErr(cmd, model.ErrNoPage)
			}
			nb, err := svc.MoveToPage(n - 1)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]int{
				"pageNumber": nb.CurrentPageIndex + 1,
			}})
		},
	}
}

func newPagesNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Turn to the next available page",
		RunE:  navigateRunE(app, +1),
	}
}

func newPagesPrevCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prev",
		Short: "Turn to the previous available page",
		RunE:  navigateRunE(app, -1),
	}
}

func navigateRunE(app *App, direction int) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := openService(app)
		if err != nil {
			return writeErr(cmd, err)
		}
		defer svc.Close()

		nb, err := svc.Navigate(direction)
		if err != nil {
			return writeErr(cmd, err)
		}
		return writeOut(cmd, app, map[string]any{"data": map[string]int{
			"pageNumber": nb.CurrentPageIndex + 1,
		}})
	}
}

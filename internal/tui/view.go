package tui

import (
	"fmt"
	"strings"

	"quire-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	w := m.width
	if w < 40 {
		w = 40
	}

	header := m.viewHeader(w)

	var body string
	switch m.view {
	case viewNotebooks:
		body = m.notebooksList.View()
	case viewReading:
		body = m.viewReadingBody(w)
	default:
		body = m.viewPageBody(w)
	}

	footer := m.viewFooter(w)
	return strings.Join([]string{header, body, footer}, "\n\n")
}

func (m appModel) viewHeader(w int) string {
	nb, ok := m.svc.Current()
	if !ok {
		return lipgloss.NewStyle().Bold(true).Render("Quire")
	}
	p := nb.CurrentPage()
	head := fmt.Sprintf("Quire  %s  page %d/%d  %s  (%d used, %d torn)",
		nb.Name, nb.CurrentPageIndex+1, model.PagesPerNotebook, pageStateLabel(p),
		nb.UsedPagesCount(), nb.TornPagesCount())
	if m.editing {
		head += "  [writing]"
	}
	return clipLine(lipgloss.NewStyle().Bold(true).Render(head), w)
}

func pageStateLabel(p *model.Page) string {
	if p == nil {
		return "-"
	}
	return string(p.State())
}

func (m appModel) viewPageBody(w int) string {
	nb, ok := m.svc.Current()
	if !ok {
		return styleMuted().Render("No notebook.")
	}
	p := nb.CurrentPage()
	if p == nil {
		return styleMuted().Render("No page.")
	}

	if p.Torn {
		return lipgloss.NewStyle().Foreground(colorDangerFg).Render("This page has been torn out.")
	}

	content := p.Content
	if m.editing {
		content = m.ctrl.Text()
	}

	var b strings.Builder
	textW := w - 2
	if textW < 20 {
		textW = 20
	}
	if content == "" && !m.editing {
		b.WriteString(styleMuted().Render("Blank page. Press enter to start writing."))
	} else {
		rendered := lipgloss.NewStyle().Width(textW).Render(content)
		if m.editing {
			cursor := lipgloss.NewStyle().
				Foreground(colorAccentFg).
				Background(colorAccent).
				Render(" ")
			rendered += cursor
		}
		b.WriteString(rendered)
	}

	b.WriteString("\n\n")
	count := fmt.Sprintf("%d/%d", model.ClusterCount(content), model.MaxPageClusters)
	b.WriteString(styleMuted().Render(count))
	return b.String()
}

func (m appModel) viewReadingBody(w int) string {
	nb, ok := m.svc.Current()
	if !ok {
		return styleMuted().Render("No notebook.")
	}
	p := nb.CurrentPage()
	if p == nil || p.Torn {
		return lipgloss.NewStyle().Foreground(colorDangerFg).Render("This page has been torn out.")
	}
	if strings.TrimSpace(p.Content) == "" {
		return styleMuted().Render("Blank page.")
	}
	textW := w - 4
	if textW < 20 {
		textW = 20
	}
	return renderMarkdown(p.Content, textW)
}

func (m appModel) viewFooter(w int) string {
	var keys string
	switch {
	case m.modal == modalNewNotebook:
		return "New notebook: " + m.input.View() + "\n" +
			styleMuted().Render("enter: create  esc: cancel")
	case m.modal == modalConfirmTear:
		return lipgloss.NewStyle().Foreground(colorDangerFg).
			Render("Tear out this page? It cannot be restored.") + "\n" +
			styleMuted().Render("y: tear  any other key: cancel")
	case m.modal == modalConfirmDelete:
		return lipgloss.NewStyle().Foreground(colorDangerFg).
			Render("Delete this notebook and all its pages?") + "\n" +
			styleMuted().Render("y: delete  any other key: cancel")
	case m.editing:
		keys = "esc: stop writing  backspace: undo last character"
	case m.view == viewNotebooks:
		keys = "enter: open  a: add  d: delete  esc: back  q: quit"
	case m.view == viewReading:
		keys = "←/→: turn page  v/esc: back  q: quit"
	default:
		keys = "enter: write  ←/→: turn page  t: tear  v: read  n: notebooks  q: quit"
	}

	footer := styleMuted().Render(keys)
	if m.minibufferText != "" {
		mb := lipgloss.NewStyle().Foreground(colorAccent).Render(m.minibufferText)
		footer = clipLine(mb, w) + "\n" + footer
	}
	return footer
}

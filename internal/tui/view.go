package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"puppy-store/internal/domain/puppies"
	"puppy-store/internal/listing"
)

const (
	headerTitle = "Available Puppies"
	cardHeight  = 7 // borde + thumb + nombre + 2 líneas de descripción + borde
)

func (m Model) View() string {
	if m.screen == screenDetail {
		return m.detailView()
	}
	return m.listView()
}

func (m Model) listView() string {
	header := titleStyle.Render(headerTitle)
	if m.errorSim {
		header += "  " + errorStyle.Render("[error simulation on]")
	}

	var body string
	switch m.snap.State {
	case listing.StateIdle, listing.StateLoading:
		body = centered(subtleStyle.Render("Loading puppies..."))

	case listing.StateError:
		body = centered(
			errorStyle.Render(m.snap.Err),
			"",
			buttonStyle.Render("Retry")+" "+helpStyle.Render("(R)"),
		)

	case listing.StateEmpty:
		lines := []string{subtleStyle.Render("No puppies available right now."), ""}
		if m.snap.Refreshing {
			lines = append(lines, subtleStyle.Render("refreshing…"))
		} else {
			lines = append(lines, buttonStyle.Render("Refresh")+" "+helpStyle.Render("(r)"))
		}
		body = centered(lines...)

	default:
		body = m.gridView() + "\n" + m.footerView()
	}

	parts := []string{header, "", body}
	if m.status != "" {
		parts = append(parts, "", helpStyle.Render(m.status))
	}
	parts = append(parts, "", m.help.View(m.keys))
	return strings.Join(parts, "\n")
}

func (m Model) gridView() string {
	cardWidth := (m.width - 2) / columns
	if cardWidth < 20 {
		cardWidth = 20
	}
	inner := cardWidth - 4 // borde + padding

	items := m.snap.Items
	rows := m.visibleRows()

	out := make([]string, 0, rows)
	for row := m.offset; row < m.offset+rows; row++ {
		start := row * columns
		if start >= len(items) {
			break
		}
		cards := make([]string, 0, columns)
		for i := start; i < start+columns && i < len(items); i++ {
			style := cardStyle
			if i == m.selected {
				style = selectedCardStyle
			}
			cards = append(cards, style.Width(cardWidth-2).Render(cardContent(items[i], inner)))
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(out, "\n")
}

func cardContent(p puppies.Puppy, width int) string {
	thumb := thumbStyle.Render("[" + p.Initial() + "]")
	if p.ImageURL != "" {
		thumb = thumbStyle.Render("[img]")
	}
	name := titleStyle.MaxWidth(width).Render(p.Name)
	desc := subtleStyle.Width(width).MaxHeight(2).Render(p.Description)
	return strings.Join([]string{thumb, name, desc}, "\n")
}

func (m Model) footerView() string {
	s := m.snap
	switch {
	case s.Refreshing:
		return subtleStyle.Render("refreshing…")
	case s.LoadingMore:
		return subtleStyle.Render("loading more…")
	case s.LoadMoreErr != "":
		return errorStyle.Render(s.LoadMoreErr) + " " + helpStyle.Render("(m) try again")
	case s.Exhausted():
		return helpStyle.Render("That's all the puppies.")
	default:
		return ""
	}
}

func (m Model) detailView() string {
	d := m.detail
	back := m.help.View(detailKeyMap{m.keys})

	switch {
	case d.loading:
		return centered(subtleStyle.Render("Loading...")) + "\n\n" + back
	case d.err != "":
		return centered(errorStyle.Render(d.err)) + "\n\n" + back
	case !d.found:
		return centered(
			titleStyle.Render("Puppy Not Found"),
			subtleStyle.Render("We couldn't find that puppy."),
		) + "\n\n" + back
	}

	p := d.puppy
	width := m.width - 4
	if width < 20 {
		width = 20
	}

	hero := thumbStyle.Width(width).Align(lipgloss.Center).Render("[ " + p.Initial() + " ]")
	if p.ImageURL != "" {
		hero = thumbStyle.Width(width).Align(lipgloss.Center).Render(p.ImageURL)
	}

	lines := []string{hero, "", titleStyle.Render(p.Name)}
	if meta := p.Meta(); meta != "" {
		lines = append(lines, metaStyle.Render(meta))
	}
	lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(p.Description), "", back)
	return strings.Join(lines, "\n")
}

func (m Model) visibleRows() int {
	// header(1) + blank(1) + footer(2) + help(2)
	rows := (m.height - 6) / cardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func centered(lines ...string) string {
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

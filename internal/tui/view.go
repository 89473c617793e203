package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"clarity-board/internal/board"
	"clarity-board/internal/model"
	"clarity-board/internal/statusutil"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading" + glyphEllipsis()
	}

	var b strings.Builder
	b.WriteString(normalizePane(m.renderTitle(), m.width, 1))
	b.WriteString("\n")

	bodyH := m.height - 1 - footerHeight
	if m.showHelp {
		b.WriteString(normalizePane(renderMarkdown(helpMarkdown, m.width-2), m.width, bodyH))
	} else {
		b.WriteString(m.renderBoard(bodyH))
	}
	b.WriteString("\n")
	b.WriteString(normalizePane(m.renderStatus(), m.width, 1))
	b.WriteString("\n")
	b.WriteString(normalizePane(m.renderHelpLine(), m.width, 1))
	return b.String()
}

func (m appModel) renderTitle() string {
	total := 0
	for _, c := range m.cols {
		total += len(c.Items)
	}
	title := styleTitle.Render("Board") + styleMuted().Render(fmt.Sprintf("  %d cards", total))
	if s := m.engine.Session(); s.State == board.Dragging {
		title += "  " + styleDragging.Render(" moving "+m.titleOf(s.ActiveItemID)+" ")
	}
	return title
}

func (m appModel) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styleStatusError.Render(m.status)
	}
	return styleMuted().Render(m.status)
}

func (m appModel) renderHelpLine() string {
	if m.dragging() {
		return m.help.View(dragKeys{m.keys})
	}
	return m.help.View(idleKeys{m.keys})
}

// renderBoard draws the column headers and cards in height rows. Row 0 is the
// header row (screen row boardTop-1).
func (m appModel) renderBoard(height int) string {
	g := newGeometry(m.width, m.height, len(m.cols))
	sess := m.engine.Session()

	panes := make([]string, 0, len(m.cols)*2)
	for ci, col := range m.cols {
		if ci > 0 {
			panes = append(panes, normalizePane("", columnGap, height))
		}
		panes = append(panes, normalizePane(m.renderColumn(ci, col, g, sess), g.colW, height))
	}
	return normalizePane(lipgloss.JoinHorizontal(lipgloss.Top, panes...), m.width, height)
}

func (m appModel) renderColumn(ci int, col board.Column[model.Task], g geometry, sess board.Session) string {
	header := fmt.Sprintf(" %s (%d)", statusutil.Label(col.Status), len(col.Items))
	hs := styleHeader
	if ci == m.sel.col {
		hs = styleHeaderSelected
	}
	if sess.State == board.Dragging && m.marker == string(col.Status) {
		header += " " + glyphDropMarker()
	}
	lines := []string{hs.Width(g.colW).Render(header)}

	off := m.offsets[ci]
	vis := g.visibleCards()
	end := min(len(col.Items), off+vis)
	for i := off; i < end; i++ {
		it := col.Items[i]
		lines = append(lines, m.renderCard(it, col.Status, g.colW, sess)...)
	}
	if hidden := len(col.Items) - end; hidden > 0 && len(lines) > 1 {
		// Overwrite the last spacer row so the hit-test slots stay aligned.
		lines[len(lines)-1] = styleMuted().Render(fmt.Sprintf(" %s %d more", glyphMore(), hidden))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderCard(it model.TaskItem, st model.Status, width int, sess board.Session) []string {
	inner := max(1, width-2)

	title := strings.TrimSpace(it.Payload.Title)
	if title == "" {
		title = it.ID
	}
	prefix := ""
	if it.Payload.Pinned {
		prefix = glyphPinned() + " "
	}
	if statusutil.IsEndState(st) {
		prefix = glyphCheck() + " " + prefix
	}
	isActive := sess.State == board.Dragging && it.ID == sess.ActiveItemID
	isMarker := sess.State == board.Dragging && it.ID == m.marker && !isActive
	if isMarker {
		prefix = glyphDropMarker() + " " + prefix
	}
	titleLine := truncate(prefix+title, inner)

	meta := cardMeta(it.Payload)
	metaLine := truncate(meta, inner)

	cardStyle := lipgloss.NewStyle().Width(width).Padding(0, 1)
	metaStyle := cardStyle.Inherit(styleCardMeta)
	switch {
	case isActive:
		cardStyle = cardStyle.Inherit(styleDragging)
		metaStyle = metaStyle.Background(colorAccent).Foreground(colorAccentFg)
	case isMarker:
		cardStyle = cardStyle.Inherit(styleDropMarker)
	case it.ID == m.sel.itemID:
		cardStyle = cardStyle.Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
		metaStyle = metaStyle.Background(colorSelectedBg)
	case statusutil.IsEndState(st):
		cardStyle = cardStyle.Inherit(styleCardDone)
	}
	if it.Payload.Priority == model.PriorityHigh && !isActive {
		metaLine = styleCardPriority.Render(metaLine)
	}

	return []string{
		cardStyle.Render(titleLine),
		metaStyle.Render(metaLine),
		"",
	}
}

func cardMeta(t model.Task) string {
	var parts []string
	if t.Priority != "" {
		parts = append(parts, string(t.Priority))
	}
	if t.DueDate != nil && t.DueDate.Date != "" {
		due := "due " + t.DueDate.Date
		if t.DueDate.Time != nil {
			due += " " + *t.DueDate.Time
		}
		parts = append(parts, due)
	}
	if t.Category != "" {
		parts = append(parts, "#"+t.Category)
	}
	if n := len(t.Subtasks); n > 0 {
		done := 0
		for _, s := range t.Subtasks {
			if s.Done {
				done++
			}
		}
		parts = append(parts, fmt.Sprintf("%d/%d", done, n))
	}
	return strings.Join(parts, " · ")
}

func truncate(s string, width int) string {
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return xansi.Cut(s, 0, width)
	}
	return xansi.Cut(s, 0, width-1) + glyphEllipsis()
}

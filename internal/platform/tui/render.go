package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vstrozzi/monkey-3d-game/internal/core"
	"github.com/vstrozzi/monkey-3d-game/internal/layout"
	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
)

const (
	radarWidth  = 41
	radarHeight = 21

	minWidthForRadar = 100
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	targetStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
)

// View renders the monitor.
func (m MonitorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("MONKEY 3D MONITOR"))
	b.WriteString("\n\n")

	tbl := panelStyle.Render(renderTable(m.control, m.tel).View())
	if m.width == 0 || m.width >= minWidthForRadar {
		radar := panelStyle.Render(renderRadar(m.tel, m.control.TargetDoor, m.control.StartOrient))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, radar, "  ", tbl))
	} else {
		b.WriteString(tbl)
	}
	b.WriteString("\n")

	b.WriteString(renderGauge(m.tel.CurrentAlignment, m.control.AlignmentThreshold, 40))
	b.WriteString("\n")
	b.WriteString(m.renderLink())
	b.WriteString("\n")

	if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errStyle
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderLink summarizes the sequence counters and link health.
func (m MonitorModel) renderLink() string {
	idx, n := m.ctrl.TrialIndex()
	parts := []string{
		labelStyle.Render("seq") + fmt.Sprintf(" cmd %d  ctl %d  game %d", m.ctrl.CommandsSeq(), m.ctrl.ControlSeq(), m.gameSeq),
		labelStyle.Render("next trial") + fmt.Sprintf(" %d/%d", idx+1, n),
		labelStyle.Render("held") + " " + held(m.pressed).String(),
	}
	if m.blank == blankActive {
		left := layout.WinBlankFrames - min(m.tel.FrameNumber-m.blankFrom, layout.WinBlankFrames)
		parts = append(parts, labelStyle.Render("win blank")+fmt.Sprintf(" %.1fs", layout.FramesToSeconds(left)))
	}

	switch {
	case m.Stalled():
		parts = append(parts, warnStyle.Render("runner stalled"))
	case m.regressed:
		parts = append(parts, warnStyle.Render("frame went backwards"))
	default:
		parts = append(parts, okStyle.Render("runner live"))
	}
	return strings.Join(parts, "   ")
}

// renderTable lays out the published configuration next to the Runner's
// live copy.
func renderTable(control, tel protocol.Telemetry) table.Model {
	f := func(v float32) string { return fmt.Sprintf("%.3f", v) }
	u := func(v uint64) string { return fmt.Sprintf("%d", v) }

	rows := []table.Row{
		{"seed", u(control.Seed), u(tel.Seed)},
		{"target door", u(uint64(control.TargetDoor)), u(uint64(tel.TargetDoor))},
		{"start orient", f(control.StartOrient), f(tel.StartOrient)},
		{"threshold", f(control.AlignmentThreshold), f(tel.AlignmentThreshold)},
		{"frame", "", u(tel.FrameNumber)},
		{"elapsed", "", f(tel.ElapsedSecs)},
		{"camera radius", "", f(tel.CameraRadius)},
		{"camera", "", fmt.Sprintf("%.2f %.2f %.2f", tel.CameraPosition[0], tel.CameraPosition[1], tel.CameraPosition[2])},
		{"alignment", "", f(tel.CurrentAlignment)},
		{"angle", "", f(tel.CurrentAngle)},
		{"attempts", "", u(uint64(tel.Attempts))},
		{"animating", "", fmt.Sprintf("%t", tel.IsAnimating)},
		{"win time", "", f(tel.WinTime)},
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Field", Width: 14},
			{Title: "Control", Width: 12},
			{Title: "Runner", Width: 18},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2), // header and its border
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

// renderRadar draws a top-down view: the pyramid's doors as published and
// the camera orbiting the origin. The target door is highlighted.
func renderRadar(tel protocol.Telemetry, target uint32, startOrient float32) string {
	c := core.NewCanvas(radarWidth, radarHeight, layout.CameraMaxRadius+1)
	frame := core.Rect{W: c.Width(), H: c.Height()}
	c.DrawBox(frame)
	c.DrawText(2, frame.Bottom()-1, fmt.Sprintf(" target %d ", target))

	cam := core.Vec2{X: tel.CameraPosition[0], Z: tel.CameraPosition[2]}
	c.Line(core.Vec2{}, cam, '·')
	c.Plot(core.Vec2{}, '+')
	c.Plot(cam, 'C')

	doorDist := layout.PyramidBaseRadius * 2
	tx, ty := -1, -1
	for door := 0; door < layout.Faces; door++ {
		p := core.FromYaw(startOrient + float32(door)*layout.PyramidAngleIncrement).Scale(doorDist)
		x, y := c.Cell(p)
		if uint32(door) == target {
			tx, ty = x, y
		}
		c.Set(x, y, rune('0'+door))
	}

	// Style the target digit after the grid is final.
	var sb strings.Builder
	for y := 0; y < c.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		row := []rune(c.Row(y))
		if y == ty && frame.Contains(tx, ty) {
			sb.WriteString(string(row[:tx]))
			sb.WriteString(targetStyle.Render(string(row[tx])))
			sb.WriteString(string(row[tx+1:]))
			continue
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

// renderGauge draws the alignment cosine on [-1, 1] with the win threshold
// marked. A NaN value is left off the bar.
func renderGauge(alignment, threshold float32, width int) string {
	cells := []rune(strings.Repeat("─", width))
	mark := func(v float32, r rune) {
		if v != v {
			return
		}
		v = core.Clamp(v, -1, 1)
		cells[int((v+1)/2*float32(width-1))] = r
	}
	mark(threshold, '┃')
	mark(alignment, '●')

	style := warnStyle
	if alignment >= threshold {
		style = okStyle
	}
	return labelStyle.Render("alignment ") + "[" + style.Render(string(cells)) + "]" +
		fmt.Sprintf(" %+.3f", alignment)
}

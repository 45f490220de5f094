package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/artpoll/internal/artnet"
)

// PacketView is a box showing an encoded datagram field by field
type PacketView struct {
	Title string
	Data  []byte
	Width int
}

// NewPacketView creates a view for data
func NewPacketView(title string, data []byte) *PacketView {
	return &PacketView{
		Title: title,
		Data:  data,
		Width: GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (v *PacketView) SetWidth(width int) *PacketView {
	v.Width = width
	return v
}

// Render returns the styled box. The raw bytes follow the field table.
func (v *PacketView) Render() string {
	width := clampWidth(v.Width)

	fields := strings.TrimRight(artnet.DescribePoll(v.Data), "\n")
	raw := strings.TrimRight(hexRows(v.Data), "\n")

	inner := lipgloss.JoinVertical(lipgloss.Left,
		PacketTitleStyle.Render(v.Title),
		"",
		PacketContentStyle.Render(fields),
		"",
		PacketTitleStyle.Render("Raw"),
		PacketContentStyle.Render(raw),
	)

	if err := artnet.ValidatePoll(v.Data); err != nil {
		inner = lipgloss.JoinVertical(lipgloss.Left, inner, "", ErrorMessageStyle.Render("Invalid: "+err.Error()))
	}

	return PacketBoxStyle(width).Render(inner)
}

// String implements fmt.Stringer
func (v *PacketView) String() string {
	return v.Render()
}

// hexRows formats data as 8 bytes per row with offsets
func hexRows(data []byte) string {
	const perRow = 8
	var b strings.Builder
	for off := 0; off < len(data); off += perRow {
		row := data[off:min(off+perRow, len(data))]

		ascii := make([]byte, len(row))
		for i, c := range row {
			if c >= 0x20 && c < 0x7f {
				ascii[i] = c
			} else {
				ascii[i] = '.'
			}
		}
		fmt.Fprintf(&b, "%04x  %-*s  %s\n", off, perRow*3-1, fmt.Sprintf("% x", row), ascii)
	}
	return b.String()
}

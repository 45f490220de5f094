package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/artpoll/internal/netif"
)

// RenderInterfaceTable lists interface records with their flags. Broadcast
// candidates are marked; the selected one, if any, is highlighted.
func RenderInterfaceTable(list []netif.NetworkInterface, selected netif.NetworkInterface) string {
	if len(list) == 0 {
		return NoteStyle.Render("  No interfaces reported by the OS")
	}

	nameWidth := len("Interface")
	for _, ni := range list {
		nameWidth = max(nameWidth, lipgloss.Width(ni.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "    %-*s  %-15s  %-15s  %s\n", nameWidth, "Interface", "Address", "Netmask", "Flags")

	for _, ni := range list {
		marker := PendingMarker
		if netif.IsCandidate(ni) {
			marker = CandidateMarker
		}

		addr, mask := "-", "-"
		if ni.HasAddress() {
			addr = ni.Address.String()
		}
		if ni.Netmask.IsValid() {
			mask = ni.Netmask.String()
		}

		line := fmt.Sprintf("%-*s  %-15s  %-15s  %s", nameWidth, ni.Name, addr, mask, ni.Flags)
		switch {
		case selected.HasAddress() && ni.Name == selected.Name && ni.Address == selected.Address:
			b.WriteString("  " + CandidateStyle.Render(marker+" "+line) + "\n")
		case marker == CandidateMarker:
			b.WriteString("  " + PollSentStyle.Render(marker) + " " + line + "\n")
		default:
			b.WriteString("  " + PollDetailStyle.Render(marker+" "+line) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

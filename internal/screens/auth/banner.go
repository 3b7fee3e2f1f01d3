package auth

import (
	"charm.land/lipgloss/v2"

	"github.com/yetria/yetria/internal/ui/theme"
)

const bannerArt = `
██╗   ██╗███████╗████████╗██████╗ ██╗ █████╗
╚██╗ ██╔╝██╔════╝╚══██╔══╝██╔══██╗██║██╔══██╗
 ╚████╔╝ █████╗     ██║   ██████╔╝██║███████║
  ╚██╔╝  ██╔══╝     ██║   ██╔══██╗██║██╔══██║
   ██║   ███████╗   ██║   ██║  ██║██║██║  ██║
   ╚═╝   ╚══════╝   ╚═╝   ╚═╝  ╚═╝╚═╝╚═╝  ╚═╝`

const bannerCompact = "Y E T R I A"

// RenderBanner returns the YETRIA banner styled in the primary color.
// Uses a compact fallback for narrow or short terminals.
func RenderBanner(width, height int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 || height < 30 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"flocklab/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders a read-only status and parameter panel to the right of the
// simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	status     Status
	title      string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width, title: buildTitle(sim)}
}

// Update refreshes the cached parameter snapshot and status lines.
func (h *HUD) Update(status Status) {
	if h == nil {
		return
	}
	h.status = status
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
	} else {
		h.snapshot = core.ParameterSnapshot{}
	}
}

// Draw paints the HUD panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	size := h.sim.Size()
	height := size.H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	bright := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dim := color.RGBA{R: 160, G: 160, B: 170, A: 255}

	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})

	y += statusSpacing
	text.Draw(h.panel, fmt.Sprintf("tick %d", h.status.Tick), face, panelPadding, y, bright)
	y += lineSpacing
	text.Draw(h.panel, fmt.Sprintf("history %d/%d", h.status.HistoryLen, h.status.HistoryCap), face, panelPadding, y, bright)
	y += lineSpacing
	text.Draw(h.panel, windLine(h.status), face, panelPadding, y, bright)
	if h.status.Startled {
		y += lineSpacing
		text.Draw(h.panel, "startled", face, panelPadding, y, bright)
	}
	if h.status.Paused {
		y += lineSpacing
		text.Draw(h.panel, "paused", face, panelPadding, y, dim)
	}

	for _, group := range h.snapshot.Groups {
		y += groupSpacing
		if y >= height {
			break
		}
		text.Draw(h.panel, group.Name, face, panelPadding, y, dim)
		for _, param := range group.Params {
			y += lineSpacing
			if y >= height {
				break
			}
			text.Draw(h.panel, fmt.Sprintf("%s: %s", param.Label, param.Value), face, panelPadding+indent, y, bright)
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func windLine(s Status) string {
	if !s.WindSet {
		return "wind calm"
	}
	deg := math.Mod(s.WindTheta*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return fmt.Sprintf("wind from %.0f deg", deg)
}

func buildTitle(sim core.Sim) string {
	if sim == nil {
		return "Status"
	}
	name := sim.Name()
	if name == "" {
		return "Status"
	}
	return fmt.Sprintf("%s Status", strings.Title(name))
}

const (
	panelPadding   = 12
	headerBaseline = 18
	statusSpacing  = 26
	lineSpacing    = 16
	groupSpacing   = 26
	indent         = 8
)

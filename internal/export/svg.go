package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/heliosim/internal/sim"
)

// TankSVG renders the tank temperature trajectory as a standalone SVG
// polyline on a dark background. Returns an empty string when there are
// fewer than two samples.
func TankSVG(result *sim.Result, width, height int) string {
	if result == nil || result.Len() < 2 {
		return ""
	}

	minT, maxT := result.TimesS[0], result.TimesS[result.Len()-1]
	minY, maxY := result.TankTemperatureK[0], result.TankTemperatureK[0]
	for _, v := range result.TankTemperatureK {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeT := maxT - minT
	rangeY := maxY - minY
	if rangeT == 0 {
		rangeT = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	// Vertical padding keeps a flat trace off the frame edge.
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#ffb347" stroke-width="1.5" d="M`,
		width, height, width, height))

	for i := range result.TimesS {
		x := (result.TimesS[i] - minT) / rangeT * float64(width)
		y := float64(height) - (result.TankTemperatureK[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

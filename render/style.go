package render

import (
	"math"

	"github.com/lixenwraith/rainfield/field"
	"github.com/lixenwraith/rainfield/parameter"
	"github.com/lixenwraith/rainfield/parameter/visual"
)

// Stroke is the resolved color, alpha and line width of one trail segment
type Stroke struct {
	Color RGB
	Alpha float64
	Width float64
}

// Style resolves the stroke for a segment at trail position t (0 tail, 1 head)
func Style(kind field.TrailKind, t, opacity, taperness float64) Stroke {
	t = unit(t)

	switch kind {
	case field.TrailSharp:
		return Stroke{
			Color: Lerp(visual.RgbSharpTail, visual.RgbSharpHead, t),
			Alpha: opacity * (parameter.SharpAlphaBase + (1-parameter.SharpAlphaBase)*t),
			Width: parameter.SharpWidthBase + parameter.SharpWidthGain*t,
		}
	case field.TrailTapered:
		// Higher taperness thins and fades the tail faster
		return Stroke{
			Color: Lerp(visual.RgbTaperTail, visual.RgbTaperHead, t),
			Alpha: opacity * parameter.TaperAlphaScale * math.Pow(t, 1+taperness),
			Width: (parameter.TaperWidthBase + parameter.TaperWidthGain*t) * (1 - taperness*(1-t)),
		}
	case field.TrailDiffuse:
		return Stroke{
			Color: Lerp(visual.RgbDiffuseTail, visual.RgbDiffuseHead, t),
			Alpha: opacity * parameter.DiffuseAlphaBase * (0.5 + 0.5*t),
			Width: parameter.DiffuseWidthBase + parameter.DiffuseWidthGain*t,
		}
	default:
		return SimpleStroke(opacity)
	}
}

// SimpleStroke is the single style used at minimal fidelity
func SimpleStroke(opacity float64) Stroke {
	return Stroke{
		Color: visual.RgbSimpleStroke,
		Alpha: opacity * parameter.SimpleAlpha,
		Width: parameter.SimpleWidth,
	}
}

// Soften widens and dims a stroke into the underlay drawn when blur is enabled
func Soften(st Stroke) Stroke {
	return Stroke{
		Color: st.Color,
		Alpha: st.Alpha * parameter.BlurAlpha,
		Width: st.Width * parameter.BlurSpread,
	}
}

package render

import (
	"fmt"
	"image"

	"github.com/tdewolff/canvas"

	"github.com/anonymous-tct-authors/tct-models/theme"
)

// ComparisonSpec 描述一帧编码器对比：两条计数条从 0 增长到各自总数。
type ComparisonSpec struct {
	Input       string
	Subtitle    string
	BaseLabel   string // 基线编码器名称，如 "o200k (GPT-4):"
	TCTLabel    string
	BaseTotal   int
	TCTTotal    int
	BaseVisible int
	TCTVisible  int
	Footer      string
}

// RenderComparison 绘制一帧对比图：标题、输入、两条水平计数条与
// 节省比例。
func (r *Renderer) RenderComparison(spec ComparisonSpec) (image.Image, error) {
	th := r.th
	c := canvas.New(r.width, r.height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	r.fillRect(ctx, 0, 0, r.width, r.height, th.Palette.Background)

	pad := 30.0
	y := pad

	r.drawText(ctx, pad, y, "TCT vs Production Tokenizers", r.face(th.TitleFontSize, th.Palette.Text))
	y += 40
	if spec.Subtitle != "" {
		r.drawText(ctx, pad, y, spec.Subtitle, r.face(th.SmallFontSize, th.Palette.TextDim))
	}
	y += 30
	r.hline(ctx, pad, r.width-pad, y, th.Palette.Border)
	y += 20

	r.drawText(ctx, pad, y, "Input:", r.face(th.SmallFontSize, th.Palette.TextDim))
	y += 20
	r.drawText(ctx, pad, y, spec.Input, r.face(th.FontSize, th.Palette.Text))
	y += 35
	r.hline(ctx, pad, r.width-pad, y, th.Palette.Border)
	y += 25

	barWidth := r.width - 2*pad - 150
	maxCount := spec.BaseTotal
	if spec.TCTTotal > maxCount {
		maxCount = spec.TCTTotal
	}
	const barHeight = 35.0

	y = r.drawCountBar(ctx, pad, y, barWidth, barHeight, spec.BaseLabel, spec.BaseVisible, maxCount, th.Palette.Baseline)
	y += 20
	y = r.drawCountBar(ctx, pad, y, barWidth, barHeight, spec.TCTLabel, spec.TCTVisible, maxCount, th.Palette.Token)
	y += 25

	if spec.TCTVisible > 0 && spec.BaseVisible > 0 {
		reduction := float64(spec.BaseVisible-spec.TCTVisible) / float64(spec.BaseVisible) * 100
		text := fmt.Sprintf("Reduction: %.0f%% fewer tokens with TCT", reduction)
		r.drawText(ctx, pad, y, text, r.face(th.FontSize, th.Palette.Success))
	}

	footerY := r.height - 40
	r.hline(ctx, pad, r.width-pad, footerY-15, th.Palette.Border)
	if spec.Footer != "" {
		r.drawText(ctx, pad, footerY, spec.Footer, r.face(th.SmallFontSize, th.Palette.TextDim))
	}

	return r.rasterize(c), nil
}

// drawCountBar 绘制一条带标签的计数条，返回条形下方的 y 坐标。
func (r *Renderer) drawCountBar(ctx *canvas.Context, x, y, barWidth, barHeight float64, label string, visible, maxCount int, fill theme.Color) float64 {
	th := r.th
	r.drawText(ctx, x, y, label, r.face(th.SmallFontSize, fill))
	y += 22

	r.fillRect(ctx, x, y, barWidth, barHeight, th.Palette.TokenBG)
	if maxCount > 0 && visible > 0 {
		r.fillRect(ctx, x, y, barWidth*float64(visible)/float64(maxCount), barHeight, fill)
		text := fmt.Sprintf("%d tokens", visible)
		r.drawText(ctx, x+barWidth+15, y+8, text, r.face(th.FontSize, th.Palette.Text))
	}
	return y + barHeight
}

package render

import (
	"fmt"
	"image"

	"github.com/tdewolff/canvas"

	"github.com/anonymous-tct-authors/tct-models/theme"
)

// SchemaRow 是按模式对比表中的一行：TCT 词表规模与字节级基线词表
// 规模。
type SchemaRow struct {
	Name          string
	Vocab         int // TCT 词表规模
	BaselineVocab int // UTF-8 基线词表规模
	Color         theme.Color
}

// RenderSchemas 绘制多模式词表对比的一帧。progress 在 [0,1] 内，
// 计数与条形按其比例增长。
func (r *Renderer) RenderSchemas(rows []SchemaRow, progress float64, footer string) (image.Image, error) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	th := r.th
	c := canvas.New(r.width, r.height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	r.fillRect(ctx, 0, 0, r.width, r.height, th.Palette.Background)

	pad := 30.0
	y := pad

	r.drawText(ctx, pad, y, "TCT Compression by Schema", r.face(th.TitleFontSize, th.Palette.Text))
	y += 45

	// 表头各列的 x 坐标
	const (
		colSchema = 30.0
		colTCT    = 180.0
		colBase   = 280.0
		colRatio  = 380.0
		colBar    = 480.0
	)
	small := r.face(th.SmallFontSize, th.Palette.TextDim)
	r.drawText(ctx, colSchema, y, "Schema", small)
	r.drawText(ctx, colTCT, y, "TCT", r.face(th.SmallFontSize, th.Palette.Token))
	r.drawText(ctx, colBase, y, "UTF-8", r.face(th.SmallFontSize, th.Palette.Baseline))
	r.drawText(ctx, colRatio, y, "Compression", small)
	y += 30
	r.hline(ctx, pad, r.width-pad, y, th.Palette.Border)
	y += 15

	barMaxWidth := r.width - colBar - pad - 10
	maxVocab := 0
	for _, row := range rows {
		if row.BaselineVocab > maxVocab {
			maxVocab = row.BaselineVocab
		}
	}

	body := r.face(th.FontSize, th.Palette.Text)
	for _, row := range rows {
		tctShow := int(float64(row.Vocab) * progress)
		baseShow := int(float64(row.BaselineVocab) * progress)

		r.drawText(ctx, colSchema, y, row.Name, r.face(th.FontSize, row.Color))
		r.drawText(ctx, colTCT, y, fmt.Sprintf("%d", tctShow), r.face(th.FontSize, th.Palette.Token))
		r.drawText(ctx, colBase, y, fmt.Sprintf("%d", baseShow), r.face(th.FontSize, th.Palette.Baseline))
		if tctShow > 0 {
			ratio := float64(baseShow) / float64(tctShow)
			r.drawText(ctx, colRatio, y, fmt.Sprintf("%.1fx", ratio), body)
		}

		// 基线条在下，TCT 条叠在上，长度均按最大基线词表归一
		barY := y + 3
		const barHeight = 16.0
		if maxVocab > 0 {
			if baseShow > 0 {
				w := barMaxWidth * float64(baseShow) / float64(maxVocab)
				r.fillRect(ctx, colBar, barY, w, barHeight, th.Palette.Baseline)
			}
			if tctShow > 0 {
				w := barMaxWidth * float64(tctShow) / float64(maxVocab)
				r.fillRect(ctx, colBar, barY, w, barHeight, th.Palette.Token)
			}
		}
		y += 45
	}

	footerY := r.height - 50
	r.hline(ctx, pad, r.width-pad, footerY, th.Palette.Border)
	if footer != "" {
		r.drawText(ctx, pad, footerY+15, footer, small)
	}

	return r.rasterize(c), nil
}

// DefaultSchemaRows 返回论文中三个模式的实测词表规模。
func DefaultSchemaRows() []SchemaRow {
	return []SchemaRow{
		{Name: "Kubernetes", Vocab: 1000, BaselineVocab: 1527, Color: theme.Color{R: 0x32, G: 0x6c, B: 0xe5}},
		{Name: "ESLint", Vocab: 500, BaselineVocab: 717, Color: theme.Color{R: 0x4b, G: 0x32, B: 0xc3}},
		{Name: "TSConfig", Vocab: 258, BaselineVocab: 277, Color: theme.Color{R: 0x31, G: 0x78, B: 0xc6}},
	}
}

// Package render 把帧状态绘制为栅格图像。绘制经由
// github.com/tdewolff/canvas：画布单位视作像素，按 DPMM(1) 栅格化；
// 字体系统使用 pt，在边界做 px↔pt 换算。
package render

import (
	"fmt"
	"image"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/anonymous-tct-authors/tct-models/highlight"
	"github.com/anonymous-tct-authors/tct-models/layout"
	"github.com/anonymous-tct-authors/tct-models/schedule"
	"github.com/anonymous-tct-authors/tct-models/theme"
)

// px↔pt 换算常数。
const (
	ptToPx = 0.352777
	pxToPt = 1.0 / ptToPx
)

// Scene 是一次动画中跨帧不变的内容：标题、输入文本与完整 token 序列。
type Scene struct {
	Title  string
	Input  string
	Tokens []int
}

// Renderer 按主题将 FrameSpec 绘制为图像。无共享可变状态，
// 可为多个动画各建一个实例。
type Renderer struct {
	th     *theme.Theme
	width  float64
	height float64
	family *canvas.FontFamily
}

// New 创建渲染器并加载等宽字体；宽高为像素。
func New(th *theme.Theme, width, height float64) (*Renderer, error) {
	if th == nil {
		th = theme.Default()
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: 画布尺寸非法 %gx%g", width, height)
	}
	family, err := loadMonospaceFamily(th.FontPath)
	if err != nil {
		return nil, err
	}
	return &Renderer{th: th, width: width, height: height, family: family}, nil
}

// face 以像素字号与指定颜色创建字体面。
func (r *Renderer) face(sizePx float64, col theme.Color) *canvas.FontFace {
	return r.family.Face(sizePx*pxToPt, col.RGBA(), canvas.FontRegular, canvas.FontNormal)
}

// Measure 返回正文字号下的量宽函数，供 layout.Flow 使用。
func (r *Renderer) Measure() func(string) float64 {
	face := r.face(r.th.FontSize, r.th.Palette.Text)
	return func(s string) float64 { return face.TextWidth(s) }
}

// RenderFrame 绘制一帧：标题、着色输入、token 网格、已解码输出、
// 统计栏与进度条。
func (r *Renderer) RenderFrame(scene Scene, spec schedule.FrameSpec) (image.Image, error) {
	th := r.th
	c := canvas.New(r.width, r.height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，与布局一致

	r.fillRect(ctx, 0, 0, r.width, r.height, th.Palette.Background)

	pad := th.Padding
	y := pad

	// 标题与下划线
	r.drawText(ctx, pad, y, scene.Title, r.face(th.TitleFontSize, th.Palette.Text))
	y += 35
	r.hline(ctx, pad, r.width-pad, y, th.Palette.Border)
	y += 15

	// 输入段
	r.drawText(ctx, pad, y, "Input JSON:", r.face(th.SmallFontSize, th.Palette.TextDim))
	y += 22
	inputFlow := layout.Flow(highlight.Classify(scene.Input), r.flowOptions(), r.Measure())
	r.drawFlow(ctx, pad, y, inputFlow)
	if inputFlow.Height > 20 {
		y += inputFlow.Height
	} else {
		y += 20
	}

	// token 网格
	label := fmt.Sprintf("TCT Tokens (%d/%d):", spec.VisibleTokens, len(scene.Tokens))
	r.drawText(ctx, pad, y, label, r.face(th.SmallFontSize, th.Palette.TextDim))
	y += 25
	grid := layout.NewGrid(r.width-2*pad, r.gridGeometry())
	r.drawTokenGrid(ctx, pad, y, grid, scene.Tokens, spec.VisibleTokens)
	y += grid.Height(len(scene.Tokens)) + 15

	// 输出段
	r.hline(ctx, pad, r.width-pad, y, th.Palette.Border)
	y += 15
	r.drawText(ctx, pad, y, "Decoded JSON:", r.face(th.SmallFontSize, th.Palette.TextDim))
	y += 22
	if spec.Decoded != "" {
		decodedFlow := layout.Flow(highlight.Classify(spec.Decoded), r.flowOptions(), r.Measure())
		r.drawFlow(ctx, pad, y, decodedFlow)
	} else {
		r.drawText(ctx, pad, y, "(waiting for tokens...)", r.face(th.FontSize, th.Palette.TextDim))
	}

	// 统计栏
	statsY := r.height - 45
	r.hline(ctx, pad, r.width-pad, statsY-10, th.Palette.Border)
	r.drawText(ctx, pad, statsY, statsText(spec.Stats), r.face(th.SmallFontSize, th.Palette.TextDim))

	// 进度条
	progressY := r.height - 18
	progressWidth := r.width - 2*pad
	r.fillRect(ctx, pad, progressY, progressWidth, 6, th.Palette.TokenBG)
	if len(scene.Tokens) > 0 && spec.VisibleTokens > 0 {
		ratio := float64(spec.VisibleTokens) / float64(len(scene.Tokens))
		r.fillRect(ctx, pad, progressY, progressWidth*ratio, 6, th.Palette.Progress)
	}

	return r.rasterize(c), nil
}

// flowOptions 从主题导出流式排版参数。
func (r *Renderer) flowOptions() layout.FlowOptions {
	return layout.FlowOptions{
		MaxWidth:   r.width - 2*r.th.Padding,
		Indent:     r.th.WrapIndent,
		LineHeight: r.th.LineHeight,
	}
}

// gridGeometry 从主题导出 token 网格几何。
func (r *Renderer) gridGeometry() layout.BoxGeometry {
	return layout.BoxGeometry{
		BoxWidth:  r.th.TokenBoxWidth,
		BoxHeight: r.th.TokenBoxHeight,
		Spacing:   r.th.TokenSpacing,
		RowGap:    r.th.TokenRowGap,
	}
}

// drawFlow 绘制排版结果，片段按类别着色。
func (r *Renderer) drawFlow(ctx *canvas.Context, x, y float64, flow layout.FlowResult) {
	for _, line := range flow.Lines {
		for _, p := range line.Placements {
			face := r.face(r.th.FontSize, r.classColor(p.Segment.Class))
			r.drawText(ctx, x+p.X, y+p.Y, p.Segment.Text, face)
		}
	}
}

// drawTokenGrid 绘制全部 token 方框：可见的填充并描边，最新的加
// 高亮光晕，未出现的画空占位。
func (r *Renderer) drawTokenGrid(ctx *canvas.Context, x, y float64, grid layout.Grid, tokens []int, visible int) {
	th := r.th
	bodyFace := r.face(th.FontSize, th.Palette.Token)
	for i, tok := range tokens {
		cell := grid.Cell(i)
		bx, by := x+cell.X, y+cell.Y
		if layout.Visible(i, visible) {
			r.fillStrokeRect(ctx, bx, by, th.TokenBoxWidth, th.TokenBoxHeight, th.Palette.TokenBG, th.Palette.Token, 2)
			str := fmt.Sprintf("%d", tok)
			tw := bodyFace.TextWidth(str)
			r.drawText(ctx, bx+(th.TokenBoxWidth-tw)/2, by+4, str, bodyFace)
			if layout.Newest(i, visible) {
				for _, off := range []float64{4, 2} {
					r.strokeRect(ctx, bx-off, by-off, th.TokenBoxWidth+2*off, th.TokenBoxHeight+2*off, th.Palette.Highlight, 1)
				}
			}
		} else {
			r.fillStrokeRect(ctx, bx, by, th.TokenBoxWidth, th.TokenBoxHeight, th.Palette.Background, th.Palette.Border, 1)
		}
	}
}

// classColor 将着色类别映射到主题颜色。
func (r *Renderer) classColor(cls highlight.Class) theme.Color {
	switch cls {
	case highlight.Key:
		return r.th.Palette.Key
	case highlight.Value:
		return r.th.Palette.Value
	case highlight.Bracket:
		return r.th.Palette.Bracket
	case highlight.Punct:
		return r.th.Palette.TextDim
	default:
		return r.th.Palette.Text
	}
}

// statsText 生成统计文本；比值无定义时显示占位符。
func statsText(s schedule.Stats) string {
	if !s.HasRatio {
		return "? bytes → ? tokens"
	}
	return fmt.Sprintf("%d bytes → %d tokens (%.1fx compression)", s.ConsumedBytes, s.ProducedTokens, s.Ratio)
}

// drawText 以 y 为行顶绘制单行文本，基线为行顶加字体上升部。
func (r *Renderer) drawText(ctx *canvas.Context, x, y float64, text string, face *canvas.FontFace) {
	if text == "" {
		return
	}
	metrics := face.Metrics()
	ctx.DrawText(x, y+metrics.Ascent, canvas.NewTextLine(face, text, canvas.Left))
}

func (r *Renderer) hline(ctx *canvas.Context, x1, x2, y float64, col theme.Color) {
	ctx.SetStrokeColor(col.RGBA())
	ctx.SetStrokeWidth(1)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(x2-x1, 0)
	ctx.DrawPath(x1, y, p)
}

func (r *Renderer) fillRect(ctx *canvas.Context, x, y, w, h float64, fill theme.Color) {
	ctx.SetFillColor(fill.RGBA())
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.SetStrokeWidth(0)
	ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

func (r *Renderer) strokeRect(ctx *canvas.Context, x, y, w, h float64, stroke theme.Color, sw float64) {
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(stroke.RGBA())
	ctx.SetStrokeWidth(sw)
	ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

func (r *Renderer) fillStrokeRect(ctx *canvas.Context, x, y, w, h float64, fill, stroke theme.Color, sw float64) {
	ctx.SetFillColor(fill.RGBA())
	ctx.SetStrokeColor(stroke.RGBA())
	ctx.SetStrokeWidth(sw)
	ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

// rasterize 以 1 像素/单位栅格化画布。
func (r *Renderer) rasterize(c *canvas.Canvas) image.Image {
	return rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
}

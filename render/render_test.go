package render

import (
	"image/color"
	"testing"

	"github.com/anonymous-tct-authors/tct-models/schedule"
	"github.com/anonymous-tct-authors/tct-models/theme"
)

// newTestRenderer 构造渲染器；环境中没有等宽字体时跳过用例。
func newTestRenderer(t *testing.T, w, h float64) *Renderer {
	t.Helper()
	r, err := New(nil, w, h)
	if err != nil {
		t.Skipf("环境中没有可用的等宽字体: %v", err)
	}
	return r
}

// TestStatsText 统计文本的两种形态。
func TestStatsText(t *testing.T) {
	s := schedule.Stats{ConsumedBytes: 32, ProducedTokens: 7, Ratio: 4.571, HasRatio: true}
	if got := statsText(s); got != "32 bytes → 7 tokens (4.6x compression)" {
		t.Fatalf("统计文本错误: %q", got)
	}
	if got := statsText(schedule.Stats{}); got != "? bytes → ? tokens" {
		t.Fatalf("占位文本错误: %q", got)
	}
}

// TestNewRejectsBadSize 非法画布尺寸报错。
func TestNewRejectsBadSize(t *testing.T) {
	if _, err := New(nil, 0, 350); err == nil {
		t.Fatalf("零宽度应报错")
	}
	if _, err := New(nil, 700, -1); err == nil {
		t.Fatalf("负高度应报错")
	}
}

// TestRenderFrameSize 渲染结果的像素尺寸与画布一致，背景色正确。
func TestRenderFrameSize(t *testing.T) {
	r := newTestRenderer(t, 700, 350)
	scene := Scene{
		Title:  "TCT: Tree-Coded Text",
		Input:  `{"apiVersion": "v1", "kind": "Pod"}`,
		Tokens: []int{5, 17, 80, 3, 21, 99, 40},
	}
	spec := schedule.FrameSpec{
		VisibleTokens: 3,
		Decoded:       `{"apiVersion": "v1"`,
		Stats:         schedule.Stats{ConsumedBytes: 19, ProducedTokens: 3, Ratio: 6.3, HasRatio: true},
		HoldMS:        800,
	}
	img, err := r.RenderFrame(scene, spec)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 700 || b.Dy() != 350 {
		t.Fatalf("尺寸应为 700x350，实际 %dx%d", b.Dx(), b.Dy())
	}
	bg := theme.Default().Palette.Background
	cr, cg, cb, _ := img.At(b.Max.X-1, b.Min.Y).RGBA()
	got := color.RGBA{uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8), 0xff}
	if got != (color.RGBA{uint8(bg.R), uint8(bg.G), uint8(bg.B), 0xff}) {
		t.Fatalf("右上角应为背景色 %s，实际 %+v", bg.Hex(), got)
	}
}

// TestRenderFrameProgressFill 进度条填充使用主题的 Progress 颜色。
func TestRenderFrameProgressFill(t *testing.T) {
	r := newTestRenderer(t, 700, 350)
	scene := Scene{Title: "t", Input: `{"a":1}`, Tokens: []int{1, 2, 3}}
	img, err := r.RenderFrame(scene, schedule.FrameSpec{VisibleTokens: 3, Decoded: `{"a":1}`})
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	p := theme.Default().Palette.Progress
	want := color.RGBA{uint8(p.R), uint8(p.G), uint8(p.B), 0xff}
	b := img.Bounds()
	found := false
	for y := b.Max.Y - 25; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			got := color.RGBA{uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8), 0xff}
			if got == want {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("底部进度条区域未出现 Progress 颜色 %s", p.Hex())
	}
}

// TestRenderFrameEmptyDecoded 无可见 token 时渲染占位文案而非崩溃。
func TestRenderFrameEmptyDecoded(t *testing.T) {
	r := newTestRenderer(t, 700, 350)
	scene := Scene{Title: "t", Input: `{"a":1}`, Tokens: []int{1, 2, 3}}
	if _, err := r.RenderFrame(scene, schedule.FrameSpec{}); err != nil {
		t.Fatalf("空帧渲染失败: %v", err)
	}
}

// TestRenderComparison 对比帧渲染成功且尺寸正确。
func TestRenderComparison(t *testing.T) {
	r := newTestRenderer(t, 700, 380)
	img, err := r.RenderComparison(ComparisonSpec{
		Input:       `{"apiVersion":"v1","kind":"Pod"}`,
		Subtitle:    "Same JSON, two tokenizers",
		BaseLabel:   "o200k (GPT-4):",
		TCTLabel:    "TCT:",
		BaseTotal:   24,
		TCTTotal:    7,
		BaseVisible: 24,
		TCTVisible:  7,
		Footer:      "71% fewer tokens for this manifest",
	})
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 700 || b.Dy() != 380 {
		t.Fatalf("尺寸应为 700x380，实际 %v", b)
	}
}

// TestRenderSchemas 模式对比帧在 progress 两端都能渲染。
func TestRenderSchemas(t *testing.T) {
	r := newTestRenderer(t, 700, 350)
	rows := DefaultSchemaRows()
	for _, progress := range []float64{0, 0.5, 1, 1.5} {
		if _, err := r.RenderSchemas(rows, progress, "footer"); err != nil {
			t.Fatalf("progress=%g 渲染失败: %v", progress, err)
		}
	}
}

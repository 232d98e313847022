package layout

import (
	"math"

	"github.com/anonymous-tct-authors/tct-models/highlight"
)

// Flow 对片段序列做贪心排版：光标从行首向右推进，放不下且本行已有
// 内容时换行，续行从 Indent 处开始。片段宽度由 measure 给出，单位与
// MaxWidth 一致。宽于 MaxWidth 的单个片段会原样放置并溢出，不做
// 字符级拆分。
//
// 返回的 Height 为 cursorY + LineHeight，即内容占用的总高度。
func Flow(segs []highlight.Segment, opts FlowOptions, measure func(string) float64) FlowResult {
	limit := opts.MaxWidth
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	lines := []Line{{Y: 0}}
	cursorX, cursorY := 0.0, 0.0

	for _, seg := range segs {
		w := measure(seg.Text)
		if cursorX > 0 && cursorX+w > limit {
			cursorX = opts.Indent
			cursorY += opts.LineHeight
			lines = append(lines, Line{Y: cursorY})
		}
		cur := &lines[len(lines)-1]
		cur.Placements = append(cur.Placements, Placement{
			Segment: seg,
			X:       cursorX,
			Y:       cursorY,
		})
		cursorX += w
	}

	return FlowResult{
		Lines:  lines,
		Height: cursorY + opts.LineHeight,
	}
}

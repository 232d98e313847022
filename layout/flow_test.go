package layout

import (
	"strings"
	"testing"

	"github.com/anonymous-tct-authors/tct-models/highlight"
)

// 测试用量宽：每字节 1 个单位，避免依赖真实字体。
func measureByLen(s string) float64 { return float64(len(s)) }

func segsOf(texts ...string) []highlight.Segment {
	out := make([]highlight.Segment, 0, len(texts))
	for _, t := range texts {
		out = append(out, highlight.Segment{Text: t, Class: highlight.Plain})
	}
	return out
}

func flatten(res FlowResult) string {
	var b strings.Builder
	for _, ln := range res.Lines {
		for _, p := range ln.Placements {
			b.WriteString(p.Segment.Text)
		}
	}
	return b.String()
}

// TestFlowPreservesOrder 折行后按行序、行内序拼接必须还原输入。
func TestFlowPreservesOrder(t *testing.T) {
	segs := segsOf("{", `"apiVersion"`, ":", `"v1"`, ",", `"kind"`, ":", `"Pod"`, "}")
	opts := FlowOptions{MaxWidth: 10, Indent: 2, LineHeight: 18}
	res := Flow(segs, opts, measureByLen)

	var want strings.Builder
	for _, s := range segs {
		want.WriteString(s.Text)
	}
	if got := flatten(res); got != want.String() {
		t.Fatalf("片段顺序被破坏: got=%q want=%q", got, want.String())
	}
}

// TestFlowWrapAtBoundary 超宽时在片段边界换行，续行使用缩进。
func TestFlowWrapAtBoundary(t *testing.T) {
	segs := segsOf("aaaa", "bbbb", "cccc")
	res := Flow(segs, FlowOptions{MaxWidth: 6, Indent: 2, LineHeight: 10}, measureByLen)
	if len(res.Lines) != 3 {
		t.Fatalf("应折为 3 行，实际 %d", len(res.Lines))
	}
	// 首行从 0 开始，续行从缩进开始
	if res.Lines[0].Placements[0].X != 0 {
		t.Fatalf("首行起点应为 0: %+v", res.Lines[0])
	}
	for _, ln := range res.Lines[1:] {
		if ln.Placements[0].X != 2 {
			t.Fatalf("续行起点应为缩进 2: %+v", ln)
		}
	}
	if res.Height != 30 {
		t.Fatalf("总高度应为 cursorY+lineHeight=30，实际 %g", res.Height)
	}
}

// TestFlowOversizeSegmentNotSplit 宽于限制的单片段原样放置，不拆分。
func TestFlowOversizeSegmentNotSplit(t *testing.T) {
	segs := segsOf("short", "averyveryverylongunbrokenrun", "tail")
	res := Flow(segs, FlowOptions{MaxWidth: 8, Indent: 1, LineHeight: 10}, measureByLen)

	found := false
	for _, ln := range res.Lines {
		for _, p := range ln.Placements {
			if p.Segment.Text == "averyveryverylongunbrokenrun" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("超宽片段丢失或被拆分: %+v", res.Lines)
	}
	if got := flatten(res); got != "shortaveryveryverylongunbrokenruntail" {
		t.Fatalf("拼接结果异常: %q", got)
	}
}

// TestFlowMonotonicY 纵向位置在片段序上单调不减。
func TestFlowMonotonicY(t *testing.T) {
	segs := segsOf("aa", "bb", "cc", "dd", "ee", "ff")
	res := Flow(segs, FlowOptions{MaxWidth: 5, Indent: 0, LineHeight: 7}, measureByLen)
	prev := -1.0
	for _, ln := range res.Lines {
		for _, p := range ln.Placements {
			if p.Y < prev {
				t.Fatalf("纵向位置回退: %+v", res.Lines)
			}
			prev = p.Y
		}
	}
}

// TestFlowEmptyInput 空输入仍返回一行高度，供调用方预留空间。
func TestFlowEmptyInput(t *testing.T) {
	res := Flow(nil, FlowOptions{MaxWidth: 100, LineHeight: 18}, measureByLen)
	if res.Height != 18 {
		t.Fatalf("空输入高度应为一行: %g", res.Height)
	}
}

// TestFlowUnlimitedWidth MaxWidth<=0 时不折行。
func TestFlowUnlimitedWidth(t *testing.T) {
	segs := segsOf(strings.Repeat("x", 1000), strings.Repeat("y", 1000))
	res := Flow(segs, FlowOptions{MaxWidth: 0, LineHeight: 10}, measureByLen)
	if len(res.Lines) != 1 {
		t.Fatalf("不限宽时应只有一行，实际 %d", len(res.Lines))
	}
}

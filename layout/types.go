package layout

// 该文件定义布局结果类型，供流式排版、网格计算与渲染共用。
// 所有坐标均为画布单位（像素），相对各自内容区域的左上角。

import "github.com/anonymous-tct-authors/tct-models/highlight"

// Placement 表示一个片段在某行上的落点。片段本身不会被拆分：
// 折行只发生在片段边界。
type Placement struct {
	Segment highlight.Segment `json:"segment"`
	X       float64           `json:"x"`
	Y       float64           `json:"y"`
}

// Line 表示排版后的一行及其纵向位置。
type Line struct {
	Y          float64     `json:"y"`
	Placements []Placement `json:"placements"`
}

// FlowResult 保存流式排版的行列表与占用的总高度，
// 调用方据此为后续内容预留纵向空间。
type FlowResult struct {
	Lines  []Line  `json:"lines"`
	Height float64 `json:"height"`
}

// FlowOptions 配置流式排版的宽度约束与行距。
type FlowOptions struct {
	MaxWidth   float64 // 可用宽度；<=0 时视为不限宽
	Indent     float64 // 折行后续行的缩进，区别于首行左边界
	LineHeight float64
}

// Cell 是单个 token 在网格中的落位，由序号唯一决定，构造后不再变更。
type Cell struct {
	Index int     `json:"index"`
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// BoxGeometry 描述 token 方框的尺寸与间隔。
type BoxGeometry struct {
	BoxWidth  float64
	BoxHeight float64
	Spacing   float64 // 相邻方框左缘的水平间距
	RowGap    float64 // 行间垂直间距
}

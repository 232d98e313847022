package layout

// Grid 把 token 序号映射到行列网格。几何在整个动画期间不变，
// 每个格子只是序号的纯函数。
type Grid struct {
	Geometry BoxGeometry
	PerRow   int
}

// NewGrid 根据可用宽度计算每行 token 数。宽度或间距退化
//（非正值、宽度小于间距）时收敛为每行 1 个，避免除零与死循环。
func NewGrid(availableWidth float64, geom BoxGeometry) Grid {
	perRow := 1
	if geom.Spacing > 0 {
		perRow = int(availableWidth / geom.Spacing)
	}
	if perRow < 1 {
		perRow = 1
	}
	return Grid{Geometry: geom, PerRow: perRow}
}

// Cell 返回序号对应的格子及其像素位置。
func (g Grid) Cell(index int) Cell {
	row := index / g.PerRow
	col := index % g.PerRow
	return Cell{
		Index: index,
		Row:   row,
		Col:   col,
		X:     float64(col) * g.Geometry.Spacing,
		Y:     float64(row) * (g.Geometry.BoxHeight + g.Geometry.RowGap),
	}
}

// Rows 返回容纳 n 个 token 所需的行数（向上取整）。
func (g Grid) Rows(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + g.PerRow - 1) / g.PerRow
}

// Height 返回 n 个 token 的网格占用的总高度。
func (g Grid) Height(n int) float64 {
	return float64(g.Rows(n)) * (g.Geometry.BoxHeight + g.Geometry.RowGap)
}

// Visible 报告序号是否已在当前可见前缀内。只影响绘制样式，不影响几何。
func Visible(index, visibleCount int) bool { return index < visibleCount }

// Newest 报告序号是否为最新出现的 token。
func Newest(index, visibleCount int) bool { return index == visibleCount-1 }

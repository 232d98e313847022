package render

import (
	"fmt"
	"os"

	"github.com/tdewolff/canvas"
)

// 常见 Linux/macOS 等宽字体路径，按优先级排列。
var monospaceCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationMono-Regular.ttf",
	"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
	"/System/Library/Fonts/Menlo.ttc",
	"/usr/share/fonts/truetype/freefont/FreeMono.ttf",
}

// loadMonospaceFamily 加载等宽字体。preferred 非空时只尝试该文件，
// 否则依次探测候选路径。
func loadMonospaceFamily(preferred string) (*canvas.FontFamily, error) {
	paths := monospaceCandidates
	if preferred != "" {
		paths = []string{preferred}
	}
	var lastErr error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		family := canvas.NewFontFamily("mono")
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			lastErr = fmt.Errorf("加载字体 %s 失败: %w", path, err)
			continue
		}
		return family, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("未找到可用的等宽字体: %w", lastErr)
	}
	return nil, fmt.Errorf("未找到可用的等宽字体")
}

// Package theme 把全局颜色与样式常量收敛为显式配置结构，随调用链
// 传入布局与渲染，避免包级可变状态；多个动画并行生成时互不干扰。
package theme

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int
	G int
	B int
}

// RGBA 转为标准库颜色，供画布使用。
func (c Color) RGBA() color.Color {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}

// ParseHex 解析 #rrggbb 或 #rgb 形式的颜色。
func ParseHex(s string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("无法解析颜色 %q", s)
	}
	var c Color
	if _, err := fmt.Sscanf(v, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("无法解析颜色 %q: %w", s, err)
	}
	return c, nil
}

// Hex 返回 #rrggbb 表示。
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// UnmarshalYAML 让主题文件可以直接写十六进制颜色串。
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML 以十六进制颜色串输出。
func (c Color) MarshalYAML() (any, error) { return c.Hex(), nil }

// Palette 是动画的配色，默认值取自 GitHub 深色主题。
type Palette struct {
	Background Color `yaml:"bg"`
	Text       Color `yaml:"text"`
	TextDim    Color `yaml:"textDim"`
	Token      Color `yaml:"token"`
	TokenBG    Color `yaml:"tokenBg"`
	Key        Color `yaml:"key"`
	Value      Color `yaml:"value"`
	Bracket    Color `yaml:"bracket"`
	Highlight  Color `yaml:"highlight"`
	Progress   Color `yaml:"progress"`
	Border     Color `yaml:"border"`
	Baseline   Color `yaml:"baseline"` // 对比动画中基线编码器的颜色
	Success    Color `yaml:"success"`
}

// Theme 汇总配色、字号与几何，全部以画布单位（像素）计。
type Theme struct {
	Palette Palette `yaml:"palette"`

	// FontPath 指定等宽字体文件；为空时按候选路径探测系统字体。
	FontPath string `yaml:"fontPath"`

	FontSize      float64 `yaml:"fontSize"`
	SmallFontSize float64 `yaml:"smallFontSize"`
	TitleFontSize float64 `yaml:"titleFontSize"`
	LineHeight    float64 `yaml:"lineHeight"`

	Padding    float64 `yaml:"padding"`
	WrapIndent float64 `yaml:"wrapIndent"` // 折行续行缩进

	TokenBoxWidth  float64 `yaml:"tokenBoxWidth"`
	TokenBoxHeight float64 `yaml:"tokenBoxHeight"`
	TokenSpacing   float64 `yaml:"tokenSpacing"`
	TokenRowGap    float64 `yaml:"tokenRowGap"`
}

// Default 返回 GitHub 深色配色的默认主题。
func Default() *Theme {
	return &Theme{
		Palette: Palette{
			Background: mustHex("#0d1117"),
			Text:       mustHex("#c9d1d9"),
			TextDim:    mustHex("#8b949e"),
			Token:      mustHex("#58a6ff"),
			TokenBG:    mustHex("#21262d"),
			Key:        mustHex("#7ee787"),
			Value:      mustHex("#a5d6ff"),
			Bracket:    mustHex("#ffa657"),
			Highlight:  mustHex("#f85149"),
			Progress:   mustHex("#238636"),
			Border:     mustHex("#30363d"),
			Baseline:   mustHex("#f0883e"),
			Success:    mustHex("#238636"),
		},
		FontSize:      14,
		SmallFontSize: 12,
		TitleFontSize: 18,
		LineHeight:    18,
		Padding:       25,
		WrapIndent:    20,

		TokenBoxWidth:  48,
		TokenBoxHeight: 28,
		TokenSpacing:   56,
		TokenRowGap:    8,
	}
}

// Load 读取 YAML 主题文件；文件中省略的字段保留默认值。
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取主题文件 %s 失败: %w", path, err)
	}
	th := Default()
	if err := yaml.Unmarshal(data, th); err != nil {
		return nil, fmt.Errorf("解析主题文件 %s 失败: %w", path, err)
	}
	return th, nil
}

func mustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

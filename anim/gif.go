// Package anim 将渲染好的栅格帧序列装配为动画容器（GIF）。
// 帧顺序即播放顺序；每帧时长以毫秒给出，loop 为 0 表示无限循环。
package anim

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"path/filepath"
)

// Encode 把帧与时长编码为 GIF。frames 与 durationsMS 必须等长且非空，
// 所有帧尺寸一致。GIF 的时长粒度为 10ms，毫秒值向下取整。
func Encode(w io.Writer, frames []image.Image, durationsMS []int, loop int) error {
	if len(frames) == 0 {
		return fmt.Errorf("anim: 没有可编码的帧")
	}
	if len(frames) != len(durationsMS) {
		return fmt.Errorf("anim: 帧数 %d 与时长数 %d 不一致", len(frames), len(durationsMS))
	}

	out := &gif.GIF{LoopCount: loop}
	bounds := frames[0].Bounds()
	for i, frame := range frames {
		if frame.Bounds().Size() != bounds.Size() {
			return fmt.Errorf("anim: 第 %d 帧尺寸 %v 与首帧 %v 不一致", i, frame.Bounds().Size(), bounds.Size())
		}
		out.Image = append(out.Image, quantize(frame))
		out.Delay = append(out.Delay, durationsMS[i]/10)
	}
	return gif.EncodeAll(w, out)
}

// WriteFile 编码并写入文件，必要时创建父目录。
func WriteFile(path string, frames []image.Image, durationsMS []int, loop int) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建输出文件 %s 失败: %w", path, err)
	}
	defer f.Close()
	if err := Encode(f, frames, durationsMS, loop); err != nil {
		return err
	}
	return f.Close()
}

// quantize 将帧转为调色板图像。主题配色下颜色数通常远小于 256，
// 优先收集精确调色板；超出时退回 Plan9 调色板加抖动。
func quantize(img image.Image) *image.Paletted {
	b := img.Bounds()
	if pal, ok := exactPalette(img); ok {
		p := image.NewPaletted(b, pal)
		draw.Draw(p, b, img, b.Min, draw.Src)
		return p
	}
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}

// exactPalette 收集图像中出现的颜色，不超过 256 色时返回精确调色板。
func exactPalette(img image.Image) (color.Palette, bool) {
	b := img.Bounds()
	seen := make(map[color.RGBA]struct{}, 64)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			c := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)}
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				if len(seen) > 256 {
					return nil, false
				}
			}
		}
	}
	pal := make(color.Palette, 0, len(seen))
	for c := range seen {
		pal = append(pal, c)
	}
	return pal, true
}

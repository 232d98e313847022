// Package term 在终端中播放帧计划：逐帧显示 token 序列、已解码文本
// 与产出/缓冲标记。按 q、ESC 或 Ctrl-C 退出。
package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/anonymous-tct-authors/tct-models/highlight"
	"github.com/anonymous-tct-authors/tct-models/schedule"
)

// Session 是一次终端播放的全部输入。
type Session struct {
	Input  string
	Tokens []int
	Frames []schedule.FrameSpec
}

// Play 创建真实终端屏幕并播放；阻塞到播放结束或用户退出。
func Play(sess Session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: 创建屏幕失败: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: 初始化屏幕失败: %w", err)
	}
	defer screen.Fini()
	return PlayOn(screen, sess)
}

// PlayOn 在给定屏幕上播放，便于用模拟屏幕测试。调用方负责 Init 与
// Fini。
func PlayOn(screen tcell.Screen, sess Session) error {
	if len(sess.Frames) == 0 {
		return fmt.Errorf("term: 没有可播放的帧")
	}

	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok {
				switch {
				case key.Key() == tcell.KeyEscape, key.Key() == tcell.KeyCtrlC:
					close(quit)
					return
				case key.Key() == tcell.KeyRune && key.Rune() == 'q':
					close(quit)
					return
				}
			}
		}
	}()

	for _, frame := range sess.Frames {
		drawFrame(screen, sess, frame)
		hold := time.Duration(frame.HoldMS) * time.Millisecond
		select {
		case <-quit:
			return nil
		case <-time.After(hold):
		}
	}

	// 播放结束后等待退出键
	<-quit
	return nil
}

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleLabel   = tcell.StyleDefault.Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleToken   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleOK      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// classStyle 把着色类别映射到终端样式。
func classStyle(cls highlight.Class) tcell.Style {
	switch cls {
	case highlight.Key:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua)
	case highlight.Value:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case highlight.Bracket:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case highlight.Punct:
		return styleDim
	default:
		return styleDefault
	}
}

func drawFrame(screen tcell.Screen, sess Session, frame schedule.FrameSpec) {
	screen.Clear()
	y := 0

	drawString(screen, 0, y, styleTitle, "TCT Tokenization")
	y += 2

	drawString(screen, 0, y, styleLabel, "Input:")
	drawSegments(screen, 7, y, highlight.Classify(sess.Input))
	y += 2

	label := fmt.Sprintf("Tokens (%d/%d):", frame.VisibleTokens, len(sess.Tokens))
	drawString(screen, 0, y, styleLabel, label)
	y++
	x := 2
	for i := 0; i < frame.VisibleTokens && i < len(sess.Tokens); i++ {
		s := fmt.Sprintf("%d ", sess.Tokens[i])
		drawString(screen, x, y, styleToken, s)
		x += len(s)
	}
	y += 2

	drawString(screen, 0, y, styleLabel, "Decoded JSON:")
	y++
	if frame.Decoded != "" {
		drawSegments(screen, 2, y, highlight.Classify(frame.Decoded))
	} else {
		drawString(screen, 2, y, styleDim, "(building...)")
	}
	y += 2

	// 产出/缓冲标记：本帧是否让解码文本前进
	if frame.VisibleTokens > 0 && frame.VisibleTokens <= len(sess.Tokens) {
		tok := sess.Tokens[frame.VisibleTokens-1]
		if frame.Delta != "" {
			drawString(screen, 0, y, styleOK, fmt.Sprintf("✓ Token %d produced output", tok))
		} else {
			drawString(screen, 0, y, styleDim, fmt.Sprintf("○ Token %d (buffered)", tok))
		}
		y += 2
	}

	if frame.Stats.HasRatio {
		summary := fmt.Sprintf("%d bytes → %d tokens (%.1fx compression)",
			frame.Stats.ConsumedBytes, frame.Stats.ProducedTokens, frame.Stats.Ratio)
		drawString(screen, 0, y, styleDim, summary)
		y += 2
	}

	drawString(screen, 0, y, styleDim, "q / ESC to quit")
	screen.Show()
}

func drawSegments(screen tcell.Screen, x, y int, segs []highlight.Segment) {
	for _, seg := range segs {
		style := classStyle(seg.Class)
		for _, r := range seg.Text {
			screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
}

func drawString(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

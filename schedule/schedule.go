// Package schedule 从单调增长的 token 前缀推导有序、带时长的帧序列。
// 序列是输入与解码结果的纯函数：无随机性、不依赖墙钟，相同输入必得
// 相同序列。解码失败会放弃整个动画而不是输出残缺的一段。
package schedule

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Stats 是单帧的压缩统计。VisibleTokens 为 0 时比值无定义，
// 渲染方应显示占位符而不是除零。
type Stats struct {
	ConsumedBytes  int     `json:"consumedBytes"`
	ProducedTokens int     `json:"producedTokens"`
	Ratio          float64 `json:"ratio"`
	HasRatio       bool    `json:"hasRatio"`
}

// FrameSpec 描述一帧的渲染状态。Delta 是本帧相对上一帧新确认的
// 输出文本，仅供显示（高亮新增内容、区分缓冲 token），绝不参与
// 调度或统计。
type FrameSpec struct {
	VisibleTokens int    `json:"visibleTokens"`
	Decoded       string `json:"decoded"`
	Delta         string `json:"delta,omitempty"`
	Stats         Stats  `json:"stats"`
	HoldMS        int    `json:"holdMs"`
}

// Timing 配置帧时长与首尾停顿。
type Timing struct {
	PerTokenHoldMS      int // 普通帧的显示时长
	FinalHoldMultiplier int // 末帧按倍数延长
	LeadingFrames       int // 开头的零可见帧数量，给动画一个起始停顿
}

// DefaultTiming 返回默认节奏：每帧 800ms，末帧 3 倍，1 帧起始停顿。
func DefaultTiming() Timing {
	return Timing{PerTokenHoldMS: 800, FinalHoldMultiplier: 3, LeadingFrames: 1}
}

// DecodeFunc 是外部分词器的前缀解码边界：返回已确认文本、
// 已产生输出的数量与缓冲数量。
type DecodeFunc func(prefix []int) (text string, consumed, surplus int, err error)

// DecodeError 标记第几个前缀解码失败，整个动画随之放弃。
type DecodeError struct {
	Index int // 失败前缀的长度
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("解码前 %d 个 token 失败: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Build 构造完整的帧序列：LeadingFrames 个零可见帧，每个前缀长度
// 一帧，最后复制末帧并按 FinalHoldMultiplier 延长停留。
// 可见 token 数在序列上单调不减。
func Build(tokens []int, decode DecodeFunc, timing Timing) ([]FrameSpec, error) {
	if decode == nil {
		return nil, fmt.Errorf("schedule: 缺少解码函数")
	}
	if timing.PerTokenHoldMS <= 0 {
		timing.PerTokenHoldMS = DefaultTiming().PerTokenHoldMS
	}
	if timing.FinalHoldMultiplier <= 0 {
		timing.FinalHoldMultiplier = 1
	}

	frames := make([]FrameSpec, 0, timing.LeadingFrames+len(tokens)+1)
	for i := 0; i < timing.LeadingFrames; i++ {
		frames = append(frames, FrameSpec{
			VisibleTokens: 0,
			Decoded:       "",
			Stats:         computeStats("", 0),
			HoldMS:        timing.PerTokenHoldMS,
		})
	}

	dmp := diffmatchpatch.New()
	prev := ""
	for i := 1; i <= len(tokens); i++ {
		text, consumed, surplus, err := decode(tokens[:i])
		if err != nil {
			return nil, &DecodeError{Index: i, Err: err}
		}
		if consumed < 0 || surplus < 0 || consumed > i {
			return nil, &DecodeError{Index: i, Err: fmt.Errorf("解码输出不一致: consumed=%d surplus=%d（前缀长度 %d）", consumed, surplus, i)}
		}
		frames = append(frames, FrameSpec{
			VisibleTokens: i,
			Decoded:       text,
			Delta:         text[dmp.DiffCommonPrefix(prev, text):],
			Stats:         computeStats(text, i),
			HoldMS:        timing.PerTokenHoldMS,
		})
		prev = text
	}

	// 只要产生过帧就追加延长停留的末帧，空 token 序列也不例外
	if len(frames) > 0 {
		last := frames[len(frames)-1]
		last.Delta = ""
		last.HoldMS = timing.PerTokenHoldMS * timing.FinalHoldMultiplier
		frames = append(frames, last)
	}
	return frames, nil
}

// computeStats 计算字节数与压缩比；可见数为 0 时比值标记为无定义。
func computeStats(decoded string, visibleTokens int) Stats {
	s := Stats{
		ConsumedBytes:  len(decoded),
		ProducedTokens: visibleTokens,
	}
	if visibleTokens > 0 {
		s.Ratio = float64(s.ConsumedBytes) / float64(visibleTokens)
		s.HasRatio = true
	}
	return s
}

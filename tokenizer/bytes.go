package tokenizer

import (
	"fmt"
	"unicode/utf8"
)

// Bytes 是 UTF-8 字节基线编码器：每个字节一个 token，词表大小 256。
// 用于与词表编码做压缩比对比。
type Bytes struct{}

// Encode 实现 Codec。
func (Bytes) Encode(text string) ([]int, error) {
	tokens := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		tokens[i] = int(text[i])
	}
	return tokens, nil
}

// DecodePrefix 实现 Codec。末尾不完整的多字节序列会被缓冲为
// Surplus 而不进入 Text，保证已确认文本始终是合法 UTF-8 且随
// 前缀增长单调增长。
func (Bytes) DecodePrefix(prefix []int) (Decoded, error) {
	buf := make([]byte, len(prefix))
	for i, t := range prefix {
		if t < 0 || t > 0xff {
			return Decoded{}, fmt.Errorf("字节 token %d 越界（位置 %d）", t, i)
		}
		buf[i] = byte(t)
	}
	cut := completeBoundary(buf)
	return Decoded{
		Text:     string(buf[:cut]),
		Consumed: cut,
		Surplus:  len(buf) - cut,
	}, nil
}

// VocabSize 实现 Codec。
func (Bytes) VocabSize() int { return 256 }

// completeBoundary 返回 buf 中最后一个完整 rune 结束的位置。
// 只需回看最多 utf8.UTFMax 个字节：找到首字节后按其声明的序列长度
// 判断末尾是否凑齐。
func completeBoundary(buf []byte) int {
	n := len(buf)
	for back := 1; back <= utf8.UTFMax && back <= n; back++ {
		b := buf[n-back]
		switch {
		case b < 0x80:
			// ASCII 结尾，一定完整
			return n
		case b >= 0xf0:
			if back < 4 {
				return n - back
			}
			return n
		case b >= 0xe0:
			if back < 3 {
				return n - back
			}
			return n
		case b >= 0xc0:
			if back < 2 {
				return n - back
			}
			return n
		}
		// 0x80..0xbf 为延续字节，继续回看
	}
	return n
}

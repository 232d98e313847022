package highlight

import "strings"

// 该包将结构化文本（JSON 序列化记录）切分为带着色类别的片段序列，
// 供布局与渲染使用。分类对任意输入都是全函数：帧中经常出现尚未解码
// 完整的残缺 JSON，这里不做任何合法性校验。

// Class 表示片段的着色类别。
type Class int

const (
	Plain Class = iota // 普通文本
	Key                // 字符串键（后随冒号）
	Value              // 字符串值
	Bracket            // { } [ ]
	Punct              // 冒号与逗号（字符串外）
)

// String 返回类别的可读名称，主要用于调试输出。
func (c Class) String() string {
	switch c {
	case Key:
		return "key"
	case Value:
		return "value"
	case Bracket:
		return "bracket"
	case Punct:
		return "punct"
	default:
		return "plain"
	}
}

// Segment 是一段归属单一着色类别的连续文本。所有片段按序拼接必须
// 精确还原输入（分类不丢字符、不重排）。
type Segment struct {
	Text  string
	Class Class
}

// Classify 对输入做一次从左到右的扫描，返回着色片段序列。
// 转义字符与被转义字符始终留在当前片段内；未闭合的字符串按当前
// 生效的类别原样收尾。
func Classify(input string) []Segment {
	var segs []Segment
	var run strings.Builder
	cls := Plain

	flush := func() {
		if run.Len() == 0 {
			return
		}
		segs = append(segs, Segment{Text: run.String(), Class: cls})
		run.Reset()
	}

	inString := false
	escapeNext := false

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if escapeNext {
			run.WriteByte(ch)
			escapeNext = false
			continue
		}

		switch {
		case ch == '\\':
			escapeNext = true
			run.WriteByte(ch)

		case ch == '"' && !inString:
			flush()
			inString = true
			if keyAhead(input[i+1:]) {
				cls = Key
			} else {
				cls = Value
			}
			run.WriteByte(ch)

		case ch == '"' && inString:
			run.WriteByte(ch)
			flush()
			inString = false
			cls = Plain

		case !inString && (ch == '{' || ch == '}' || ch == '[' || ch == ']'):
			flush()
			cls = Bracket
			run.WriteByte(ch)
			flush()
			cls = Plain

		case !inString && (ch == ':' || ch == ','):
			flush()
			cls = Punct
			run.WriteByte(ch)
			flush()
			cls = Plain

		default:
			run.WriteByte(ch)
		}
	}
	flush()
	return segs
}

// keyAhead 判断刚开启的字符串是否为键。rest 是开引号之后的剩余输入：
// 先跳过字符串本体到未转义的闭合引号，再看其后未转义的冒号是否严格
// 先于下一个未转义的引号出现（或引号不再出现）。
// 纯函数，只依赖剩余子串，不携带扫描状态。
func keyAhead(rest string) bool {
	i := 0
	escape := false
	for ; i < len(rest); i++ {
		if escape {
			escape = false
			continue
		}
		if rest[i] == '\\' {
			escape = true
			continue
		}
		if rest[i] == '"' {
			break
		}
	}
	if i >= len(rest) {
		// 字符串未闭合，残缺帧里按值处理
		return false
	}

	colon, quote := -1, -1
	escape = false
	for j := i + 1; j < len(rest); j++ {
		if escape {
			escape = false
			continue
		}
		switch rest[j] {
		case '\\':
			escape = true
		case ':':
			if colon < 0 {
				colon = j
			}
		case '"':
			if quote < 0 {
				quote = j
			}
		}
		if colon >= 0 && quote >= 0 {
			break
		}
	}
	return colon >= 0 && (quote < 0 || colon < quote)
}

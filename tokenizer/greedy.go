package tokenizer

import (
	"encoding/json"
	"fmt"
	"os"
)

// Greedy 是最长匹配的词表编码器。词表项按 id 排序，编码时在当前
// 位置尝试尽可能长的词表项。解码是查表拼接，所有 token 立即产生
// 输出（Surplus 恒为 0）。
type Greedy struct {
	entries []string
	index   map[string]int
	maxLen  int
}

// NewGreedy 用给定词表构造编码器。词表项为空或重复时报错。
func NewGreedy(entries []string) (*Greedy, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("词表为空")
	}
	idx := make(map[string]int, len(entries))
	maxLen := 0
	for i, e := range entries {
		if e == "" {
			return nil, fmt.Errorf("词表第 %d 项为空字符串", i)
		}
		if _, ok := idx[e]; ok {
			return nil, fmt.Errorf("词表项重复: %q", e)
		}
		idx[e] = i
		if len(e) > maxLen {
			maxLen = len(e)
		}
	}
	return &Greedy{entries: entries, index: idx, maxLen: maxLen}, nil
}

// LoadVocab 从 JSON 文件（字符串数组）加载词表。
func LoadVocab(path string) (*Greedy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取词表文件 %s 失败: %w", path, err)
	}
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("解析词表文件 %s 失败: %w", path, err)
	}
	return NewGreedy(entries)
}

// Encode 实现 Codec。在每个位置做最长匹配；词表覆盖不到的输入报错。
func (g *Greedy) Encode(text string) ([]int, error) {
	var tokens []int
	for pos := 0; pos < len(text); {
		n := g.maxLen
		if rest := len(text) - pos; n > rest {
			n = rest
		}
		matched := false
		for ; n > 0; n-- {
			if id, ok := g.index[text[pos:pos+n]]; ok {
				tokens = append(tokens, id)
				pos += n
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("词表无法覆盖位置 %d 处的输入 %q", pos, text[pos])
		}
	}
	return tokens, nil
}

// DecodePrefix 实现 Codec：查表拼接。id 越界视为损坏的序列。
func (g *Greedy) DecodePrefix(prefix []int) (Decoded, error) {
	var out []byte
	for i, id := range prefix {
		if id < 0 || id >= len(g.entries) {
			return Decoded{}, fmt.Errorf("token %d 越界（位置 %d，词表大小 %d）", id, i, len(g.entries))
		}
		out = append(out, g.entries[id]...)
	}
	return Decoded{Text: string(out), Consumed: len(prefix)}, nil
}

// VocabSize 实现 Codec。
func (g *Greedy) VocabSize() int { return len(g.entries) }

// Builtin 返回内置的 Kubernetes 清单词表编码器：常见键与取值为
// 多字符词表项，可打印 ASCII 单字符兜底。
func Builtin() *Greedy {
	entries := []string{
		`{"`, `"}`, `":"`, `","`, `":`, `,"`, `}}`, `":{"`,
		"apiVersion", "kind", "metadata", "name", "namespace",
		"labels", "annotations", "spec", "containers", "image",
		"replicas", "selector", "ports", "containerPort",
		"v1", "apps/v1", "Pod", "Service", "Deployment",
		"ConfigMap", "Secret", "nginx",
		"true", "false", "null",
	}
	for c := byte(0x20); c < 0x7f; c++ {
		entries = append(entries, string(c))
	}
	g, err := NewGreedy(entries)
	if err != nil {
		// 内置词表固定无重复，构造失败意味着程序缺陷
		panic(err)
	}
	return g
}

// Package tokenizer 定义动画核心所依赖的分词器契约，并提供两个参考
// 实现：贪心词表编码（近似 TCT 的行为）与 UTF-8 字节基线。核心逻辑
// 只关心 token 的顺序与数量，不关心其语义。
package tokenizer

// Decoded 是一次前缀解码的结果。
// Text 必须随前缀增长而单调增长（已确认的输出不会回退）。
type Decoded struct {
	Text     string // 已确认的解码文本
	Consumed int    // 已产生输出的 token/字节数
	Surplus  int    // 已缓冲但尚未产生输出的数量
}

// Codec 是外部分词器的接口边界。
type Codec interface {
	// Encode 把文本编码为 token 序列。
	Encode(text string) ([]int, error)
	// DecodePrefix 解码 token 前缀。对逐渐增长的前缀必须单调：
	// 先前已确认的文本只会增长或保持不变。
	DecodePrefix(prefix []int) (Decoded, error)
	// VocabSize 返回词表大小。
	VocabSize() int
}

package cli

import (
	"path/filepath"
	"testing"
)

// TestRootSubcommands 根命令挂载全部子命令。
func TestRootSubcommands(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"tokens", "compare", "schemas", "play", "batch"} {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("缺少子命令 %s", name)
		}
	}
}

// TestNewCodec 编解码器选择：默认 greedy、bytes、未知名称报错。
func TestNewCodec(t *testing.T) {
	c, err := newCodec("", "")
	if err != nil {
		t.Fatalf("默认编解码器构造失败: %v", err)
	}
	tokens, err := c.Encode(defaultInput)
	if err != nil {
		t.Fatalf("默认编解码器应覆盖默认输入: %v", err)
	}
	if len(tokens) >= len(defaultInput) {
		t.Fatalf("greedy 词表应压缩默认输入: %d token / %d 字节", len(tokens), len(defaultInput))
	}
	if c, err := newCodec("bytes", ""); err != nil || c.VocabSize() != 256 {
		t.Fatalf("bytes 词表规模应为 256: %v", err)
	}
	if _, err := newCodec("huffman", ""); err == nil {
		t.Fatalf("未知编解码器应报错")
	}
}

// TestDecodeFuncAdapter 适配层透传解码结果。
func TestDecodeFuncAdapter(t *testing.T) {
	codec, err := newCodec("greedy", "")
	if err != nil {
		t.Fatalf("构造编解码器失败: %v", err)
	}
	input := `{"kind": "Pod"}`
	tokens, err := codec.Encode(input)
	if err != nil {
		t.Fatalf("编码失败: %v", err)
	}
	decode := decodeFunc(codec)
	text, consumed, surplus, err := decode(tokens)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	if text != input {
		t.Fatalf("完整前缀应解出原文，实际 %q", text)
	}
	if consumed != len(tokens) || surplus != 0 {
		t.Fatalf("完整前缀应全部产出: consumed=%d surplus=%d", consumed, surplus)
	}
}

// TestLoadBindingData 内联与文件两种来源互斥。
func TestLoadBindingData(t *testing.T) {
	data, err := loadBindingData(batchParams{DataJSON: `{"a":1}`})
	if err != nil {
		t.Fatalf("解析内联数据失败: %v", err)
	}
	m, ok := data.(map[string]any)
	if !ok || m["a"] != float64(1) {
		t.Fatalf("数据解析结果错误: %+v", data)
	}

	if _, err := loadBindingData(batchParams{DataJSON: `{}`, DataFile: "x.json"}); err == nil {
		t.Fatalf("两种来源同时指定应报错")
	}
	if _, err := loadBindingData(batchParams{DataJSON: `{broken`}); err == nil {
		t.Fatalf("非法 JSON 应报错")
	}
	if data, err := loadBindingData(batchParams{}); err != nil || data != nil {
		t.Fatalf("无数据时应返回 nil: %v %v", data, err)
	}
	if _, err := loadBindingData(batchParams{DataFile: filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Fatalf("缺失数据文件应报错")
	}
}

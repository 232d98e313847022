package highlight

import (
	"strings"
	"testing"
)

func join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// TestRoundTrip 断言：任意输入分类后按序拼接必须还原原文。
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"{}",
		`{"apiVersion":"v1","kind":"Pod"}`,
		`{"a": [1, 2, {"b": "c"}]}`,
		`{"a":"b\"c"}`,
		`{"unterminated`,
		`{"key": "val`,
		"plain text without json",
		`{"中文":"值"}`,
		`\\\"`,
	}
	for _, in := range inputs {
		segs := Classify(in)
		if got := join(segs); got != in {
			t.Fatalf("往返不变式不成立: input=%q got=%q", in, got)
		}
	}
}

// TestKeyValueDisambiguation 验证键与值的区分。
func TestKeyValueDisambiguation(t *testing.T) {
	segs := Classify(`{"a":"b"}`)
	var strs []Segment
	for _, s := range segs {
		if s.Class == Key || s.Class == Value {
			strs = append(strs, s)
		}
	}
	if len(strs) != 2 {
		t.Fatalf("应有两个字符串片段，实际 %d 个: %+v", len(strs), segs)
	}
	if strs[0].Class != Key || strs[0].Text != `"a"` {
		t.Fatalf("第一个字符串应为键 %q，实际: %+v", `"a"`, strs[0])
	}
	if strs[1].Class != Value || strs[1].Text != `"b"` {
		t.Fatalf("第二个字符串应为值 %q，实际: %+v", `"b"`, strs[1])
	}
}

// TestEscapedQuoteInsideValue 验证转义引号不会提前结束字符串。
func TestEscapedQuoteInsideValue(t *testing.T) {
	segs := Classify(`{"a":"b\"c"}`)
	found := false
	for _, s := range segs {
		if s.Class == Value {
			if s.Text != `"b\"c"` {
				t.Fatalf("值片段被转义引号截断: %q", s.Text)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("未找到值片段: %+v", segs)
	}
}

// TestBracketsAndPunct 验证括号与标点均为单字符片段。
func TestBracketsAndPunct(t *testing.T) {
	segs := Classify(`{"a":[1,2]}`)
	for _, s := range segs {
		switch s.Class {
		case Bracket:
			if len(s.Text) != 1 || !strings.ContainsAny(s.Text, "{}[]") {
				t.Fatalf("括号片段异常: %q", s.Text)
			}
		case Punct:
			if s.Text != ":" && s.Text != "," {
				t.Fatalf("标点片段异常: %q", s.Text)
			}
		}
	}
}

// TestUnterminatedString 验证未闭合字符串按当前类别收尾且不丢内容。
func TestUnterminatedString(t *testing.T) {
	in := `{"apiVersion":"v`
	segs := Classify(in)
	if got := join(segs); got != in {
		t.Fatalf("未闭合输入往返失败: %q", got)
	}
	last := segs[len(segs)-1]
	if last.Class != Value {
		t.Fatalf("残缺值片段类别应为 Value，实际 %v", last.Class)
	}
	if last.Text != `"v` {
		t.Fatalf("残缺值片段内容异常: %q", last.Text)
	}
}

// TestBracketInsideStringStaysString 字符串内部的括号不单独着色。
func TestBracketInsideStringStaysString(t *testing.T) {
	segs := Classify(`{"a":"{b}"}`)
	for _, s := range segs {
		if s.Class == Value && s.Text != `"{b}"` {
			t.Fatalf("字符串内括号被拆分: %+v", segs)
		}
	}
}

// TestColonInsideValueNotPunct 字符串内的冒号不作为标点。
func TestColonInsideValueNotPunct(t *testing.T) {
	segs := Classify(`{"url":"http://x"}`)
	punct := 0
	for _, s := range segs {
		if s.Class == Punct {
			punct++
		}
	}
	// 只有键值之间的一个冒号
	if punct != 1 {
		t.Fatalf("标点数量应为 1，实际 %d: %+v", punct, segs)
	}
}

// Package storyboard 解析批量生成脚本：一个文件声明多段动画及其
// 属性，属性值支持 ${path} 数据插值。
package storyboard

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	boardLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[{}:;,]`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(boardLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
	)
)

// Document 是脚本文件的根节点。
type Document struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    string         `parser:"Newline* 'storyboard' @Ident"`
	Version string         `parser:"@Ident"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Entry 是顶层条目：公共默认值或一段动画声明。
type Entry struct {
	Defaults *DefaultsEntry `parser:"  @@"`
	Anim     *AnimEntry     `parser:"| @@"`
}

// DefaultsEntry 声明对文件内所有动画生效的默认属性。
type DefaultsEntry struct {
	Block *Block `parser:"'defaults' @@"`
}

// AnimEntry 声明一段动画：种类、名称与属性块。
type AnimEntry struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Kind  string         `parser:"'anim' @Ident"`
	Name  StringLiteral  `parser:"@String"`
	Block *Block         `parser:"@@"`
}

// Block 是大括号包围的赋值列表。
type Block struct {
	Assignments []*Assignment `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment 采用冒号语法（key: value）。
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Value 是属性值：字符串、数字或裸标识符（如 true）。
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
}

// Text 返回属性值的文本形式。
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringLiteral 在捕获时去除 Go 风格引号。
type StringLiteral string

// Capture 实现 participle.Capture。
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("字符串字面量缺少取值")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse 从 io.Reader 解析脚本。
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString 从字符串解析脚本。
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

package storyboard

import (
	"fmt"
	"strconv"
)

// 支持的动画种类。
const (
	KindTokens  = "tokens"
	KindCompare = "compare"
	KindSchemas = "schemas"
)

// Animation 是编译后的一段动画：种类、名称与合并插值后的属性。
type Animation struct {
	Kind  string
	Name  string
	Props map[string]string
}

// String 按 key 取属性文本，缺失时返回默认值。
func (a *Animation) String(key, def string) string {
	if v, ok := a.Props[key]; ok {
		return v
	}
	return def
}

// Int 按 key 取整数属性，缺失或非法时返回默认值与错误。
func (a *Animation) Int(key string, def int) (int, error) {
	v, ok := a.Props[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("动画 %q 的属性 %s=%q 不是整数", a.Name, key, v)
	}
	return n, nil
}

// Compile 把文档展开为动画列表：defaults 先生效，动画内赋值覆盖；
// 全部字符串值经 data 插值。
func Compile(doc *Document, data any) ([]*Animation, error) {
	if doc == nil {
		return nil, fmt.Errorf("storyboard: 文档为空")
	}

	defaults := map[string]string{}
	for _, e := range doc.Entries {
		if e.Defaults != nil {
			mergeBlock(defaults, e.Defaults.Block, data)
		}
	}

	var anims []*Animation
	for _, e := range doc.Entries {
		if e.Anim == nil {
			continue
		}
		switch e.Anim.Kind {
		case KindTokens, KindCompare, KindSchemas:
		default:
			return nil, fmt.Errorf("storyboard: %s 未知的动画种类 %q", e.Anim.Pos, e.Anim.Kind)
		}
		props := make(map[string]string, len(defaults))
		for k, v := range defaults {
			props[k] = v
		}
		mergeBlock(props, e.Anim.Block, data)
		anims = append(anims, &Animation{
			Kind:  e.Anim.Kind,
			Name:  Interpolate(string(e.Anim.Name), data),
			Props: props,
		})
	}
	if len(anims) == 0 {
		return nil, fmt.Errorf("storyboard: 文件中没有动画声明")
	}
	return anims, nil
}

func mergeBlock(dst map[string]string, block *Block, data any) {
	if block == nil {
		return
	}
	for _, a := range block.Assignments {
		dst[a.Key] = Interpolate(a.Value.Text(), data)
	}
}

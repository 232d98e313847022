// Package cli 提供 tctanim 的命令行界面：tokens、compare、schemas
// 生成 GIF，play 在终端播放，batch 按脚本批量生成。
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anonymous-tct-authors/tct-models/schedule"
	"github.com/anonymous-tct-authors/tct-models/theme"
	"github.com/anonymous-tct-authors/tct-models/tokenizer"
)

// defaultInput 是未指定输入时使用的 Kubernetes 清单。
const defaultInput = `{"apiVersion": "v1", "kind": "Pod"}`

// NewRootCommand 组装全部子命令。
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tctanim",
		Short:         "TCT 分词可视化动画生成器",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newTokensCommand(),
		newCompareCommand(),
		newSchemasCommand(),
		newPlayCommand(),
		newBatchCommand(),
	)
	return root
}

// Execute 运行根命令。
func Execute() error {
	return NewRootCommand().Execute()
}

// newCodec 按名称与词表路径构造编解码器。
func newCodec(kind, vocabPath string) (tokenizer.Codec, error) {
	switch kind {
	case "", "greedy":
		if vocabPath != "" {
			return tokenizer.LoadVocab(vocabPath)
		}
		return tokenizer.Builtin(), nil
	case "bytes":
		return tokenizer.Bytes{}, nil
	default:
		return nil, fmt.Errorf("未知的编解码器 %q（可选 greedy、bytes）", kind)
	}
}

// decodeFunc 把 Codec 适配为帧调度的解码边界。
func decodeFunc(c tokenizer.Codec) schedule.DecodeFunc {
	return func(prefix []int) (string, int, int, error) {
		d, err := c.DecodePrefix(prefix)
		if err != nil {
			return "", 0, 0, err
		}
		return d.Text, d.Consumed, d.Surplus, nil
	}
}

// loadTheme 读取主题文件；路径为空时使用默认主题。
func loadTheme(path string) (*theme.Theme, error) {
	if path == "" {
		return theme.Default(), nil
	}
	return theme.Load(path)
}

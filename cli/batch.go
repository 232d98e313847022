package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anonymous-tct-authors/tct-models/storyboard"
)

type batchParams struct {
	DataJSON string
	DataFile string
	Theme    string
}

func newBatchCommand() *cobra.Command {
	var p batchParams
	cmd := &cobra.Command{
		Use:   "batch <storyboard 文件>",
		Short: "按脚本批量生成动画",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], p)
		},
	}
	cmd.Flags().StringVar(&p.DataJSON, "data", "", "插值用 JSON 数据")
	cmd.Flags().StringVar(&p.DataFile, "data-file", "", "插值用 JSON 数据文件")
	cmd.Flags().StringVar(&p.Theme, "theme", "", "主题 YAML 文件路径")
	return cmd
}

func runBatch(cmd *cobra.Command, path string, p batchParams) error {
	data, err := loadBindingData(p)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("无法打开脚本文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := storyboard.Parse(file)
	if err != nil {
		return fmt.Errorf("解析脚本失败: %w", err)
	}
	anims, err := storyboard.Compile(doc, data)
	if err != nil {
		return err
	}

	for _, a := range anims {
		if err := runBatchAnimation(cmd, a, p.Theme); err != nil {
			return fmt.Errorf("动画 %q 生成失败: %w", a.Name, err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "批量生成完成：%d 段动画\n", len(anims))
	return nil
}

// runBatchAnimation 把编译后的属性映射到对应子命令的参数。
func runBatchAnimation(cmd *cobra.Command, a *storyboard.Animation, themePath string) error {
	width, err := animFloat(a, "width", 700)
	if err != nil {
		return err
	}
	height, err := animFloat(a, "height", defaultHeight(a.Kind))
	if err != nil {
		return err
	}

	switch a.Kind {
	case storyboard.KindTokens:
		speed, err := a.Int("speed", 800)
		if err != nil {
			return err
		}
		return runTokens(cmd, tokensParams{
			Input:   a.String("input", defaultInput),
			Out:     a.String("out", a.Name+".gif"),
			Title:   a.String("title", "TCT: Tree-Coded Text Tokenization"),
			Codec:   a.String("codec", "greedy"),
			Vocab:   a.String("vocab", ""),
			Theme:   a.String("theme", themePath),
			Debug:   a.String("debug", ""),
			Width:   width,
			Height:  height,
			SpeedMS: speed,
		})
	case storyboard.KindCompare:
		baseTokens, err := a.Int("baseTokens", 24)
		if err != nil {
			return err
		}
		return runCompare(cmd, compareParams{
			Input:      a.String("input", `{"apiVersion":"v1","kind":"Pod","metadata":{"name":"nginx"}}`),
			Out:        a.String("out", a.Name+".gif"),
			Codec:      a.String("codec", "greedy"),
			Vocab:      a.String("vocab", ""),
			Theme:      a.String("theme", themePath),
			BaseTokens: baseTokens,
			BaseLabel:  a.String("baseLabel", "o200k (GPT-4):"),
			Subtitle:   a.String("subtitle", "Same JSON, two tokenizers"),
			Width:      width,
			Height:     height,
			Steps:      30,
			FrameMS:    100,
			HoldFrames: 25,
		})
	case storyboard.KindSchemas:
		return runSchemas(cmd, schemasParams{
			Out:        a.String("out", a.Name+".gif"),
			Theme:      a.String("theme", themePath),
			Footer:     a.String("footer", "TCT achieves 30-45% smaller vocabularies while guaranteeing valid JSON output"),
			Width:      width,
			Height:     height,
			Steps:      30,
			FrameMS:    80,
			HoldFrames: 25,
		})
	default:
		return fmt.Errorf("未知的动画种类 %q", a.Kind)
	}
}

func defaultHeight(kind string) float64 {
	if kind == storyboard.KindCompare {
		return 380
	}
	return 350
}

func animFloat(a *storyboard.Animation, key string, def float64) (float64, error) {
	n, err := a.Int(key, int(def))
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

func loadBindingData(p batchParams) (any, error) {
	raw := p.DataJSON
	if p.DataFile != "" {
		if raw != "" {
			return nil, fmt.Errorf("--data 与 --data-file 不能同时指定")
		}
		b, err := os.ReadFile(p.DataFile)
		if err != nil {
			return nil, fmt.Errorf("读取数据文件失败: %w", err)
		}
		raw = string(b)
	}
	if raw == "" {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return data, nil
}

package cli

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/anonymous-tct-authors/tct-models/anim"
	"github.com/anonymous-tct-authors/tct-models/render"
)

// compareParams 描述一次编码器对比动画。基线 token 数来自外部实测，
// TCT token 数由内置编解码器对同一输入现算。
type compareParams struct {
	Input      string
	Out        string
	Codec      string
	Vocab      string
	Theme      string
	BaseTokens int
	BaseLabel  string
	Subtitle   string
	Width      float64
	Height     float64
	Steps      int
	FrameMS    int
	HoldFrames int
}

func newCompareCommand() *cobra.Command {
	p := compareParams{
		Input:      `{"apiVersion":"v1","kind":"Pod","metadata":{"name":"nginx"}}`,
		Out:        "tct_comparison.gif",
		BaseTokens: 24,
		BaseLabel:  "o200k (GPT-4):",
		Subtitle:   "Same JSON, two tokenizers",
		Width:      700,
		Height:     380,
		Steps:      30,
		FrameMS:    100,
		HoldFrames: 25,
	}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "生成 TCT 与生产分词器的对比动画 GIF",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, p)
		},
	}
	cmd.Flags().StringVar(&p.Input, "json", p.Input, "要分词的 JSON 文本")
	cmd.Flags().StringVarP(&p.Out, "out", "o", p.Out, "GIF 输出路径")
	cmd.Flags().StringVar(&p.Codec, "codec", "greedy", "编解码器（greedy 或 bytes）")
	cmd.Flags().StringVar(&p.Vocab, "vocab", "", "词表 JSON 文件路径")
	cmd.Flags().StringVar(&p.Theme, "theme", "", "主题 YAML 文件路径")
	cmd.Flags().IntVar(&p.BaseTokens, "base-tokens", p.BaseTokens, "基线编码器的 token 数")
	cmd.Flags().StringVar(&p.BaseLabel, "base-label", p.BaseLabel, "基线编码器标签")
	cmd.Flags().Float64Var(&p.Width, "width", p.Width, "画布宽度（像素）")
	cmd.Flags().Float64Var(&p.Height, "height", p.Height, "画布高度（像素）")
	return cmd
}

func runCompare(cmd *cobra.Command, p compareParams) error {
	th, err := loadTheme(p.Theme)
	if err != nil {
		return err
	}
	codec, err := newCodec(p.Codec, p.Vocab)
	if err != nil {
		return err
	}
	tokens, err := codec.Encode(p.Input)
	if err != nil {
		return fmt.Errorf("编码输入失败: %w", err)
	}
	tctTotal := len(tokens)
	if p.BaseTokens <= 0 {
		return fmt.Errorf("基线 token 数必须为正，实际 %d", p.BaseTokens)
	}

	r, err := render.New(th, p.Width, p.Height)
	if err != nil {
		return err
	}

	reduction := float64(p.BaseTokens-tctTotal) / float64(p.BaseTokens) * 100
	footer := fmt.Sprintf("%.0f%% fewer tokens (%d → %d) for this manifest", reduction, p.BaseTokens, tctTotal)

	var images []image.Image
	var durations []int
	for step := 0; step <= p.Steps; step++ {
		progress := float64(step) / float64(p.Steps)
		img, err := r.RenderComparison(render.ComparisonSpec{
			Input:       p.Input,
			Subtitle:    p.Subtitle,
			BaseLabel:   p.BaseLabel,
			TCTLabel:    "TCT:",
			BaseTotal:   p.BaseTokens,
			TCTTotal:    tctTotal,
			BaseVisible: int(float64(p.BaseTokens) * progress),
			TCTVisible:  int(float64(tctTotal) * progress),
			Footer:      footer,
		})
		if err != nil {
			return fmt.Errorf("渲染第 %d 帧失败: %w", step, err)
		}
		images = append(images, img)
		durations = append(durations, p.FrameMS)
	}
	// 末帧停留
	for i := 0; i < p.HoldFrames; i++ {
		images = append(images, images[len(images)-1])
		durations = append(durations, p.FrameMS)
	}

	if err := anim.WriteFile(p.Out, images, durations, 0); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已生成 %s（%d 帧，%s vs TCT %d → %d）\n",
		p.Out, len(images), p.BaseLabel, p.BaseTokens, tctTotal)
	return nil
}

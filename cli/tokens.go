package cli

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/anonymous-tct-authors/tct-models/anim"
	"github.com/anonymous-tct-authors/tct-models/render"
	"github.com/anonymous-tct-authors/tct-models/schedule"
)

// tokensParams 汇总一次逐 token 动画的全部输入。
type tokensParams struct {
	Input   string
	Out     string
	Title   string
	Codec   string
	Vocab   string
	Theme   string
	Debug   string
	Width   float64
	Height  float64
	SpeedMS int
}

func newTokensCommand() *cobra.Command {
	p := tokensParams{
		Input:   defaultInput,
		Out:     "tct_animation.gif",
		Title:   "TCT: Tree-Coded Text Tokenization",
		Width:   700,
		Height:  350,
		SpeedMS: 800,
	}
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "生成逐 token 解码动画 GIF",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, p)
		},
	}
	cmd.Flags().StringVar(&p.Input, "json", p.Input, "要分词的 JSON 文本")
	cmd.Flags().StringVarP(&p.Out, "out", "o", p.Out, "GIF 输出路径")
	cmd.Flags().StringVar(&p.Title, "title", p.Title, "动画标题")
	cmd.Flags().StringVar(&p.Codec, "codec", "greedy", "编解码器（greedy 或 bytes）")
	cmd.Flags().StringVar(&p.Vocab, "vocab", "", "词表 JSON 文件路径")
	cmd.Flags().StringVar(&p.Theme, "theme", "", "主题 YAML 文件路径")
	cmd.Flags().StringVar(&p.Debug, "debug", "", "帧计划调试 JSON 输出路径")
	cmd.Flags().Float64Var(&p.Width, "width", p.Width, "画布宽度（像素）")
	cmd.Flags().Float64Var(&p.Height, "height", p.Height, "画布高度（像素）")
	cmd.Flags().IntVar(&p.SpeedMS, "speed", p.SpeedMS, "每帧时长（毫秒）")
	return cmd
}

// runTokens 串联编码、帧调度、渲染与 GIF 装配。
func runTokens(cmd *cobra.Command, p tokensParams) error {
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

	timing := schedule.DefaultTiming()
	timing.PerTokenHoldMS = p.SpeedMS
	frames, err := schedule.Build(tokens, decodeFunc(codec), timing)
	if err != nil {
		return fmt.Errorf("构造帧计划失败: %w", err)
	}
	if p.Debug != "" {
		if err := schedule.WriteDebugJSON(frames, p.Debug); err != nil {
			return err
		}
	}

	r, err := render.New(th, p.Width, p.Height)
	if err != nil {
		return err
	}
	scene := render.Scene{Title: p.Title, Input: p.Input, Tokens: tokens}
	images := make([]image.Image, 0, len(frames))
	durations := make([]int, 0, len(frames))
	for _, frame := range frames {
		img, err := r.RenderFrame(scene, frame)
		if err != nil {
			return fmt.Errorf("渲染第 %d 帧失败: %w", len(images), err)
		}
		images = append(images, img)
		durations = append(durations, frame.HoldMS)
	}

	if err := anim.WriteFile(p.Out, images, durations, 0); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已生成 %s（%d 帧，%d 个 token）\n", p.Out, len(images), len(tokens))
	return nil
}

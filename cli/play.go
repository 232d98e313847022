package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anonymous-tct-authors/tct-models/schedule"
	"github.com/anonymous-tct-authors/tct-models/term"
)

type playParams struct {
	Input   string
	Codec   string
	Vocab   string
	SpeedMS int
}

func newPlayCommand() *cobra.Command {
	p := playParams{
		Input:   defaultInput,
		SpeedMS: 300,
	}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "在终端中播放逐 token 解码动画",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(p)
		},
	}
	cmd.Flags().StringVar(&p.Input, "json", p.Input, "要分词的 JSON 文本")
	cmd.Flags().StringVar(&p.Codec, "codec", "greedy", "编解码器（greedy 或 bytes）")
	cmd.Flags().StringVar(&p.Vocab, "vocab", "", "词表 JSON 文件路径")
	cmd.Flags().IntVar(&p.SpeedMS, "speed", p.SpeedMS, "每帧时长（毫秒）")
	return cmd
}

func runPlay(p playParams) error {
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

	return term.Play(term.Session{Input: p.Input, Tokens: tokens, Frames: frames})
}

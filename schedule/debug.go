package schedule

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将帧序列输出为 JSON，便于调试或比对两次运行的
// 确定性。
func WriteDebugJSON(frames []FrameSpec, path string) error {
	data, err := json.MarshalIndent(frames, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

package formatter

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

type jsonOutput struct {
	Model     string `json:"model"`
	Directory string `json:"directory"`
	*model.Snapshot
}

// Format writes the snapshot with the hook's model and directory. Unavailable
// values are null.
func (f *JSONFormatter) Format(hook model.HookInput, snapshot *model.Snapshot) error {
	data, err := sonic.MarshalIndent(jsonOutput{
		Model:     hook.ModelName(),
		Directory: hook.Dir(),
		Snapshot:  snapshot,
	}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.w.Write(data)
	return err
}

package model

// HookInput is the JSON object the assistant pipes to the statusline command.
type HookInput struct {
	SessionID      string        `json:"session_id"`
	TranscriptPath string        `json:"transcript_path"`
	Cwd            string        `json:"cwd,omitempty"`
	Model          HookModel     `json:"model"`
	Workspace      HookWorkspace `json:"workspace"`
	Version        string        `json:"version,omitempty"`
	OutputStyle    *OutputStyle  `json:"output_style,omitempty"`
}

type HookModel struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type HookWorkspace struct {
	CurrentDir string `json:"current_dir"`
	ProjectDir string `json:"project_dir"`
}

type OutputStyle struct {
	Name string `json:"name"`
}

// Dir returns the best directory to show for the session.
func (h HookInput) Dir() string {
	if h.Workspace.CurrentDir != "" {
		return h.Workspace.CurrentDir
	}
	return h.Cwd
}

// ModelName prefers the display name over the raw id.
func (h HookInput) ModelName() string {
	if h.Model.DisplayName != "" {
		return h.Model.DisplayName
	}
	return h.Model.ID
}

package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Entry describes one usage log line in the nested message.usage shape
type Entry struct {
	Timestamp     time.Time
	Type          string
	Model         string
	Input         int64
	Output        int64
	CacheCreation int64
	CacheRead     int64
	CostUSD       *float64
	MessageID     string
	RequestID     string
}

type lineUsage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
}

type lineMessage struct {
	Id    string     `json:"id,omitempty"`
	Role  string     `json:"role"`
	Model string     `json:"model,omitempty"`
	Usage *lineUsage `json:"usage,omitempty"`
}

type line struct {
	Timestamp string      `json:"timestamp,omitempty"`
	Type      string      `json:"type"`
	RequestId string      `json:"requestId,omitempty"`
	CostUSD   *float64    `json:"costUSD,omitempty"`
	Message   lineMessage `json:"message"`
}

// Line renders the entry as JSON. Token counts are written only when at
// least one is non-zero.
func (e Entry) Line() string {
	l := line{
		Type:      e.Type,
		RequestId: e.RequestID,
		CostUSD:   e.CostUSD,
		Message: lineMessage{
			Id:    e.MessageID,
			Role:  "assistant",
			Model: e.Model,
		},
	}
	if l.Type == "" {
		l.Type = "assistant"
	}
	if !e.Timestamp.IsZero() {
		l.Timestamp = e.Timestamp.UTC().Format(time.RFC3339Nano)
	}
	if e.Input != 0 || e.Output != 0 || e.CacheCreation != 0 || e.CacheRead != 0 {
		l.Message.Usage = &lineUsage{
			InputTokens:              e.Input,
			OutputTokens:             e.Output,
			CacheCreationInputTokens: e.CacheCreation,
			CacheReadInputTokens:     e.CacheRead,
		}
	}
	data, err := sonic.Marshal(l)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Cost returns a pointer for Entry.CostUSD
func Cost(v float64) *float64 {
	return &v
}

// TestDataGenerator writes usage logs under baseDir/<project>/<session>.jsonl
type TestDataGenerator struct {
	baseDir string
}

// NewTestDataGenerator creates a new test data generator
func NewTestDataGenerator(baseDir string) *TestDataGenerator {
	return &TestDataGenerator{baseDir: baseDir}
}

// BaseDir returns the projects root
func (g *TestDataGenerator) BaseDir() string {
	return g.baseDir
}

// WriteSession writes entries to a session file and returns its path
func (g *TestDataGenerator) WriteSession(project, sessionID string, entries ...Entry) (string, error) {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Line())
	}
	return g.WriteRaw(project, sessionID, lines...)
}

// WriteRaw writes arbitrary lines to a session file and returns its path
func (g *TestDataGenerator) WriteRaw(project, sessionID string, lines ...string) (string, error) {
	dir := filepath.Join(g.baseDir, project)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, sessionID+".jsonl")
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	return path, os.WriteFile(path, []byte(content), 0644)
}

package util

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/samber/lo"
)

// formatEntry renders one entry; text fields are sorted by key
func formatEntry(entry LogEntry, format LogFormat) (string, error) {
	if format == FormatJSON {
		data, err := sonic.Marshal(entry)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	output := fmt.Sprintf("%s [%s] %s", entry.Timestamp.Format("2006/01/02 15:04:05"), entry.Level, entry.Message)
	if len(entry.Fields) > 0 {
		keys := lo.Keys(entry.Fields)
		sort.Strings(keys)
		fieldStrs := lo.Map(keys, func(k string, _ int) string {
			return fmt.Sprintf("%s=%v", k, entry.Fields[k])
		})
		output += " " + strings.Join(fieldStrs, " ")
	}
	return output, nil
}

// ConsoleOutput writes logs to a stream, normally stderr
type ConsoleOutput struct {
	writer io.Writer
	format LogFormat
	mu     sync.Mutex
}

// NewConsoleOutput creates a new console output
func NewConsoleOutput(writer io.Writer, format LogFormat) Output {
	return &ConsoleOutput{
		writer: writer,
		format: format,
	}
}

func (c *ConsoleOutput) Write(entry LogEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	output, err := formatEntry(entry, c.format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.writer, output)
	return err
}

func (c *ConsoleOutput) Close() error {
	return nil
}

// FileOutput appends logs to a file
type FileOutput struct {
	file   *os.File
	format LogFormat
	mu     sync.Mutex
}

// NewFileOutput creates a new file output
func NewFileOutput(path string, format LogFormat) (Output, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &FileOutput{
		file:   file,
		format: format,
	}, nil
}

func (f *FileOutput) Write(entry LogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	output, err := formatEntry(entry, f.format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.file, output)
	return err
}

func (f *FileOutput) Close() error {
	return f.file.Close()
}

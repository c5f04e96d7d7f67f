package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	charmlog "github.com/charmbracelet/log/v2"
	"github.com/charmbracelet/recycle/internal/config"
	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
)

const defaultTailLines = 1000

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View recycle logs",
	Long:  `View the logs generated by recycle. This command allows you to see the log output for debugging and monitoring.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := ResolveCwd(cmd)
		if err != nil {
			return err
		}
		follow, _ := cmd.Flags().GetBool("follow")
		tailLines, _ := cmd.Flags().GetInt("tail")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		cfg, err := config.Load(cwd, dataDir, false)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}
		logsFile := cfg.LogFile()
		charmlog.SetLevel(charmlog.DebugLevel)
		charmlog.SetOutput(cmd.OutOrStdout())
		if _, err := os.Stat(logsFile); os.IsNotExist(err) {
			charmlog.Warn("Looks like you are not in a recycle project. No logs found.")
			return nil
		}

		if follow {
			return followLogs(cmd, logsFile, tailLines)
		}
		return showLogs(logsFile, tailLines)
	},
}

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	logsCmd.Flags().IntP("tail", "t", defaultTailLines, "Show only the last N lines")
}

func followLogs(cmd *cobra.Command, logsFile string, tailLines int) error {
	if err := showLogs(logsFile, tailLines); err != nil {
		return err
	}

	t, err := tail.TailFile(logsFile, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Logger:   tail.DiscardingLogger,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
	})
	if err != nil {
		return fmt.Errorf("failed to tail log file: %v", err)
	}
	defer t.Cleanup()

	for {
		select {
		case <-cmd.Context().Done():
			return t.Stop()
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				continue
			}
			printLogLine(line.Text)
		}
	}
}

func showLogs(logsFile string, tailLines int) error {
	f, err := os.Open(logsFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}
	defer f.Close()

	lines, err := lastLines(f, tailLines)
	if err != nil {
		return fmt.Errorf("failed to read log file: %v", err)
	}
	for _, line := range lines {
		printLogLine(line)
	}
	return nil
}

// lastLines returns at most n trailing lines of r, n < 1 meaning all.
func lastLines(r io.Reader, n int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) > n {
			lines = slices.Delete(lines, 0, 1)
		}
	}
	return lines, scanner.Err()
}

// logEntry is one record written by the JSON slog handler.
type logEntry struct {
	Level   charmlog.Level
	Time    time.Time
	Message string
	Fields  []any
}

func parseLogLine(text string) (logEntry, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return logEntry{}, false
	}

	entry := logEntry{Level: charmlog.InfoLevel}
	if lvl, ok := data["level"].(string); ok {
		if parsed, err := charmlog.ParseLevel(lvl); err == nil {
			entry.Level = parsed
		}
	}
	if ts, ok := data["time"].(string); ok {
		entry.Time, _ = time.Parse(time.RFC3339Nano, ts)
	}
	entry.Message, _ = data["msg"].(string)

	keys := make([]string, 0, len(data))
	for k := range data {
		switch k {
		case "level", "time", "msg":
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := data[k]
		if k == "source" {
			if src, ok := v.(map[string]any); ok {
				v = fmt.Sprintf("%v:%v", src["file"], src["line"])
			}
		}
		entry.Fields = append(entry.Fields, k, v)
	}
	return entry, true
}

func printLogLine(text string) {
	entry, ok := parseLogLine(text)
	if !ok {
		fmt.Println(text)
		return
	}
	if !entry.Time.IsZero() {
		entry.Fields = append([]any{"time", entry.Time.Format(time.TimeOnly)}, entry.Fields...)
	}
	charmlog.Log(entry.Level, entry.Message, entry.Fields...)
}

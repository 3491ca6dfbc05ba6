package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/scoreboard/internal/api/response"
)

func newEventsCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "events [code]",
		Short: "Stream live events from a board",
		Long: `Connect to the board's SSE endpoint and print changes as they happen.

The stream opens with the current board, then one board-update per change:
players added or removed, scores, threshold changes, resets and winner
changes. A board-deleted event ends the stream.

Press Ctrl+C to disconnect.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := boardArg(args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return streamEvents(ctx, cmd.OutOrStdout(), code, count)
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many events, counting the initial board (0 streams until interrupted)")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time       `json:"time"`
	ID    string          `json:"id,omitempty"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func streamEvents(ctx context.Context, w io.Writer, code string, count int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(cfg.ServerURL, "/")+boardPath(code, "events"), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No timeout for SSE
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Code != "" {
			errResp.Error.Status = resp.StatusCode
			return &errResp.Error
		}
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	jsonOutput := cfg.Output == "json"
	if !jsonOutput {
		_, _ = fmt.Fprintf(w, "Connected to board %s\n", strings.ToUpper(code))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current SSEEvent
	var dataLines []string
	updates := 0

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "id: "):
			current.ID = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			current.Event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			if current.Event == "" || current.Event == "connected" {
				current, dataLines = SSEEvent{}, nil
				continue
			}
			current.Time = time.Now()
			data := strings.Join(dataLines, "\n")
			printEvent(w, current, data, jsonOutput)

			done := current.Event == "board-deleted"
			current, dataLines = SSEEvent{}, nil
			updates++
			if done || (count > 0 && updates >= count) {
				return nil
			}
		}
	}

	if err := scanner.Err(); err != nil {
		// Context cancellation is expected
		if ctx.Err() != nil {
			if !jsonOutput {
				_, _ = fmt.Fprintln(w, "\nDisconnected")
			}
			return nil
		}
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		_, _ = fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

func printEvent(w io.Writer, evt SSEEvent, data string, jsonOutput bool) {
	if jsonOutput {
		if json.Valid([]byte(data)) {
			evt.Data = json.RawMessage(data)
		} else {
			evt.Data, _ = json.Marshal(data)
		}
		line, _ := json.Marshal(evt)
		_, _ = fmt.Fprintln(w, string(line))
		return
	}

	timestamp := evt.Time.Format("2006-01-02 15:04:05")

	var update response.BoardUpdate
	if err := json.Unmarshal([]byte(data), &update); err != nil {
		_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, evt.Event, strings.ReplaceAll(data, "\n", " "))
		return
	}

	msg := update.Message
	if msg == "" {
		msg = "current board"
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", timestamp, msg)
	if evt.Event != "board-deleted" {
		NewOutput("text", w).printBoard(update.Board)
	}
}

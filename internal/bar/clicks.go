package bar

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// ClickEvent is the subset of an i3bar click event the widget uses
type ClickEvent struct {
	Name     string `json:"name"`
	Instance string `json:"instance"`
	Button   int    `json:"button"`
}

// ClickDecoder extracts a button number from one input line
type ClickDecoder func(line string) (button int, ok bool)

// DecoderFor returns the click decoder matching an output kind
func DecoderFor(kind string) ClickDecoder {
	if kind == OutputI3bar {
		return DecodeI3barClick
	}
	return DecodePlainClick
}

// DecodeI3barClick parses an element of the i3bar click event stream.
// The stream is one endless JSON array, so a leading '[' or ',' is dropped.
func DecodeI3barClick(line string) (int, bool) {
	line = strings.TrimLeft(strings.TrimSpace(line), "[,")
	if line == "" {
		return 0, false
	}

	var ev ClickEvent
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		return 0, false
	}
	if ev.Name != "" && ev.Name != BlockName {
		return 0, false
	}
	return ev.Button, ev.Button > 0
}

// DecodePlainClick parses a bare button number
func DecodePlainClick(line string) (int, bool) {
	button, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || button <= 0 {
		return 0, false
	}
	return button, true
}

// ReadClicks decodes r line by line and returns a channel of buttons,
// closed at EOF
func ReadClicks(ctx context.Context, r io.Reader, decode ClickDecoder, logger *slog.Logger) <-chan int {
	out := make(chan int)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			button, ok := decode(scanner.Text())
			if !ok {
				continue
			}

			select {
			case out <- button:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Warn("click input", slog.String("error", err.Error()))
		}
	}()

	return out
}

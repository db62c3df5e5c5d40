// Package playground provides the demo commands the conch binary registers
// on top of the built-ins.
package playground

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"

	"conch/internal/command"
	"conch/internal/content"
)

// MaxSleep bounds the sleep command.
const MaxSleep = time.Minute

// markdownWrap is the wrap width for rendered markdown entries.
const markdownWrap = 72

// Commands returns the playground commands in registration order.
func Commands() []command.Descriptor {
	return []command.Descriptor{
		{
			Text:        "hello",
			Description: "Say hello",
			Exact:       true,
			Action: func(_ context.Context, call command.Call) command.Result {
				call.Context.Print("Hello World!")
				return command.Done(nil)
			},
		},
		{
			Text:        "echo",
			Description: "Print the rest of the line",
			Action: func(_ context.Context, call command.Call) command.Result {
				call.Context.Print(strings.TrimSpace(strings.TrimPrefix(call.Value, "echo")))
				return command.Done(nil)
			},
		},
		{
			Text:        "md ",
			Description: "Render markdown",
			Action:      renderMarkdown,
		},
		{
			Text:        "sleep",
			Description: "Wait for a duration, e.g. sleep 2s",
			Action:      sleep,
		},
	}
}

func renderMarkdown(_ context.Context, call command.Call) command.Result {
	src := strings.TrimSpace(strings.TrimPrefix(call.Value, "md "))
	return command.Go(func() error {
		out, err := RenderMarkdown(src)
		if err != nil {
			call.Context.Print("md: " + err.Error())
			return nil
		}
		call.Context.Print(out)
		return nil
	})
}

// RenderMarkdown renders src as plain styled text without escape sequences.
func RenderMarkdown(src string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(markdownWrap),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(src)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return trimBlankLines(ansi.Strip(out)), nil
}

func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

func sleep(ctx context.Context, call command.Call) command.Result {
	arg := strings.TrimSpace(strings.TrimPrefix(call.Value, "sleep"))
	if arg == "" {
		arg = "1s"
	}
	d, err := time.ParseDuration(arg)
	if err != nil || d < 0 {
		call.Context.Print(fmt.Sprintf("sleep: invalid duration %q", arg))
		return command.Done(nil)
	}
	if d > MaxSleep {
		d = MaxSleep
	}
	return command.Go(func() error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
		call.Context.Print("slept " + d.String())
		return nil
	})
}

// Fallback handles unknown input: it prints the not-found line and, when a
// registered command is a close fuzzy match for the first word, a hint.
func Fallback(_ context.Context, call command.Call) command.Result {
	call.Context.Print(call.Value + ": command not found")
	if hint := Suggest(call.Value, call.Context.Commands); hint != "" {
		call.Context.Render(content.El("p", content.TextNode("did you mean: "+hint+"?")).Class("text-gray"))
	}
	return command.Done(nil)
}

// Suggest returns the command text that best fuzzy-matches the first word of
// input, or "".
func Suggest(input string, cmds []command.Descriptor) string {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return ""
	}
	texts := make([]string, 0, len(cmds))
	for _, d := range cmds {
		texts = append(texts, strings.TrimSpace(d.Text))
	}
	matches := fuzzy.Find(fields[0], texts)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

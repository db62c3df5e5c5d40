package command

import (
	"context"
	"time"

	"conch/internal/content"
)

const (
	HelpText         = "help"
	ClearHistoryText = "clear history"
	ClearText        = "clear"
	HistoryText      = "history"
)

// Builtins returns the built-in commands in precedence order. "clear history"
// precedes "clear" and both are exact, so each input resets one store only.
func Builtins() []Descriptor {
	return []Descriptor{
		{
			Text:        HelpText,
			Description: "List all available commands",
			Action:      help,
		},
		{
			Text:        ClearHistoryText,
			Description: "Clear the command history",
			Exact:       true,
			Action: func(_ context.Context, call Call) Result {
				call.Context.StackOps.Reset()
				return Done(nil)
			},
		},
		{
			Text:        ClearText,
			Description: "Clear the terminal",
			Exact:       true,
			Action: func(_ context.Context, call Call) Result {
				call.Context.LineOps.Reset()
				return Done(nil)
			},
		},
		{
			Text:        HistoryText,
			Description: "List all commands that have been run",
			Action:      listHistory,
		},
	}
}

func help(_ context.Context, call Call) Result {
	list := content.El("div").Class("flex flex-col justify-start items-start")
	for _, d := range call.Context.Commands {
		list.Children = append(list.Children, content.El("div",
			content.El("p", content.TextNode(d.Text)),
			content.El("p", content.TextNode("- "+d.Description)),
		).Class("flex flex-col"))
	}
	call.Context.Render(list)
	return Done(nil)
}

func listHistory(_ context.Context, call Call) Result {
	list := content.El("div").Class("flex flex-col justify-start items-start")
	for _, r := range call.Context.StackOps.Records() {
		list.Children = append(list.Children, content.El("div",
			content.El("p", content.TextNode(r.Timestamp.UTC().Format(time.RFC3339))),
			content.El("p", content.TextNode(r.Text)),
		).Class("flex gap-8"))
	}
	call.Context.Render(list)
	return Done(nil)
}

package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"conch/internal/content"
	"conch/internal/entry"
	"conch/internal/history"
)

func noop(context.Context, Call) Result { return Done(nil) }

func TestRegistry_Match(t *testing.T) {
	r := NewRegistry(nil, []Descriptor{
		{Text: "open", Exact: true, Action: noop},
		{Text: "op", Action: noop},
		{Text: "echo", Action: noop},
	})
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"open", "open", true},
		{"open file", "", false}, // exact candidate fails; later "op" not tried
		{"op", "op", true},
		{"opx", "op", true},
		{"echo hi", "echo", true},
		{"ech", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		d, ok := r.Match(c.in)
		if ok != c.ok || d.Text != c.want {
			t.Fatalf("Match(%q) = %q,%v want %q,%v", c.in, d.Text, ok, c.want, c.ok)
		}
	}
}

func TestRegistry_OrderAndShadowing(t *testing.T) {
	r := NewRegistry(Builtins(), []Descriptor{
		{Text: "", Action: noop},
		{Text: "helpme", Action: noop},
		{Text: "greet", Action: noop},
	})
	want := []string{"help", "clear history", "clear", "history", "helpme", "greet"}
	got := r.Texts()
	if len(got) != len(want) {
		t.Fatalf("Texts = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Texts[%d] = %q want %q", i, got[i], want[i])
		}
	}
	sh := r.Shadowed()
	if len(sh) != 1 || sh[0].Command.Text != "helpme" || sh[0].By.Text != "help" {
		t.Fatalf("Shadowed = %+v", sh)
	}
	if len(NewRegistry(Builtins(), nil).Shadowed()) != 0 {
		t.Fatalf("builtins must not shadow each other")
	}
}

func TestSuggest(t *testing.T) {
	cands := []string{"help", "history"}
	cases := map[string]string{
		"":     "",
		"he":   "lp",
		"h":    "elp",
		"hi":   "story",
		"help": "",
		"x":    "",
	}
	for in, want := range cases {
		if got := Suggest(cands, in); got != want {
			t.Fatalf("Suggest(%q) = %q want %q", in, got, want)
		}
	}
}

func newContext(r *Registry) (Context, *entry.Service, *history.Service) {
	lines := entry.NewService(nil, "")
	stacks := history.NewService(nil, "")
	return Context{
		Commands: r.Commands(),
		Lines:    lines.Lines(),
		Stacks:   stacks.Records(),
		LineOps:  lines,
		StackOps: stacks,
	}, lines, stacks
}

func TestBuiltins_ClearTargetsOneStore(t *testing.T) {
	r := NewRegistry(Builtins(), nil)
	for _, tc := range []struct {
		in                 string
		wantLines, wantRec int
	}{
		{"clear history", 1, 0},
		{"clear", 0, 1},
	} {
		ctx, lines, stacks := newContext(r)
		lines.Add(entry.Text("x"))
		stacks.Add(history.Record{Text: "x"})
		d, ok := r.Match(tc.in)
		if !ok {
			t.Fatalf("%q did not match", tc.in)
		}
		_ = Wait(context.Background(), d.Action(context.Background(), Call{Value: tc.in, Context: ctx}))
		if lines.Len() != tc.wantLines || stacks.Len() != tc.wantRec {
			t.Fatalf("%q left lines=%d records=%d", tc.in, lines.Len(), stacks.Len())
		}
	}
	if _, ok := r.Match("clear all"); ok {
		t.Fatalf("clear is exact, \"clear all\" must not match")
	}
}

func TestBuiltins_HelpAndHistory(t *testing.T) {
	r := NewRegistry(Builtins(), nil)
	ctx, lines, stacks := newContext(r)

	d, _ := r.Match("help")
	d.Action(context.Background(), Call{Value: "help", Context: ctx})
	got := content.Lines(lines.Lines()[0].Content)
	if len(got) != 8 || got[0] != "help" || got[1] != "- List all available commands" || got[4] != "clear" {
		t.Fatalf("help lines = %q", got)
	}

	stacks.Add(history.Record{Text: "ls", Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)})
	d, _ = r.Match("history")
	d.Action(context.Background(), Call{Value: "history", Context: ctx})
	got = content.Lines(lines.Lines()[1].Content)
	if len(got) != 1 || got[0] != "2024-01-02T03:04:05Z  ls" {
		t.Fatalf("history lines = %q", got)
	}
}

func TestWait(t *testing.T) {
	boom := errors.New("boom")
	if err := Wait(context.Background(), Done(boom)); !errors.Is(err, boom) {
		t.Fatalf("sync error lost: %v", err)
	}
	if err := Wait(context.Background(), nil); err != nil {
		t.Fatalf("nil result: %v", err)
	}
	res := Go(func() error {
		time.Sleep(10 * time.Millisecond)
		return boom
	})
	if !IsAsync(res) {
		t.Fatalf("Go result should be async")
	}
	if err := Wait(context.Background(), res); !errors.Is(err, boom) {
		t.Fatalf("async error lost: %v", err)
	}
	ch := make(chan error)
	close(ch)
	if err := Wait(context.Background(), Await(ch)); err != nil {
		t.Fatalf("closed channel should settle cleanly: %v", err)
	}
}

package console

import (
	"context"

	"conch/internal/command"
	"conch/internal/entry"
	"conch/internal/history"
)

// Submit dispatches the current buffer. The echo line and history record are
// written first, whatever the input. The matched command, the fallback or
// the not-found line follows. An asynchronous action keeps the console busy
// until it settles; only then is the buffer cleared and EventCommitted
// published.
//
// An error returned by the action is passed through unchanged. The console
// is released but the buffer is left as it was and no commit is recorded.
// Panics in actions are not recovered.
func (c *Console) Submit(ctx context.Context, event any) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	raw := c.buf
	c.mu.Unlock()

	settled := false
	defer func() {
		if !settled {
			c.mu.Lock()
			c.busy = false
			c.mu.Unlock()
		}
	}()

	c.lines.Add(entry.Text(c.prefix + " " + raw))
	c.stacks.Add(history.Record{Text: raw})

	res := c.dispatch(ctx, raw, event)
	if command.IsAsync(res) {
		c.log.Debug("waiting for async action", "input", raw)
	}
	if err := command.Wait(ctx, res); err != nil {
		c.log.Debug("action failed", "input", raw, "err", err)
		return err
	}

	c.mu.Lock()
	c.buf = ""
	c.recalling = false
	c.committed = c.now()
	c.busy = false
	at := c.committed
	c.mu.Unlock()
	settled = true

	c.publish(Event{Kind: EventCommitted, At: at})
	return nil
}

func (c *Console) dispatch(ctx context.Context, raw string, event any) command.Result {
	call := command.Call{
		Value: raw,
		Event: event,
		Context: command.Context{
			Commands: c.registry.Commands(),
			Lines:    c.lines.Lines(),
			Stacks:   c.stacks.Records(),
			LineOps:  c.lines,
			StackOps: c.stacks,
		},
	}
	if d, ok := c.registry.Match(raw); ok {
		c.log.Debug("dispatch", "input", raw, "command", d.Text)
		if d.Action == nil {
			return command.Done(nil)
		}
		return d.Action(ctx, call)
	}
	if c.fallback != nil {
		return c.fallback(ctx, call)
	}
	c.lines.Add(entry.Text(raw + ": command not found"))
	return command.Done(nil)
}

package command

import (
	"strings"

	"conch/internal/system"
)

// Shadow records a command that can never be selected because an earlier
// command's text is a prefix of its own.
type Shadow struct {
	Command Descriptor
	By      Descriptor
}

// Registry is an ordered, immutable list of commands. Order is precedence:
// the first command whose text prefixes the input is the only candidate.
type Registry struct {
	cmds     []Descriptor
	shadowed []Shadow
}

// NewRegistry places builtins first and extra after them, each in the given
// order. Commands with empty text are skipped since they would match every
// input. Shadowed commands are kept but reported.
func NewRegistry(builtins, extra []Descriptor) *Registry {
	log := system.Component("command")
	r := &Registry{}
	for _, d := range append(append([]Descriptor{}, builtins...), extra...) {
		if d.Text == "" {
			log.Warn("skipping command with empty text", "description", d.Description)
			continue
		}
		r.cmds = append(r.cmds, d)
	}
	for j, later := range r.cmds {
		for _, earlier := range r.cmds[:j] {
			if strings.HasPrefix(later.Text, earlier.Text) {
				r.shadowed = append(r.shadowed, Shadow{Command: later, By: earlier})
				log.Warn("command is shadowed by an earlier command", "command", later.Text, "by", earlier.Text)
				break
			}
		}
	}
	return r
}

// Match resolves input to a command. The first command in registry order
// whose text prefixes input is chosen; if it is exact and input differs from
// its text, there is no match. Later commands are not considered.
func (r *Registry) Match(input string) (Descriptor, bool) {
	for _, d := range r.cmds {
		if !strings.HasPrefix(input, d.Text) {
			continue
		}
		if d.Exact && input != d.Text {
			return Descriptor{}, false
		}
		return d, true
	}
	return Descriptor{}, false
}

// Commands returns the registered commands in precedence order.
func (r *Registry) Commands() []Descriptor {
	out := make([]Descriptor, len(r.cmds))
	copy(out, r.cmds)
	return out
}

// Texts returns the matcher text of every command in precedence order.
func (r *Registry) Texts() []string {
	out := make([]string, 0, len(r.cmds))
	for _, d := range r.cmds {
		out = append(out, d.Text)
	}
	return out
}

// Shadowed lists commands that can never be selected.
func (r *Registry) Shadowed() []Shadow {
	return r.shadowed
}

// Suggest returns the completion for buf against candidates: the remainder of
// the first candidate that starts with buf. It returns "" when buf is empty,
// nothing starts with buf, or buf already equals that first candidate.
func Suggest(candidates []string, buf string) string {
	if buf == "" {
		return ""
	}
	for _, c := range candidates {
		if strings.HasPrefix(c, buf) {
			return c[len(buf):]
		}
	}
	return ""
}

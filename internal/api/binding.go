package api

import "github.com/eventorbit/eventorbit/internal/editor"

// Binding remembers the backend id of each rule in a schedule set, by
// position. Rules added locally have no id until the backend assigns one.
type Binding struct {
	ids []string
}

// NewBinding returns a binding over ids, one per rule.
func NewBinding(ids ...string) *Binding {
	return &Binding{ids: append([]string(nil), ids...)}
}

// ID returns the id of the rule at i, or "" if it has none.
func (b *Binding) ID(i int) string {
	if b == nil || i < 0 || i >= len(b.ids) {
		return ""
	}
	return b.ids[i]
}

// Len returns the number of rules tracked.
func (b *Binding) Len() int {
	if b == nil {
		return 0
	}
	return len(b.ids)
}

// Follow updates the binding after the editor changed the rule list. An
// inserted rule has no id; a replaced rule keeps its id; a deleted rule's id
// is dropped and later ids shift down with their rules.
func (b *Binding) Follow(c editor.Change) {
	if b == nil {
		return
	}
	switch c.Op {
	case editor.ChangeInsert:
		if c.Index < 0 || c.Index > len(b.ids) {
			return
		}
		b.ids = append(b.ids, "")
		copy(b.ids[c.Index+1:], b.ids[c.Index:])
		b.ids[c.Index] = ""
	case editor.ChangeDelete:
		if c.Index < 0 || c.Index >= len(b.ids) {
			return
		}
		b.ids = append(b.ids[:c.Index], b.ids[c.Index+1:]...)
	}
}

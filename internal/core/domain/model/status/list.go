package status

// Entry is one key/label pair of a List.
type Entry struct {
	Key   Key    `json:"key"`
	Label string `json:"label"`
}

// List is the host's ordered status mapping. It behaves like an ordered
// associative array: setting an existing key replaces its label in place.
// The zero value is an empty list. Methods never mutate the receiver.
type List struct {
	entries []Entry
}

// NewList builds a List from entries in order; later duplicates overwrite earlier ones.
func NewList(entries ...Entry) List {
	var l List
	for _, e := range entries {
		l = l.Set(e.Key, e.Label)
	}
	return l
}

// DefaultList is the host's built-in status list before any filter runs.
func DefaultList() List {
	return NewList(
		Entry{Key: Pending, Label: "Pending payment"},
		Entry{Key: Processing, Label: "Processing"},
		Entry{Key: OnHold, Label: "On hold"},
		Entry{Key: Completed, Label: "Completed"},
		Entry{Key: Cancelled, Label: "Cancelled"},
		Entry{Key: Refunded, Label: "Refunded"},
		Entry{Key: Failed, Label: "Failed"},
	)
}

// Len returns the number of entries.
func (l List) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in order.
func (l List) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Keys returns the keys in display order.
func (l List) Keys() []Key {
	keys := make([]Key, 0, len(l.entries))
	for _, e := range l.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Has reports whether key is listed.
func (l List) Has(key Key) bool {
	return l.indexOf(key) >= 0
}

// Label returns the label listed for key.
func (l List) Label(key Key) (string, bool) {
	if i := l.indexOf(key); i >= 0 {
		return l.entries[i].Label, true
	}
	return "", false
}

// Set returns a copy with key mapped to label, keeping the position of an existing key.
func (l List) Set(key Key, label string) List {
	out := l.Entries()
	if i := l.indexOf(key); i >= 0 {
		out[i].Label = label
		return List{entries: out}
	}
	return List{entries: append(out, Entry{Key: key, Label: label})}
}

// InsertAfter copies every entry in order and sets key/label right after anchor.
//
// If anchor is not in the list the new entry is dropped and the result equals
// the input. Callers relying on the entry being present must check Has.
func (l List) InsertAfter(anchor, key Key, label string) List {
	var out List
	for _, e := range l.entries {
		out = out.Set(e.Key, e.Label)
		if e.Key == anchor {
			out = out.Set(key, label)
		}
	}
	return out
}

func (l List) indexOf(key Key) int {
	for i, e := range l.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

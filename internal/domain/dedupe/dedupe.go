// Package dedupe resolves canonical athlete identity so the same real player
// is never listed twice, even when upstream records disagree on formatting.
package dedupe

// Deduper records canonical keys already emitted by a single computation.
type Deduper interface {
	// SeenAndRecord reports whether key was seen before and records it if not.
	SeenAndRecord(key string) bool

	Size() int
}

// inMemoryDeduper is a plain set. Instances are created per call, so no
// locking is required.
type inMemoryDeduper struct {
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an empty Deduper, optionally pre-seeded with keys.
func NewInMemoryDeduper(seed ...string) Deduper {
	d := &inMemoryDeduper{seen: make(map[string]struct{}, len(seed))}
	for _, k := range seed {
		d.seen[k] = struct{}{}
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(key string) bool {
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int {
	return len(d.seen)
}

package document

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"countdown-cli/internal/model"
)

// Add appends ev and returns its id.
func (d *Document) Add(ev model.Event) ID {
	id := d.newID()
	d.entries = append(d.entries, Entry{ID: id, Event: ev})
	return id
}

// Replace overwrites the event at index i. The list length never changes.
func (d *Document) Replace(i int, ev model.Event) bool {
	if !d.inRange(i) {
		d.log.Debug("replace: index out of range", "index", i, "len", len(d.entries))
		return false
	}
	d.entries[i].Event = ev
	return true
}

// Duplicate appends a copy of every selected event. Selected indices are visited from the
// highest down, so with [A B C] and {0, 2} the result is [A B C C' A'].
// Out-of-range indices are skipped. It returns the ids of the new copies.
func (d *Document) Duplicate(sel mapset.Set[int]) []ID {
	var out []ID
	for _, i := range descending(sel) {
		if !d.inRange(i) {
			d.log.Debug("duplicate: index out of range", "index", i, "len", len(d.entries))
			continue
		}
		out = append(out, d.Add(d.entries[i].Event.Clone()))
	}
	return out
}

// DuplicateIDs is Duplicate keyed by id.
func (d *Document) DuplicateIDs(sel mapset.Set[ID]) []ID {
	return d.Duplicate(d.indices(sel))
}

// Delete removes every selected event and returns how many were removed.
func (d *Document) Delete(sel mapset.Set[int]) int {
	if sel == nil || sel.Cardinality() == 0 {
		return 0
	}
	keep := d.entries[:0]
	removed := 0
	for i, e := range d.entries {
		if sel.Contains(i) {
			removed++
			continue
		}
		keep = append(keep, e)
	}
	clear(d.entries[len(keep):])
	d.entries = keep
	if skipped := sel.Cardinality() - removed; skipped > 0 {
		d.log.Debug("delete: indices out of range", "skipped", skipped, "len", len(d.entries)+removed)
	}
	return removed
}

// DeleteIDs is Delete keyed by id.
func (d *Document) DeleteIDs(sel mapset.Set[ID]) int {
	return d.Delete(d.indices(sel))
}

// Move removes the event at from and reinserts it at to (drag and drop). Both indices must
// address existing events; anything else is a no-op.
func (d *Document) Move(from, to int) bool {
	if !d.inRange(from) || !d.inRange(to) {
		d.log.Debug("move: index out of range", "from", from, "to", to, "len", len(d.entries))
		return false
	}
	if from == to {
		return false
	}
	e := d.entries[from]
	d.entries = slices.Delete(d.entries, from, from+1)
	d.entries = slices.Insert(d.entries, to, e)
	return true
}

// MoveID moves the event with id to position to.
func (d *Document) MoveID(id ID, to int) bool {
	return d.Move(d.IndexOf(id), to)
}

// MoveUp swaps the event at i with the one above it.
func (d *Document) MoveUp(i int) bool {
	return d.Move(i, i-1)
}

// MoveDown swaps the event at i with the one below it.
func (d *Document) MoveDown(i int) bool {
	return d.Move(i, i+1)
}

func (d *Document) indices(sel mapset.Set[ID]) mapset.Set[int] {
	out := mapset.NewThreadUnsafeSet[int]()
	if sel == nil {
		return out
	}
	for i, e := range d.entries {
		if sel.Contains(e.ID) {
			out.Add(i)
		}
	}
	return out
}

func descending(sel mapset.Set[int]) []int {
	if sel == nil {
		return nil
	}
	out := sel.ToSlice()
	slices.Sort(out)
	slices.Reverse(out)
	return out
}

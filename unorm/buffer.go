package unorm

import (
	"sort"
	"unicode/utf8"

	"github.com/boxesandglue/unorm/internal/codepoint"
	"github.com/boxesandglue/unorm/internal/format"
	"github.com/boxesandglue/unorm/internal/hangul"
)

// appendRune is the one place the engine turns a scalar back into bytes,
// so every emission path (fast path, compose, Hangul) goes through the
// same encoding step.
func appendRune(out []byte, r rune) []byte {
	return utf8.AppendRune(out, r)
}

// composeBuffer holds the run of combining marks fed since the currently
// open starter, before they are sorted and composed. It exists
// separately from composer mostly so the CCC-stable sort has a named
// place to live.
type composeBuffer struct {
	items []codepoint.Codepoint
}

func (b *composeBuffer) reset() { b.items = b.items[:0] }

// flush writes the buffered marks to out in canonical combining-class
// order and clears the buffer. A stable sort is required: composition
// already resolved every mark that could combine with the starter, so
// what is left must keep its relative order within an equal combining
// class (spec.md §4.2, "Compose buffer flush").
func (b *composeBuffer) flush(out []byte) []byte {
	if len(b.items) == 0 {
		return out
	}

	sort.SliceStable(b.items, func(i, j int) bool { return b.items[i].CCC < b.items[j].CCC })

	for _, item := range b.items {
		out = appendRune(out, item.Code)
	}

	b.reset()

	return out
}

// combine looks up whether the starter described by active composes with
// next, under the flat compositions array both the forward and the
// combines-backward view share. It returns the composed scalar and the
// Combining word to use if that result itself needs to combine further —
// the chain reference internal/pairs.Pack patches into bits[48:64) of
// every entry.
//
// Grounded on _examples/original_source/composing/src/composition/mod.rs's
// combine function and the entry layout documented in
// _examples/original_source/prepare/src/tables/compositions.rs.
func combine(active format.Combining, next rune, compositions []uint64) (result rune, chained format.Combining, ok bool) {
	if active.IsNone() {
		return 0, 0, false
	}

	start := int(active.Index())
	end := start + int(active.Count())

	if end > len(compositions) {
		end = len(compositions)
	}

	for i := start; i < end; i++ {
		entry := compositions[i]

		second := rune(entry & 0x3FFFF)
		if second != next {
			continue
		}

		result = rune((entry >> 18) & 0x3FFFF)
		chained = format.Combining(entry >> 48)

		return result, chained, true
	}

	return 0, 0, false
}

// composer drives one run of an open starter plus the combining marks
// that follow it: every mark waits in the reorder buffer until the run
// is resolved, then either folds into the starter (rewriting the bytes
// already written for it) or, finding no composition or blocked by an
// earlier mark of the same combining class, is written after the
// starter in canonical order.
//
// Grounded on combine_and_write / combine_backwards in the same file.
type composer struct {
	out          []byte
	compositions []uint64

	starterAt  int
	active     format.Combining
	hasStarter bool

	// blocked is true once resolveBuffer has left at least one mark
	// trailing the open starter uncomposed: a following
	// backward-combining codepoint then has something between it and
	// the starter and must not reach past it.
	blocked bool

	buf composeBuffer
}

// openStarter flushes any pending run and starts a new one at r.
func (c *composer) openStarter(r rune, combining format.Combining) {
	c.flush()

	c.starterAt = len(c.out)
	c.out = appendRune(c.out, r)
	c.active = combining
	c.hasStarter = true
	c.blocked = false
}

// feed offers a combining-class item to the currently open starter. With
// no open starter (a bare combining mark at the very start of the
// string, or following a codepoint that never opened a run) it is
// written through unchanged.
//
// feed never combines: every item of a run is collected here and the
// whole run is sorted and composed together once it is known, at
// flush. Combining eagerly in arrival order would let an
// out-of-canonical-order mark shadow one with a lower combining class
// that still had a shot at the original starter (spec.md §4.1).
func (c *composer) feed(item codepoint.Codepoint) {
	if !c.hasStarter {
		c.out = appendRune(c.out, item.Code)
		return
	}

	c.buf.items = append(c.buf.items, item)
}

// flush resolves the run buffered since the last openStarter: the
// marks are stable-sorted by combining class, then folded into the
// starter left to right, and closes the current run.
//
// Grounded on combine_and_write in
// _examples/original_source/composing/src/composition/mod.rs, which
// sorts the whole pending run before attempting a single combination.
func (c *composer) flush() {
	c.resolveBuffer()
	c.hasStarter = false
	c.active = format.NoCombining
}

// resolveBuffer sorts the pending marks into canonical combining-class
// order and, if the open starter has any composition data at all,
// folds as many of them into it as the blocked rule allows: a mark may
// not combine once an earlier mark of the same combining class has
// already been left behind. What never combines is appended after the
// (possibly rewritten) starter, in its sorted order.
func (c *composer) resolveBuffer() {
	items := c.buf.items
	if len(items) == 0 {
		return
	}

	// Once a run already has something trailing the starter, nothing
	// newly fed can reach back past it — just sort and append.
	if c.active.IsNone() || c.blocked {
		c.out = c.buf.flush(c.out)
		c.blocked = true

		return
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].CCC < items[j].CCC })

	var tail []rune

	recentSkipped := uint8(0)

	for _, item := range items {
		if item.CCC != 0 && item.CCC == recentSkipped {
			tail = append(tail, item.Code)
			continue
		}

		if result, chained, ok := combine(c.active, item.Code, c.compositions); ok {
			c.active = chained

			c.out = c.out[:c.starterAt]
			c.out = appendRune(c.out, result)

			continue
		}

		tail = append(tail, item.Code)

		if item.CCC != 0 {
			recentSkipped = item.CCC
		}
	}

	for _, r := range tail {
		c.out = appendRune(c.out, r)
	}

	if len(tail) > 0 {
		c.blocked = true
	}

	c.buf.reset()
}

// combineBackward handles a generic (non-Hangul) CombinesBackwards
// codepoint: it tries to fold cur into the scalar currently standing as
// the open starter, using cur's own backward Combining word (which
// indexes compositions rows grouped by cur rather than by the preceding
// scalar). Any mark already resolved between the starter and here
// blocks the combination, the same as any other intervening character
// would.
func (c *composer) combineBackward(cur rune, backward format.Combining) {
	c.resolveBuffer()

	if !c.hasStarter || c.blocked {
		c.openStarter(cur, format.NoCombining)
		return
	}

	prev, _ := utf8.DecodeRune(c.out[c.starterAt:])

	if result, chained, ok := combine(backward, prev, c.compositions); ok {
		c.out = c.out[:c.starterAt]
		c.out = appendRune(c.out, result)
		c.active = chained

		return
	}

	c.openStarter(cur, format.NoCombining)
}

// combineHangulBackward handles a Hangul V or T jamo: composition here is
// pure arithmetic (internal/hangul), never the compositions table, since
// the Hangul syllable block is too dense and regular to need one.
//
// Grounded on
// _examples/original_source/composing/src/composition/hangul.rs's
// combine_and_write_hangul_vt, which pops the same previously emitted
// scalar off the output buffer rather than consulting any table.
func (c *composer) combineHangulBackward(jamo rune) {
	c.resolveBuffer()

	if !c.hasStarter || c.blocked {
		c.openStarter(jamo, format.NoCombining)
		return
	}

	prev, _ := utf8.DecodeRune(c.out[c.starterAt:])

	if result, ok := hangul.CombineBackward(prev, jamo); ok {
		c.out = c.out[:c.starterAt]
		c.out = appendRune(c.out, result)
		c.active = format.NoCombining

		return
	}

	c.openStarter(jamo, format.NoCombining)
}

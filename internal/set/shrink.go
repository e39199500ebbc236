package set

import (
	"fmt"
	"log/slog"
)

// ShrinkAll moves every walk box of the scene inward by margin. A second
// call replaces the first margin instead of compounding it; a margin <= 0
// is the same as UnshrinkAll.
func (s *Set) ShrinkAll(margin float64) {
	if s.tx != nil {
		s.misuse("shrink while a shrink transaction is open", "margin", margin)
	}
	if margin <= 0 {
		s.unshrinkAll()
		return
	}
	s.shrinkAll(margin)
}

// UnshrinkAll restores the original geometry of every sector.
func (s *Set) UnshrinkAll() {
	if s.tx != nil {
		s.misuse("unshrink while a shrink transaction is open")
	}
	s.unshrinkAll()
}

// ShrinkMargin returns the active scene-wide shrink margin, and whether a
// shrink is applied at all.
func (s *Set) ShrinkMargin() (float64, bool) {
	return s.shrinkMargin, s.shrunk
}

func (s *Set) shrinkAll(margin float64) {
	for _, sec := range s.sectors {
		sec.Shrink(margin)
	}
	s.shrinkMargin = margin
	s.shrunk = true
}

func (s *Set) unshrinkAll() {
	for _, sec := range s.sectors {
		sec.Unshrink()
	}
	s.shrinkMargin = 0
	s.shrunk = false
}

// ShrinkTx is an open shrink transaction. Close reverts the scene to the
// exact shrink state it had before BeginShrink.
type ShrinkTx struct {
	set        *Set
	prevMargin float64
	prevShrunk bool
	closed     bool
}

// BeginShrink shrinks all walk boxes by margin until the returned
// transaction is closed. Transactions do not nest: while one is open,
// BeginShrink returns ErrShrinkActive (or panics in strict mode).
func (s *Set) BeginShrink(margin float64) (*ShrinkTx, error) {
	if s.tx != nil {
		s.misuse("nested shrink transaction", "margin", margin, "active", s.shrinkMargin)
		return nil, fmt.Errorf("begin shrink %v on set %q: %w", margin, s.name, ErrShrinkActive)
	}

	tx := &ShrinkTx{set: s, prevMargin: s.shrinkMargin, prevShrunk: s.shrunk}
	if margin <= 0 {
		s.unshrinkAll()
	} else {
		s.shrinkAll(margin)
	}
	s.tx = tx
	return tx, nil
}

// Close ends the transaction and restores the previous shrink state.
// Closing twice is a no-op.
func (tx *ShrinkTx) Close() {
	if tx == nil || tx.closed {
		return
	}
	tx.closed = true
	s := tx.set
	s.tx = nil

	if tx.prevShrunk {
		s.shrinkAll(tx.prevMargin)
	} else {
		s.unshrinkAll()
	}
}

// WithShrink runs fn with all walk boxes shrunk by margin and reverts the
// shrink on every exit path, including a panic in fn.
func (s *Set) WithShrink(margin float64, fn func() error) error {
	tx, err := s.BeginShrink(margin)
	if err != nil {
		return err
	}
	defer tx.Close()

	return fn()
}

// misuse reports a caller programming error: fatal in strict mode, a
// warning otherwise so the game keeps running.
func (s *Set) misuse(msg string, args ...any) {
	if s.strict {
		panic(fmt.Sprintf("set %q: %s", s.name, msg))
	}
	slog.Warn(msg, append([]any{"set", s.name}, args...)...)
}

package set

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/grimset/internal/sector"
)

// State is the save-game snapshot of a Set.
type State struct {
	Name         string
	Fingerprint  []byte
	ShrinkMargin float64
	Sectors      []sector.State
}

// Snapshot captures the persistent state of the scene: every sector's id
// and visibility plus the scene-wide shrink margin.
func (s *Set) Snapshot() State {
	st := State{
		Name:        s.name,
		Fingerprint: s.Fingerprint(),
		Sectors:     make([]sector.State, 0, len(s.sectors)),
	}
	if margin, ok := s.ShrinkMargin(); ok {
		st.ShrinkMargin = margin
	}
	for _, sec := range s.sectors {
		st.Sectors = append(st.Sectors, sec.State())
	}
	return st
}

// Restore applies a snapshot taken by Snapshot. A snapshot of different
// geometry is refused with ErrFingerprintMismatch (an empty fingerprint
// skips the check). Sector states with unknown ids are logged and skipped.
func (s *Set) Restore(st State) error {
	if len(st.Fingerprint) > 0 && !bytes.Equal(st.Fingerprint, s.Fingerprint()) {
		return fmt.Errorf("restore set %q from %q: %w", s.name, st.Name, ErrFingerprintMismatch)
	}
	if s.tx != nil {
		s.misuse("restore while a shrink transaction is open")
	}

	for _, ss := range st.Sectors {
		sec := s.FindSectorByID(ss.ID)
		if sec == nil {
			slog.Warn("restore: unknown sector id", "set", s.name, "id", ss.ID)
			continue
		}
		sec.ApplyState(ss)
	}

	if st.ShrinkMargin > 0 {
		s.shrinkAll(st.ShrinkMargin)
	} else {
		s.unshrinkAll()
	}
	return nil
}

// Fingerprint returns a BLAKE2b-256 digest of the scene geometry: sector
// ids, types and original vertices, in load order. Visibility and shrink
// state do not affect it.
func (s *Set) Fingerprint() []byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Без ключа New256 не возвращает ошибку.
		panic(err)
	}

	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	writeUint(uint64(len(s.sectors)))
	for _, sec := range s.sectors {
		writeUint(uint64(int64(sec.ID())))
		writeUint(uint64(sec.Type()))
		vs := sec.OrigVertices()
		writeUint(uint64(len(vs)))
		for _, v := range vs {
			writeUint(math.Float64bits(v.X))
			writeUint(math.Float64bits(v.Y))
			writeUint(math.Float64bits(v.Z))
		}
	}
	return h.Sum(nil)
}

package script

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/grimset/internal/nav"
	"github.com/udisondev/grimset/internal/set"
)

var (
	// ErrUnknownOpcode is returned by Call for names not in the opcode table.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrBadArgument is returned when a script passes an argument of the
	// wrong kind. Lookup misses are never errors.
	ErrBadArgument = errors.New("bad argument")
)

// Opcode is the Go side of a script function. It returns the values the
// script receives; an empty result means nil.
type Opcode func(m *Machine, args []Value) ([]Value, error)

// Machine dispatches script calls into the sector queries of the current
// scene. Like the scene itself, it is used from the simulation tick only.
type Machine struct {
	nav     *nav.Navigator
	opcodes map[string]Opcode
}

// NewMachine creates a Machine with the sector opcodes registered and no
// scene loaded.
func NewMachine() *Machine {
	m := &Machine{
		nav:     nav.New(nil),
		opcodes: make(map[string]Opcode, len(sectorOpcodes)),
	}
	for name, op := range sectorOpcodes {
		m.opcodes[name] = op
	}
	return m
}

// SetScene switches the Machine to scene s. A nil s unloads the scene;
// queries then report "not found".
func (m *Machine) SetScene(s *set.Set) {
	m.nav = nav.New(s)
	if s == nil {
		slog.Debug("script scene unloaded")
		return
	}
	slog.Debug("script scene set", "set", s.Name(), "sectors", s.Len())
}

// Navigator returns the navigator of the current scene.
func (m *Machine) Navigator() *nav.Navigator { return m.nav }

// Register adds or replaces an opcode.
func (m *Machine) Register(name string, op Opcode) {
	m.opcodes[name] = op
}

// Opcodes returns the registered opcode names, sorted.
func (m *Machine) Opcodes() []string {
	names := make([]string, 0, len(m.opcodes))
	for name := range m.opcodes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Call runs opcode name with args.
func (m *Machine) Call(name string, args ...Value) ([]Value, error) {
	op, ok := m.opcodes[name]
	if !ok {
		return nil, fmt.Errorf("call %s: %w", name, ErrUnknownOpcode)
	}

	result, err := op(m, args)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	return result, nil
}

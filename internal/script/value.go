// Package script is the boundary between the legacy script VM and the
// sector queries. Script values are dynamically typed; this package
// resolves them into sector references, type masks and points once, so
// nothing below it deals with script typing.
package script

import (
	"fmt"
	"strconv"

	"github.com/udisondev/grimset/internal/nav"
)

// Kind is the dynamic type of a script Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindNumber
	KindString
	KindActor
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindActor:
		return "actor"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one script argument or result.
type Value struct {
	kind  Kind
	num   float64
	str   string
	actor nav.Actor
}

// Nil returns the nil value.
func Nil() Value { return Value{} }

// Number wraps a script number.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String wraps a script string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// ActorValue wraps an actor handle. A nil actor is the nil value.
func ActorValue(a nav.Actor) Value {
	if a == nil {
		return Nil()
	}
	return Value{kind: KindActor, actor: a}
}

func (v Value) Kind() Kind  { return v.kind }
func (v Value) IsNil() bool { return v.kind == KindNil }

// Number returns the numeric value and whether v is a number.
func (v Value) Number() (float64, bool) { return v.num, v.kind == KindNumber }

// Str returns the string value and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Actor returns the actor and whether v is an actor.
func (v Value) Actor() (nav.Actor, bool) { return v.actor, v.kind == KindActor }

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindActor:
		return fmt.Sprintf("actor(%v)", v.actor.Pos())
	default:
		return "nil"
	}
}

// arg returns args[i], or nil when the script passed fewer arguments.
func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Nil()
}

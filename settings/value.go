package settings

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

/*
Kind is the type tag of a recorded setting value
*/
type Kind int

const (
	InvalidKind Kind = iota
	BoolKind
	NumberKind
	TextKind
	ListKind
)

var kindNames = [...]string{"invalid", "bool", "number", "text", "list"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

/*
Value is a recorded setting value: a boolean, a number, a text or a list of values
*/
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	l    []Value
}

func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }
func Number(n float64) Value { return Value{kind: NumberKind, n: n} }
func Text(s string) Value { return Value{kind: TextKind, s: s} }
func List(l ...Value) Value { return Value{kind: ListKind, l: l} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) Valid() bool { return v.kind != InvalidKind }
func (v Value) AsBool() bool { return v.b }
func (v Value) AsText() string { return v.s }
func (v Value) AsList() []Value { return v.l }

/*
AsNumber returns the numeric value, booleans are 0 or 1
*/
func (v Value) AsNumber() float64 {
	if v.kind == BoolKind {
		if v.b {
			return 1
		}
		return 0
	}
	return v.n
}

func (v Value) String() string {
	switch v.kind {
	case BoolKind:
		return strconv.FormatBool(v.b)
	case NumberKind:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case TextKind:
		return v.s
	case ListKind:
		s := make([]string, len(v.l))
		for i, x := range v.l {
			s[i] = x.String()
		}
		return "[" + strings.Join(s, ", ") + "]"
	}
	return "<invalid>"
}

/*
Of converts a decoded JSON value to a setting value. Nil converts to an invalid value
*/
func Of(x interface{}) (Value, error) {
	switch q := x.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return Bool(q), nil
	case float64:
		return Number(q), nil
	case float32:
		return Number(float64(q)), nil
	case int:
		return Number(float64(q)), nil
	case int64:
		return Number(float64(q)), nil
	case string:
		return Text(q), nil
	case []interface{}:
		l := make([]Value, 0, len(q))
		for _, e := range q {
			v, err := Of(e)
			if err != nil {
				return Value{}, err
			}
			l = append(l, v)
		}
		return List(l...), nil
	}
	return Value{}, xerrors.Errorf("unsupported setting value type %T", x)
}

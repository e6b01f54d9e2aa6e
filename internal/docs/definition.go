package docs

import (
	"strings"

	"github.com/rhaitools/rhaidocs/internal/metadata"
)

// Definition is the synthesized display form of one function overload.
// The variant set is closed: plain functions, binary operators, property
// getters and setters, and index accessors. Classification derives purely
// from the reserved name prefixes and the fixed operator symbol set, never
// from inference.
type Definition interface {
	// Kind returns the display keyword: "fn", "op", "get", "set",
	// "index get" or "index set".
	Kind() string
	// GroupName returns the name overloads are grouped under.
	GroupName() string
	// String renders the pseudo-signature, e.g. `fn add(a: int, b: int) -> int`.
	String() string

	defNode()
}

// Arg is one rendered parameter slot. Unresolvable slots carry the
// placeholder name "_" and type "?".
type Arg struct {
	Name string
	Type string
}

// FunctionDef is a plain named function.
type FunctionDef struct {
	Name   string
	Args   []Arg
	Return string
}

// OperatorDef is a binary operator such as == or in.
type OperatorDef struct {
	Symbol string
	LHS    string
	RHS    string
	Return string
}

// GetterDef is a property getter, registered under a get$ prefixed name.
type GetterDef struct {
	Target string
	Field  string
	Return string
}

// SetterDef is a property setter, registered under a set$ prefixed name.
type SetterDef struct {
	Target string
	Field  string
	Value  string
}

// IndexGetDef is an index accessor, registered under an index$get$ name.
type IndexGetDef struct {
	Target string
	Index  string
	Return string
}

// IndexSetDef is an index mutator, registered under an index$set$ name.
type IndexSetDef struct {
	Target string
	Index  string
	Value  string
}

func (*FunctionDef) defNode() {}
func (*OperatorDef) defNode() {}
func (*GetterDef) defNode()   {}
func (*SetterDef) defNode()   {}
func (*IndexGetDef) defNode() {}
func (*IndexSetDef) defNode() {}

func (*FunctionDef) Kind() string { return "fn" }
func (*OperatorDef) Kind() string { return "op" }
func (*GetterDef) Kind() string   { return "get" }
func (*SetterDef) Kind() string   { return "set" }
func (*IndexGetDef) Kind() string { return "index get" }
func (*IndexSetDef) Kind() string { return "index set" }

func (d *FunctionDef) GroupName() string { return d.Name }
func (d *OperatorDef) GroupName() string { return d.Symbol }
func (d *GetterDef) GroupName() string   { return d.Field }
func (d *SetterDef) GroupName() string   { return d.Field }
func (*IndexGetDef) GroupName() string   { return "index_get" }
func (*IndexSetDef) GroupName() string   { return "index_set" }

func (d *FunctionDef) String() string {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(d.Name)
	b.WriteByte('(')
	for i, arg := range d.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.Name)
		b.WriteString(": ")
		b.WriteString(arg.Type)
	}
	b.WriteByte(')')
	writeReturn(&b, d.Return)
	return b.String()
}

func (d *OperatorDef) String() string {
	var b strings.Builder
	b.WriteString("op ")
	b.WriteString(d.LHS)
	b.WriteByte(' ')
	b.WriteString(d.Symbol)
	b.WriteByte(' ')
	b.WriteString(d.RHS)
	writeReturn(&b, d.Return)
	return b.String()
}

func (d *GetterDef) String() string {
	var b strings.Builder
	b.WriteString("get ")
	b.WriteString(d.Target)
	b.WriteByte('.')
	b.WriteString(d.Field)
	writeReturn(&b, d.Return)
	return b.String()
}

func (d *SetterDef) String() string {
	return "set " + d.Target + "." + d.Field + " = " + d.Value
}

func (d *IndexGetDef) String() string {
	var b strings.Builder
	b.WriteString("index get ")
	b.WriteString(d.Target)
	b.WriteByte('[')
	b.WriteString(d.Index)
	b.WriteByte(']')
	writeReturn(&b, d.Return)
	return b.String()
}

func (d *IndexSetDef) String() string {
	return "index set " + d.Target + "[" + d.Index + "] = " + d.Value
}

func writeReturn(b *strings.Builder, ret string) {
	if ret == "" {
		return
	}
	b.WriteString(" -> ")
	b.WriteString(ret)
}

// operators are the function names the engine reserves for binary
// comparison and membership operators.
var operators = map[string]bool{
	"==": true,
	"!=": true,
	">":  true,
	">=": true,
	"<":  true,
	"<=": true,
	"in": true,
}

// Synthesize classifies a function record and derives its display
// definition. Missing parameter descriptors degrade to `_: ?` slots, they
// never truncate the declared arity.
func Synthesize(fn *metadata.Function) Definition {
	switch {
	case operators[fn.Name]:
		lhs, rhs := slot(fn, 0), slot(fn, 1)
		return &OperatorDef{Symbol: fn.Name, LHS: lhs.Type, RHS: rhs.Type, Return: returnType(fn)}
	case strings.HasPrefix(fn.Name, "index$get$"):
		target, index := slot(fn, 0), slot(fn, 1)
		return &IndexGetDef{Target: target.Type, Index: index.Type, Return: returnType(fn)}
	case strings.HasPrefix(fn.Name, "index$set$"):
		target, index, value := slot(fn, 0), slot(fn, 1), slot(fn, 2)
		return &IndexSetDef{Target: target.Type, Index: index.Type, Value: value.Type}
	case strings.HasPrefix(fn.Name, "get$"):
		target := slot(fn, 0)
		return &GetterDef{Target: target.Type, Field: strings.TrimPrefix(fn.Name, "get$"), Return: returnType(fn)}
	case strings.HasPrefix(fn.Name, "set$"):
		target, value := slot(fn, 0), slot(fn, 1)
		return &SetterDef{Target: target.Type, Field: strings.TrimPrefix(fn.Name, "set$"), Value: value.Type}
	default:
		args := make([]Arg, fn.NumParams)
		for i := range args {
			args[i] = slot(fn, i)
		}
		return &FunctionDef{Name: fn.Name, Args: args, Return: returnType(fn)}
	}
}

// slot resolves the display name and type of one parameter position.
func slot(fn *metadata.Function, i int) Arg {
	arg := Arg{Name: "_", Type: "?"}
	if i >= len(fn.Params) {
		return arg
	}
	if name := fn.Params[i].Name; name != nil {
		arg.Name = *name
	}
	if ty := fn.Params[i].Type; ty != nil {
		arg.Type = displayType(*ty)
	}
	return arg
}

// returnType resolves the display form of the return type. Unit and absent
// returns yield the empty string and are omitted from signatures.
func returnType(fn *metadata.Function) string {
	if fn.ReturnType == nil || *fn.ReturnType == "()" {
		return ""
	}
	return displayType(*fn.ReturnType)
}

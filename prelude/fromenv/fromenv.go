// Package fromenv builds a *prelude.Prelude by walking a host's
// environment value with reflection, the same struct-or-map convention
// conf.Env used to build an expr Nature descriptor. Here the walk
// produces prelude.Function entries instead: this pass only needs a
// name, an arity, a per-argument lifetime tag and a return type name,
// not a full structural type lattice, so Nature's Type/Fields/ArrayOf
// graph has no counterpart here.
package fromenv

import (
	"fmt"
	"reflect"

	"github.com/exprtools/borrowcheck/internal/deref"
	"github.com/exprtools/borrowcheck/ltype"
	"github.com/exprtools/borrowcheck/prelude"
)

// Build walks env — nil, a struct, or a map, exactly the shapes
// conf.Env recognized — and registers one prelude.Function per exported
// method or func-valued field/entry. lifetimes overrides the default
// all-ltype.Default tag vector for any function whose arguments need a
// declared relationship (e.g. an intrinsic whose return aliases its
// first argument, tagged ltype.ReturnTag). Mutability is not a tag; it
// is carried by the decorated name, such as "push(mut,_)".
func Build(env any, lifetimes map[string][]ltype.Tag) *prelude.Prelude {
	if env == nil {
		return prelude.New()
	}

	v := deref.Value(reflect.ValueOf(env))

	var fns []prelude.Function
	switch v.Kind() {
	case reflect.Struct:
		fns = append(fns, methodsOf(v, lifetimes)...)
		fns = append(fns, fieldsOf(v, lifetimes)...)
	case reflect.Map:
		fns = append(fns, entriesOf(v, lifetimes)...)
	default:
		panic(fmt.Sprintf("fromenv: unsupported env kind %s", v.Kind()))
	}

	return prelude.New(fns...)
}

func methodsOf(v reflect.Value, lifetimes map[string][]ltype.Tag) []prelude.Function {
	t := v.Type()
	fns := make([]prelude.Function, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if m.PkgPath != "" {
			continue
		}
		fns = append(fns, describe(m.Name, m.Func.Type(), 1, lifetimes))
	}
	return fns
}

func fieldsOf(v reflect.Value, lifetimes map[string][]ltype.Tag) []prelude.Function {
	t := v.Type()
	var fns []prelude.Function
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Type.Kind() != reflect.Func {
			continue
		}
		fns = append(fns, describe(f.Name, f.Type, 0, lifetimes))
	}
	return fns
}

func entriesOf(v reflect.Value, lifetimes map[string][]ltype.Tag) []prelude.Function {
	var fns []prelude.Function
	for _, key := range v.MapKeys() {
		elem := v.MapIndex(key)
		if !elem.IsValid() || !elem.CanInterface() {
			continue
		}
		face := elem.Interface()
		if face == nil {
			continue
		}
		ft := reflect.TypeOf(face)
		if ft.Kind() != reflect.Func {
			continue
		}
		fns = append(fns, describe(fmt.Sprint(key.Interface()), ft, 0, lifetimes))
	}
	return fns
}

// describe builds a prelude.Function from a reflect.Type, skipping the
// first skip parameters (1 for a bound method's receiver, 0 otherwise).
func describe(name string, ft reflect.Type, skip int, lifetimes map[string][]ltype.Tag) prelude.Function {
	params := make([]string, 0, ft.NumIn()-skip)
	for i := skip; i < ft.NumIn(); i++ {
		params = append(params, deref.Type(ft.In(i)).String())
	}

	ret := "void"
	if ft.NumOut() > 0 {
		ret = deref.Type(ft.Out(0)).String()
	}

	lts, ok := lifetimes[name]
	if !ok {
		lts = make([]ltype.Tag, len(params))
		for i := range lts {
			lts[i] = ltype.Default
		}
	}

	return prelude.Function{
		Name:      name,
		Lts:       lts,
		Signature: prelude.Signature{Params: params, Return: ret},
	}
}

/*
Package hcltype builds [typex.Expr] values from HCL type constraint syntax, such as "list(string)" or "map(object({ name = string }))".

This allows signatures to be described with the same type language used in HCL configuration.
Type constraints are parsed with [typeexpr.TypeConstraint], and the resulting [cty.Type] is translated with [FromType].
*/
package hcltype

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/saylorsolutions/forcetypes/typex"
	"github.com/zclconf/go-cty/cty"
)

var (
	ErrUnsupportedType = errors.New("unsupported type constraint")
)

// Number is the class of any Go integer or floating point value, which corresponds to [cty.Number].
var Number = typex.NewClass("number", func(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
})

// Set is the origin class for [cty.Set] constraints.
// Go has no set type, so both slices and maps (with keys as elements) are accepted.
var Set = typex.NewClass("set", func(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
})

// Parse parses an HCL type constraint and translates it to a [typex.Expr].
func Parse(src string) (typex.Expr, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "type", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse type constraint '%s': %w", src, diags)
	}
	ty, diags := typeexpr.TypeConstraint(expr)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid type constraint '%s': %w", src, diags)
	}
	return FromType(ty)
}

// FromType translates a [cty.Type] to a [typex.Expr].
//
// Object types have no direct equivalent, so they're translated to a mapping of string keys to a union of the attribute types.
// Capsule types can't be translated and return [ErrUnsupportedType].
func FromType(ty cty.Type) (typex.Expr, error) {
	switch {
	case ty.Equals(cty.DynamicPseudoType):
		return typex.Any, nil
	case ty.Equals(cty.String):
		return typex.String, nil
	case ty.Equals(cty.Number):
		return Number, nil
	case ty.Equals(cty.Bool):
		return typex.Bool, nil
	case ty.IsListType():
		elem, err := FromType(ty.ElementType())
		if err != nil {
			return nil, err
		}
		return typex.Sequence(elem), nil
	case ty.IsSetType():
		elem, err := FromType(ty.ElementType())
		if err != nil {
			return nil, err
		}
		return typex.Generic(Set, elem), nil
	case ty.IsMapType():
		elem, err := FromType(ty.ElementType())
		if err != nil {
			return nil, err
		}
		return typex.MappingOf(typex.String, elem), nil
	case ty.IsTupleType():
		elemTypes := ty.TupleElementTypes()
		elems := make([]typex.Expr, len(elemTypes))
		for i, et := range elemTypes {
			elem, err := FromType(et)
			if err != nil {
				return nil, fmt.Errorf("tuple element %d: %w", i, err)
			}
			elems[i] = elem
		}
		if len(elems) == 0 {
			return typex.TupleClass, nil
		}
		return typex.Tuple(elems...), nil
	case ty.IsObjectType():
		attrTypes := ty.AttributeTypes()
		if len(attrTypes) == 0 {
			return typex.MappingOf(typex.String, typex.Any), nil
		}
		names := make([]string, 0, len(attrTypes))
		for name := range attrTypes {
			names = append(names, name)
		}
		slices.Sort(names)
		members := make([]typex.Expr, len(names))
		for i, name := range names {
			member, err := FromType(attrTypes[name])
			if err != nil {
				return nil, fmt.Errorf("attribute '%s': %w", name, err)
			}
			members[i] = member
		}
		return typex.MappingOf(typex.String, typex.Union(members...)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ty.FriendlyName())
	}
}

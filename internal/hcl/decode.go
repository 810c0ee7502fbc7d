package hcl

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/spectrumgo/internal/schema"
)

var matrixType = cty.List(cty.List(cty.Number))

// attribute is one decoded `key = value` entry. matrix is nil for numbers.
type attribute struct {
	name   string
	scalar float64
	matrix [][]float64
	offset int
}

// attributes evaluates every attribute of a free-form block, in source order.
func attributes(block *schema.Attributes) ([]attribute, error) {
	if block == nil || block.Body == nil {
		return nil, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	out := make([]attribute, 0, len(attrs))
	for _, a := range attrs {
		val, diags := a.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		decoded, err := decodeValue(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", a.Range.String(), a.Name, err)
		}
		decoded.name = a.Name
		decoded.offset = a.Range.Start.Byte
		out = append(out, decoded)
	}
	slices.SortFunc(out, func(a, b attribute) int { return cmp.Compare(a.offset, b.offset) })
	return out, nil
}

// decodeValue accepts a number or a square list of number lists.
func decodeValue(val cty.Value) (attribute, error) {
	var out attribute
	if val.IsNull() || !val.IsWhollyKnown() {
		return out, errors.New("value must be known and not null")
	}

	ty := val.Type()
	switch {
	case ty == cty.Number:
		if err := gocty.FromCtyValue(val, &out.scalar); err != nil {
			return out, err
		}
		return out, nil
	case ty.IsTupleType() || ty.IsListType():
		converted, err := convert.Convert(val, matrixType)
		if err != nil {
			return out, fmt.Errorf("cannot convert %s to a matrix of numbers: %w", ty.FriendlyName(), err)
		}
		if err := gocty.FromCtyValue(converted, &out.matrix); err != nil {
			return out, err
		}
		if len(out.matrix) == 0 {
			return out, errors.New("matrix has no rows")
		}
		return out, nil
	default:
		return out, fmt.Errorf("expected a number or a matrix, got %s", ty.FriendlyName())
	}
}

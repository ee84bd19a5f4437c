// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggregation

import (
	"fmt"
	"strings"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"
)

// Node converts the input tree into its canonical form, keeping the order of
// sub-aggregations. It fails with NoVariantSelected or
// MultipleVariantsSelected when any node of the tree does not set exactly
// one kind, and with Validation when a payload lacks a required key.
func (in *Input) Node() (Node, error) {
	return in.node(nil, 0)
}

func (in *Input) node(path []string, index int) (Node, error) {
	if in == nil {
		path = append(path, fmt.Sprintf("#%d", index))
		return Node{}, errors.NewNoVariantSelected(fmt.Sprintf("aggregation %s is null", nodePath(path)))
	}
	path = append(path, segment(in.Name, index))

	variants := in.variants()
	switch len(variants) {
	case 0:
		return Node{}, errors.NewNoVariantSelected(fmt.Sprintf("aggregation %s has no kind", nodePath(path)))
	case 1:
	default:
		kinds := make([]string, 0, len(variants))
		for _, v := range variants {
			kinds = append(kinds, string(v.Kind()))
		}
		return Node{}, errors.NewMultipleVariantsSelected(
			fmt.Sprintf("aggregation %s sets %d kinds (%s), expected one", nodePath(path), len(kinds), strings.Join(kinds, ", ")),
		)
	}

	if err := checkRequired(variants[0], path); err != nil {
		return Node{}, err
	}

	node := Node{
		Name:     in.Name,
		Variant:  variants[0],
		Metadata: in.Metadata,
	}
	if in.Aggregations != nil {
		node.Children = make([]Node, 0, len(in.Aggregations))
		for i, sub := range in.Aggregations {
			child, err := sub.node(path, i)
			if err != nil {
				return Node{}, err
			}
			node.Children = append(node.Children, child)
		}
	}
	return node, nil
}

// ToInput converts a canonical tree back into the boundary shape. It fails
// with NoVariantSelected when a node has no variant. A nil children list
// stays nil and an empty one stays empty.
func ToInput(n Node) (*Input, error) {
	return toInput(n, nil, 0)
}

func toInput(n Node, path []string, index int) (*Input, error) {
	path = append(path, segment(n.Name, index))

	v := normalize(n.Variant)
	if v == nil {
		return nil, errors.NewNoVariantSelected(fmt.Sprintf("aggregation %s has no kind", nodePath(path)))
	}

	in := &Input{
		Name:     n.Name,
		Metadata: n.Metadata,
	}
	if !in.setVariant(v) {
		return nil, errors.NewUnexpected(fmt.Sprintf("aggregation %s has unknown kind %q", nodePath(path), v.Kind()))
	}
	if n.Children != nil {
		in.Aggregations = make([]*Input, 0, len(n.Children))
		for i, child := range n.Children {
			sub, err := toInput(child, path, i)
			if err != nil {
				return nil, err
			}
			in.Aggregations = append(in.Aggregations, sub)
		}
	}
	return in, nil
}

// requirer is implemented by payloads holding keys the engine has no default
// for.
type requirer interface {
	missing() []string
}

// checkRequired fails with Validation when v lacks one of its required keys.
func checkRequired(v Variant, path []string) error {
	r, ok := v.(requirer)
	if !ok {
		return nil
	}
	keys := r.missing()
	if len(keys) == 0 {
		return nil
	}
	return errors.NewValidation(fmt.Sprintf("aggregation %s: %s requires %s", nodePath(path), v.Kind(), strings.Join(keys, ", ")))
}

func requireField(field string) []string {
	if field == "" {
		return []string{"field"}
	}
	return nil
}

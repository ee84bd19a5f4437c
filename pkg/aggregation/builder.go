// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggregation

import (
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"
)

// Builder assembles a Node. A fresh builder has no variant, no metadata and
// no children; Build fails until a variant is set.
type Builder struct {
	node Node
	err  error
}

// NewBuilder starts a node named name.
func NewBuilder(name string) *Builder {
	return &Builder{node: Node{Name: name}}
}

// Variant sets the computation of the node, replacing any previous one.
func (b *Builder) Variant(v Variant) *Builder {
	b.node.Variant = normalize(v)
	return b
}

// Metadata attaches free-form metadata, replacing any previous one.
func (b *Builder) Metadata(m scalars.Map) *Builder {
	b.node.Metadata = &m
	return b
}

// Skip marks the node so its results are computed but left out of the
// response. Existing metadata keys are kept.
func (b *Builder) Skip() *Builder {
	var pairs []scalars.Pair
	if b.node.Metadata != nil {
		for _, key := range b.node.Metadata.Keys() {
			raw, _ := b.node.Metadata.Get(key)
			pairs = append(pairs, scalars.Pair{Key: key, Value: raw})
		}
	}
	pairs = append(pairs, scalars.Pair{Key: constants.SkipMetadataKey, Value: true})

	m, err := scalars.FromPairs(pairs...)
	if err != nil {
		b.err = err
		return b
	}
	b.node.Metadata = &m
	return b
}

// Child appends sub-aggregations in the given order.
func (b *Builder) Child(children ...Node) *Builder {
	b.node.Children = append(b.node.Children, children...)
	return b
}

// Build returns the node, or NoVariantSelected when the node or one of its
// descendants has no variant. A payload lacking a required key fails with
// Validation.
func (b *Builder) Build() (Node, error) {
	if b.err != nil {
		return Node{}, b.err
	}
	if err := b.node.Validate(); err != nil {
		return Node{}, err
	}
	node := b.node
	if len(b.node.Children) > 0 {
		node.Children = append([]Node(nil), b.node.Children...)
	}
	return node, nil
}

// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package aggregation models aggregation requests for the search engine as
// trees of nodes, each carrying exactly one computation kind.
package aggregation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"
)

// Node is one aggregation of a request tree.
//
// Name must be unique among siblings; the engine keeps only the last of
// duplicated names. Children are evaluated inside every bucket produced by
// Variant, in stored order.
type Node struct {
	Name     string
	Variant  Variant
	Metadata *scalars.Map
	Children []Node
}

// Kind returns the kind of the node's variant, or "" when none is set.
func (n Node) Kind() Kind {
	v := normalize(n.Variant)
	if v == nil {
		return ""
	}
	return v.Kind()
}

// Skipped reports whether the node's metadata asks for its results to be
// left out of the response.
func (n Node) Skipped() bool {
	if n.Metadata == nil {
		return false
	}
	var skip bool
	ok, err := n.Metadata.Decode(constants.SkipMetadataKey, &skip)
	return ok && err == nil && skip
}

// Walk visits the node and its descendants depth first, parents before
// children, children in stored order. The root has depth 0. Returning false
// from fn skips the children of the visited node.
func (n Node) Walk(fn func(depth int, node Node) bool) {
	n.walk(0, fn)
}

func (n Node) walk(depth int, fn func(depth int, node Node) bool) {
	if !fn(depth, n) {
		return
	}
	for _, child := range n.Children {
		child.walk(depth+1, fn)
	}
}

// Depth returns the number of levels of the tree rooted at n.
func (n Node) Depth() int {
	deepest := 0
	n.Walk(func(depth int, _ Node) bool {
		if depth+1 > deepest {
			deepest = depth + 1
		}
		return true
	})
	return deepest
}

// Validate checks that every node of the tree holds a variant with its
// required keys set.
func (n Node) Validate() error {
	return n.validate(nil, 0)
}

func (n Node) validate(path []string, index int) error {
	path = append(path, segment(n.Name, index))
	v := normalize(n.Variant)
	if v == nil {
		return errors.NewNoVariantSelected(fmt.Sprintf("aggregation %s has no kind", nodePath(path)))
	}
	if err := checkRequired(v, path); err != nil {
		return err
	}
	for i, child := range n.Children {
		if err := child.validate(path, i); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether both trees hold the same names, payloads, metadata
// and children. A nil and an empty children list compare equal since both
// serialize the same way.
func (n Node) Equal(other Node) bool {
	if n.Name != other.Name || n.Kind() != other.Kind() {
		return false
	}
	if !variantEqual(n.Variant, other.Variant) {
		return false
	}
	if (n.Metadata == nil) != (other.Metadata == nil) {
		return false
	}
	if n.Metadata != nil && !n.Metadata.Equal(*other.Metadata) {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

func variantEqual(a, b Variant) bool {
	a, b = normalize(a), normalize(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

// segment names a node inside an error path, by position when unnamed.
func segment(name string, index int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("#%d", index)
}

func nodePath(path []string) string {
	return fmt.Sprintf("%q", strings.Join(path, "/"))
}

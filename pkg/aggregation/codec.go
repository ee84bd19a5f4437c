// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package aggregation

import (
	"encoding/json"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"
)

// MarshalJSON emits the node as
//
//	{"name": ..., "<kind>": {...}, "metadata": {...}, "aggregations": [...]}
//
// metadata and aggregations are omitted when unset or empty. Nodes without a
// variant are rejected rather than serialized.
func (n Node) MarshalJSON() ([]byte, error) {
	in, err := ToInput(n)
	if err != nil {
		return nil, err
	}
	return scalars.Marshal(in)
}

// UnmarshalJSON reads a node through the boundary shape, so a node must set
// exactly one kind.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	node, err := in.Node()
	if err != nil {
		return err
	}
	*n = node
	return nil
}

// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"encoding/json"
	"fmt"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/aggregation"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"
)

// encodeAggregations renders nodes as the "aggs" object of a search body,
// keyed by aggregation name in request order:
//
//	{"<name>": {"<kind>": {...}, "meta": {...}, "aggs": {...}}}
func encodeAggregations(nodes []aggregation.Node) (json.RawMessage, error) {
	pairs := make([]scalars.Pair, 0, len(nodes))
	for _, node := range nodes {
		body, err := encodeNode(node)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, scalars.Pair{Key: node.Name, Value: body})
	}
	return encodeObject(pairs)
}

func encodeNode(node aggregation.Node) (json.RawMessage, error) {
	kind := node.Kind()
	if kind == "" {
		return nil, errors.NewNoVariantSelected(fmt.Sprintf("aggregation %q has no kind", node.Name))
	}

	payload, err := scalars.Marshal(node.Variant)
	if err != nil {
		return nil, errors.NewUnexpected(fmt.Sprintf("failed to encode %s aggregation %q", kind, node.Name), err)
	}
	pairs := []scalars.Pair{{Key: string(kind), Value: json.RawMessage(payload)}}

	if node.Metadata != nil && !node.Metadata.IsEmpty() {
		meta, err := node.Metadata.MarshalJSON()
		if err != nil {
			return nil, errors.NewUnexpected(fmt.Sprintf("failed to encode metadata of %q", node.Name), err)
		}
		pairs = append(pairs, scalars.Pair{Key: "meta", Value: json.RawMessage(meta)})
	}

	if len(node.Children) > 0 {
		sub, err := encodeAggregations(node.Children)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, scalars.Pair{Key: "aggs", Value: sub})
	}

	return encodeObject(pairs)
}

// encodeObject writes pairs as one JSON object. A repeated key keeps its
// first position and its last value, as the engine would read it.
func encodeObject(pairs []scalars.Pair) (json.RawMessage, error) {
	obj, err := scalars.FromPairs(pairs...)
	if err != nil {
		return nil, errors.NewUnexpected("failed to encode search body object", err)
	}
	return obj.MarshalJSON()
}

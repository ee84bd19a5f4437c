// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

// aggregationBodySource renders the search body of an aggregation request.
// Query and Aggs are JSON documents encoded beforehand; hits are not
// returned, only counted.
const aggregationBodySource = `{
  "size": 0,
  "track_total_hits": true
  {{- if .Query }},
  "query": {{ .Query }}
  {{- end }},
  "aggs": {{ .Aggs }}
}`

// bodyData is the input of aggregationBodySource
type bodyData struct {
	Query string
	Aggs  string
}

// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/aggregation"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockOpenSearchClient is a mock implementation of OpenSearchClientRetriever
type MockOpenSearchClient struct {
	searchResponse *SearchResponse
	searchError    error
	pingError      error

	lastIndex string
	lastBody  []byte
}

func NewMockOpenSearchClient() *MockOpenSearchClient {
	return &MockOpenSearchClient{}
}

func (m *MockOpenSearchClient) Search(ctx context.Context, index string, body []byte) (*SearchResponse, error) {
	m.lastIndex = index
	m.lastBody = body
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.searchResponse, nil
}

func (m *MockOpenSearchClient) Ping(ctx context.Context) error {
	return m.pingError
}

func (m *MockOpenSearchClient) SetSearchResponse(response *SearchResponse) {
	m.searchResponse = response
}

func (m *MockOpenSearchClient) SetSearchError(err error) {
	m.searchError = err
}

func (m *MockOpenSearchClient) SetPingError(err error) {
	m.pingError = err
}

func mustMap(t *testing.T, text string) *scalars.Map {
	t.Helper()
	m, err := scalars.Parse(text)
	require.NoError(t, err)
	return &m
}

func TestOpenSearchSearcherRender(t *testing.T) {
	tests := []struct {
		name          string
		criteria      func(t *testing.T) model.AggregationCriteria
		expectedError bool
		errorType     any
		expectedBody  string
	}{
		{
			name: "single metric without query",
			criteria: func(t *testing.T) model.AggregationCriteria {
				return model.AggregationCriteria{
					Aggregations: []aggregation.Node{
						{Name: "avg_price", Variant: aggregation.Avg(aggregation.Field("price"))},
					},
				}
			},
			expectedBody: `{"size":0,"track_total_hits":true,"aggs":{"avg_price":{"avg":{"field":"price"}}}}`,
		},
		{
			name: "query and nested aggregations with metadata",
			criteria: func(t *testing.T) model.AggregationCriteria {
				return model.AggregationCriteria{
					Query: mustMap(t, `{"term":{"status":"active"}}`),
					Aggregations: []aggregation.Node{
						{
							Name:     "by_category",
							Variant:  aggregation.NewTerms("category"),
							Metadata: mustMap(t, `{"_skip":true}`),
							Children: []aggregation.Node{
								{Name: "avg_price", Variant: aggregation.Avg(aggregation.Field("price"))},
							},
						},
					},
				}
			},
			expectedBody: `{"size":0,"track_total_hits":true,"query":{"term":{"status":"active"}},"aggs":{"by_category":{"terms":{"field":"category"},"meta":{"_skip":true},"aggs":{"avg_price":{"avg":{"field":"price"}}}}}}`,
		},
		{
			name: "request order is kept",
			criteria: func(t *testing.T) model.AggregationCriteria {
				return model.AggregationCriteria{
					Aggregations: []aggregation.Node{
						{Name: "z_last", Variant: aggregation.Max(aggregation.Field("a"))},
						{Name: "a_first", Variant: aggregation.Min(aggregation.Field("a"))},
					},
				}
			},
			expectedBody: `{"size":0,"track_total_hits":true,"aggs":{"z_last":{"max":{"field":"a"}},"a_first":{"min":{"field":"a"}}}}`,
		},
		{
			name: "empty query is left out",
			criteria: func(t *testing.T) model.AggregationCriteria {
				return model.AggregationCriteria{
					Query: mustMap(t, `{}`),
					Aggregations: []aggregation.Node{
						{Name: "range", Variant: aggregation.NewDateRange("date")},
					},
				}
			},
			expectedBody: `{"size":0,"track_total_hits":true,"aggs":{"range":{"date_range":{"field":"date","ranges":[]}}}}`,
		},
		{
			name: "scripts and queries keep their operators",
			criteria: func(t *testing.T) model.AggregationCriteria {
				return model.AggregationCriteria{
					Query: mustMap(t, `{"script":{"script":"doc['a'].value < 3 && doc['b'].value > 1"}}`),
					Aggregations: []aggregation.Node{
						{
							Name:    "by_day",
							Variant: aggregation.NewDateHistogram("date").WithCalendarInterval("day"),
							Children: []aggregation.Node{
								{Name: "big", Variant: aggregation.Sum(aggregation.ScriptSource("doc['x'].value > 5 ? 1 : 0"))},
								{Name: "keep", Variant: aggregation.NewBucketSelector(*mustMap(t, `{"b":"big"}`), "params.b > 0")},
							},
						},
					},
				}
			},
			expectedBody: `{"size":0,"track_total_hits":true,"query":{"script":{"script":"doc['a'].value < 3 && doc['b'].value > 1"}},"aggs":{"by_day":{"date_histogram":{"field":"date","calendar_interval":"day"},"aggs":{"big":{"sum":{"script":{"source":"doc['x'].value > 5 ? 1 : 0"}}},"keep":{"bucket_selector":{"buckets_path":{"b":"big"},"script":"params.b > 0"}}}}}}`,
		},
		{
			name: "aggregation without kind",
			criteria: func(t *testing.T) model.AggregationCriteria {
				return model.AggregationCriteria{
					Aggregations: []aggregation.Node{{Name: "empty"}},
				}
			},
			expectedError: true,
			errorType:     &errors.NoVariantSelected{},
		},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			searcher := &OpenSearchSearcher{
				client: NewMockOpenSearchClient(),
				index:  "test-index",
			}

			body, err := searcher.Render(context.Background(), tc.criteria(t))
			if tc.expectedError {
				assertion.ErrorAs(err, tc.errorType)
				return
			}

			assertion.NoError(err)
			assertion.Equal(tc.expectedBody, string(body))
		})
	}
}

func TestOpenSearchSearcherAggregate(t *testing.T) {
	tests := []struct {
		name            string
		criteria        model.AggregationCriteria
		setupMock       func(*MockOpenSearchClient)
		expectedError   bool
		errorType       any
		expectedIndex   string
		expectedResults string
		expectedTotal   int
	}{
		{
			name: "results are kept in engine order",
			criteria: model.AggregationCriteria{
				Aggregations: []aggregation.Node{
					{Name: "by_category", Variant: aggregation.NewTerms("category")},
				},
			},
			setupMock: func(mock *MockOpenSearchClient) {
				mock.SetSearchResponse(&SearchResponse{
					Took:         3,
					Total:        42,
					Aggregations: json.RawMessage(`{"by_category":{"doc_count_error_upper_bound":0,"sum_other_doc_count":0,"buckets":[{"key":"books","doc_count":40},{"key":"games","doc_count":2}]}}`),
				})
			},
			expectedIndex:   "test-index",
			expectedResults: `{"by_category":{"doc_count_error_upper_bound":0,"sum_other_doc_count":0,"buckets":[{"key":"books","doc_count":40},{"key":"games","doc_count":2}]}}`,
			expectedTotal:   42,
		},
		{
			name: "criteria index overrides the default",
			criteria: model.AggregationCriteria{
				Index: "orders",
				Aggregations: []aggregation.Node{
					{Name: "total", Variant: aggregation.Sum(aggregation.Field("amount"))},
				},
			},
			setupMock: func(mock *MockOpenSearchClient) {
				mock.SetSearchResponse(&SearchResponse{
					Aggregations: json.RawMessage(`{"total":{"value":12.5}}`),
				})
			},
			expectedIndex:   "orders",
			expectedResults: `{"total":{"value":12.5}}`,
		},
		{
			name: "response without aggregations",
			criteria: model.AggregationCriteria{
				Aggregations: []aggregation.Node{
					{Name: "total", Variant: aggregation.Sum(aggregation.Field("amount"))},
				},
			},
			setupMock: func(mock *MockOpenSearchClient) {
				mock.SetSearchResponse(&SearchResponse{})
			},
			expectedIndex:   "test-index",
			expectedResults: `{}`,
		},
		{
			name: "engine unavailable",
			criteria: model.AggregationCriteria{
				Aggregations: []aggregation.Node{
					{Name: "total", Variant: aggregation.Sum(aggregation.Field("amount"))},
				},
			},
			setupMock: func(mock *MockOpenSearchClient) {
				mock.SetSearchError(errors.NewServiceUnavailable("failed to execute search"))
			},
			expectedError: true,
			errorType:     &errors.ServiceUnavailable{},
		},
		{
			name: "aggregations in response are not an object",
			criteria: model.AggregationCriteria{
				Aggregations: []aggregation.Node{
					{Name: "total", Variant: aggregation.Sum(aggregation.Field("amount"))},
				},
			},
			setupMock: func(mock *MockOpenSearchClient) {
				mock.SetSearchResponse(&SearchResponse{Aggregations: json.RawMessage(`[1,2]`)})
			},
			expectedError: true,
			errorType:     &errors.TypeMismatch{},
		},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockClient := NewMockOpenSearchClient()
			tc.setupMock(mockClient)

			searcher := &OpenSearchSearcher{
				client: mockClient,
				index:  "test-index",
			}

			result, err := searcher.Aggregate(context.Background(), tc.criteria)
			if tc.expectedError {
				assertion.ErrorAs(err, tc.errorType)
				assertion.Nil(result)
				return
			}

			assertion.NoError(err)
			assertion.Equal(tc.expectedIndex, mockClient.lastIndex)
			assertion.True(json.Valid(mockClient.lastBody))
			assertion.Equal(tc.expectedResults, result.Aggregations.String())
			assertion.Equal(tc.expectedTotal, result.Total)
		})
	}
}

func TestOpenSearchSearcherIsReady(t *testing.T) {
	assertion := assert.New(t)

	mockClient := NewMockOpenSearchClient()
	searcher := &OpenSearchSearcher{client: mockClient, index: "test-index"}

	assertion.NoError(searcher.IsReady(context.Background()))

	mockClient.SetPingError(errors.NewServiceUnavailable("opensearch is not reachable"))
	var target errors.ServiceUnavailable
	assertion.ErrorAs(searcher.IsReady(context.Background()), &target)
}

func TestNewSearcher(t *testing.T) {
	tests := []struct {
		name           string
		config         Config
		expectedError  bool
		expectedErrMsg string
	}{
		{
			name: "create searcher with valid config",
			config: Config{
				URL:   "https://localhost:9200",
				Index: "test-index",
			},
			expectedError: false,
		},
		{
			name: "create searcher with retries",
			config: Config{
				URL:        "https://localhost:9200",
				Index:      "test-index",
				MaxRetries: 3,
				RetryDelay: 100 * time.Millisecond,
			},
			expectedError: false,
		},
		{
			name: "create searcher with empty URL",
			config: Config{
				URL:   "",
				Index: "test-index",
			},
			expectedError:  true,
			expectedErrMsg: "opensearch URL is required",
		},
		{
			name: "create searcher with empty index",
			config: Config{
				URL:   "https://localhost:9200",
				Index: "",
			},
			expectedError:  true,
			expectedErrMsg: "opensearch index is required",
		},
	}

	assertion := assert.New(t)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			searcher, err := NewSearcher(ctx, tc.config)

			if tc.expectedError {
				assertion.Error(err)
				assertion.Contains(err.Error(), tc.expectedErrMsg)
				assertion.Nil(searcher)
				return
			}

			assertion.NoError(err)
			assertion.NotNil(searcher)
			assertion.IsType(&OpenSearchSearcher{}, searcher)
		})
	}
}

func TestRetryBackoff(t *testing.T) {
	assertion := assert.New(t)

	assertion.Nil(retryBackoff(0))

	backoff := retryBackoff(100 * time.Millisecond)
	assertion.Equal(100*time.Millisecond, backoff(1))
	assertion.Equal(200*time.Millisecond, backoff(2))
	assertion.Equal(400*time.Millisecond, backoff(3))
	assertion.Equal(100*time.Millisecond, backoff(0))
}

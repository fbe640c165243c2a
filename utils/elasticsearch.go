package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

type ElasticsearchClient interface {
	IndexDocument(ctx context.Context, index string, id string, document interface{}) error
	Search(ctx context.Context, index string, query map[string]interface{}) ([]map[string]interface{}, error)
	Close() error
}

type elasticsearchClient struct {
	client *elasticsearch.Client
}

func NewElasticsearchClient(url string) (ElasticsearchClient, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{url},
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	// Проверка подключения
	res, err := es.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("Elasticsearch ping error: %s", res.Status())
	}

	return &elasticsearchClient{client: es}, nil
}

func (e *elasticsearchClient) Close() error {
	// Клиент Elasticsearch не требует явного закрытия
	return nil
}

func (e *elasticsearchClient) IndexDocument(ctx context.Context, index string, id string, document interface{}) error {
	jsonDoc, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       strings.NewReader(string(jsonDoc)),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("Elasticsearch error: %s", res.String())
	}

	return nil
}

func (e *elasticsearchClient) Search(ctx context.Context, index string, query map[string]interface{}) ([]map[string]interface{}, error) {
	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(index),
		e.client.Search.WithBody(strings.NewReader(buf.String())),
		e.client.Search.WithTrackTotalHits(true),
		e.client.Search.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("Elasticsearch error: %s", res.String())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	results := make([]map[string]interface{}, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		results[i] = hit.Source
	}

	return results, nil
}

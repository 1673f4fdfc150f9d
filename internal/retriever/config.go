package retriever

import (
	"fmt"
	"os"
	"strconv"
)

const defaultTopK = 5

// loads configuration from environment variables
func loadRetrieverConfig() (*RetrieverConfig, error) {
	topK := defaultTopK
	if topKStr := os.Getenv("RETRIEVAL_TOP_K"); topKStr != "" {
		val, err := strconv.Atoi(topKStr)
		if err != nil || val <= 0 {
			return nil, fmt.Errorf("RETRIEVAL_TOP_K must be a positive integer, got %q", topKStr)
		}
		topK = val
	}

	return &RetrieverConfig{TopK: topK}, nil
}

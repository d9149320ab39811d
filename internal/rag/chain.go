package rag

import (
	"context"

	apperrors "github.com/amaumene/gostreamfinder/internal/errors"
	"github.com/amaumene/gostreamfinder/internal/models"
	"github.com/amaumene/gostreamfinder/pkg/logger"
)

// DocumentRetriever returns context documents for a query.
type DocumentRetriever interface {
	Retrieve(ctx context.Context, query string) ([]models.RAGDocument, error)
}

// Chain retrieves context for a question and asks the model to answer it.
type Chain struct {
	retriever DocumentRetriever
	generator Generator
	logger    logger.Logger
}

func NewChain(retriever DocumentRetriever, generator Generator, log logger.Logger) *Chain {
	if log == nil {
		log = logger.NewNop()
	}
	return &Chain{retriever: retriever, generator: generator, logger: log}
}

// Invoke runs retrieval then generation. The returned context is in
// retrieval order.
func (c *Chain) Invoke(ctx context.Context, query string) (*models.RAGResult, error) {
	docs, err := c.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, apperrors.NewGenerationError("retrieval failed", err)
	}

	prompt := BuildPrompt(FormatDocs(docs), query)

	answer, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, apperrors.NewGenerationError("generation failed", err)
	}

	c.logger.Infof("[Chain] answered with %d context documents", len(docs))
	return &models.RAGResult{Answer: answer, Context: docs}, nil
}

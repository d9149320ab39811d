package rag

import (
	"strings"

	"github.com/amaumene/gostreamfinder/internal/models"
)

const conciergePrompt = `You are a helpful movie concierge. Use the provided context to answer the user's request.
Context: {context}
User Question: {input}`

// FormatDocs joins page contents with a blank line.
func FormatDocs(docs []models.RAGDocument) string {
	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = doc.PageContent
	}
	return strings.Join(parts, "\n\n")
}

// BuildPrompt fills the concierge template.
func BuildPrompt(context, input string) string {
	return strings.NewReplacer("{context}", context, "{input}", input).Replace(conciergePrompt)
}

// PageContent is the indexed text for one title.
func PageContent(title, overview string) string {
	return "Title: " + title + ". Overview: " + overview
}

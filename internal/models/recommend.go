package models

// ChatRequest is the body of POST /recommend.
type ChatRequest struct {
	Message  string `json:"message" binding:"required"`
	Location string `json:"location"`
}

// Recommendation is a retrieved title enriched with platforms for the
// requester's location.
type Recommendation struct {
	Title    string     `json:"title"`
	Overview string     `json:"overview"`
	Platform []Platform `json:"platform"`
}

type ChatResponse struct {
	Reply           string           `json:"reply"`
	Recommendations []Recommendation `json:"recommendations"`
	Error           string           `json:"error,omitempty"`
}

// RAGDocument is a retrieved context document with its catalog metadata.
type RAGDocument struct {
	TMDBID      int     `json:"tmdb_id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PageContent string  `json:"page_content"`
	Score       float64 `json:"score,omitempty"`
}

// RAGResult is the output of one retrieval+generation invocation.
type RAGResult struct {
	Answer  string
	Context []RAGDocument
}

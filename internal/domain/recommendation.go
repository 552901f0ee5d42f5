package domain

// RecommendedItem is one catalog reference suggested by the assistant.
type RecommendedItem struct {
	ID     string   `json:"id"`
	Type   ItemType `json:"type"`
	Reason string   `json:"reason,omitempty"`
}

// Recommendation is the assistant's suggested selection plus its reply.
// Items are references only; they are resolved against the catalog before
// anything is selected.
type Recommendation struct {
	Message string            `json:"message"`
	Items   []RecommendedItem `json:"items"`
}

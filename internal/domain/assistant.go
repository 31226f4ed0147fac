package domain

// AssistantOption is a quick-reply button offered alongside an assistant
// message.
type AssistantOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// AssistantResponse is the AI assistant's reply: a message, optional quick
// options and optional product recommendations.
type AssistantResponse struct {
	ID       string                `json:"id"`
	Message  string                `json:"message"`
	Options  []AssistantOption     `json:"options,omitempty"`
	Products []ProductWithCategory `json:"products,omitempty"`
}

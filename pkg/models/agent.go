package models

// ExternalAgent is a list item for an agent reachable through an
// external provider (Slack, Teams, Discord, webhooks).
type ExternalAgent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Status   string `json:"status"`
}

// InvocationResult is the backend's response to a manual invocation.
type InvocationResult struct {
	InvocationID string `json:"invocation_id"`
	Status       string `json:"status"`
}

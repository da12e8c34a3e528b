package models

// NodeType classifies a lineage node.
type NodeType string

const (
	NodeExternalAgent NodeType = "external_agent"
	NodeWorkflow      NodeType = "workflow"
	NodeWebhook       NodeType = "webhook"
)

// LineageNode is one entity in an agent's invocation lineage.
type LineageNode struct {
	ID       string            `json:"id"`
	Type     NodeType          `json:"type"`
	Label    string            `json:"label"`
	Provider string            `json:"provider,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// LineageEdge is a directed connection between two lineage nodes.
type LineageEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// LineageData is the raw lineage payload returned by the backend.
type LineageData struct {
	Nodes []LineageNode `json:"nodes"`
	Edges []LineageEdge `json:"edges"`
}

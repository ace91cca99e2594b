// pkg/registry/schema.go
package registry

// ActivityRegistry is the catalog of worker task types this deployment
// serves, used by pipeline tooling and process modelers.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Tags                 []string               `json:"tags"`
}

// registrySchema is the JSON Schema every registry file must satisfy.
const registrySchema = `{
	"type": "object",
	"required": ["version", "lastUpdated", "activities"],
	"properties": {
		"version": {"type": "string", "minLength": 1},
		"lastUpdated": {"type": "string", "minLength": 1},
		"activities": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "displayName", "category", "taskType", "implementationStatus"],
				"properties": {
					"id": {"type": "string", "pattern": "^[a-z][a-z0-9-]*$"},
					"displayName": {"type": "string", "minLength": 1},
					"description": {"type": "string"},
					"category": {"type": "string", "enum": ["matching", "notification"]},
					"version": {"type": "string"},
					"taskType": {"type": "string", "pattern": "^[a-z][a-z0-9-]*$"},
					"implementationStatus": {"type": "string", "enum": ["planned", "in-progress", "completed", "verified"]},
					"inputSchema": {"type": "object"},
					"outputSchema": {"type": "object"},
					"errorCodes": {"type": "array", "items": {"type": "string"}},
					"timeout": {"type": "string"},
					"retries": {"type": "integer", "minimum": 0},
					"tags": {"type": "array", "items": {"type": "string"}}
				}
			}
		}
	}
}`

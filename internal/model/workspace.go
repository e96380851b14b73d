// internal/model/workspace.go
package model

// Workspace identifies a tenant scope. The upstream API uses a Mongo
// style `_id` key on the wire.
type Workspace struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

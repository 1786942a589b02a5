package domain

// Well-known audit action labels. The action column is free text; these
// cover the movements the tracker itself performs.
const (
	ActionItemCreated = "item.created"
	ActionItemMoved   = "item.moved"
	ActionItemAudited = "item.audited"
	ActionItemRemoved = "item.removed"
)

// AuditRecord is one append-only trail entry for an inventory item.
// Records are never updated; deleting the item deletes its trail.
type AuditRecord struct {
	ID             int64  `json:"audit_id"`
	AssetID        string `json:"asset_id"`
	FromLocationID string `json:"from_location_id,omitempty"`
	ToLocationID   string `json:"to_location_id,omitempty"`
	Action         string `json:"action"`
	Notes          string `json:"notes,omitempty"`
	AuditedAt      string `json:"audited_at"`
	User           string `json:"user,omitempty"`
}

// AuditEntry holds the caller-supplied fields for recording a trail
// entry. AuditedAt is optional and exists for importing historical
// trails; when empty the repository stamps the current time.
type AuditEntry struct {
	AssetID        string `json:"asset_id"`
	Action         string `json:"action"`
	FromLocationID string `json:"from_location_id,omitempty"`
	ToLocationID   string `json:"to_location_id,omitempty"`
	Notes          string `json:"notes,omitempty"`
	User           string `json:"user,omitempty"`
	AuditedAt      string `json:"audited_at,omitempty"`
}

package sqlite

import (
	"context"
	"fmt"
	"strings"

	"stockyard/internal/domain"
)

type auditRepository struct {
	s *Store
}

// Record appends one trail entry and returns its id. Existing rows are
// never touched; the trail only grows, and only shrinks when the owning
// item is deleted (cascade).
func (r *auditRepository) Record(ctx context.Context, entry domain.AuditEntry) (int64, error) {
	if strings.TrimSpace(entry.AssetID) == "" {
		return 0, fmt.Errorf("%w: asset id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(entry.Action) == "" {
		return 0, fmt.Errorf("%w: action is required", domain.ErrValidation)
	}

	auditedAt := entry.AuditedAt
	if auditedAt == "" {
		auditedAt = isoNow()
	}

	res, err := r.s.db.ExecContext(ctx, `
		INSERT INTO inventory_audit (
			asset_id, from_location_id, to_location_id,
			action, notes, audited_at, user
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.AssetID, stringToNull(entry.FromLocationID), stringToNull(entry.ToLocationID),
		entry.Action, stringToNull(entry.Notes), auditedAt, stringToNull(entry.User))
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, violation(RuleAuditAssetRef, err)
		}
		return 0, fmt.Errorf("record audit: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record audit: %w", err)
	}
	return id, nil
}

// ListForAsset returns an item's trail, newest entries first.
func (r *auditRepository) ListForAsset(ctx context.Context, assetID string) ([]domain.AuditRecord, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT audit_id, asset_id,
		       COALESCE(from_location_id, ''), COALESCE(to_location_id, ''),
		       action, COALESCE(notes, ''), audited_at, COALESCE(user, '')
		FROM inventory_audit
		WHERE asset_id = ?
		ORDER BY audit_id DESC
	`, assetID)
	if err != nil {
		return nil, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var rec domain.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.AssetID, &rec.FromLocationID,
			&rec.ToLocationID, &rec.Action, &rec.Notes, &rec.AuditedAt, &rec.User); err != nil {
			return nil, fmt.Errorf("list audits: scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audits: iterate: %w", err)
	}
	return records, nil
}

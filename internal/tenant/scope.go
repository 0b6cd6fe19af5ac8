package tenant

import "gorm.io/gorm"

// Scope restricts a query to rows owned by the given tenant. Every
// repository in this codebase applies it to every read and delete, so a
// primary-key lookup for another tenant's row behaves exactly like
// "not found" and never leaks existence.
func Scope(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

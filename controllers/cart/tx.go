package cartControllers

import (
	"strings"

	"github.com/rajat290/obeyyo-api/models"
	"gorm.io/gorm"
)

// RunSerialized runs fn in a transaction and retries once when the database
// reports a lost-update style conflict. A second conflict surfaces to the
// caller as ErrConcurrencyConflict.
func RunSerialized(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.Transaction(fn)
	if err == nil || !isRetryableConflict(err) {
		return err
	}
	err = db.Transaction(fn)
	if err != nil && isRetryableConflict(err) {
		return models.ErrConcurrencyConflict
	}
	return err
}

func isRetryableConflict(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40p01")
}

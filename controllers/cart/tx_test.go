package cartControllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryableConflict(t *testing.T) {
	assert.True(t, isRetryableConflict(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")))
	assert.True(t, isRetryableConflict(errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)")))
	assert.False(t, isRetryableConflict(errors.New("record not found")))
	assert.False(t, isRetryableConflict(errors.New("ERROR: duplicate key value violates unique constraint")))
}

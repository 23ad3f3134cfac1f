package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidEmail("a@b.c"))
	assert.True(t, ValidEmail("jane.doe+leads@example.co.uk"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a.b.com"))
	assert.False(t, ValidEmail("a @b.c"))
	assert.False(t, ValidEmail("@b.c"))
	assert.False(t, ValidEmail(""))
}

func TestValidPhone(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidPhone("(555) 123-4567"))
	assert.True(t, ValidPhone("5551234567"))
	assert.True(t, ValidPhone("555.123.4567"))
	assert.False(t, ValidPhone("555-123"))
	assert.False(t, ValidPhone("+1 (555) 123-4567")) // 11 digits
	assert.False(t, ValidPhone(""))
}

func TestValidZip(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidZip("33990"))
	assert.True(t, ValidZip("33990-1234"))
	assert.False(t, ValidZip("3399"))
	assert.False(t, ValidZip("339901234"))
	assert.False(t, ValidZip("33990-"))
	assert.False(t, ValidZip("33990-12345"))
	assert.False(t, ValidZip(""))
}

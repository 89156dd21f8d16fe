package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVersion tests that version has its development default
// TestVersion 测试版本具有开发默认值
func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.Equal(t, "dev", Version)
}

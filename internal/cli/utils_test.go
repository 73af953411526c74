package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSensitiveData(t *testing.T) {
	assert.Equal(t, "(not set)", maskSensitiveData(""))
	assert.Equal(t, "***", maskSensitiveData("short"))
	assert.Equal(t, "hu...r2", maskSensitiveData("hunter2hunter2"))
}

func TestValidateCronExpression(t *testing.T) {
	expr, err := validateCronExpression(" */5 * * * * ")
	assert.NoError(t, err)
	assert.Equal(t, "*/5 * * * *", expr)

	_, err = validateCronExpression("")
	assert.Error(t, err)

	_, err = validateCronExpression("* * *")
	assert.Error(t, err)
}

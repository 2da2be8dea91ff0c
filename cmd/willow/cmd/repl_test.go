package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnbalancedBraces(t *testing.T) {
	assert.False(t, unbalancedBraces("print 1;\n"))
	assert.True(t, unbalancedBraces("fun f() {\n"))
	assert.False(t, unbalancedBraces("fun f() {\n  return 1;\n}\n"))
	assert.True(t, unbalancedBraces("{ { }\n"))
}

func TestDefaultReplConfigHasNonEmptyPrompts(t *testing.T) {
	cfg := DefaultReplConfig()
	assert.NotEmpty(t, cfg.Prompt)
	assert.NotEmpty(t, cfg.ContinuationPrompt)
	assert.NotEqual(t, cfg.Prompt, cfg.ContinuationPrompt)
}

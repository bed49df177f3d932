package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLocales()
	assert.Equal("line 3 'NOP' ok", From("line %d '%v' %v", 3, "NOP", "ok"))

	SetLocales("en-GB", "en-US")
	assert.Equal("\"MOV\" does not take ALU arguments", From("%q does not take ALU arguments", "MOV"))
}

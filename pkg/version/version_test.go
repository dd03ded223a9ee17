package version

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFprint(t *testing.T) {
	var short bytes.Buffer
	Fprint(&short, false)
	assert.Equal(t, "msiquery dev\n", short.String())

	var full bytes.Buffer
	Fprint(&full, true)
	lines := strings.Split(strings.TrimSpace(full.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, full.String(), runtime.Version())
}

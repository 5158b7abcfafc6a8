package cmd

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)

	assert.Equal(t, "interview-ranker unknown (commit none, "+runtime.Version()+")\n", buf.String())
}

package output

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]int{"clients": 7}))
	assert.Equal(t, "{\n  \"clients\": 7\n}\n", buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tw := Table(&buf)
	fmt.Fprintln(tw, "COLLECTION\tRECORDS")
	fmt.Fprintln(tw, "clients\t7")
	require.NoError(t, tw.Flush())
	assert.Equal(t, "COLLECTION  RECORDS\nclients     7\n", buf.String())
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	Warn(&buf, "seed %s skipped", "a.yaml")
	assert.Equal(t, "Warning: seed a.yaml skipped\n", buf.String())
}

package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDL(t *testing.T) {
	stmts := splitDDL("-- header\r\nCREATE TABLE a (x INT64) PRIMARY KEY (x);\n\n;CREATE INDEX i ON a(x);\n")
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (x INT64) PRIMARY KEY (x)", stmts[0])
	assert.Equal(t, "CREATE INDEX i ON a(x)", stmts[1])
}

func TestReadDDLStatements_Schema(t *testing.T) {
	stmts, err := readDDLStatements(filepath.Join("..", "..", "migrations", "001_initial_schema.sql"))
	require.NoError(t, err)

	var tables []string
	for _, s := range stmts {
		assert.NotContains(t, s, "--")
		if strings.HasPrefix(s, "CREATE TABLE ") {
			tables = append(tables, strings.Fields(s)[2])
		}
	}
	assert.ElementsMatch(t, []string{"resources", "order_numbers", "customers", "outbox_events"}, tables)
}

package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMongo(t *testing.T) {
	input := `systemLog:
  destination: file
  path: /var/log/mongodb/mongod.log
  logAppend: true
storage:
  dbPath: /var/lib/mongo
  journal:
    enabled: true
net:
  port: 27017
  bindIp: 127.0.0.1
`

	doc, err := ParseMongo([]byte(input))
	require.NoError(t, err)

	want := []Entry{
		{Path: "systemLog.destination", Args: []string{"file"}, Line: 2},
		{Path: "systemLog.path", Args: []string{"/var/log/mongodb/mongod.log"}, Line: 3},
		{Path: "systemLog.logAppend", Args: []string{"true"}, Line: 4},
		{Path: "storage.dbPath", Args: []string{"/var/lib/mongo"}, Line: 6},
		{Path: "storage.journal.enabled", Args: []string{"true"}, Line: 8},
		{Path: "net.port", Args: []string{"27017"}, Line: 10},
		{Path: "net.bindIp", Args: []string{"127.0.0.1"}, Line: 11},
	}
	assert.Equal(t, want, doc.Entries)
}

func TestParseMongoKeepsDuplicateKeys(t *testing.T) {
	input := `net:
  port: 27017
  port: 27018
`
	doc, err := ParseMongo([]byte(input))
	require.NoError(t, err)

	ports := doc.Get("net.port")
	require.Len(t, ports, 2)
	assert.Equal(t, []string{"27017"}, ports[0].Args)
	assert.Equal(t, []string{"27018"}, ports[1].Args)
}

func TestParseMongoSequence(t *testing.T) {
	input := `setParameter:
  authenticationMechanisms:
    - SCRAM-SHA-256
    - SCRAM-SHA-1
`
	doc, err := ParseMongo([]byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, []string{"SCRAM-SHA-256", "SCRAM-SHA-1"}, doc.Entries[0].Args)
}

func TestParseMongoEmpty(t *testing.T) {
	doc, err := ParseMongo([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Entries)
}

func TestParseMongoRejectsTopLevelSequence(t *testing.T) {
	_, err := ParseMongo([]byte("- a\n- b\n"))
	assert.ErrorContains(t, err, "must be a mapping")
}

func TestParseDispatch(t *testing.T) {
	doc, err := Parse("key-value-store", []byte("port 6379"))
	require.NoError(t, err)
	assert.Equal(t, "port", doc.Entries[0].Path)

	doc, err = Parse("mongodb", []byte("net:\n  port: 27017\n"))
	require.NoError(t, err)
	assert.Equal(t, "net.port", doc.Entries[0].Path)

	_, err = Parse("graph-database", nil)
	assert.ErrorContains(t, err, "no parser")
}

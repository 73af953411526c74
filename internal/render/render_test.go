package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confsmith/confsmith/internal/document"
	"github.com/confsmith/confsmith/internal/validate"
)

func TestRedisRender(t *testing.T) {
	doc := &document.Document{}
	doc.Append("port", 1, "6379")
	doc.Append("save", 2, "900", "1")
	doc.Append("save", 3, "300", "10")
	doc.Append("logfile", 4, "")
	doc.Append("dbfilename", 5, "my dump.rdb")

	out := Redis(doc)
	want := "port 6379\n" +
		"save 900 1\n" +
		"save 300 10\n" +
		"logfile \"\"\n" +
		"dbfilename \"my dump.rdb\"\n"
	assert.Equal(t, want, string(out))
}

func TestRedisRenderRoundTrip(t *testing.T) {
	input := "maxmemory 64mb\nmaxmemory-policy allkeys-lru\nsave 900 1\n"
	doc, err := document.ParseRedis([]byte(input))
	require.NoError(t, err)

	res, err := validate.Document(doc, "key-value-store")
	require.NoError(t, err)
	require.True(t, res.OK())

	out := Redis(res.Normalized)
	reparsed, err := document.ParseRedis(out)
	require.NoError(t, err)
	assert.Equal(t, len(res.Normalized.Entries), len(reparsed.Entries))

	again := res.Normalized.Get("maxmemory")
	require.Len(t, again, 1)
	assert.Equal(t, []string{"67108864"}, again[0].Args)
}

func TestMongoRenderRoundTrip(t *testing.T) {
	input := `systemLog:
  destination: file
  path: /var/log/mongodb/mongod.log
storage:
  dbPath: /var/lib/mongo
  journal:
    enabled: true
net:
  port: 27017
setParameter:
  authenticationMechanisms:
    - SCRAM-SHA-256
    - SCRAM-SHA-1
`
	doc, err := document.ParseMongo([]byte(input))
	require.NoError(t, err)

	out, err := Mongo(doc)
	require.NoError(t, err)

	// rendering then parsing yields the same flattened entries, lines aside
	reparsed, err := document.ParseMongo(out)
	require.NoError(t, err)
	require.Len(t, reparsed.Entries, len(doc.Entries))
	for i, entry := range doc.Entries {
		assert.Equal(t, entry.Path, reparsed.Entries[i].Path)
		assert.Equal(t, entry.Args, reparsed.Entries[i].Args)
	}
}

func TestMongoRenderMergesSections(t *testing.T) {
	doc := &document.Document{}
	doc.Append("net.port", 1, "27017")
	doc.Append("storage.dbPath", 2, "/var/lib/mongo")
	doc.Append("net.bindIp", 3, "127.0.0.1")

	out, err := Mongo(doc)
	require.NoError(t, err)

	reparsed, err := document.ParseMongo(out)
	require.NoError(t, err)

	// entries regroup under their first-seen section
	paths := make([]string, len(reparsed.Entries))
	for i, e := range reparsed.Entries {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{"net.port", "net.bindIp", "storage.dbPath"}, paths)
}

func TestRenderDispatch(t *testing.T) {
	doc := &document.Document{}
	doc.Append("port", 1, "6379")

	out, err := Render("redis", doc)
	require.NoError(t, err)
	assert.Equal(t, "port 6379\n", string(out))

	_, err = Render("graph-database", doc)
	assert.Error(t, err)
}

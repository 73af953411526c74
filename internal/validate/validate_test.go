package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confsmith/confsmith/internal/document"
)

func kvDoc(t *testing.T, input string) *document.Document {
	t.Helper()
	doc, err := document.ParseRedis([]byte(input))
	require.NoError(t, err)
	return doc
}

func mongoDoc(t *testing.T, input string) *document.Document {
	t.Helper()
	doc, err := document.ParseMongo([]byte(input))
	require.NoError(t, err)
	return doc
}

func TestValidateAcceptsEnumMember(t *testing.T) {
	res, err := Document(kvDoc(t, "maxmemory-policy allkeys-lru"), "key-value-store")
	require.NoError(t, err)

	assert.True(t, res.OK())
	assert.Empty(t, res.Warnings)

	got := res.Normalized.Get("maxmemory-policy")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"allkeys-lru"}, got[0].Args)
}

func TestValidateNormalizesByteSize(t *testing.T) {
	res, err := Document(kvDoc(t, "auto-aof-rewrite-min-size 64mb"), "key-value-store")
	require.NoError(t, err)
	require.True(t, res.OK())

	got := res.Normalized.Get("auto-aof-rewrite-min-size")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"67108864"}, got[0].Args)
}

func TestValidateRangeViolation(t *testing.T) {
	res, err := Document(mongoDoc(t, "net:\n  port: 70000\n"), "document-database")
	require.NoError(t, err)

	assert.False(t, res.OK())
	require.Len(t, res.Errors, 1)
	assert.Equal(t, RangeViolation, res.Errors[0].Kind)
	assert.Equal(t, "net.port", res.Errors[0].Path)
	assert.Equal(t, "70000", res.Errors[0].Value)
	assert.Nil(t, res.Normalized)
}

func TestValidateNoCrossFieldCoupling(t *testing.T) {
	// replSetName with journaling disabled is a plain combination of two
	// valid settings; neither key constrains the other.
	input := "replication:\n  replSetName: rs0\nstorage:\n  journal:\n    enabled: false\n"
	res, err := Document(mongoDoc(t, input), "document-database")
	require.NoError(t, err)

	assert.True(t, res.OK())
	assert.Empty(t, res.Warnings)
}

func TestValidateUnknownKeyIsWarning(t *testing.T) {
	res, err := Document(kvDoc(t, "shardedness extreme\nport 6380"), "key-value-store")
	require.NoError(t, err)

	assert.True(t, res.OK())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, UnknownKey, res.Warnings[0].Kind)
	assert.Equal(t, "shardedness", res.Warnings[0].Path)
	assert.False(t, res.Warnings[0].Kind.Fatal())

	// the unknown key rides along into the normalized document
	require.True(t, res.Normalized.Has("shardedness"))
	assert.Equal(t, []string{"extreme"}, res.Normalized.Get("shardedness")[0].Args)
}

func TestValidateCollectsAllFindings(t *testing.T) {
	input := "port 70000\nmaxmemory 64xb\nappendfsync sometimes\n"
	res, err := Document(kvDoc(t, input), "key-value-store")
	require.NoError(t, err)

	assert.False(t, res.OK())
	require.Len(t, res.Errors, 3)

	kinds := make(map[Kind]int)
	for _, f := range res.Errors {
		kinds[f.Kind]++
	}
	assert.Equal(t, 1, kinds[RangeViolation])
	assert.Equal(t, 1, kinds[UnparsableUnitSuffix])
	assert.Equal(t, 1, kinds[TypeMismatch])
}

func TestValidateDuplicateKey(t *testing.T) {
	res, err := Document(kvDoc(t, "port 6379\nport 6380\nport 6381"), "key-value-store")
	require.NoError(t, err)

	assert.False(t, res.OK())
	// first occurrence is consumed, every later one is a finding
	require.Len(t, res.Errors, 2)
	for _, f := range res.Errors {
		assert.Equal(t, DuplicateKey, f.Kind)
		assert.Equal(t, "network.port", f.Path)
	}
}

func TestValidateRepeatableDirective(t *testing.T) {
	res, err := Document(kvDoc(t, "save 900 1\nsave 300 10\nsave 60 10000"), "key-value-store")
	require.NoError(t, err)

	assert.True(t, res.OK())
	assert.Len(t, res.Normalized.Get("save"), 3)
}

func TestValidateKeyedRepeatableDirective(t *testing.T) {
	input := "client-output-buffer-limit normal 0 0 0\n" +
		"client-output-buffer-limit replica 256mb 64mb 60\n"
	res, err := Document(kvDoc(t, input), "key-value-store")
	require.NoError(t, err)
	require.True(t, res.OK())

	limits := res.Normalized.Get("client-output-buffer-limit")
	require.Len(t, limits, 2)
	assert.Equal(t, []string{"normal", "0", "0", "0"}, limits[0].Args)
	assert.Equal(t, []string{"replica", "268435456", "67108864", "60"}, limits[1].Args)

	// a second limit for the same class is a duplicate
	res, err = Document(kvDoc(t, input+"client-output-buffer-limit replica 0 0 0\n"), "key-value-store")
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, DuplicateKey, res.Errors[0].Kind)
}

func TestValidateLegacyClassSpelling(t *testing.T) {
	res, err := Document(kvDoc(t, "client-output-buffer-limit slave 256mb 64mb 60"), "key-value-store")
	require.NoError(t, err)
	require.True(t, res.OK())

	limits := res.Normalized.Get("client-output-buffer-limit")
	require.Len(t, limits, 1)
	assert.Equal(t, []string{"replica", "268435456", "67108864", "60"}, limits[0].Args)

	// the engine treats slave and replica as the same class, so declaring
	// limits under both spellings is a duplicate
	input := "client-output-buffer-limit replica 256mb 64mb 60\n" +
		"client-output-buffer-limit slave 0 0 0\n"
	res, err = Document(kvDoc(t, input), "key-value-store")
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, DuplicateKey, res.Errors[0].Kind)
}

func TestValidateByteSizeOverflow(t *testing.T) {
	res, err := Document(kvDoc(t, "maxmemory 17179869184gb"), "key-value-store")
	require.NoError(t, err)

	assert.False(t, res.OK())
	require.Len(t, res.Errors, 1)
	assert.Equal(t, UnparsableUnitSuffix, res.Errors[0].Kind)
	assert.Equal(t, "memory.maxmemory", res.Errors[0].Path)
}

func TestValidateArityMismatch(t *testing.T) {
	res, err := Document(kvDoc(t, "save 900"), "key-value-store")
	require.NoError(t, err)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, TypeMismatch, res.Errors[0].Kind)
	assert.Contains(t, res.Errors[0].Constraint, "2 value(s)")
}

func TestValidateBoolCanonicalization(t *testing.T) {
	res, err := Document(kvDoc(t, "appendonly YES"), "key-value-store")
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, []string{"yes"}, res.Normalized.Get("appendonly")[0].Args)

	res, err = Document(mongoDoc(t, "storage:\n  journal:\n    enabled: True\n"), "document-database")
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, []string{"true"}, res.Normalized.Get("storage.journal.enabled")[0].Args)
}

func TestValidateFillsDefaults(t *testing.T) {
	res, err := Document(&document.Document{}, "key-value-store")
	require.NoError(t, err)
	require.True(t, res.OK())

	port := res.Normalized.Get("port")
	require.Len(t, port, 1)
	assert.Equal(t, []string{"6379"}, port[0].Args)
	assert.Zero(t, port[0].Line)

	policy := res.Normalized.Get("maxmemory-policy")
	require.Len(t, policy, 1)
	assert.Equal(t, []string{"noeviction"}, policy[0].Args)
}

func TestValidateExplicitValueBeatsDefault(t *testing.T) {
	res, err := Document(kvDoc(t, "port 6380"), "key-value-store")
	require.NoError(t, err)
	require.True(t, res.OK())

	port := res.Normalized.Get("port")
	require.Len(t, port, 1)
	assert.Equal(t, []string{"6380"}, port[0].Args)
}

func TestValidateOpenSectionPassesThrough(t *testing.T) {
	input := "setParameter:\n  someFutureKnob: 42\n"
	res, err := Document(mongoDoc(t, input), "document-database")
	require.NoError(t, err)

	assert.True(t, res.OK())
	assert.Empty(t, res.Warnings)
	assert.True(t, res.Normalized.Has("setParameter.someFutureKnob"))
}

func TestValidateIdempotent(t *testing.T) {
	input := "port 6380\nmaxmemory 64mb\nmaxmemory-policy ALLKEYS-LRU\nsave 900 1\n"
	first, err := Document(kvDoc(t, input), "key-value-store")
	require.NoError(t, err)
	require.True(t, first.OK())

	second, err := Document(first.Normalized, "key-value-store")
	require.NoError(t, err)
	require.True(t, second.OK())
	assert.Empty(t, second.Warnings)
	assert.Equal(t, first.Normalized.Entries, second.Normalized.Entries)
}

func TestValidateUnknownEngine(t *testing.T) {
	_, err := Document(&document.Document{}, "graph-database")
	assert.Error(t, err)
}

func TestFindingError(t *testing.T) {
	f := Finding{Kind: RangeViolation, Path: "net.port", Value: "70000", Constraint: "integer in [1,65535]", Line: 3}
	assert.Equal(t, `RangeViolation: net.port: "70000" (expected integer in [1,65535]) at line 3`, f.Error())
}

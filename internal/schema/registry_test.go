package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	kv, err := Lookup("key-value-store")
	require.NoError(t, err)
	assert.Equal(t, "key-value-store", kv.Engine)

	// aliases resolve to the same schema
	alias, err := Lookup("redis")
	require.NoError(t, err)
	assert.Same(t, kv, alias)

	doc, err := Lookup("document-database")
	require.NoError(t, err)
	assert.Equal(t, "document-database", doc.Engine)

	alias, err = Lookup("mongodb")
	require.NoError(t, err)
	assert.Same(t, doc, alias)
}

func TestRegistryLookupNormalizesInput(t *testing.T) {
	sch, err := Lookup("  Key-Value-Store ")
	require.NoError(t, err)
	assert.Equal(t, "key-value-store", sch.Engine)
}

func TestRegistryUnknownEngine(t *testing.T) {
	_, err := Lookup("graph-database")
	assert.ErrorContains(t, err, "unknown engine")
}

func TestEngines(t *testing.T) {
	assert.Equal(t, []string{"document-database", "key-value-store"}, Engines())
}

func TestSchemaOptionPaths(t *testing.T) {
	kv, err := Lookup("key-value-store")
	require.NoError(t, err)

	opt, ok := kv.Lookup("maxmemory-policy")
	require.True(t, ok)
	assert.Equal(t, "memory.maxmemory-policy", opt.Path())

	doc, err := Lookup("document-database")
	require.NoError(t, err)

	opt, ok = doc.Lookup("net.port")
	require.True(t, ok)
	assert.Equal(t, "net.port", opt.Path())
}

func TestOpenSections(t *testing.T) {
	doc, err := Lookup("document-database")
	require.NoError(t, err)

	assert.True(t, doc.Open("setParameter.someFutureKnob"))
	assert.False(t, doc.Open("net.someFutureKnob"))

	// typed setParameter keys are still real options
	_, ok := doc.Lookup("setParameter.enableLocalhostAuthBypass")
	assert.True(t, ok)
}

func TestDuplicateOptionPanics(t *testing.T) {
	s := New("test-engine")
	s.Add(&Option{Key: "port", Elems: []Elem{intElem("port", 1, 65535)}})
	assert.Panics(t, func() {
		s.Add(&Option{Key: "port", Elems: []Elem{intElem("port", 1, 65535)}})
	})
}

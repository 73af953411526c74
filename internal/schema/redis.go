package schema

// KeyValueStore builds the schema for the key-value store engine
// (redis.conf directive format). Sections are reporting groups only;
// the file itself is flat.
func KeyValueStore() *Schema {
	s := New("key-value-store", "redis", "kv")
	s.BoolTrue, s.BoolFalse = "yes", "no"

	// network
	s.Add(&Option{Key: "port", Section: "network", Doc: "TCP listen port", Default: []string{"6379"}, Elems: []Elem{intElem("port", 1, 65535)}})
	s.Add(&Option{Key: "bind", Section: "network", Doc: "listen address", Default: []string{"127.0.0.1"}, Elems: []Elem{stringElem("address")}})
	s.Add(&Option{Key: "timeout", Section: "network", Doc: "close idle clients after N seconds, 0 disables", Default: []string{"0"}, Elems: []Elem{intMinElem("seconds", 0)}})
	s.Add(&Option{Key: "tcp-keepalive", Section: "network", Default: []string{"300"}, Elems: []Elem{intMinElem("seconds", 0)}})
	s.Add(&Option{Key: "maxclients", Section: "network", Default: []string{"10000"}, Elems: []Elem{intMinElem("clients", 1)}})

	// security
	s.Add(&Option{Key: "requirepass", Section: "security", Doc: "client AUTH password", Elems: []Elem{stringElem("password")}})

	// persistence
	s.Add(&Option{
		Key: "save", Section: "persistence", Repeatable: true, KeyedBy: -1,
		Doc:   "snapshot after <seconds> if at least <changes> writes",
		Elems: []Elem{intMinElem("seconds", 0), intMinElem("changes", 0)},
	})
	s.Add(&Option{Key: "stop-writes-on-bgsave-error", Section: "persistence", Default: []string{"yes"}, Elems: []Elem{boolElem("enabled")}})
	s.Add(&Option{Key: "rdbcompression", Section: "persistence", Default: []string{"yes"}, Elems: []Elem{boolElem("enabled")}})
	s.Add(&Option{Key: "rdbchecksum", Section: "persistence", Default: []string{"yes"}, Elems: []Elem{boolElem("enabled")}})
	s.Add(&Option{Key: "dbfilename", Section: "persistence", Default: []string{"dump.rdb"}, Elems: []Elem{stringElem("filename")}})
	s.Add(&Option{Key: "appendonly", Section: "persistence", Default: []string{"no"}, Elems: []Elem{boolElem("enabled")}})
	s.Add(&Option{Key: "appendfilename", Section: "persistence", Default: []string{"appendonly.aof"}, Elems: []Elem{stringElem("filename")}})
	s.Add(&Option{Key: "appendfsync", Section: "persistence", Default: []string{"everysec"}, Elems: []Elem{enumElem("policy", "always", "everysec", "no")}})
	s.Add(&Option{Key: "no-appendfsync-on-rewrite", Section: "persistence", Default: []string{"no"}, Elems: []Elem{boolElem("enabled")}})
	s.Add(&Option{Key: "auto-aof-rewrite-percentage", Section: "persistence", Default: []string{"100"}, Elems: []Elem{intMinElem("percent", 0)}})
	s.Add(&Option{Key: "auto-aof-rewrite-min-size", Section: "persistence", Default: []string{"67108864"}, Elems: []Elem{byteSizeElem("size")}})
	s.Add(&Option{Key: "aof-load-truncated", Section: "persistence", Default: []string{"yes"}, Elems: []Elem{boolElem("enabled")}})

	// logging
	s.Add(&Option{Key: "loglevel", Section: "logging", Default: []string{"notice"}, Elems: []Elem{enumElem("level", "debug", "verbose", "notice", "warning")}})
	s.Add(&Option{Key: "logfile", Section: "logging", Doc: "empty string logs to stdout", Default: []string{""}, Elems: []Elem{stringElem("path")}})
	s.Add(&Option{Key: "slowlog-log-slower-than", Section: "logging", Default: []string{"10000"}, Elems: []Elem{intMinElem("microseconds", -1)}})
	s.Add(&Option{Key: "slowlog-max-len", Section: "logging", Default: []string{"128"}, Elems: []Elem{intMinElem("entries", 0)}})

	// general
	s.Add(&Option{Key: "databases", Section: "general", Default: []string{"16"}, Elems: []Elem{intElem("count", 1, 16384)}})

	// memory
	s.Add(&Option{Key: "maxmemory", Section: "memory", Doc: "0 means no limit", Default: []string{"0"}, Elems: []Elem{byteSizeElem("limit")}})
	s.Add(&Option{
		Key: "maxmemory-policy", Section: "memory", Default: []string{"noeviction"},
		Elems: []Elem{enumElem("policy",
			"noeviction", "allkeys-lru", "volatile-lru", "allkeys-random",
			"volatile-random", "volatile-ttl", "allkeys-lfu", "volatile-lfu")},
	})

	// clients
	class := enumElem("class", "normal", "replica", "pubsub")
	// the engine reads "slave" as the legacy spelling of "replica"
	class.Aliases = map[string]string{"slave": "replica"}
	s.Add(&Option{
		Key: "client-output-buffer-limit", Section: "clients", Repeatable: true, KeyedBy: 0,
		Doc: "per-class hard limit, soft limit, soft seconds",
		Elems: []Elem{
			class,
			byteSizeElem("hard-limit"),
			byteSizeElem("soft-limit"),
			intMinElem("soft-seconds", 0),
		},
	})

	// advanced
	s.Add(&Option{Key: "hash-max-ziplist-entries", Section: "advanced", Default: []string{"128"}, Elems: []Elem{intMinElem("entries", 0)}})
	s.Add(&Option{Key: "hash-max-ziplist-value", Section: "advanced", Default: []string{"64"}, Elems: []Elem{intMinElem("bytes", 0)}})
	s.Add(&Option{Key: "list-max-ziplist-size", Section: "advanced", Doc: "positive caps entries, -1..-5 cap node size", Default: []string{"-2"}, Elems: []Elem{intElem("size", -5, 1 << 30)}})
	s.Add(&Option{Key: "set-max-intset-entries", Section: "advanced", Default: []string{"512"}, Elems: []Elem{intMinElem("entries", 0)}})
	s.Add(&Option{Key: "zset-max-ziplist-entries", Section: "advanced", Default: []string{"128"}, Elems: []Elem{intMinElem("entries", 0)}})
	s.Add(&Option{Key: "zset-max-ziplist-value", Section: "advanced", Default: []string{"64"}, Elems: []Elem{intMinElem("bytes", 0)}})
	s.Add(&Option{Key: "hz", Section: "advanced", Default: []string{"10"}, Elems: []Elem{intElem("frequency", 1, 500)}})
	s.Add(&Option{Key: "dynamic-hz", Section: "advanced", Default: []string{"yes"}, Elems: []Elem{boolElem("enabled")}})

	return s
}

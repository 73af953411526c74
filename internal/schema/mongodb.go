package schema

// DocumentDatabase builds the schema for the document database engine
// (mongod YAML format). Keys are dotted paths into the nested document;
// setParameter is an open bag of engine tuning knobs, so unrecognized
// keys under it pass through without a warning.
func DocumentDatabase() *Schema {
	s := New("document-database", "mongodb", "mongod")
	s.OpenSections = []string{"setParameter"}

	// systemLog
	s.Add(&Option{Key: "systemLog.destination", Default: []string{"file"}, Elems: []Elem{enumElem("destination", "file", "syslog")}})
	s.Add(&Option{Key: "systemLog.path", Doc: "required when destination is file", Elems: []Elem{stringElem("path")}})
	s.Add(&Option{Key: "systemLog.logAppend", Default: []string{"true"}, Elems: []Elem{boolElem("append")}})
	s.Add(&Option{Key: "systemLog.verbosity", Default: []string{"0"}, Elems: []Elem{intElem("level", 0, 5)}})
	s.Add(&Option{Key: "systemLog.timeStampFormat", Default: []string{"iso8601-local"}, Elems: []Elem{enumElem("format", "iso8601-local", "iso8601-utc", "ctime")}})

	// storage
	s.Add(&Option{Key: "storage.dbPath", Default: []string{"/data/db"}, Elems: []Elem{stringElem("path")}})
	s.Add(&Option{Key: "storage.journal.enabled", Default: []string{"true"}, Elems: []Elem{boolElem("enabled")}})
	s.Add(&Option{Key: "storage.journal.commitIntervalMs", Default: []string{"100"}, Elems: []Elem{intElem("interval", 1, 500)}})
	s.Add(&Option{Key: "storage.directoryPerDB", Default: []string{"false"}, Elems: []Elem{boolElem("enabled")}})
	s.Add(&Option{Key: "storage.syncPeriodSecs", Default: []string{"60"}, Elems: []Elem{intMinElem("seconds", 0)}})
	s.Add(&Option{Key: "storage.engine", Default: []string{"wiredTiger"}, Elems: []Elem{enumElem("engine", "wiredTiger", "inMemory")}})
	s.Add(&Option{Key: "storage.wiredTiger.engineConfig.cacheSizeGB", Elems: []Elem{floatMinElem("gigabytes", 0.25)}})
	s.Add(&Option{Key: "storage.wiredTiger.engineConfig.journalCompressor", Default: []string{"snappy"}, Elems: []Elem{enumElem("compressor", "none", "snappy", "zlib", "zstd")}})
	s.Add(&Option{Key: "storage.wiredTiger.engineConfig.directoryForIndexes", Default: []string{"false"}, Elems: []Elem{boolElem("enabled")}})
	s.Add(&Option{Key: "storage.wiredTiger.collectionConfig.blockCompressor", Default: []string{"snappy"}, Elems: []Elem{enumElem("compressor", "none", "snappy", "zlib", "zstd")}})
	s.Add(&Option{Key: "storage.wiredTiger.indexConfig.prefixCompression", Default: []string{"true"}, Elems: []Elem{boolElem("enabled")}})

	// net
	s.Add(&Option{Key: "net.port", Default: []string{"27017"}, Elems: []Elem{intElem("port", 1, 65535)}})
	s.Add(&Option{Key: "net.bindIp", Default: []string{"127.0.0.1"}, Elems: []Elem{stringElem("addresses")}})
	s.Add(&Option{Key: "net.maxIncomingConnections", Default: []string{"65536"}, Elems: []Elem{intMinElem("connections", 1)}})
	s.Add(&Option{Key: "net.wireObjectCheck", Default: []string{"true"}, Elems: []Elem{boolElem("enabled")}})
	s.Add(&Option{Key: "net.ipv6", Default: []string{"false"}, Elems: []Elem{boolElem("enabled")}})

	// processManagement
	s.Add(&Option{Key: "processManagement.windowsService.serviceName", Elems: []Elem{stringElem("name")}})
	s.Add(&Option{Key: "processManagement.windowsService.displayName", Elems: []Elem{stringElem("name")}})
	s.Add(&Option{Key: "processManagement.windowsService.description", Elems: []Elem{stringElem("text")}})

	// security
	s.Add(&Option{Key: "security.authorization", Default: []string{"disabled"}, Elems: []Elem{enumElem("mode", "enabled", "disabled")}})
	s.Add(&Option{Key: "security.javascriptEnabled", Default: []string{"true"}, Elems: []Elem{boolElem("enabled")}})

	// operationProfiling
	s.Add(&Option{Key: "operationProfiling.mode", Default: []string{"off"}, Elems: []Elem{enumElem("mode", "off", "slowOp", "all")}})
	s.Add(&Option{Key: "operationProfiling.slowOpThresholdMs", Default: []string{"100"}, Elems: []Elem{intMinElem("milliseconds", 0)}})
	s.Add(&Option{Key: "operationProfiling.slowOpSampleRate", Default: []string{"1"}, Elems: []Elem{floatElem("rate", 0, 1)}})

	// replication
	s.Add(&Option{Key: "replication.replSetName", Elems: []Elem{stringElem("name")}})

	// setParameter: the knobs we understand get types, the rest of the
	// section stays open.
	s.Add(&Option{Key: "setParameter.enableLocalhostAuthBypass", Elems: []Elem{boolElem("enabled")}})
	s.Add(&Option{Key: "setParameter.authenticationMechanisms", Elems: []Elem{stringElem("mechanisms")}})
	s.Add(&Option{Key: "setParameter.maxLogSizeKB", Elems: []Elem{intMinElem("kilobytes", 0)}})
	s.Add(&Option{Key: "setParameter.diagnosticDataCollectionEnabled", Elems: []Elem{boolElem("enabled")}})

	return s
}

package planio

// ReaderOption customizes a Reader before it parses its first token. As a
// rule, option constructors never panic and ignore nil/invalid inputs.
type ReaderOption func(cfg *readerConfig)

type readerConfig struct {
	schemaVersion  int32
	requireTrailer bool
}

func newReaderConfig(opts ...ReaderOption) *readerConfig {
	cfg := &readerConfig{
		schemaVersion:  SchemaVersion,
		requireTrailer: false,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSchemaVersion overrides the expected preprocessor schema version.
// Defaults to SchemaVersion. A value <= 0 is a no-op.
func WithSchemaVersion(v int32) ReaderOption {
	return func(cfg *readerConfig) {
		if v > 0 {
			cfg.schemaVersion = v
		}
	}
}

// WithTrailerRequired makes the reader fail if the stream ends before a
// begin_SG/end_SG, begin_DTG/end_DTG, begin_CG/end_CG trailer is present.
// By default the trailer is optional: the successor generator and
// causal/transition graphs it encodes are always recomputed locally from
// the operators just read (see succgen.Build, causalgraph.Build,
// causalgraph.BuildAll), so a hand-built or truncated fixture stream that
// omits them still parses. Require it to catch truncated real streams.
func WithTrailerRequired(required bool) ReaderOption {
	return func(cfg *readerConfig) {
		cfg.requireTrailer = required
	}
}

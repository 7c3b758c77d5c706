package metrics

// URL sources recorded by the product URL builder.
const (
	SourceStored  = "stored"  // request path already on the product
	SourceRewrite = "rewrite" // request path found by the rewrite finder
	SourceRoute   = "route"   // synthesized catalog/product/view route
)

// Sink records catalog events.
type Sink interface {
	// RecordTypeLoad is called once each time the type map is populated.
	RecordTypeLoad(count int) error
	// RecordURL is called for every product URL built.
	RecordURL(source string) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordTypeLoad(int) error { return nil }
func (NopSink) RecordURL(string) error   { return nil }

// OrNop returns s, or NopSink when s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return NopSink{}
	}
	return s
}

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordTypeLoad forwards to all sinks, returning the first error encountered.
func (m *MultiSink) RecordTypeLoad(count int) error {
	for _, s := range m.Sinks {
		if err := s.RecordTypeLoad(count); err != nil {
			return err
		}
	}
	return nil
}

// RecordURL forwards to all sinks, returning the first error encountered.
func (m *MultiSink) RecordURL(source string) error {
	for _, s := range m.Sinks {
		if err := s.RecordURL(source); err != nil {
			return err
		}
	}
	return nil
}

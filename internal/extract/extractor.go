package extract

// Extractor converts the raw bytes of one file into a normalized Result.
// Implementations are pure with respect to the call: they share no mutable
// state, trap their own failures, and report them as data rather than
// returning an error, so one malformed file can never abort a batch.
type Extractor interface {
	Extract(data []byte) Result
}

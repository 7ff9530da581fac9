package summarize

// Exports for testing. These allow black-box tests to inject dependencies
// without modifying the public API.

// NewTestSummarizer creates an OpenAISummarizer backed by a mock chat completer.
func NewTestSummarizer(cc chatCompleter, opts ...Option) *OpenAISummarizer {
	return NewOpenAISummarizer(nil, append([]Option{withChatCompleter(cc)}, opts...)...)
}

// ClassifyError exports classifyError for unit testing.
var ClassifyError = classifyError

package blogsmith

// ResponseFormat specifies the shape of a chat response.
type ResponseFormat string

const (
	// ResponseFormatText is free-form text. This is the default.
	ResponseFormatText ResponseFormat = "text"
	// ResponseFormatJSON asks the provider for a single JSON object.
	ResponseFormatJSON ResponseFormat = "json"
)

// Options contains configuration for a chat request.
type Options struct {
	Model          Model
	MaxTokens      int
	Temperature    *float64
	ResponseFormat ResponseFormat
}

// Option is a functional option for configuring chat requests.
type Option func(*Options)

// WithModel sets the model to use for the request.
func WithModel(model Model) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature (0.0 to 2.0).
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// WithJSONResponse asks the provider to answer with a JSON object.
func WithJSONResponse() Option {
	return func(o *Options) {
		o.ResponseFormat = ResponseFormatJSON
	}
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{ResponseFormat: ResponseFormatText}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

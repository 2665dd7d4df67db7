package blogsmith

import "fmt"

// ImageOptions configures one image request. Zero fields leave the choice
// to the provider.
type ImageOptions struct {
	Model   Model
	Size    ImageSize
	Count   int
	Quality ImageQuality
	Style   ImageStyle
	Format  ImageFormat
}

// ImageOption is a functional option for image requests.
type ImageOption func(*ImageOptions)

// WithImageModel overrides the client's default image model.
func WithImageModel(model Model) ImageOption {
	return func(o *ImageOptions) {
		o.Model = model
	}
}

// WithImageSize sets the output dimensions. Imagen maps the size to the
// closest aspect ratio.
func WithImageSize(size ImageSize) ImageOption {
	return func(o *ImageOptions) {
		o.Size = size
	}
}

// WithImageCount sets the number of images. DALL-E 3 only accepts 1.
func WithImageCount(n int) ImageOption {
	return func(o *ImageOptions) {
		o.Count = n
	}
}

// WithImageQuality sets the OpenAI quality level.
func WithImageQuality(q ImageQuality) ImageOption {
	return func(o *ImageOptions) {
		o.Quality = q
	}
}

// WithImageStyle sets the DALL-E 3 style.
func WithImageStyle(s ImageStyle) ImageOption {
	return func(o *ImageOptions) {
		o.Style = s
	}
}

// WithImageFormat asks DALL-E for a URL or an inline base64 payload. URLs
// expire after about an hour; base64 refs survive in stored posts.
func WithImageFormat(f ImageFormat) ImageOption {
	return func(o *ImageOptions) {
		o.Format = f
	}
}

// ApplyImageOptions applies opts to an empty ImageOptions.
func ApplyImageOptions(opts ...ImageOption) *ImageOptions {
	o := &ImageOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ImageSettings are image choices as they appear in configuration. Empty
// fields are left to the provider.
type ImageSettings struct {
	Size    string
	Quality string
	Style   string
	Format  string
}

// Options validates s and returns the options provider understands.
// Quality, style and format are OpenAI-only and are dropped for others.
func (s ImageSettings) Options(provider Provider) ([]ImageOption, error) {
	size, err := parseChoice("size", s.Size, ImageSize1024x1024, ImageSize1024x1792, ImageSize1792x1024)
	if err != nil {
		return nil, err
	}
	quality, err := parseChoice("quality", s.Quality, ImageQualityStandard, ImageQualityHD)
	if err != nil {
		return nil, err
	}
	style, err := parseChoice("style", s.Style, ImageStyleVivid, ImageStyleNatural)
	if err != nil {
		return nil, err
	}
	format, err := parseChoice("format", s.Format, ImageFormatURL, ImageFormatBase64)
	if err != nil {
		return nil, err
	}

	var opts []ImageOption
	if size != "" {
		opts = append(opts, WithImageSize(size))
	}
	if provider != ProviderOpenAI {
		return opts, nil
	}
	if quality != "" {
		opts = append(opts, WithImageQuality(quality))
	}
	if style != "" {
		opts = append(opts, WithImageStyle(style))
	}
	if format != "" {
		opts = append(opts, WithImageFormat(format))
	}
	return opts, nil
}

func parseChoice[T ~string](kind, value string, choices ...T) (T, error) {
	if value == "" {
		return "", nil
	}
	for _, c := range choices {
		if string(c) == value {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown image %s %q", kind, value)
}

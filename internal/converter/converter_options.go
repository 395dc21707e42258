package converter

type Option func(c *Converter)

// WithDPI sets the resolution used when the input has none.
func WithDPI(dpi float64) Option {
	return func(c *Converter) {
		c.dpi = dpi
	}
}

func WithOutDir(dir string) Option {
	return func(c *Converter) {
		c.outDir = dir
	}
}

func WithOverwrite(overwrite bool) Option {
	return func(c *Converter) {
		c.overwrite = overwrite
	}
}

package font

// KerningMode selects how pair kerning is computed.
type KerningMode int

const (
	// KerningTable reads pair adjustments from the font's GPOS or kern table.
	KerningTable KerningMode = iota

	// KerningShaped shapes each pair with HarfBuzz and reports the change in
	// the first glyph's advance. Slower, but honours every GPOS lookup the
	// shaper applies.
	KerningShaped

	// KerningNone disables kerning.
	KerningNone
)

// String returns the string representation of the kerning mode.
func (m KerningMode) String() string {
	switch m {
	case KerningTable:
		return "table"
	case KerningShaped:
		return "shaped"
	case KerningNone:
		return "none"
	default:
		return "unknown"
	}
}

// setConfig holds configuration for a Set.
type setConfig struct {
	kerning KerningMode
}

func defaultSetConfig() setConfig {
	return setConfig{kerning: KerningTable}
}

// Option configures a Set.
type Option func(*setConfig)

// WithKerning selects the kerning mode. The default is KerningTable.
func WithKerning(mode KerningMode) Option {
	return func(c *setConfig) {
		c.kerning = mode
	}
}

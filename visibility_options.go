package microvoxel

// VisibilityOption configures a VisibilityCalculator during creation,
// following gg's ContextOption functional-option idiom.
type VisibilityOption func(*visibilityOptions)

type visibilityOptions struct {
	maskWidth, maskHeight int
	maxFootprintSize      float64
	tileCacheSize         int
}

func defaultVisibilityOptions() visibilityOptions {
	return visibilityOptions{
		maskWidth:        1024,
		maskHeight:       1024,
		maxFootprintSize: 0.3, // spec.md 4.1 reference default
		tileCacheSize:    defaultTileCacheSize,
	}
}

// WithMaskSize overrides the occlusion mask's resolution. Both dimensions
// must be positive multiples of TileSize.
func WithMaskSize(width, height int) VisibilityOption {
	return func(o *visibilityOptions) {
		o.maskWidth = width
		o.maskHeight = height
	}
}

// WithMaxFootprintSize overrides the footprint threshold below which a
// node is drawn rather than recursed into further (spec.md 4.2, "Drawable
// predicate").
func WithMaxFootprintSize(v float64) VisibilityOption {
	return func(o *visibilityOptions) { o.maxFootprintSize = v }
}

// WithVisibilityTileCacheSize overrides the occlusion mask's small-node
// tile cache capacity.
func WithVisibilityTileCacheSize(n int) VisibilityOption {
	return func(o *visibilityOptions) { o.tileCacheSize = n }
}

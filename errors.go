package microvoxel

import (
	"errors"
	"fmt"
)

// ErrMaskDimensions is returned by NewOcclusionMask when either dimension
// is not a positive multiple of TileSize. The reference implementation
// treats this as a warning and proceeds with undefined behavior; microvoxel
// instead refuses construction, since every tile-buffer access below
// assumes the invariant holds.
var ErrMaskDimensions = errors.New("microvoxel: mask dimensions must be positive multiples of TileSize")

// ErrInvalidSideLength is returned by NewVolume when the requested side
// length exceeds 2^31, the maximum root height the index encoding supports.
var ErrInvalidSideLength = errors.New("microvoxel: volume side length log2 must be in [0, 31]")

func maskDimensionsError(width, height int) error {
	return fmt.Errorf("%w: got %dx%d", ErrMaskDimensions, width, height)
}

func invalidSideLengthError(heightLog2 int) error {
	return fmt.Errorf("%w: got 2^%d", ErrInvalidSideLength, heightLog2)
}

package transform

import "codeberg.org/mutker/hwcaps/internal/backend"

// ClampHSIC moves every component of h into its range. The manager never
// applies this implicitly; callers that want in-range writes use it before
// SetPictureAdjustment.
func ClampHSIC(h backend.HSIC, ranges backend.PictureAdjustmentRanges) backend.HSIC {
	return backend.HSIC{
		Hue:                 ranges.Hue.Clamp(h.Hue),
		Saturation:          ranges.Saturation.Clamp(h.Saturation),
		Intensity:           ranges.Intensity.Clamp(h.Intensity),
		Contrast:            ranges.Contrast.Clamp(h.Contrast),
		SaturationThreshold: ranges.SaturationThreshold.Clamp(h.SaturationThreshold),
	}
}

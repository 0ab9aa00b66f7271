package imaging

import (
	"image"

	"github.com/nfnt/resize"
)

const (
	// ImageSize is the width and height the classifier expects
	ImageSize = 128
	// Channels is the number of color channels fed to the classifier
	Channels = 3
)

// TensorLen is the flat length of one normalized input tensor,
// batch dimension of 1 included.
const TensorLen = 1 * ImageSize * ImageSize * Channels

// Normalize converts a decoded image to the flat float32 tensor the
// classifier expects: resized to exactly ImageSize x ImageSize with
// bilinear interpolation (aspect ratio is not preserved), RGB channel
// order, values scaled to [0,1], NHWC layout with a leading batch
// dimension of 1.
func Normalize(img image.Image) []float32 {
	resized := resize.Resize(ImageSize, ImageSize, img, resize.Bilinear)
	bounds := resized.Bounds()

	inputData := make([]float32, TensorLen)
	i := 0
	for y := 0; y < ImageSize; y++ {
		for x := 0; x < ImageSize; x++ {
			// RGBA returns 16-bit channel values, scale by 65535
			// to land in [0,1]
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			inputData[i] = float32(r) / 65535.0
			inputData[i+1] = float32(g) / 65535.0
			inputData[i+2] = float32(b) / 65535.0
			i += Channels
		}
	}
	return inputData
}

package model

import "github.com/tarushi-31/smartOffice-pro/internal/imaging"

type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

// DefaultMetadata describes the face-mask classifier produced by the
// training pipeline: a (1,128,128,3) input and a softmax pair output.
func DefaultMetadata() Metadata {
	return Metadata{
		InputShape:  []int64{1, imaging.ImageSize, imaging.ImageSize, imaging.Channels},
		OutputShape: []int64{1, 2},
		Classes:     []string{"Not Wearing Mask", "Wearing Mask"},
		ImageSize:   imaging.ImageSize,
	}
}

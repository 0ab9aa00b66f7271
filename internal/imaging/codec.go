package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"
)

// ErrDecode reports that a staged image could not be read or parsed
var ErrDecode = errors.New("unable to decode image")

// Decode reads the image stored at the given path. A missing file,
// an empty file, or bytes that are not a supported raster format
// (png, jpeg, gif, webp) all yield an ErrDecode-wrapped error.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

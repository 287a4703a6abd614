package upload

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

var allowedTypes = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type errFormatMismatch struct {
	want, got string
}

func (e errFormatMismatch) Error() string {
	return "image is " + e.got + ", declared " + e.want
}

// checkImage decodes the image header and requires it to match the
// declared format.
func checkImage(r io.Reader, format string) error {
	_, got, err := image.DecodeConfig(r)
	if err != nil {
		return err
	}
	if got != format {
		return errFormatMismatch{want: format, got: got}
	}
	return nil
}

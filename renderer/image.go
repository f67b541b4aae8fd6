package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// Wrap a flat RGB frame buffer into an RGBA image.
func FrameImage(frameBuffer []uint8, frameW, frameH uint32) (*image.RGBA, error) {
	if uint64(len(frameBuffer)) != 3*uint64(frameW)*uint64(frameH) {
		return nil, fmt.Errorf("renderer: expected frame buffer of %d bytes for a %dx%d frame; got %d", 3*frameW*frameH, frameW, frameH, len(frameBuffer))
	}

	img := image.NewRGBA(image.Rect(0, 0, int(frameW), int(frameH)))
	for rOffset, wOffset := 0, 0; rOffset < len(frameBuffer); rOffset, wOffset = rOffset+3, wOffset+4 {
		img.Pix[wOffset] = frameBuffer[rOffset]
		img.Pix[wOffset+1] = frameBuffer[rOffset+1]
		img.Pix[wOffset+2] = frameBuffer[rOffset+2]
		img.Pix[wOffset+3] = 255
	}

	return img, nil
}

// Encode the frame buffer as a PNG image and write it to filename.
func SaveFrameBuffer(frameBuffer []uint8, frameW, frameH uint32, filename string) error {
	img, err := FrameImage(frameBuffer, frameW, frameH)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	err = png.Encode(f, img)
	if err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

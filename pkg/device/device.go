// Package device abstracts the host capabilities screens touch:
// location lookup for customer addresses and image picking for expense
// receipts. Real shells plug in platform implementations; the CLI and
// tests use the stubs.
package device

import (
	"context"
	"os"
	"path/filepath"

	"github.com/tijarah-io/tijarah/pkg/errors"
)

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// LocationProvider resolves the device's current position. A denied
// permission surfaces as ErrLocationPermission, not a crash.
type LocationProvider interface {
	Current(ctx context.Context) (Coordinates, *errors.Errno)
}

// Image is a picked receipt photo.
type Image struct {
	Name    string
	Content []byte
}

// ImagePicker obtains an image from the host. Cancellation returns
// ErrCancelled; a denied media permission returns ErrMediaPermission.
type ImagePicker interface {
	Pick(ctx context.Context) (Image, *errors.Errno)
}

// FixedLocation always reports the same coordinates.
type FixedLocation struct {
	Point Coordinates
}

// Current implements LocationProvider.
func (f FixedLocation) Current(context.Context) (Coordinates, *errors.Errno) {
	return f.Point, nil
}

// DeniedLocation always reports a denied permission.
type DeniedLocation struct{}

// Current implements LocationProvider.
func (DeniedLocation) Current(context.Context) (Coordinates, *errors.Errno) {
	return Coordinates{}, errors.ErrLocationPermission
}

// FilePicker reads an image from a path. It is the picker the CLI
// wires for expense receipts.
type FilePicker struct {
	Path string
}

// Pick implements ImagePicker.
func (f FilePicker) Pick(context.Context) (Image, *errors.Errno) {
	if f.Path == "" {
		return Image{}, errors.ErrCancelled
	}
	content, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsPermission(err) {
			return Image{}, errors.ErrMediaPermission.WithCause(err)
		}
		return Image{}, errors.ErrCancelled.WithCause(err)
	}
	return Image{Name: filepath.Base(f.Path), Content: content}, nil
}

// CancelledPicker always reports a user cancellation.
type CancelledPicker struct{}

// Pick implements ImagePicker.
func (CancelledPicker) Pick(context.Context) (Image, *errors.Errno) {
	return Image{}, errors.ErrCancelled
}

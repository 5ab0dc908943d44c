package form

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mkhera/voluntree-cli/pkg/core/model"
)

// Images returns both image lists: the stored images carried over from an
// edit session and the newly attached files. They keep separate index
// spaces and are never merged.
func (f *Form) Images() (existing []model.Image, pending []model.PendingImage) {
	existing = append([]model.Image(nil), f.payload.ExistingImages...)
	pending = append([]model.PendingImage(nil), f.payload.NewImages...)
	return existing, pending
}

// AddImages appends newly attached files. If the batch would push the total
// (stored + new) above MaxImages the whole batch is rejected and nothing
// changes.
func (f *Form) AddImages(images []model.PendingImage) error {
	if f.payload.ImageCount()+len(images) > MaxImages {
		return ErrTooManyImages
	}
	f.payload.NewImages = append(f.payload.NewImages, images...)
	return nil
}

// AddImageFiles reads local files into pending images and attaches them,
// under the same count bound as AddImages.
func (f *Form) AddImageFiles(paths []string) error {
	images := make([]model.PendingImage, 0, len(paths))
	for _, path := range paths {
		img, err := ReadImageFile(path)
		if err != nil {
			return err
		}
		images = append(images, img)
	}
	return f.AddImages(images)
}

// RemoveExistingImage removes a stored image by its index within the
// existing-image list.
func (f *Form) RemoveExistingImage(index int) error {
	if index < 0 || index >= len(f.payload.ExistingImages) {
		return fmt.Errorf("no stored photo at position %d", index+1)
	}
	f.payload.ExistingImages = append(f.payload.ExistingImages[:index], f.payload.ExistingImages[index+1:]...)
	return nil
}

// RemoveNewImage removes a newly attached file by its index within the
// new-image list.
func (f *Form) RemoveNewImage(index int) error {
	if index < 0 || index >= len(f.payload.NewImages) {
		return fmt.Errorf("no attached photo at position %d", index+1)
	}
	f.payload.NewImages = append(f.payload.NewImages[:index], f.payload.NewImages[index+1:]...)
	return nil
}

// ReadImageFile loads a local file into a pending image. The content type
// comes from the file extension when it maps to an image type; any other
// extension falls back to sniffing the data, so an oddly named file still
// goes on the wire with an image Content-Type. The LocalID is the entry's
// only handle until the server assigns asset identifiers on submit.
func ReadImageFile(path string) (model.PendingImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PendingImage{}, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(data)
	}

	return model.PendingImage{
		LocalID:     uuid.NewString(),
		FileName:    filepath.Base(path),
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

package opportunityclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/mkhera/voluntree-cli/pkg/core/model"
)

// imagesFieldName is the shared multipart field the server reads new image
// files from; it determines their order by submission order.
const imagesFieldName = "images"

// existingImagesFieldName carries the opaque references for images that are
// already stored server-side, one JSON-stringified token per part.
const existingImagesFieldName = "existingImages"

// encodePayload serializes a full opportunity payload to multipart/form-data:
// scalars stringified, arrays expanded as repeated keys of the same name,
// existing images as JSON tokens, new image files as binary parts. A nil
// MaximumDuration is omitted entirely so the server can tell "no upper bound"
// from zero.
func encodePayload(p *model.OpportunityPayload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":           p.Title,
		"description":     p.Description,
		"volunteerIn":     p.VolunteerIn,
		"expectations":    p.Expectations,
		"aboutLocation":   p.AboutLocation,
		"state":           p.State,
		"district":        p.District,
		"location":        p.Location,
		"propertyName":    p.PropertyName,
		"propertyAddress": p.PropertyAddress,
		"businessLink":    p.BusinessLink,
		"meals":           p.Meals,
		"volunteerNeeded": strconv.Itoa(p.VolunteerNeeded),
		"workingHours":    strconv.Itoa(p.WorkingHours),
		"daysOff":         strconv.Itoa(p.DaysOff),
		"minimumDuration": strconv.Itoa(p.MinimumDuration),
		"safeForFemale":   strconv.FormatBool(p.SafeForFemale),
		"status":          string(p.Status),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	if p.MaximumDuration != nil {
		if err := w.WriteField("maximumDuration", strconv.Itoa(*p.MaximumDuration)); err != nil {
			return nil, "", fmt.Errorf("failed to write field maximumDuration: %w", err)
		}
	}

	arrays := map[string][]string{
		"propertyType": p.PropertyType,
		"roomType":     p.RoomType,
		"amenities":    p.Amenities,
		"transport":    p.Transport,
		"skills":       p.Skills,
	}
	for name, values := range arrays {
		for _, value := range values {
			if err := w.WriteField(name, value); err != nil {
				return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
			}
		}
	}

	for _, img := range p.ExistingImages {
		token, err := json.Marshal(img)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode existing image reference: %w", err)
		}
		if err := w.WriteField(existingImagesFieldName, string(token)); err != nil {
			return nil, "", fmt.Errorf("failed to write existing image reference: %w", err)
		}
	}

	for _, img := range p.NewImages {
		part, err := w.CreatePart(imagePartHeader(img))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write image %s: %w", img.FileName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// imagePartHeader builds the part header for a new image file, preserving the
// file's MIME type instead of the octet-stream default.
func imagePartHeader(img model.PendingImage) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		imagesFieldName, escapeQuotes(img.FileName)))
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

package form

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkhera/voluntree-cli/pkg/core/catalog"
)

// Draft is the yaml file a host writes a listing in before submitting it.
// Image entries are local file paths; in edit mode they are added on top of
// the listing's stored photos.
type Draft struct {
	Title         string `yaml:"title,omitempty"`
	Description   string `yaml:"description,omitempty"`
	VolunteerIn   string `yaml:"volunteerIn,omitempty"`
	Expectations  string `yaml:"expectations,omitempty"`
	AboutLocation string `yaml:"aboutLocation,omitempty"`

	State           string `yaml:"state,omitempty"`
	District        string `yaml:"district,omitempty"`
	Location        string `yaml:"location,omitempty"`
	PropertyName    string `yaml:"propertyName,omitempty"`
	PropertyAddress string `yaml:"propertyAddress,omitempty"`
	BusinessLink    string `yaml:"businessLink,omitempty"`

	PropertyType []string `yaml:"propertyType,omitempty"`
	RoomType     []string `yaml:"roomType,omitempty"`
	Meals        string   `yaml:"meals,omitempty"`
	Amenities    []string `yaml:"amenities,omitempty"`
	Transport    []string `yaml:"transport,omitempty"`
	Skills       []string `yaml:"skills,omitempty"`

	VolunteerNeeded *int `yaml:"volunteerNeeded,omitempty"`
	WorkingHours    *int `yaml:"workingHours,omitempty"`
	DaysOff         *int `yaml:"daysOff,omitempty"`
	MinimumDuration *int `yaml:"minimumDuration,omitempty"`
	MaximumDuration *int `yaml:"maximumDuration,omitempty"`

	SafeForFemale *bool  `yaml:"safeForFemale,omitempty"`
	Status        string `yaml:"status,omitempty"`

	Images []string `yaml:"images,omitempty"`
}

// LoadDraft reads and parses a draft yaml file.
func LoadDraft(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft file: %w", err)
	}

	var draft Draft
	if err := yaml.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to parse draft file: %w", err)
	}
	return &draft, nil
}

// ApplyDraft copies the draft's set fields onto the form. In edit mode an
// omitted field keeps the loaded value; a set field replaces it, and set tag
// lists replace the whole list. Image paths are attached as new files under
// the usual count bound.
func (f *Form) ApplyDraft(d *Draft) error {
	scalars := map[string]string{
		"title":           d.Title,
		"description":     d.Description,
		"volunteerIn":     d.VolunteerIn,
		"expectations":    d.Expectations,
		"aboutLocation":   d.AboutLocation,
		"state":           d.State,
		"district":        d.District,
		"location":        d.Location,
		"propertyName":    d.PropertyName,
		"propertyAddress": d.PropertyAddress,
		"businessLink":    d.BusinessLink,
		"status":          d.Status,
	}
	for name, value := range scalars {
		if value == "" {
			continue
		}
		if err := f.SetField(name, value); err != nil {
			return err
		}
	}

	if d.Meals != "" {
		if err := f.SetMeal(d.Meals); err != nil {
			return err
		}
	}

	tags := map[string][]string{
		"propertyType": d.PropertyType,
		"roomType":     d.RoomType,
		"amenities":    d.Amenities,
		"transport":    d.Transport,
		"skills":       d.Skills,
	}
	for field, values := range tags {
		if values == nil {
			continue
		}
		if !catalog.ValidValues(field, values) {
			return fmt.Errorf("%s contains an unrecognized option", field)
		}
		target, _ := f.tagField(field)
		*target = append([]string(nil), values...)
	}

	ints := map[string]*int{
		"volunteerNeeded": d.VolunteerNeeded,
		"workingHours":    d.WorkingHours,
		"daysOff":         d.DaysOff,
		"minimumDuration": d.MinimumDuration,
		"maximumDuration": d.MaximumDuration,
	}
	for name, value := range ints {
		if value == nil {
			continue
		}
		if err := f.SetField(name, fmt.Sprintf("%d", *value)); err != nil {
			return err
		}
	}

	if d.SafeForFemale != nil {
		f.payload.SafeForFemale = *d.SafeForFemale
	}

	if len(d.Images) > 0 {
		if err := f.AddImageFiles(d.Images); err != nil {
			return err
		}
	}

	return nil
}

// Package form owns the mutable state of an opportunity listing while a host
// is composing it: every field, the five multi-select tag sets, the
// single-value meals choice, and the two image lists (stored vs newly
// attached). All mutation goes through the operations here so the submission
// invariants hold no matter which command drives the form.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mkhera/voluntree-cli/pkg/core/catalog"
	"github.com/mkhera/voluntree-cli/pkg/core/model"
)

// MaxImages and MinImages bound the total photo count (stored + new) a
// submission may carry.
const (
	MinImages = 1
	MaxImages = 3
)

// ErrTooManyImages rejects an attachment batch that would push the total
// above MaxImages. The form state is left unchanged.
var ErrTooManyImages = fmt.Errorf("an opportunity can have at most %d photos", MaxImages)

// ErrImageCount rejects a submission whose total photo count is outside
// [MinImages, MaxImages]. No network call is made.
var ErrImageCount = fmt.Errorf("an opportunity needs between %d and %d photos", MinImages, MaxImages)

// Mode distinguishes creating a new listing from editing an existing one.
// It is fixed when the form is built and never changes afterwards.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Form is the in-progress listing. Zero values come from New or NewEdit;
// fields are mutated through SetField, ToggleTag, SetMeal and the image
// operations.
type Form struct {
	mode   Mode
	editID string

	payload model.OpportunityPayload
}

// New creates an empty form in create mode with the defaults the platform
// suggests for a new listing.
func New() *Form {
	return &Form{
		mode: ModeCreate,
		payload: model.OpportunityPayload{
			VolunteerNeeded: 1,
			MinimumDuration: 1,
			Status:          model.StatusActive,
		},
	}
}

// NewEdit creates a form in edit mode pre-filled from an already-fetched
// listing. The listing's stored images become the form's existing-image list.
func NewEdit(opp *model.Opportunity) *Form {
	f := &Form{
		mode:   ModeEdit,
		editID: opp.ID,
		payload: model.OpportunityPayload{
			Title:           opp.Title,
			Description:     opp.Description,
			VolunteerIn:     opp.VolunteerIn,
			Expectations:    opp.Expectations,
			AboutLocation:   opp.AboutLocation,
			State:           opp.State,
			District:        opp.District,
			Location:        opp.Location,
			PropertyName:    opp.PropertyName,
			PropertyAddress: opp.PropertyAddress,
			BusinessLink:    opp.BusinessLink,
			PropertyType:    append([]string(nil), opp.PropertyType...),
			RoomType:        append([]string(nil), opp.RoomType...),
			Meals:           opp.Meals,
			Amenities:       append([]string(nil), opp.Amenities...),
			Transport:       append([]string(nil), opp.Transport...),
			Skills:          append([]string(nil), opp.Skills...),
			VolunteerNeeded: opp.VolunteerNeeded,
			WorkingHours:    opp.WorkingHours,
			DaysOff:         opp.DaysOff,
			MinimumDuration: opp.MinimumDuration,
			SafeForFemale:   opp.SafeForFemale,
			Status:          opp.Status,
			ExistingImages:  append([]model.Image(nil), opp.Images...),
		},
	}
	if opp.MaximumDuration != nil {
		max := *opp.MaximumDuration
		f.payload.MaximumDuration = &max
	}
	return f
}

// Mode reports whether the form creates or edits.
func (f *Form) Mode() Mode { return f.mode }

// EditID returns the identifier of the listing being edited, empty in create
// mode.
func (f *Form) EditID() string { return f.editID }

// SetField is the single generic change handler every scalar field goes
// through. It branches on the field's kind: boolean fields parse checkbox
// values, numeric fields parse integers with an empty string falling back to
// zero, everything else takes the raw string. Unknown field names are an
// error.
func (f *Form) SetField(name, value string) error {
	if target, ok := f.stringField(name); ok {
		*target = value
		return nil
	}

	if target, ok := f.boolField(name); ok {
		*target = parseCheckbox(value)
		return nil
	}

	if name == "maximumDuration" {
		if value == "" {
			f.payload.MaximumDuration = nil
			return nil
		}
		n, err := parseNumeric(value)
		if err != nil {
			return fmt.Errorf("invalid value for maximumDuration: %w", err)
		}
		f.payload.MaximumDuration = &n
		return nil
	}

	if target, ok := f.intField(name); ok {
		n, err := parseNumeric(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
		*target = n
		return nil
	}

	if name == "status" {
		switch model.Status(value) {
		case model.StatusActive, model.StatusInactive, model.StatusDraft:
			f.payload.Status = model.Status(value)
			return nil
		}
		return fmt.Errorf("invalid status %q", value)
	}

	return fmt.Errorf("unknown field %q", name)
}

// ToggleTag flips a value's membership in one of the five multi-select tag
// fields: present values are removed, absent values appended. The same
// contract applies to all tag fields.
func (f *Form) ToggleTag(field, value string) error {
	target, ok := f.tagField(field)
	if !ok {
		return fmt.Errorf("unknown tag field %q", field)
	}
	if !catalog.ValidValues(field, []string{value}) {
		return fmt.Errorf("%q is not a recognized %s option", value, field)
	}

	for i, existing := range *target {
		if existing == value {
			*target = append((*target)[:i], (*target)[i+1:]...)
			return nil
		}
	}
	*target = append(*target, value)
	return nil
}

// SetMeal selects the meal plan. Meals has radio semantics: exactly one value
// at a time, even though the catalog is presented as a grid of options.
func (f *Form) SetMeal(value string) error {
	if !catalog.ValidMeal(value) {
		return fmt.Errorf("%q is not a recognized meal option", value)
	}
	f.payload.Meals = value
	return nil
}

// Payload returns a copy of the submission object: every field plus both
// image lists.
func (f *Form) Payload() *model.OpportunityPayload {
	p := f.payload
	p.PropertyType = append([]string(nil), f.payload.PropertyType...)
	p.RoomType = append([]string(nil), f.payload.RoomType...)
	p.Amenities = append([]string(nil), f.payload.Amenities...)
	p.Transport = append([]string(nil), f.payload.Transport...)
	p.Skills = append([]string(nil), f.payload.Skills...)
	p.ExistingImages = append([]model.Image(nil), f.payload.ExistingImages...)
	p.NewImages = append([]model.PendingImage(nil), f.payload.NewImages...)
	if f.payload.MaximumDuration != nil {
		max := *f.payload.MaximumDuration
		p.MaximumDuration = &max
	}
	return &p
}

// fieldRules mirrors the payload for struct validation.
type fieldRules struct {
	Description     string `validate:"required"`
	State           string `validate:"required"`
	District        string `validate:"required"`
	PropertyName    string `validate:"required"`
	BusinessLink    string `validate:"omitempty,url"`
	Meals           string `validate:"required"`
	VolunteerNeeded int    `validate:"min=1"`
	WorkingHours    int    `validate:"min=0,max=24"`
	DaysOff         int    `validate:"min=0,max=6"`
	MinimumDuration int    `validate:"min=1"`
	MaximumDuration *int   `validate:"omitempty,min=1"`
}

var validate = validator.New()

// Validate checks the submission invariants. The image-count bound is checked
// first so a violating submission is rejected before anything else happens.
func (f *Form) Validate() error {
	total := f.payload.ImageCount()
	if total < MinImages || total > MaxImages {
		return ErrImageCount
	}

	rules := fieldRules{
		Description:     strings.TrimSpace(f.payload.Description),
		State:           f.payload.State,
		District:        f.payload.District,
		PropertyName:    f.payload.PropertyName,
		BusinessLink:    f.payload.BusinessLink,
		Meals:           f.payload.Meals,
		VolunteerNeeded: f.payload.VolunteerNeeded,
		WorkingHours:    f.payload.WorkingHours,
		DaysOff:         f.payload.DaysOff,
		MinimumDuration: f.payload.MinimumDuration,
		MaximumDuration: f.payload.MaximumDuration,
	}
	if err := validate.Struct(rules); err != nil {
		return fmt.Errorf("listing validation failed: %w", err)
	}

	if !catalog.ValidMeal(f.payload.Meals) {
		return fmt.Errorf("%q is not a recognized meal option", f.payload.Meals)
	}
	for _, field := range catalog.TagFields {
		target, _ := f.tagField(field)
		if !catalog.ValidValues(field, *target) {
			return fmt.Errorf("%s contains an unrecognized option", field)
		}
	}

	if f.payload.MaximumDuration != nil && *f.payload.MaximumDuration < f.payload.MinimumDuration {
		return errors.New("maximum duration cannot be shorter than minimum duration")
	}

	return nil
}

func (f *Form) stringField(name string) (*string, bool) {
	switch name {
	case "title":
		return &f.payload.Title, true
	case "description":
		return &f.payload.Description, true
	case "volunteerIn":
		return &f.payload.VolunteerIn, true
	case "expectations":
		return &f.payload.Expectations, true
	case "aboutLocation":
		return &f.payload.AboutLocation, true
	case "state":
		return &f.payload.State, true
	case "district":
		return &f.payload.District, true
	case "location":
		return &f.payload.Location, true
	case "propertyName":
		return &f.payload.PropertyName, true
	case "propertyAddress":
		return &f.payload.PropertyAddress, true
	case "businessLink":
		return &f.payload.BusinessLink, true
	}
	return nil, false
}

func (f *Form) boolField(name string) (*bool, bool) {
	if name == "safeForFemale" {
		return &f.payload.SafeForFemale, true
	}
	return nil, false
}

func (f *Form) intField(name string) (*int, bool) {
	switch name {
	case "volunteerNeeded":
		return &f.payload.VolunteerNeeded, true
	case "workingHours":
		return &f.payload.WorkingHours, true
	case "daysOff":
		return &f.payload.DaysOff, true
	case "minimumDuration":
		return &f.payload.MinimumDuration, true
	}
	return nil, false
}

func (f *Form) tagField(name string) (*[]string, bool) {
	switch name {
	case "propertyType":
		return &f.payload.PropertyType, true
	case "roomType":
		return &f.payload.RoomType, true
	case "amenities":
		return &f.payload.Amenities, true
	case "transport":
		return &f.payload.Transport, true
	case "skills":
		return &f.payload.Skills, true
	}
	return nil, false
}

// parseCheckbox interprets checkbox-style values as booleans.
func parseCheckbox(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "yes", "1", "checked":
		return true
	}
	return false
}

// parseNumeric parses an integer field value, treating the empty string as 0.
func parseNumeric(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	return strconv.Atoi(trimmed)
}

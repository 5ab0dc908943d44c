package model

// Status controls whether an opportunity is visible to volunteers.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDraft    Status = "draft"
)

// Image is a stored listing photo. Images returned by the server carry a
// remote URL plus the asset identifiers needed to reference or delete them;
// they are immutable once fetched.
type Image struct {
	URL      string `json:"url"`
	AssetID  string `json:"assetId,omitempty"`
	PublicID string `json:"publicId,omitempty"`
}

// Opportunity is a listing posted by a host describing a volunteer exchange.
// ID is assigned by the server on first create; the client never generates one.
type Opportunity struct {
	ID            string `json:"_id"`
	Title         string `json:"title,omitempty"`
	Description   string `json:"description"`
	VolunteerIn   string `json:"volunteerIn"`
	Expectations  string `json:"expectations"`
	AboutLocation string `json:"aboutLocation"`

	State           string `json:"state"`
	District        string `json:"district"`
	Location        string `json:"location"`
	PropertyName    string `json:"propertyName"`
	PropertyAddress string `json:"propertyAddress"`
	BusinessLink    string `json:"businessLink"`

	PropertyType []string `json:"propertyType"`
	RoomType     []string `json:"roomType"`
	Meals        string   `json:"meals"`
	Amenities    []string `json:"amenities"`
	Transport    []string `json:"transport"`
	Skills       []string `json:"skills"`

	VolunteerNeeded int  `json:"volunteerNeeded"`
	WorkingHours    int  `json:"workingHours"`
	DaysOff         int  `json:"daysOff"`
	MinimumDuration int  `json:"minimumDuration"`
	MaximumDuration *int `json:"maximumDuration,omitempty"`

	SafeForFemale bool   `json:"safeForFemale"`
	Status        Status `json:"status"`

	Images []Image `json:"images"`

	// Server-owned fields, never sent by the client.
	ApplicationsCount int    `json:"applicationsCount,omitempty"`
	CreatedAt         string `json:"createdAt,omitempty"`
	UpdatedAt         string `json:"updatedAt,omitempty"`
}

// IsActive reports whether the listing is visible to volunteers.
func (o *Opportunity) IsActive() bool {
	return o.Status == StatusActive
}

// ToggledStatus returns the status the listing would have after an
// active/inactive flip. Drafts activate.
func (o *Opportunity) ToggledStatus() Status {
	if o.Status == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

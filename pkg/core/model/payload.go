package model

// PendingImage is a locally attached photo that has not been uploaded yet.
// It gains asset identifiers only once a submit response assigns them; until
// then LocalID (client-generated) is its only stable handle.
type PendingImage struct {
	LocalID     string
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// OpportunityPayload is the full submission object assembled from a form:
// every field plus the carried-over existing images and the newly attached
// files. Create and edit both send it as a complete replacement; the server
// never sees a partial form.
type OpportunityPayload struct {
	Title         string
	Description   string
	VolunteerIn   string
	Expectations  string
	AboutLocation string

	State           string
	District        string
	Location        string
	PropertyName    string
	PropertyAddress string
	BusinessLink    string

	PropertyType []string
	RoomType     []string
	Meals        string
	Amenities    []string
	Transport    []string
	Skills       []string

	VolunteerNeeded int
	WorkingHours    int
	DaysOff         int
	MinimumDuration int
	// MaximumDuration nil means "no upper bound" and must be omitted from the
	// wire format entirely, never sent as zero.
	MaximumDuration *int

	SafeForFemale bool
	Status        Status

	ExistingImages []Image
	NewImages      []PendingImage
}

// ImageCount is the total the 1–3 submission invariant is checked against.
func (p *OpportunityPayload) ImageCount() int {
	return len(p.ExistingImages) + len(p.NewImages)
}

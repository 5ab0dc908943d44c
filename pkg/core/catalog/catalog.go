// Package catalog holds the fixed option sets the marketplace uses to
// classify opportunities. The lists are static application data shared with
// the platform's other clients; they are never fetched from the server and
// are not user-editable.
package catalog

// PropertyTypes lists the kinds of property a host can describe.
var PropertyTypes = []string{
	"Homestay",
	"Hostel",
	"Guesthouse",
	"Farmstay",
	"Eco Lodge",
	"Campsite",
	"Community Project",
	"School",
}

// RoomTypes lists the sleeping arrangements a host can offer.
var RoomTypes = []string{
	"Private Room",
	"Shared Room",
	"Dormitory",
	"Tent",
	"Family Room",
}

// Meals lists the meal plans; an opportunity carries exactly one.
var Meals = []string{
	"No Meals",
	"1 Meal Per Day",
	"2 Meals Per Day",
	"3 Meals Per Day",
}

// Amenities lists the facilities a host can advertise.
var Amenities = []string{
	"Wifi",
	"Hot Water",
	"Kitchen Access",
	"Laundry",
	"Workspace",
	"Parking",
	"Garden",
	"Pets Allowed",
}

// Transport lists pickup/transfer options a host can offer.
var Transport = []string{
	"Airport Pickup",
	"Bus Station Pickup",
	"Bicycle Provided",
	"Local Transport Covered",
}

// Skills lists the kinds of help a host can ask volunteers for.
var Skills = []string{
	"Gardening",
	"Cooking",
	"Teaching",
	"Childcare",
	"Animal Care",
	"Reception",
	"Housekeeping",
	"Farming",
	"Construction",
	"Social Media",
	"Photography",
	"Web Development",
}

// contains reports whether value is one of the catalog options.
func contains(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}

// ValidMeal reports whether value is a recognized meal plan.
func ValidMeal(value string) bool {
	return contains(Meals, value)
}

// ValidValues reports whether every value belongs to the named tag catalog.
// Unknown field names report false.
func ValidValues(field string, values []string) bool {
	options, ok := tagCatalogs[field]
	if !ok {
		return false
	}
	for _, v := range values {
		if !contains(options, v) {
			return false
		}
	}
	return true
}

// TagFields names the five multi-select classification fields, in the order
// the form presents them.
var TagFields = []string{"propertyType", "roomType", "amenities", "transport", "skills"}

var tagCatalogs = map[string][]string{
	"propertyType": PropertyTypes,
	"roomType":     RoomTypes,
	"amenities":    Amenities,
	"transport":    Transport,
	"skills":       Skills,
}

package identity

// first and last name samples, kept to common English names
var firstNames = []string{
	"Oliver", "George", "Harry", "Jack", "Noah",
	"Olivia", "Amelia", "Isla", "Ava", "Mia",
	"Liam", "Emma", "Sophia", "Charlotte", "James",
	"Benjamin", "Lucas", "Henry", "Ethan", "Grace",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones",
	"Miller", "Davis", "Garcia", "Rodriguez", "Wilson",
	"Taylor", "Thomas", "Moore", "Martin", "Jackson",
}

// countries offered in the signup form's country dropdown.
var countries = []string{
	"United States",
	"United Kingdom",
	"Canada",
	"Australia",
	"Ireland",
	"New Zealand",
}

// DefaultCountry is preselected when the user makes no choice.
const DefaultCountry = "United States"

// Countries returns a copy of the supported country list in display order.
func Countries() []string {
	return append([]string(nil), countries...)
}

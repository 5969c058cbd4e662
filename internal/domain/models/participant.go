package models

// Participant holds per-person form fields. The first participant of a
// booking is the designated contact and carries phone/email.
type Participant struct {
	FullName    string `json:"full_name"`
	Role        Role   `json:"role"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	NationalID  string `json:"national_id,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	IsContact   bool   `json:"is_contact"`
}

// IDRequirement controls who must supply a national-ID field.
type IDRequirement string

const (
	IDNotRequired    IDRequirement = "none"
	IDContactOnly    IDRequirement = "contact"
	IDAdultsRequired IDRequirement = "adults"
)

// ParticipantRules parameterizes validation per booking flow instead of
// duplicating it for tours, flights and activities.
type ParticipantRules struct {
	NationalID IDRequirement `json:"national_id"`
}

// RulesFor returns the participant rules observed per item type: flights
// require an ID for every adult passenger, tours and activities do not.
func RulesFor(t ItemType) ParticipantRules {
	if t == ItemTypeFlight {
		return ParticipantRules{NationalID: IDAdultsRequired}
	}
	return ParticipantRules{NationalID: IDNotRequired}
}

package services

import (
	"fmt"
	"strings"

	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
	"travelbooking/internal/utils"
)

// InitParticipants builds an empty form entry per traveller, ordered by
// role. The first participant is the contact person.
func InitParticipants(counts map[models.Role]int) []models.Participant {
	out := []models.Participant{}
	for _, role := range models.RoleOrder {
		for i := 0; i < counts[role]; i++ {
			out = append(out, models.Participant{Role: role})
		}
	}
	if len(out) > 0 {
		out[0].IsContact = true
	}
	return out
}

// UpdateParticipant returns a copy of the list with one field of one
// entry changed. The input slice is never mutated.
func UpdateParticipant(list []models.Participant, index int, field, value string) ([]models.Participant, error) {
	if index < 0 || index >= len(list) {
		return nil, domain.ValidationError{Field: "index", Msg: "participant index out of range"}
	}

	out := make([]models.Participant, len(list))
	copy(out, list)
	p := &out[index]

	switch field {
	case "full_name":
		p.FullName = utils.NormalizeSpace(value)
	case "gender":
		p.Gender = utils.TrimOrEmpty(value)
	case "date_of_birth":
		p.DateOfBirth = utils.TrimOrEmpty(value)
	case "national_id":
		p.NationalID = utils.TrimOrEmpty(value)
	case "phone":
		p.Phone = utils.TrimOrEmpty(value)
	case "email":
		p.Email = utils.TrimOrEmpty(value)
	default:
		return nil, domain.ValidationError{Field: "field", Msg: "unknown participant field " + field}
	}
	return out, nil
}

// ValidateParticipants checks the filled form against the rules of the
// item type being booked. The contact person needs reachable details;
// everyone needs identity basics; national IDs depend on the rules.
func ValidateParticipants(list []models.Participant, rules models.ParticipantRules) error {
	if len(list) == 0 {
		return domain.ValidationError{Field: "participants", Msg: "at least one participant is required"}
	}

	contactSeen := false
	for i, p := range list {
		label := fmt.Sprintf("participants[%d]", i)

		if strings.TrimSpace(p.FullName) == "" {
			return domain.ValidationError{Field: label + ".full_name", Msg: "full name is required"}
		}
		if strings.TrimSpace(p.Gender) == "" {
			return domain.ValidationError{Field: label + ".gender", Msg: "gender is required"}
		}
		if strings.TrimSpace(p.DateOfBirth) == "" {
			return domain.ValidationError{Field: label + ".date_of_birth", Msg: "date of birth is required"}
		}
		dob, err := utils.ParseDate(p.DateOfBirth)
		if err != nil {
			return domain.ValidationError{Field: label + ".date_of_birth", Msg: "date of birth must be YYYY-MM-DD"}
		}
		if dob.After(utils.NowUTC()) {
			return domain.ValidationError{Field: label + ".date_of_birth", Msg: "date of birth is in the future"}
		}

		if p.IsContact {
			contactSeen = true
			if strings.TrimSpace(p.Phone) == "" {
				return domain.ValidationError{Field: label + ".phone", Msg: "contact phone is required"}
			}
			if strings.TrimSpace(p.Email) == "" {
				return domain.ValidationError{Field: label + ".email", Msg: "contact email is required"}
			}
		}

		needID := false
		switch rules.NationalID {
		case models.IDContactOnly:
			needID = p.IsContact
		case models.IDAdultsRequired:
			needID = p.Role == models.RoleAdult || p.Role == models.RoleSenior
		}
		if needID && strings.TrimSpace(p.NationalID) == "" {
			return domain.ValidationError{Field: label + ".national_id", Msg: "national ID is required"}
		}
	}

	if !contactSeen {
		return domain.ValidationError{Field: "participants", Msg: "a contact person must be designated"}
	}
	return nil
}

// ReconcileCounts verifies that the role counts being priced match the
// travellers actually on the form. Without this a client could price one
// adult and put three people on the booking.
func ReconcileCounts(counts map[models.Role]int, list []models.Participant, addons []models.AddOn) error {
	byRole := map[models.Role]int{}
	for _, p := range list {
		byRole[p.Role]++
	}

	var priced int
	for _, role := range models.RoleOrder {
		if counts[role] != byRole[role] {
			return domain.ValidationError{
				Field: "counts",
				Msg:   fmt.Sprintf("%s count %d does not match %d participant(s)", role, counts[role], byRole[role]),
			}
		}
		priced += byRole[role]
	}
	// Participants with a role outside the fare policy would ride unpriced.
	if priced != len(list) {
		return domain.ValidationError{Field: "participants", Msg: "participant has an unknown role"}
	}

	for _, a := range addons {
		if a.Count > len(list) {
			return domain.ValidationError{
				Field: "addons",
				Msg:   fmt.Sprintf("add-on %s count %d exceeds %d traveller(s)", a.Name, a.Count, len(list)),
			}
		}
	}
	return nil
}

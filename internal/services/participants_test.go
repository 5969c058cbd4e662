package services

import (
	"testing"

	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
)

func TestInitParticipantsOrderAndContact(t *testing.T) {
	list := InitParticipants(map[models.Role]int{
		models.RoleAdult: 2,
		models.RoleChild: 1,
	})

	if len(list) != 3 {
		t.Fatalf("got %d participants, want 3", len(list))
	}
	if !list[0].IsContact {
		t.Fatalf("first participant must be the contact")
	}
	if list[0].Role != models.RoleAdult || list[1].Role != models.RoleAdult || list[2].Role != models.RoleChild {
		t.Fatalf("unexpected role order: %v %v %v", list[0].Role, list[1].Role, list[2].Role)
	}
	for i := 1; i < len(list); i++ {
		if list[i].IsContact {
			t.Fatalf("participant %d should not be a contact", i)
		}
	}
}

func TestUpdateParticipantDoesNotMutateInput(t *testing.T) {
	orig := InitParticipants(map[models.Role]int{models.RoleAdult: 1})

	updated, err := UpdateParticipant(orig, 0, "full_name", "Nguyen Van A")
	if err != nil {
		t.Fatalf("UpdateParticipant returned error: %v", err)
	}
	if updated[0].FullName != "Nguyen Van A" {
		t.Fatalf("update did not apply: %+v", updated[0])
	}
	if orig[0].FullName != "" {
		t.Fatalf("input slice was mutated: %+v", orig[0])
	}
}

func TestUpdateParticipantNormalizesInput(t *testing.T) {
	list := InitParticipants(map[models.Role]int{models.RoleAdult: 1})

	updated, err := UpdateParticipant(list, 0, "full_name", "  Nguyen   Van A ")
	if err != nil {
		t.Fatalf("UpdateParticipant returned error: %v", err)
	}
	if updated[0].FullName != "Nguyen Van A" {
		t.Fatalf("full name not normalized: %q", updated[0].FullName)
	}

	updated, err = UpdateParticipant(updated, 0, "email", " a@example.com ")
	if err != nil {
		t.Fatalf("UpdateParticipant returned error: %v", err)
	}
	if updated[0].Email != "a@example.com" {
		t.Fatalf("email not trimmed: %q", updated[0].Email)
	}
}

func TestUpdateParticipantRejectsBadIndexAndField(t *testing.T) {
	list := InitParticipants(map[models.Role]int{models.RoleAdult: 1})

	if _, err := UpdateParticipant(list, 5, "full_name", "x"); !domain.IsValidation(err) {
		t.Fatalf("out-of-range index error = %v, want validation error", err)
	}
	if _, err := UpdateParticipant(list, 0, "shoe_size", "42"); !domain.IsValidation(err) {
		t.Fatalf("unknown field error = %v, want validation error", err)
	}
}

func validContact() models.Participant {
	return models.Participant{
		FullName:    "Nguyen Van A",
		Role:        models.RoleAdult,
		Gender:      "male",
		DateOfBirth: "1990-04-05",
		Phone:       "0900123456",
		Email:       "a@example.com",
		IsContact:   true,
	}
}

func TestValidateParticipantsMissingContactPhone(t *testing.T) {
	p := validContact()
	p.Phone = ""

	err := ValidateParticipants([]models.Participant{p}, models.ParticipantRules{NationalID: models.IDNotRequired})
	if !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestValidateParticipantsFlightNeedsAdultID(t *testing.T) {
	contact := validContact()
	contact.NationalID = "012345678901"
	second := models.Participant{
		FullName:    "Nguyen Van B",
		Role:        models.RoleAdult,
		Gender:      "male",
		DateOfBirth: "1988-01-01",
	}

	rules := models.RulesFor(models.ItemTypeFlight)
	err := ValidateParticipants([]models.Participant{contact, second}, rules)
	if !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error for missing adult ID", err)
	}

	second.NationalID = "012345678902"
	if err := ValidateParticipants([]models.Participant{contact, second}, rules); err != nil {
		t.Fatalf("ValidateParticipants returned error: %v", err)
	}
}

func TestValidateParticipantsTourNeedsNoID(t *testing.T) {
	contact := validContact()
	child := models.Participant{
		FullName:    "Nguyen Thi C",
		Role:        models.RoleChild,
		Gender:      "female",
		DateOfBirth: "2018-06-06",
	}

	rules := models.RulesFor(models.ItemTypeTour)
	if err := ValidateParticipants([]models.Participant{contact, child}, rules); err != nil {
		t.Fatalf("ValidateParticipants returned error: %v", err)
	}
}

func TestValidateParticipantsRejectsBadDateOfBirth(t *testing.T) {
	rules := models.ParticipantRules{NationalID: models.IDNotRequired}

	p := validContact()
	p.DateOfBirth = "05/04/1990"
	if err := ValidateParticipants([]models.Participant{p}, rules); !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error for malformed date", err)
	}

	p = validContact()
	p.DateOfBirth = "2999-01-01"
	if err := ValidateParticipants([]models.Participant{p}, rules); !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error for future date", err)
	}
}

func TestReconcileCountsMatchesParticipants(t *testing.T) {
	list := []models.Participant{
		validContact(),
		{FullName: "Nguyen Van B", Role: models.RoleAdult, Gender: "male", DateOfBirth: "1992-02-02"},
	}

	if err := ReconcileCounts(map[models.Role]int{models.RoleAdult: 2}, list, nil); err != nil {
		t.Fatalf("ReconcileCounts returned error: %v", err)
	}

	// Priced one adult, two on the form.
	err := ReconcileCounts(map[models.Role]int{models.RoleAdult: 1}, list, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}

	// Priced a child nobody registered.
	err = ReconcileCounts(map[models.Role]int{models.RoleAdult: 2, models.RoleChild: 1}, list, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestReconcileCountsRejectsUnknownRole(t *testing.T) {
	list := []models.Participant{validContact(), {FullName: "X", Role: "stowaway", Gender: "male", DateOfBirth: "1990-01-01"}}
	err := ReconcileCounts(map[models.Role]int{models.RoleAdult: 1}, list, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestReconcileCountsCapsAddOns(t *testing.T) {
	list := []models.Participant{validContact()}
	counts := map[models.Role]int{models.RoleAdult: 1}

	ok := []models.AddOn{{Name: "insurance", Fee: 100000, Count: 1}}
	if err := ReconcileCounts(counts, list, ok); err != nil {
		t.Fatalf("ReconcileCounts returned error: %v", err)
	}

	over := []models.AddOn{{Name: "insurance", Fee: 100000, Count: 3}}
	if err := ReconcileCounts(counts, list, over); !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestValidateParticipantsEmptyList(t *testing.T) {
	err := ValidateParticipants(nil, models.ParticipantRules{})
	if !domain.IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

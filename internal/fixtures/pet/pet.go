// Package pet is the pet store domain used by the generator tests and the
// petstore example.
package pet

import "github.com/vitalvas/apidoc/api"

// PetType is the species of a pet.
type PetType string

const (
	Dog PetType = "dog"
	Cat PetType = "cat"
)

func (PetType) Cases() []api.Case {
	return []api.Case{
		{Name: "Dog", Value: Dog},
		{Name: "Cat", Value: Cat},
	}
}

// PetCuteness has no backing values; it is documented by case names.
type PetCuteness int

const (
	Cute PetCuteness = iota
	VeryCute
)

func (PetCuteness) Cases() []api.Case {
	return []api.Case{
		{Name: "Cute"},
		{Name: "VeryCute"},
	}
}

type Pet struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Type     PetType     `json:"type"`
	Cuteness PetCuteness `json:"cuteness"`
	Tags     []string    `json:"tags"`
}

type PetListRequest struct {
	Page *int `json:"page" default:"1"`
}

type PetListResponse struct {
	pets []Pet
}

// NewPetListResponse wraps the listed pets.
func NewPetListResponse(pets []Pet) PetListResponse {
	return PetListResponse{pets: pets}
}

// ToResponse returns the listed pets.
//
// @return Pet[]
func (r PetListResponse) ToResponse() any {
	return r.pets
}

type PetResponse struct {
	pet Pet
}

// ToResponse returns the pet.
//
// @return Pet
func (r PetResponse) ToResponse() any {
	return r.pet
}

type PetStoreRequest struct {
	Name     string      `json:"name"`
	Type     PetType     `json:"type"`
	Cuteness PetCuteness `json:"cuteness"`
	Tags     []any       `json:"tags"` // @var string[]
}

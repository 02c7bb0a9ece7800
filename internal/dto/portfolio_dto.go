package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("missing or malformed required field")

type CreateProfileRequest struct {
	Name       string  `json:"name"`
	Age        int     `json:"age"`
	Education  string  `json:"education"`
	University string  `json:"university"`
	Biography  string  `json:"biography"`
	Image      *string `json:"image"`
}

func (r *CreateProfileRequest) Validate() error {
	if r.Name == "" || r.Education == "" || r.University == "" || r.Biography == "" || r.Age <= 0 {
		return ErrValidation
	}
	return nil
}

// UpdateProfileRequest carries only the fields the caller supplied; nil
// pointers are left untouched by Changes.
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Age        *int    `json:"age"`
	Education  *string `json:"education"`
	University *string `json:"university"`
	Biography  *string `json:"biography"`
	Image      *string `json:"image"`
}

func (r *UpdateProfileRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Age != nil {
		changes["age"] = *r.Age
	}
	if r.Education != nil {
		changes["education"] = *r.Education
	}
	if r.University != nil {
		changes["university"] = *r.University
	}
	if r.Biography != nil {
		changes["biography"] = *r.Biography
	}
	if r.Image != nil {
		changes["image"] = *r.Image
	}
	return changes
}

type CreateSkillRequest struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Category  string    `json:"category"`
	Skill     string    `json:"skill"`
}

func (r *CreateSkillRequest) Validate() error {
	if r.ProfileID == uuid.Nil || r.Category == "" || r.Skill == "" {
		return ErrValidation
	}
	return nil
}

type UpdateSkillRequest struct {
	Category *string `json:"category"`
	Skill    *string `json:"skill"`
}

func (r *UpdateSkillRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if r.Category != nil {
		changes["category"] = *r.Category
	}
	if r.Skill != nil {
		changes["skill"] = *r.Skill
	}
	return changes
}

type CreateExperienceRequest struct {
	ProfileID   uuid.UUID  `json:"profile_id"`
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description string     `json:"description"`
}

func (r *CreateExperienceRequest) Validate() error {
	if r.ProfileID == uuid.Nil || r.Company == "" || r.Position == "" || r.Description == "" || r.StartDate.IsZero() {
		return ErrValidation
	}
	return nil
}

type UpdateExperienceRequest struct {
	Company     *string    `json:"company"`
	Position    *string    `json:"position"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description *string    `json:"description"`

	// EndDateSet writes EndDate into the update even when it is nil. The
	// admin edit form replaces every field, and a nil end date there means
	// the position is current, so the stored value must be cleared.
	EndDateSet bool `json:"-"`
}

func (r *UpdateExperienceRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if r.Company != nil {
		changes["company"] = *r.Company
	}
	if r.Position != nil {
		changes["position"] = *r.Position
	}
	if r.StartDate != nil {
		changes["start_date"] = *r.StartDate
	}
	if r.EndDateSet {
		changes["end_date"] = r.EndDate
	} else if r.EndDate != nil {
		changes["end_date"] = *r.EndDate
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	return changes
}

type CreateProjectRequest struct {
	ProfileID   uuid.UUID `json:"profile_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Link        *string   `json:"link"`
}

func (r *CreateProjectRequest) Validate() error {
	if r.ProfileID == uuid.Nil || r.Name == "" || r.Description == "" {
		return ErrValidation
	}
	return nil
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Link        *string `json:"link"`

	// LinkSet writes Link into the update even when it is nil, so the edit
	// form can clear a stored link by submitting the field empty.
	LinkSet bool `json:"-"`
}

func (r *UpdateProjectRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.LinkSet {
		changes["link"] = r.Link
	} else if r.Link != nil {
		changes["link"] = *r.Link
	}
	return changes
}

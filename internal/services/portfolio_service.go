package services

import (
	"errors"

	"github.com/andrewa30/portfolio-backend/internal/dto"
	"github.com/andrewa30/portfolio-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("not authorized for this resource")
)

// PortfolioService owns all profile and child-entity CRUD. Every mutating
// method takes the caller's user id and refuses to touch resources the
// caller does not own: ErrForbidden for a foreign profile, ErrNotFound for
// an absent one. Handlers decide how much of that distinction to expose.
type PortfolioService struct {
	db *gorm.DB
}

func NewPortfolioService(db *gorm.DB) *PortfolioService {
	return &PortfolioService{db: db}
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.Preload("Skills").Preload("Experiences").Preload("Projects")
}

// normalize guarantees child slices marshal as [] instead of null.
func normalize(p *models.Profile) {
	if p.Skills == nil {
		p.Skills = []models.Skill{}
	}
	if p.Experiences == nil {
		p.Experiences = []models.Experience{}
	}
	if p.Projects == nil {
		p.Projects = []models.Project{}
	}
}

// ownedProfile is the single ownership gate: every mutation on a profile or
// one of its children funnels through here.
func ownedProfile(tx *gorm.DB, profileID, ownerID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := tx.First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, ErrNotFound
	}
	if profile.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return &profile, nil
}

// Latest returns the most recently created profile with all children, for
// the public landing view. ErrNotFound when no profile exists yet.
func (s *PortfolioService) Latest() (*models.Profile, error) {
	var profile models.Profile
	err := withChildren(s.db).Order("created_at DESC").First(&profile).Error
	if err != nil {
		return nil, ErrNotFound
	}
	normalize(&profile)
	return &profile, nil
}

func (s *PortfolioService) ListAll() ([]models.Profile, error) {
	profiles := []models.Profile{}
	if err := withChildren(s.db).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		normalize(&profiles[i])
	}
	return profiles, nil
}

func (s *PortfolioService) ListByOwner(ownerID uuid.UUID) ([]models.Profile, error) {
	profiles := []models.Profile{}
	err := withChildren(s.db).Scopes(models.OwnedBy(ownerID)).
		Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		normalize(&profiles[i])
	}
	return profiles, nil
}

// CreateProfile makes the caller the owner; any client-supplied owner is
// ignored.
func (s *PortfolioService) CreateProfile(ownerID uuid.UUID, req *dto.CreateProfileRequest) (*models.Profile, error) {
	profile := models.Profile{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Name:       req.Name,
		Age:        req.Age,
		Education:  req.Education,
		University: req.University,
		Biography:  req.Biography,
		Image:      req.Image,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, err
	}
	normalize(&profile)
	return &profile, nil
}

// GetOwned loads a profile with children for its owner.
func (s *PortfolioService) GetOwned(profileID, ownerID uuid.UUID) (*models.Profile, error) {
	if _, err := ownedProfile(s.db, profileID, ownerID); err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := withChildren(s.db).First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, ErrNotFound
	}
	normalize(&profile)
	return &profile, nil
}

func (s *PortfolioService) UpdateProfile(profileID, ownerID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := ownedProfile(tx, profileID, ownerID)
		if err != nil {
			return err
		}
		changes := req.Changes()
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(profile).Updates(changes).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetOwned(profileID, ownerID)
}

// DeleteProfile removes the profile and all of its children in one
// transaction.
func (s *PortfolioService) DeleteProfile(profileID, ownerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := ownedProfile(tx, profileID, ownerID)
		if err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.Skill{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		return tx.Delete(profile).Error
	})
}

// --- Skills ---

func (s *PortfolioService) AddSkill(ownerID uuid.UUID, req *dto.CreateSkillRequest) (*models.Skill, error) {
	skill := models.Skill{
		ID:        uuid.New(),
		ProfileID: req.ProfileID,
		Category:  req.Category,
		Skill:     req.Skill,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := ownedProfile(tx, req.ProfileID, ownerID); err != nil {
			return err
		}
		return tx.Create(&skill).Error
	})
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// SkillInProfile loads a skill scoped to its parent: a skill id that exists
// under a different profile is ErrNotFound, never leaked.
func (s *PortfolioService) SkillInProfile(profileID, skillID, ownerID uuid.UUID) (*models.Skill, error) {
	if _, err := ownedProfile(s.db, profileID, ownerID); err != nil {
		return nil, err
	}
	var skill models.Skill
	if err := s.db.First(&skill, "id = ? AND profile_id = ?", skillID, profileID).Error; err != nil {
		return nil, ErrNotFound
	}
	return &skill, nil
}

func (s *PortfolioService) ListSkills(profileID, ownerID uuid.UUID) ([]models.Skill, error) {
	if _, err := ownedProfile(s.db, profileID, ownerID); err != nil {
		return nil, err
	}
	skills := []models.Skill{}
	err := s.db.Where("profile_id = ?", profileID).Order("category DESC").Find(&skills).Error
	return skills, err
}

func (s *PortfolioService) UpdateSkill(skillID, ownerID uuid.UUID, req *dto.UpdateSkillRequest) (*models.Skill, error) {
	var skill models.Skill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&skill, "id = ?", skillID).Error; err != nil {
			return ErrNotFound
		}
		if _, err := ownedProfile(tx, skill.ProfileID, ownerID); err != nil {
			return err
		}
		changes := req.Changes()
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&skill).Updates(changes).Error
	})
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (s *PortfolioService) DeleteSkill(skillID, ownerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var skill models.Skill
		if err := tx.First(&skill, "id = ?", skillID).Error; err != nil {
			return ErrNotFound
		}
		if _, err := ownedProfile(tx, skill.ProfileID, ownerID); err != nil {
			return err
		}
		return tx.Delete(&skill).Error
	})
}

// --- Experiences ---

func (s *PortfolioService) AddExperience(ownerID uuid.UUID, req *dto.CreateExperienceRequest) (*models.Experience, error) {
	experience := models.Experience{
		ID:          uuid.New(),
		ProfileID:   req.ProfileID,
		Company:     req.Company,
		Position:    req.Position,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := ownedProfile(tx, req.ProfileID, ownerID); err != nil {
			return err
		}
		return tx.Create(&experience).Error
	})
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

func (s *PortfolioService) ExperienceInProfile(profileID, experienceID, ownerID uuid.UUID) (*models.Experience, error) {
	if _, err := ownedProfile(s.db, profileID, ownerID); err != nil {
		return nil, err
	}
	var experience models.Experience
	if err := s.db.First(&experience, "id = ? AND profile_id = ?", experienceID, profileID).Error; err != nil {
		return nil, ErrNotFound
	}
	return &experience, nil
}

func (s *PortfolioService) ListExperiences(profileID, ownerID uuid.UUID) ([]models.Experience, error) {
	if _, err := ownedProfile(s.db, profileID, ownerID); err != nil {
		return nil, err
	}
	experiences := []models.Experience{}
	err := s.db.Where("profile_id = ?", profileID).Order("start_date DESC").Find(&experiences).Error
	return experiences, err
}

func (s *PortfolioService) UpdateExperience(experienceID, ownerID uuid.UUID, req *dto.UpdateExperienceRequest) (*models.Experience, error) {
	var experience models.Experience
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&experience, "id = ?", experienceID).Error; err != nil {
			return ErrNotFound
		}
		if _, err := ownedProfile(tx, experience.ProfileID, ownerID); err != nil {
			return err
		}
		changes := req.Changes()
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&experience).Updates(changes).Error
	})
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

func (s *PortfolioService) DeleteExperience(experienceID, ownerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var experience models.Experience
		if err := tx.First(&experience, "id = ?", experienceID).Error; err != nil {
			return ErrNotFound
		}
		if _, err := ownedProfile(tx, experience.ProfileID, ownerID); err != nil {
			return err
		}
		return tx.Delete(&experience).Error
	})
}

// --- Projects ---

func (s *PortfolioService) AddProject(ownerID uuid.UUID, req *dto.CreateProjectRequest) (*models.Project, error) {
	project := models.Project{
		ID:          uuid.New(),
		ProfileID:   req.ProfileID,
		Name:        req.Name,
		Description: req.Description,
		Link:        req.Link,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := ownedProfile(tx, req.ProfileID, ownerID); err != nil {
			return err
		}
		return tx.Create(&project).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *PortfolioService) ProjectInProfile(profileID, projectID, ownerID uuid.UUID) (*models.Project, error) {
	if _, err := ownedProfile(s.db, profileID, ownerID); err != nil {
		return nil, err
	}
	var project models.Project
	if err := s.db.First(&project, "id = ? AND profile_id = ?", projectID, profileID).Error; err != nil {
		return nil, ErrNotFound
	}
	return &project, nil
}

func (s *PortfolioService) ListProjects(profileID, ownerID uuid.UUID) ([]models.Project, error) {
	if _, err := ownedProfile(s.db, profileID, ownerID); err != nil {
		return nil, err
	}
	projects := []models.Project{}
	err := s.db.Where("profile_id = ?", profileID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (s *PortfolioService) UpdateProject(projectID, ownerID uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error) {
	var project models.Project
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			return ErrNotFound
		}
		if _, err := ownedProfile(tx, project.ProfileID, ownerID); err != nil {
			return err
		}
		changes := req.Changes()
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&project).Updates(changes).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *PortfolioService) DeleteProject(projectID, ownerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			return ErrNotFound
		}
		if _, err := ownedProfile(tx, project.ProfileID, ownerID); err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

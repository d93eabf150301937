package store

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/Trend4Media/AffenMitWaffen/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var ErrSystemNotFound = errors.New("system not found")

// PlanetSeed is the caller-supplied initial state for a planet created
// alongside its system.
type PlanetSeed struct {
	PlanetID  string `json:"planetId" binding:"required"`
	Important bool   `json:"important"`
	Notes     string `json:"notes"`
}

// TrackerStore persists per-user systems and planets.
type TrackerStore struct {
	db *gorm.DB
}

func NewTrackerStore(db *gorm.DB) *TrackerStore {
	return &TrackerStore{db: db}
}

// ListSystems returns every system the user owns, with planets, in
// stable row-id order.
func (s *TrackerStore) ListSystems(userID uint) ([]models.System, error) {
	var systems []models.System

	err := s.db.Preload("Planets").
		Where("user_id = ?", userID).
		Order("id").
		Find(&systems).Error

	if err != nil {
		return nil, err
	}

	return systems, nil
}

// UpsertSystem creates the system if the user does not have it yet,
// otherwise updates it in place. recRes is applied only when provided;
// LastUpdate is refreshed on every accepted call. A concurrent
// duplicate create is resolved by the unique index and falls back to
// the update path.
func (s *TrackerStore) UpsertSystem(userID uint, systemCode string, recRes *bool, seeds []PlanetSeed) (*models.System, error) {
	var system models.System

	err := s.db.Where("user_id = ? AND system_id = ?", userID, systemCode).First(&system).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		created, createErr := s.createSystem(userID, systemCode, recRes, seeds)

		if createErr == nil {
			return created, nil
		}

		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return nil, createErr
		}

		// Lost the create race, the row exists now.
		if err := s.db.Where("user_id = ? AND system_id = ?", userID, systemCode).First(&system).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"last_update": time.Now()}

	if recRes != nil {
		updates["rec_res"] = *recRes
	}

	if err := s.db.Model(&system).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.reloadSystem(system.ID)
}

func (s *TrackerStore) createSystem(userID uint, systemCode string, recRes *bool, seeds []PlanetSeed) (*models.System, error) {
	system := models.System{
		UserID:     userID,
		SystemID:   systemCode,
		LastUpdate: time.Now(),
	}

	if recRes != nil {
		system.RecRes = *recRes
	}

	for _, seed := range seeds {
		system.Planets = append(system.Planets, models.Planet{
			PlanetID:  seed.PlanetID,
			Important: seed.Important,
			Notes:     seed.Notes,
		})
	}

	if err := s.db.Create(&system).Error; err != nil {
		return nil, err
	}

	return &system, nil
}

// UpdateRecRes sets recRes on an existing system. Unlike UpsertSystem
// it never creates, so editing a system the user does not have fails
// with ErrSystemNotFound.
func (s *TrackerStore) UpdateRecRes(userID uint, systemCode string, recRes bool) (*models.System, error) {
	system, err := s.findSystem(userID, systemCode)

	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"rec_res":     recRes,
		"last_update": time.Now(),
	}

	if err := s.db.Model(system).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.reloadSystem(system.ID)
}

// UpsertPlanet creates or updates a planet of an existing system.
// Provided fields override the defaults (important=false, notes="");
// omitted fields keep their stored value. The parent system's
// LastUpdate is refreshed on every accepted call.
func (s *TrackerStore) UpsertPlanet(userID uint, systemCode, planetCode string, important *bool, notes *string) (*models.Planet, error) {
	system, err := s.findSystem(userID, systemCode)

	if err != nil {
		return nil, err
	}

	var planet models.Planet

	err = s.db.Where("system_id = ? AND planet_id = ?", system.ID, planetCode).First(&planet).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		planet = models.Planet{
			SystemID: system.ID,
			PlanetID: planetCode,
		}

		if important != nil {
			planet.Important = *important
		}

		if notes != nil {
			planet.Notes = *notes
		}

		if err := s.db.Create(&planet).Error; err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, err
			}

			// Lost the create race, update the existing row instead.
			if err := s.db.Where("system_id = ? AND planet_id = ?", system.ID, planetCode).First(&planet).Error; err != nil {
				return nil, err
			}

			if err := s.updatePlanet(&planet, important, notes); err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	} else {
		if err := s.updatePlanet(&planet, important, notes); err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(system).Update("last_update", time.Now()).Error; err != nil {
		return nil, err
	}

	return &planet, nil
}

func (s *TrackerStore) updatePlanet(planet *models.Planet, important *bool, notes *string) error {
	updates := make(map[string]interface{})

	if important != nil {
		updates["important"] = *important
	}

	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) == 0 {
		return nil
	}

	return s.db.Model(planet).Updates(updates).Error
}

// Initialize creates every galaxy system the user does not have yet,
// each seeded with nine default planets, and reports how many were
// created. Safe to call repeatedly and concurrently: existing systems
// are skipped, and a duplicate-create race is counted as already
// present rather than surfaced as an error. Creation runs in batches,
// batch members in parallel, batches sequentially to bound peak load.
func (s *TrackerStore) Initialize(userID uint) (int, error) {
	var existingCodes []string

	err := s.db.Model(&models.System{}).
		Where("user_id = ?", userID).
		Pluck("system_id", &existingCodes).Error

	if err != nil {
		return 0, err
	}

	existing := make(map[string]bool, len(existingCodes))

	for _, code := range existingCodes {
		existing[code] = true
	}

	var missing []string

	for suffix := SystemSuffixMin; suffix <= SystemSuffixMax; suffix++ {
		if code := SystemCode(suffix); !existing[code] {
			missing = append(missing, code)
		}
	}

	var created atomic.Int64

	for start := 0; start < len(missing); start += initializeBatchSize {
		end := start + initializeBatchSize

		if end > len(missing) {
			end = len(missing)
		}

		var group errgroup.Group

		for _, code := range missing[start:end] {
			code := code
			group.Go(func() error {
				system := models.System{
					UserID:     userID,
					SystemID:   code,
					LastUpdate: time.Now(),
				}

				for position := 1; position <= PlanetsPerSystem; position++ {
					system.Planets = append(system.Planets, models.Planet{
						PlanetID: PlanetCode(code, position),
					})
				}

				if err := s.db.Create(&system).Error; err != nil {
					if errors.Is(err, gorm.ErrDuplicatedKey) {
						return nil
					}
					return err
				}

				created.Add(1)
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return int(created.Load()), err
		}
	}

	return int(created.Load()), nil
}

func (s *TrackerStore) findSystem(userID uint, systemCode string) (*models.System, error) {
	var system models.System

	err := s.db.Where("user_id = ? AND system_id = ?", userID, systemCode).First(&system).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSystemNotFound
		}
		return nil, err
	}

	return &system, nil
}

func (s *TrackerStore) reloadSystem(id uint) (*models.System, error) {
	var system models.System

	if err := s.db.Preload("Planets").First(&system, id).Error; err != nil {
		return nil, err
	}

	return &system, nil
}

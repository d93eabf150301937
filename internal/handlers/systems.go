package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Trend4Media/AffenMitWaffen/internal/models"
	"github.com/Trend4Media/AffenMitWaffen/internal/store"
	"github.com/Trend4Media/AffenMitWaffen/internal/types"
	"github.com/Trend4Media/AffenMitWaffen/internal/utils"
	"github.com/gin-gonic/gin"
)

type SystemsHandler struct {
	Tracker *store.TrackerStore
}

type UpsertSystemRequest struct {
	SystemID string             `json:"systemId" binding:"required"`
	RecRes   *bool              `json:"recRes"`
	Planets  []store.PlanetSeed `json:"planets"`
}

type UpdateSystemRequest struct {
	RecRes *bool `json:"recRes" binding:"required"`
}

type UpdatePlanetRequest struct {
	Important *bool   `json:"important"`
	Notes     *string `json:"notes"`
}

func (h *SystemsHandler) ListSystems(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	systems, err := h.Tracker.ListSystems(userID)

	if err != nil {
		log.Printf("Failed to list systems for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.SystemResponse, 0, len(systems))

	for i := range systems {
		response = append(response, systemResponse(&systems[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

// UpsertSystem creates the system on first write and updates it after
// that. Used both for direct edits and for seeding a system before its
// planets are touched.
func (h *SystemsHandler) UpsertSystem(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpsertSystemRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	system, err := h.Tracker.UpsertSystem(userID, body.SystemID, body.RecRes, body.Planets)

	if err != nil {
		log.Printf("Failed to upsert system %s for user %d: %v", body.SystemID, userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, systemResponse(system))
}

func (h *SystemsHandler) UpdateSystem(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateSystemRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	systemID := ctx.Param("systemId")

	system, err := h.Tracker.UpdateRecRes(userID, systemID, *body.RecRes)

	if err != nil {
		if errors.Is(err, store.ErrSystemNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "System not found"})
			return
		}
		log.Printf("Failed to update system %s for user %d: %v", systemID, userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, systemResponse(system))
}

// UpdatePlanet edits a planet of an existing system. The system must
// have been created first; editing a planet never creates its system.
func (h *SystemsHandler) UpdatePlanet(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdatePlanetRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	systemID := ctx.Param("systemId")
	planetID := ctx.Param("planetId")

	planet, err := h.Tracker.UpsertPlanet(userID, systemID, planetID, body.Important, body.Notes)

	if err != nil {
		if errors.Is(err, store.ErrSystemNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "System not found"})
			return
		}
		log.Printf("Failed to update planet %s for user %d: %v", planetID, userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, planetResponse(planet))
}

func (h *SystemsHandler) InitializeSystems(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := h.Tracker.Initialize(userID)

	if err != nil {
		log.Printf("Failed to initialize systems for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Systems initialized successfully",
		"count":   count,
	})
}

func systemResponse(system *models.System) types.SystemResponse {
	planets := make([]types.PlanetResponse, 0, len(system.Planets))

	for i := range system.Planets {
		planets = append(planets, planetResponse(&system.Planets[i]))
	}

	return types.SystemResponse{
		ID:         system.ID,
		SystemID:   system.SystemID,
		RecRes:     system.RecRes,
		LastUpdate: system.LastUpdate,
		Planets:    planets,
	}
}

func planetResponse(planet *models.Planet) types.PlanetResponse {
	return types.PlanetResponse{
		ID:        planet.ID,
		PlanetID:  planet.PlanetID,
		Important: planet.Important,
		Notes:     planet.Notes,
	}
}

package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/dkeye/mazetown/internal/app"
	"github.com/dkeye/mazetown/internal/app/orch"
	"github.com/dkeye/mazetown/internal/core"
	"github.com/dkeye/mazetown/internal/domain"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type handlers struct {
	orch   *orch.Orchestrator
	secret string
}

type createTownRequest struct {
	FriendlyName     string `json:"friendlyName" binding:"required"`
	IsPubliclyListed bool   `json:"isPubliclyListed"`
}

type createTownResponse struct {
	TownID             domain.TownID `json:"townID"`
	TownUpdatePassword string        `json:"townUpdatePassword"`
}

type townInfoResponse struct {
	TownID           domain.TownID `json:"townID"`
	FriendlyName     string        `json:"friendlyName"`
	IsPubliclyListed bool          `json:"isPubliclyListed"`
	Occupancy        int           `json:"occupancy"`
	Capacity         int           `json:"capacity"`
	ActiveGames      int           `json:"activeGames"`
	MazeCapacity     int           `json:"mazeCapacity"`
}

type updateTownRequest struct {
	TownUpdatePassword string  `json:"townUpdatePassword" binding:"required"`
	FriendlyName       *string `json:"friendlyName"`
	IsPubliclyListed   *bool   `json:"isPubliclyListed"`
}

type deleteTownRequest struct {
	TownUpdatePassword string `json:"townUpdatePassword" binding:"required"`
}

type joinRequest struct {
	UserName string `json:"userName" binding:"required"`
}

type joinResponse struct {
	PlayerID         domain.PlayerID     `json:"playerID"`
	SessionToken     string              `json:"sessionToken"`
	VideoToken       string              `json:"videoToken"`
	FriendlyName     string              `json:"friendlyName"`
	IsPubliclyListed bool                `json:"isPubliclyListed"`
	Players          []domain.PlayerInfo `json:"players"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *handlers) listTowns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"towns": h.orch.Registry.ListPublicTowns()})
}

func (h *handlers) createTown(c *gin.Context) {
	var req createTownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	town, err := h.orch.Registry.CreateTown(req.FriendlyName, req.IsPubliclyListed)
	if errors.Is(err, app.ErrInvalidFriendlyName) {
		badRequest(c, err)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, createTownResponse{
		TownID:             town.ID(),
		TownUpdatePassword: town.UpdatePassword(),
	})
}

func (h *handlers) getTown(c *gin.Context) {
	town, ok := h.orch.Registry.GetTown(domain.TownID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": orch.ErrTownNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, townInfoResponse{
		TownID:           town.ID(),
		FriendlyName:     town.FriendlyName(),
		IsPubliclyListed: town.IsPubliclyListed(),
		Occupancy:        town.Occupancy(),
		Capacity:         town.Capacity(),
		ActiveGames:      town.ActiveGames(),
		MazeCapacity:     core.MazeCapacity,
	})
}

func (h *handlers) updateTown(c *gin.Context) {
	var req updateTownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !h.orch.Registry.UpdateTown(domain.TownID(c.Param("id")), req.TownUpdatePassword, req.FriendlyName, req.IsPubliclyListed) {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid town id, password or name"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) deleteTown(c *gin.Context) {
	var req deleteTownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !h.orch.Registry.DeleteTown(domain.TownID(c.Param("id")), req.TownUpdatePassword) {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid town id or password"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) joinTown(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	townID := domain.TownID(c.Param("id"))
	town, session, err := h.orch.Join(c.Request.Context(), townID, req.UserName)
	if err != nil {
		log.Warn().Err(err).Str("module", "adapters.http").Str("town", string(townID)).Msg("join")
		c.JSON(joinStatus(err), gin.H{"error": err.Error()})
		return
	}

	s := sessions.Default(c)
	s.Set(sessionTownKey, string(town.ID()))
	s.Set(sessionTokenKey, session.SessionToken())
	if err := s.Save(); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("save cookie session")
	}

	c.JSON(http.StatusOK, joinResponse{
		PlayerID:         session.Player().ID(),
		SessionToken:     session.SessionToken(),
		VideoToken:       session.VideoToken(),
		FriendlyName:     town.FriendlyName(),
		IsPubliclyListed: town.IsPubliclyListed(),
		Players:          town.Players(),
	})
}

func joinStatus(err error) int {
	switch {
	case errors.Is(err, orch.ErrTownNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrTownFull):
		return http.StatusConflict
	case errors.Is(err, core.ErrVideoProvisioning):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrUsernameEmpty), errors.Is(err, domain.ErrUsernameTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) leaderboard(c *gin.Context) {
	rows, err := h.orch.QueryLeaderboard(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("leaderboard query")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
		return
	}
	if rows == nil {
		rows = []domain.CompletionTime{}
	}
	c.JSON(http.StatusOK, gin.H{"scores": rows})
}

func (h *handlers) deleteLeaderboardEntry(c *gin.Context) {
	given := c.GetHeader(adminHeader)
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(h.secret)) != 1 {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if err := h.orch.DeleteLeaderboardEntry(c.Request.Context(), c.Param("username")); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("leaderboard delete")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}

// signalCredentials prefers the query string and falls back to the cookie
// session written on join.
func signalCredentials(c *gin.Context) (domain.TownID, string) {
	townID := c.Query("town")
	token := c.Query("token")
	if townID != "" && token != "" {
		return domain.TownID(townID), token
	}
	s := sessions.Default(c)
	if v, ok := s.Get(sessionTownKey).(string); ok && townID == "" {
		townID = v
	}
	if v, ok := s.Get(sessionTokenKey).(string); ok && token == "" {
		token = v
	}
	return domain.TownID(townID), token
}

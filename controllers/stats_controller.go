package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/classboard/repository"
	"github.com/cppla/classboard/utils"
)

// StatsController provides board statistics.
type StatsController struct {
	store repository.ContentStore
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(store repository.ContentStore) *StatsController {
	return &StatsController{store: store}
}

// GetStats returns folder, post and comment counts.
func (s *StatsController) GetStats(ctx *gin.Context) {
	st, err := s.store.Stats(ctx.Request.Context())
	if err != nil {
		storeFailure(ctx, err, 0, "", 50040, "stats")
		return
	}
	utils.Success(ctx, st)
}

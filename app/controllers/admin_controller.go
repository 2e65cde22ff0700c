package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/campuscare-app/CampusCare/app/repository"
	"github.com/campuscare-app/CampusCare/internal/pkg/reportfilter"
	"github.com/campuscare-app/CampusCare/internal/pkg/statistics"
)

// HandleAdminInsights aggregates the current report collection into status
// and category counts for the triage dashboard. Counts are computed from a
// fresh fetch so the two breakdowns always sum to the same total.
func HandleAdminInsights(c *fiber.Ctx) error {
	reports, err := reportStore.List(c.Context())
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return c.JSON(reportfilter.Aggregate(reports))
}

// HandleAdminDashboard returns the cached high-level counters.
// GetStatistics refreshes the cache itself when it is stale.
func HandleAdminDashboard(c *fiber.Ctx) error {
	return c.JSON(statistics.GetStatistics())
}

// HandleAdminListUsers pages through registered accounts.
func HandleAdminListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 25

	repo := repository.GetGlobalFactory().GetUserRepository()
	users, err := repo.List((page-1)*perPage, perPage)
	if err != nil {
		return storeErrorResponse(c, err)
	}
	total, err := repo.Count()
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"users":    users,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

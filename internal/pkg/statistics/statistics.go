package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/campuscare-app/CampusCare/app/models"
	"github.com/campuscare-app/CampusCare/internal/pkg/cache"
	"github.com/campuscare-app/CampusCare/internal/pkg/database"
)

const (
	CacheKeyReportsTotal = "statistics:reports:total"
	CacheKeyReportsToday = "statistics:reports:today"
	CacheKeyReportsOpen  = "statistics:reports:open"
	CacheKeyUsersTotal   = "statistics:users:total"
	CacheExpiration      = 30 * time.Minute
)

// StatisticsData holds the dashboard headline numbers
type StatisticsData struct {
	TotalReports int `json:"total_reports"`
	TodayReports int `json:"today_reports"`
	OpenReports  int `json:"open_reports"`
	TotalUsers   int `json:"total_users"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache checks whether the cached statistics are stale
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the statistics cache when stale
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next check to refresh the cache
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recomputes all statistics and stores them in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()
	if db == nil {
		return nil
	}

	var totalReports int64
	if err := db.Model(&models.Report{}).Count(&totalReports).Error; err != nil {
		log.Printf("Error counting total reports: %v", err)
		return err
	}

	var todayReports int64
	todayStart := time.Now().Truncate(24 * time.Hour)
	todayEnd := todayStart.Add(24 * time.Hour)
	if err := db.Model(&models.Report{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayReports).Error; err != nil {
		log.Printf("Error counting today's reports: %v", err)
		return err
	}

	var openReports int64
	if err := db.Model(&models.Report{}).Where("status <> ?", models.StatusResolved).Count(&openReports).Error; err != nil {
		log.Printf("Error counting open reports: %v", err)
		return err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyReportsTotal, strconv.FormatInt(totalReports, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyReportsToday, strconv.FormatInt(todayReports, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyReportsOpen, strconv.FormatInt(openReports, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyUsersTotal, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		return err
	}

	return nil
}

// GetStatistics returns the dashboard numbers, refreshing the cache when needed
func GetStatistics() StatisticsData {
	UpdateCacheIfNeeded()

	data := StatisticsData{}

	if v, err := cache.GetInt(CacheKeyReportsTotal); err == nil {
		data.TotalReports = v
	}
	if v, err := cache.GetInt(CacheKeyReportsToday); err == nil {
		data.TodayReports = v
	}
	if v, err := cache.GetInt(CacheKeyReportsOpen); err == nil {
		data.OpenReports = v
	}
	if v, err := cache.GetInt(CacheKeyUsersTotal); err == nil {
		data.TotalUsers = v
	}

	return data
}

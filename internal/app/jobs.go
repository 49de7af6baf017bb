package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stitchworks/storefront/internal/domain"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	if loc == nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithParser(cronParser), cron.WithLocation(loc))

	// Nightly collection stats, for the ops log only.
	if _, err := a.sched.AddFunc("@daily", a.logCatalogStats); err != nil {
		zap.L().Error("failed to schedule catalog stats job", zap.Error(err))
	}

	a.sched.Start()
}

func (a *Application) logCatalogStats() {
	var products, contacts, images, members int64
	a.gormDB.Model(&domain.Product{}).Count(&products)
	a.gormDB.Model(&domain.Contact{}).Count(&contacts)
	a.gormDB.Model(&domain.SiteImage{}).Count(&images)
	a.gormDB.Model(&domain.TeamMember{}).Count(&members)

	type categoryCount struct {
		Category string
		Total    int64
	}
	var perCategory []categoryCount
	a.gormDB.Model(&domain.Product{}).
		Select("category", "COUNT(*) AS total").
		Group("category").Order("category").Scan(&perCategory)

	fields := []zap.Field{
		zap.Int64("products", products),
		zap.Int64("contacts", contacts),
		zap.Int64("site_images", images),
		zap.Int64("team_members", members),
	}
	for _, cc := range perCategory {
		fields = append(fields, zap.Int64("category_"+cc.Category, cc.Total))
	}
	zap.L().Info("catalog stats", fields...)
}

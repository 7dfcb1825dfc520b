package admin

import (
	"context"
	"fmt"
	"sort"

	bookingRepo "grambazaar/database/repository/booking"
	contentRepo "grambazaar/database/repository/content"
	productRepo "grambazaar/database/repository/product"
	userRepo "grambazaar/database/repository/user"
	"grambazaar/models"
	"grambazaar/utils"

	"go.uber.org/zap"
)

// recentPerKind bounds how many of each entity feed the activity list.
const recentPerKind = 5

type AdminService interface {
	Overview(ctx context.Context) (*models.Overview, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Products productRepo.ProductRepository
	Users    userRepo.UserRepository
	Bookings bookingRepo.BookingRepository
	News     contentRepo.NewsRepository
}

// Overview gathers the dashboard counters, revenue and recent activity.
func (s *DefaultAdminService) Overview(ctx context.Context) (*models.Overview, error) {
	var (
		out models.Overview
		err error
	)
	if out.Products, err = s.Products.Count(ctx); err != nil {
		return nil, utils.Internal("Failed to load overview", err)
	}
	if out.Users, err = s.Users.Count(ctx); err != nil {
		return nil, utils.Internal("Failed to load overview", err)
	}
	if out.Bookings, err = s.Bookings.Count(ctx); err != nil {
		return nil, utils.Internal("Failed to load overview", err)
	}
	if out.News, err = s.News.Count(ctx); err != nil {
		return nil, utils.Internal("Failed to load overview", err)
	}
	if out.Revenue, err = s.Bookings.Revenue(ctx); err != nil {
		return nil, utils.Internal("Failed to load overview", err)
	}

	out.Activities = s.activities(ctx)
	return &out, nil
}

// activities merges the newest bookings, users and news. Partial failures
// drop that source from the feed instead of failing the dashboard.
func (s *DefaultAdminService) activities(ctx context.Context) []models.Activity {
	acts := []models.Activity{}

	if bookings, err := s.Bookings.Recent(ctx, recentPerKind); err != nil {
		utils.GetLogger().Warn("Overview: recent bookings unavailable", zap.Error(err))
	} else {
		for _, b := range bookings {
			acts = append(acts, models.Activity{
				Type:    "booking",
				Message: fmt.Sprintf("New booking %s (%s)", b.ID, b.Status),
				Date:    b.CreatedAt,
			})
		}
	}

	if users, err := s.Users.Recent(ctx, recentPerKind); err != nil {
		utils.GetLogger().Warn("Overview: recent users unavailable", zap.Error(err))
	} else {
		for _, u := range users {
			acts = append(acts, models.Activity{
				Type:    "user",
				Message: fmt.Sprintf("New user registered: %s", u.Name),
				Date:    u.CreatedAt,
			})
		}
	}

	if news, err := s.News.Recent(ctx, recentPerKind); err != nil {
		utils.GetLogger().Warn("Overview: recent news unavailable", zap.Error(err))
	} else {
		for _, n := range news {
			acts = append(acts, models.Activity{
				Type:    "news",
				Message: fmt.Sprintf("News published: %s", n.Title),
				Date:    n.CreatedAt,
			})
		}
	}

	sort.SliceStable(acts, func(i, j int) bool { return acts[i].Date.After(acts[j].Date) })
	return acts
}

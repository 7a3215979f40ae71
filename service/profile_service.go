package service

import (
	"context"
	"encoding/json"
	"fmt"
	"go-user-api/model"
	"go-user-api/repository"
	"time"
)

const profileCacheTTL = 10 * time.Minute

// ProfileService handles profile reads/writes and follower relationships.
// Profile reads use a cache-aside strategy keyed by user id.
type ProfileService struct {
	userRepo     repository.IUserRepository
	followerRepo repository.IFollowerRepository
	cache        ICacheClient
}

func NewProfileService(userRepo repository.IUserRepository, followerRepo repository.IFollowerRepository, cache ICacheClient) *ProfileService {
	return &ProfileService{
		userRepo:     userRepo,
		followerRepo: followerRepo,
		cache:        cache,
	}
}

func profileCacheKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

// GetProfile returns the user's profile, serving from cache when possible.
func (s *ProfileService) GetProfile(userID string) (*model.User, error) {
	ctx := context.Background()
	cacheKey := profileCacheKey(userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			user := &model.User{}
			if err := json.Unmarshal([]byte(cached), user); err == nil {
				return user, nil
			}
		}
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(user); err == nil {
			s.cache.Set(ctx, cacheKey, data, profileCacheTTL)
		}
	}

	return user, nil
}

// UpdateProfile applies the partial update and invalidates the cached profile.
func (s *ProfileService) UpdateProfile(userID string, req *model.UpdateProfileRequest) error {
	if err := s.userRepo.UpdateProfile(userID, req); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Del(context.Background(), profileCacheKey(userID))
	}
	return nil
}

// Follow records that the authenticated user follows another user.
func (s *ProfileService) Follow(userID, followerUserID string) error {
	return s.followerRepo.Follow(userID, followerUserID)
}

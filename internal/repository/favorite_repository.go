package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dalilcare/provider-directory/internal/database"
	"github.com/dalilcare/provider-directory/internal/models"
)

// FavoriteRepository handles favorite database operations
type FavoriteRepository struct{}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{}
}

// Add bookmarks a provider for a user. Adding twice is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID, providerID uuid.UUID) error {
	fav := models.Favorite{UserID: userID, ProviderID: providerID}
	if err := database.DB.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, providerID).
		FirstOrCreate(&fav).Error; err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes a bookmark
func (r *FavoriteRepository) Remove(ctx context.Context, userID, providerID uuid.UUID) error {
	if err := database.DB.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, providerID).
		Delete(&models.Favorite{}).Error; err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's bookmarks, newest first
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var favs []models.Favorite
	if err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favs, nil
}

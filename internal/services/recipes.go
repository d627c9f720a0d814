package services

import (
	"context"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

type RecipeDTO struct {
	Title             string
	Instructions      string
	MinutesToComplete *int
	UserID            uint
}

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Create validates and stores a recipe, returning it with its owner attached.
func (s *RecipeService) Create(ctx context.Context, dto RecipeDTO) (*models.Recipe, error) {
	recipe := models.Recipe{
		Title:             dto.Title,
		Instructions:      dto.Instructions,
		MinutesToComplete: dto.MinutesToComplete,
		UserID:            dto.UserID,
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}

	var created models.Recipe
	if err := s.db.WithContext(ctx).Joins("User").First(&created, recipe.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// ListAll returns every recipe joined with its owner, oldest first.
func (s *RecipeService) ListAll(ctx context.Context) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	err := s.db.WithContext(ctx).Joins("User").Order("recipes.id").Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

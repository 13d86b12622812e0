// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/veloxcommerce/catalog-backend/internal/models"
	"github.com/veloxcommerce/catalog-backend/internal/utils"
)

// CategoryService maintains the materialized-path category tree. Path and
// level are derived data: they are recomputed inside the same transaction as
// any write that changes a node's slug or parent, and a move eagerly rewrites
// the paths of every descendant so the prefix invariant never goes stale.
type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name        string                 `json:"name" validate:"required,min=1,max=200"`
	Slug        string                 `json:"slug" validate:"required,slug,max=200"`
	Description string                 `json:"description,omitempty"`
	ParentID    *uuid.UUID             `json:"parent_id,omitempty"`
	SortOrder   int                    `json:"sort_order"`
	SeoData     map[string]interface{} `json:"seo_data,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        string                 `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Slug        string                 `json:"slug,omitempty" validate:"omitempty,slug,max=200"`
	Description *string                `json:"description,omitempty"`
	SortOrder   *int                   `json:"sort_order,omitempty"`
	SeoData     map[string]interface{} `json:"seo_data,omitempty"`
}

type MoveCategoryRequest struct {
	NewParentID *uuid.UUID `json:"new_parent_id"` // nil moves the node to the root
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// computePath derives the materialized path and depth for a node under the
// given parent. A nil parent makes the node a root.
func computePath(parent *models.Category, slug string) (string, int) {
	if parent == nil {
		return "/" + slug, 0
	}
	return parent.Path + "/" + slug, parent.Level + 1
}

func (s *CategoryService) FindAll() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("is_active = ?", true).
		Order("path ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

// FindOne returns a category by id regardless of its active flag, with
// parent and direct children preloaded.
func (s *CategoryService) FindOne(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Parent").Preload("Children").
		First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("category", id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

// GetTree builds the active-only forest: root categories ordered by
// sort_order, each with its active children attached depth-first in the same
// order. Inactive nodes are skipped along with their subtrees.
func (s *CategoryService) GetTree() ([]models.Category, error) {
	var roots []models.Category
	if err := s.db.Where("parent_id IS NULL AND is_active = ?", true).
		Order("sort_order ASC").
		Find(&roots).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch root categories: %w", err)
	}

	for i := range roots {
		if err := s.loadChildren(&roots[i]); err != nil {
			return nil, err
		}
	}

	return roots, nil
}

func (s *CategoryService) loadChildren(category *models.Category) error {
	var children []models.Category
	if err := s.db.Where("parent_id = ? AND is_active = ?", category.ID, true).
		Order("sort_order ASC").
		Find(&children).Error; err != nil {
		return fmt.Errorf("failed to fetch children of %s: %w", category.ID, err)
	}

	category.Children = children
	for i := range category.Children {
		if err := s.loadChildren(&category.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *CategoryService) Create(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationErr("invalid category: %v", err)
	}

	logrus.WithField("slug", req.Slug).Info("Creating category")

	category := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
		IsActive:    true,
		SeoData:     models.JSONB(req.SeoData),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkSlugAvailable(tx, req.Slug, nil); err != nil {
			return err
		}

		parent, err := s.resolveParent(tx, req.ParentID, true)
		if err != nil {
			return err
		}

		category.Path, category.Level = computePath(parent, category.Slug)
		return tx.Create(category).Error
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// Update changes descriptive fields. A slug change recomputes the node's own
// path and rewrites every descendant path in the same transaction.
func (s *CategoryService) Update(id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationErr("invalid category update: %v", err)
	}

	logrus.WithField("category_id", id).Info("Updating category")

	var category models.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("category", id)
			}
			return fmt.Errorf("database error: %w", err)
		}

		updates := make(map[string]interface{})
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.SortOrder != nil {
			updates["sort_order"] = *req.SortOrder
		}
		if req.SeoData != nil {
			updates["seo_data"] = models.JSONB(req.SeoData)
		}

		if req.Slug != "" && req.Slug != category.Slug {
			if err := s.checkSlugAvailable(tx, req.Slug, &id); err != nil {
				return err
			}

			// A rename in place keeps the existing parent even when that
			// parent has been deactivated; only insert and move demand an
			// active parent.
			parent, err := s.resolveParent(tx, category.ParentID, false)
			if err != nil {
				return err
			}

			oldPath := category.Path
			newPath, level := computePath(parent, req.Slug)
			updates["slug"] = req.Slug
			updates["path"] = newPath
			updates["level"] = level

			if err := s.rewriteDescendants(tx, oldPath, newPath, level-category.Level); err != nil {
				return err
			}
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&category).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return s.FindOne(id)
}

// Move re-parents a category. The new parent must exist and be active, and
// must not be the node itself or any of its descendants. Path and level of
// the node and its whole subtree are recomputed eagerly.
func (s *CategoryService) Move(id uuid.UUID, newParentID *uuid.UUID) (*models.Category, error) {
	logrus.WithFields(logrus.Fields{
		"category_id":   id,
		"new_parent_id": newParentID,
	}).Info("Moving category")

	var category models.Category
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("category", id)
			}
			return fmt.Errorf("database error: %w", err)
		}

		parent, err := s.resolveParent(tx, newParentID, true)
		if err != nil {
			return err
		}

		if parent != nil {
			if err := s.checkNoCycle(tx, &category, parent); err != nil {
				return err
			}
		}

		oldPath := category.Path
		newPath, level := computePath(parent, category.Slug)
		levelDelta := level - category.Level

		updates := map[string]interface{}{
			"parent_id": newParentID,
			"path":      newPath,
			"level":     level,
		}
		if err := tx.Model(&category).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to move category: %w", err)
		}

		return s.rewriteDescendants(tx, oldPath, newPath, levelDelta)
	})
	if err != nil {
		return nil, err
	}

	return s.FindOne(id)
}

// SoftDelete deactivates a category. The node stays addressable by id but
// disappears from listings and the tree. Children are NOT deactivated:
// callers that want the subtree gone must delete each node explicitly.
func (s *CategoryService) SoftDelete(id uuid.UUID) error {
	logrus.WithField("category_id", id).Info("Deactivating category")

	result := s.db.Model(&models.Category{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundErr("category", id)
	}
	return nil
}

// resolveParent loads and locks the parent row so a concurrent re-slug of
// the parent cannot race the path computation. A nil id means root. With
// requireActive set, a deactivated parent is treated as absent.
func (s *CategoryService) resolveParent(tx *gorm.DB, parentID *uuid.UUID, requireActive bool) (*models.Category, error) {
	if parentID == nil {
		return nil, nil
	}

	var parent models.Category
	if err := forUpdate(tx).
		First(&parent, "id = ?", *parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("parent category", *parentID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if requireActive && !parent.IsActive {
		return nil, notFoundErr("parent category", *parentID)
	}

	return &parent, nil
}

func (s *CategoryService) checkSlugAvailable(tx *gorm.DB, slug string, excludeID *uuid.UUID) error {
	query := tx.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return conflictErr("category slug %q already exists", slug)
	}
	return nil
}

// checkNoCycle walks the ancestor chain of the proposed parent up to the
// root and rejects the move if the node being moved appears anywhere on it.
func (s *CategoryService) checkNoCycle(tx *gorm.DB, node *models.Category, newParent *models.Category) error {
	if newParent.ID == node.ID {
		return validationErr("category %s cannot be its own parent", node.ID)
	}

	current := newParent
	for current.ParentID != nil {
		if *current.ParentID == node.ID {
			return validationErr("moving category %s under %s would create a cycle", node.ID, newParent.ID)
		}

		var ancestor models.Category
		if err := tx.First(&ancestor, "id = ?", *current.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // broken chain, nothing left to check
			}
			return fmt.Errorf("database error: %w", err)
		}
		current = &ancestor
	}
	return nil
}

// rewriteDescendants rebases every path under oldPath onto newPath and
// shifts levels by levelDelta. Inactive descendants are rewritten too: they
// stay addressable and must come back with a consistent path.
func (s *CategoryService) rewriteDescendants(tx *gorm.DB, oldPath, newPath string, levelDelta int) error {
	if oldPath == newPath {
		return nil
	}

	var descendants []models.Category
	if err := tx.Where("path LIKE ?", oldPath+"/%").Find(&descendants).Error; err != nil {
		return fmt.Errorf("failed to fetch descendants: %w", err)
	}

	for i := range descendants {
		d := &descendants[i]
		rebased := newPath + strings.TrimPrefix(d.Path, oldPath)
		if err := tx.Model(d).Updates(map[string]interface{}{
			"path":  rebased,
			"level": d.Level + levelDelta,
		}).Error; err != nil {
			return fmt.Errorf("failed to rewrite descendant %s: %w", d.ID, err)
		}
	}
	return nil
}

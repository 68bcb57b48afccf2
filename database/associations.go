package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// joinRow is implemented by the association tables linking an owner to a target.
type joinRow interface {
	models.ProjectTag | models.ProjectTechStack | models.BlogCategory
}

// reconcileJoins makes the owner's join rows match desired exactly.
// Rows for targets still desired are left untouched, so repeating a call is a no-op.
func reconcileJoins[T joinRow](tx *gorm.DB, ownerColumn string, ownerID uuid.UUID, desired []uuid.UUID, rowID, targetID func(T) uuid.UUID, build func(target uuid.UUID) T) error {
	var current []T
	if err := tx.Where(ownerColumn+" = ?", ownerID).Find(&current).Error; err != nil {
		return err
	}

	want := make(map[uuid.UUID]bool, len(desired))
	for _, id := range desired {
		want[id] = true
	}

	have := make(map[uuid.UUID]bool, len(current))
	var stale []uuid.UUID
	for _, row := range current {
		target := targetID(row)
		if want[target] && !have[target] {
			have[target] = true
			continue
		}
		stale = append(stale, rowID(row))
	}

	if len(stale) > 0 {
		if err := tx.Where("id IN ?", stale).Delete(new(T)).Error; err != nil {
			return err
		}
	}

	var missing []T
	for _, id := range desired {
		if have[id] {
			continue
		}
		have[id] = true
		missing = append(missing, build(id))
	}
	if len(missing) == 0 {
		return nil
	}
	if err := tx.Create(&missing).Error; err != nil {
		// Another writer linked the same target after our read.
		if errs.IsUniqueViolation(err) {
			return errs.NewConcurrentUpdateError(strings.TrimSuffix(ownerColumn, "_id"))
		}
		return err
	}
	return nil
}

// uniqueNames trims names and drops blanks and repeats, keeping first-seen order.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// findOrCreateTag inserts the tag unless it exists and returns the stored row.
func findOrCreateTag(tx *gorm.DB, name string) (models.Tag, error) {
	candidate := models.Tag{Name: name}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return models.Tag{}, err
	}

	var tag models.Tag
	if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func resolveTags(tx *gorm.DB, names []string) ([]uuid.UUID, error) {
	names = uniqueNames(names)
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		tag, err := findOrCreateTag(tx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

// resolveExisting parses raw ids and checks that each names a row of model.
// The first unknown id is reported as "<label> with id <id> not found".
func resolveExisting(tx *gorm.DB, model interface{}, label string, raw []string) ([]uuid.UUID, error) {
	raw = uniqueNames(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	notFound := func(id string) error {
		return errs.NewBadRequestError(fmt.Sprintf("%s with id %s not found", label, id))
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, notFound(s)
		}
		ids = append(ids, id)
	}

	var found []string
	if err := tx.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(found))
	for _, id := range found {
		known[strings.ToLower(id)] = true
	}
	for i, id := range ids {
		if !known[id.String()] {
			return nil, notFound(raw[i])
		}
	}

	// Parsing may have folded duplicates that differed only in case
	out := ids[:0]
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func deleteByID(tx *gorm.DB, model interface{}, id uuid.UUID) error {
	res := tx.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package db

import (
	"errors"

	"github.com/blacktop/devirt/internal/model"
	"gorm.io/gorm"
)

// orm holds the operations shared by the gorm backed databases.
type orm struct {
	db *gorm.DB
}

func (o *orm) migrate() error {
	return o.db.AutoMigrate(
		&model.Run{},
		&model.Module{},
		&model.Method{},
	)
}

// CreateRun records a new run.
func (o *orm) CreateRun(r *model.Run) error {
	return o.db.Create(r).Error
}

// FinishRun stores the run's end time.
func (o *orm) FinishRun(r *model.Run) error {
	return o.db.Model(r).Update("finished", r.Finished).Error
}

// Create stores a module report and its methods.
func (o *orm) Create(m *model.Module) error {
	if result := o.db.Create(m); result.Error != nil {
		return result.Error
	}
	return nil
}

// Get returns the module report with the given ID.
// It returns model.ErrNotFound if the key does not exist.
func (o *orm) Get(id uint) (*model.Module, error) {
	var m model.Module
	if err := o.db.Preload("Methods").First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns the module reports of a run.
func (o *orm) List(runID uint) ([]*model.Module, error) {
	var mods []*model.Module
	if err := o.db.Preload("Methods").Where("run_id = ?", runID).Order("id").Find(&mods).Error; err != nil {
		return nil, err
	}
	return mods, nil
}

// Close closes the database.
func (o *orm) Close() error {
	if o.db == nil {
		return nil
	}
	db, err := o.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/example/anandamoyee/internal/models"
)

// SettingRepository reads and writes key/value settings. Values are
// looked up at use time so admin edits take effect immediately.
type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the value for key, or an empty string when unset.
func (r *SettingRepository) Get(key string) (string, error) {
	var setting models.Setting
	if err := r.db.First(&setting, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

// Set upserts the value for key.
func (r *SettingRepository) Set(key, value string) error {
	var setting models.Setting
	err := r.db.Where(models.Setting{Key: key}).
		Assign(map[string]interface{}{"value": value}).
		FirstOrCreate(&setting).Error
	return err
}

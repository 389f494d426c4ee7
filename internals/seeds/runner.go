package seeds

import (
	"context"
	"log"

	"gorm.io/gorm"

	roleService "schoolku_backend/internals/features/users/roles/service"
	schools "schoolku_backend/internals/seeds/schools"
)

// RunAllSeeds: katalog permission selalu; school demo hanya bila path diisi.
func RunAllSeeds(ctx context.Context, db *gorm.DB, schoolsPath string) error {
	log.Println("[SEED] sinkron katalog permission...")
	if err := roleService.SyncPermissionCatalog(db.WithContext(ctx)); err != nil {
		return err
	}
	if schoolsPath == "" {
		return nil
	}
	_, err := schools.SeedSchoolsFromJSON(ctx, db, schoolsPath)
	return err
}

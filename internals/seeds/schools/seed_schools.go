package schools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	schoolService "schoolku_backend/internals/features/schools/service"
	helper "schoolku_backend/internals/helpers"
)

type SchoolSeed struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Timezone      string `json:"timezone"`
	AdminUsername string `json:"admin_username"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
	AdminFullName string `json:"admin_full_name"`
}

// SeedSchoolsFromJSON provision tiap school di file; kode yang sudah ada dilewati.
func SeedSchoolsFromJSON(ctx context.Context, db *gorm.DB, filePath string) (int, error) {
	log.Println("[SEED] membaca file:", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("baca %s: %w", filePath, err)
	}
	var rows []SchoolSeed
	if err := json.Unmarshal(raw, &rows); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	created := 0
	for _, s := range rows {
		p, err := schoolService.Provision(ctx, db, schoolService.ProvisionInput{
			Code:          s.Code,
			Name:          s.Name,
			Timezone:      s.Timezone,
			AdminUsername: s.AdminUsername,
			AdminEmail:    s.AdminEmail,
			AdminPassword: s.AdminPassword,
			AdminFullName: s.AdminFullName,
		})
		switch {
		case helper.IsKind(err, helper.KindConflict):
			log.Printf("[SEED] school %s sudah ada, lewati", s.Code)
		case err != nil:
			return created, fmt.Errorf("school %s: %w", s.Code, err)
		default:
			created++
			log.Printf("[SEED] school %s (%s) dibuat", p.School.SchoolName, p.School.SchoolCode)
		}
	}
	return created, nil
}

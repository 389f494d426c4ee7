// file: internals/databases/scope/tenant.go
package scope

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	helper "schoolku_backend/internals/helpers"
)

// Tenanted diimplementasikan semua model milik tenant.
// Kolom tenant dan primary key ikut prefix nama tabel (mis. class_school_id, class_id).
type Tenanted interface {
	TableName() string
	TenantColumn() string
	KeyColumn() string
	SetSchoolID(uuid.UUID)
}

// Labeled opsional: nama resource untuk pesan NotFound.
type Labeled interface {
	Label() string
}

// Tenant membungkus *gorm.DB dan selalu menyuntikkan predikat tenant.
// Handler tidak pernah menulis filter school_id sendiri.
type Tenant struct {
	db       *gorm.DB
	SchoolID uuid.UUID
}

func For(db *gorm.DB, schoolID uuid.UUID) *Tenant {
	return &Tenant{db: db, SchoolID: schoolID}
}

func (t *Tenant) WithContext(ctx context.Context) *Tenant {
	return &Tenant{db: t.db.WithContext(ctx), SchoolID: t.SchoolID}
}

// Query mulai query pada tabel model dengan filter tenant terpasang.
func (t *Tenant) Query(m Tenanted) *gorm.DB {
	return t.db.Model(m).Where(Col(m, m.TenantColumn())+" = ?", t.SchoolID)
}

// Table sama dengan Query tapi untuk join: filter memakai nama tabel eksplisit.
func (t *Tenant) Table(m Tenanted) *gorm.DB {
	return t.db.Table(m.TableName()).Where(Col(m, m.TenantColumn())+" = ?", t.SchoolID)
}

// Raw DB tanpa filter, hanya untuk tabel global (permissions).
func (t *Tenant) Global() *gorm.DB { return t.db }

func (t *Tenant) Create(m Tenanted) error {
	m.SetSchoolID(t.SchoolID)
	return t.db.Create(m).Error
}

func (t *Tenant) Transaction(fn func(tx *Tenant) error) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Tenant{db: tx, SchoolID: t.SchoolID})
	})
}

// CreateAll insert batch; school id tiap row dipaksa ke tenant ini.
// clauses opsional, mis. clause.OnConflict untuk upsert.
func CreateAll[T any, PT interface {
	*T
	Tenanted
}](t *Tenant, rows []T, clauses ...clause.Expression) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		PT(&rows[i]).SetSchoolID(t.SchoolID)
	}
	return t.db.Clauses(clauses...).Create(&rows).Error
}

// First memuat row by id di tenant ini. Row milik tenant lain → NotFound.
func First[T any, PT interface {
	*T
	Tenanted
}](t *Tenant, id uuid.UUID) (*T, error) {
	var out T
	m := PT(&out)
	err := t.Query(m).Where(Col(m, m.KeyColumn())+" = ?", id).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.NotFound(label(m))
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Owns memastikan id direferensikan milik tenant ini (validasi FK dari payload).
func (t *Tenant) Owns(m Tenanted, id uuid.UUID) error {
	ok, err := t.Exists(m, Col(m, m.KeyColumn())+" = ?", id)
	if err != nil {
		return err
	}
	if !ok {
		return helper.NotFound(label(m))
	}
	return nil
}

// OwnsAll versi batch dari Owns; ids harus sudah unik.
func (t *Tenant) OwnsAll(m Tenanted, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	n, err := t.Count(m, Col(m, m.KeyColumn())+" IN ?", ids)
	if err != nil {
		return err
	}
	if int(n) != len(ids) {
		return helper.NotFound(label(m))
	}
	return nil
}

func (t *Tenant) Exists(m Tenanted, cond string, args ...any) (bool, error) {
	n, err := t.Count(m, cond, args...)
	return n > 0, err
}

func (t *Tenant) Count(m Tenanted, cond string, args ...any) (int64, error) {
	var n int64
	q := t.Query(m)
	if cond != "" {
		q = q.Where(cond, args...)
	}
	err := q.Count(&n).Error
	return n, err
}

// Unique cek keunikan kolom di tenant; excludeID untuk update (uuid.Nil saat create).
func (t *Tenant) Unique(m Tenanted, column string, value any, excludeID uuid.UUID, field string) error {
	q := t.Query(m).Where(Col(m, column)+" = ?", value)
	if excludeID != uuid.Nil {
		q = q.Where(Col(m, m.KeyColumn())+" <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return helper.Conflict(field, fmt.Sprintf("%s already exists", field))
	}
	return nil
}

func (t *Tenant) Updates(m Tenanted, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := t.Query(m).Where(Col(m, m.KeyColumn())+" = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.NotFound(label(m))
	}
	return nil
}

func (t *Tenant) Delete(m Tenanted, id uuid.UUID) error {
	res := t.db.Where(Col(m, m.TenantColumn())+" = ?", t.SchoolID).
		Where(Col(m, m.KeyColumn())+" = ?", id).
		Delete(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.NotFound(label(m))
	}
	return nil
}

// Prefixed semua nilai kolom yang diawali prefix (bahan generator nomor urut).
func (t *Tenant) Prefixed(m Tenanted, column, prefix string) ([]string, error) {
	var vals []string
	err := t.Query(m).Where(Col(m, column)+" LIKE ?", prefix+"%").Pluck(Col(m, column), &vals).Error
	return vals, err
}

// Col menghasilkan "table.column" supaya aman dipakai di join.
func Col(m Tenanted, column string) string {
	return m.TableName() + "." + column
}

func label(m Tenanted) string {
	if l, ok := m.(Labeled); ok {
		return l.Label()
	}
	return "record"
}

// Page menjalankan count + find untuk list; order kosong → tanpa ORDER BY.
func Page(q *gorm.DB, p helper.Paging, order string, dst any) (helper.Pagination, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.Pagination{}, err
	}
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Offset(p.Offset).Limit(p.Limit).Find(dst).Error; err != nil {
		return helper.Pagination{}, err
	}
	return helper.BuildPagination(total, p), nil
}

package service

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/academics/classes/model"
	examModel "schoolku_backend/internals/features/exams/model"
	homeworkModel "schoolku_backend/internals/features/homework/model"
	studentModel "schoolku_backend/internals/features/students/model"
	helper "schoolku_backend/internals/helpers"
)

func views(t *scope.Tenant) *gorm.DB {
	return t.Table(&model.ClassSectionModel{}).
		Select("class_sections.class_section_id, class_sections.class_section_class_id, sections.section_id, sections.section_name, class_sections.class_section_capacity, class_sections.class_section_order").
		Joins("JOIN sections ON sections.section_id = class_sections.class_section_section_id")
}

// SectionsFor memuat ClassSection (join Section) untuk sekumpulan class.
func SectionsFor(t *scope.Tenant, classIDs []uuid.UUID) (map[uuid.UUID][]model.ClassSectionView, error) {
	out := map[uuid.UUID][]model.ClassSectionView{}
	if len(classIDs) == 0 {
		return out, nil
	}
	var rows []model.ClassSectionView
	err := views(t).
		Where("class_sections.class_section_class_id IN ?", classIDs).
		Order("class_sections.class_section_order ASC, sections.section_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ClassID] = append(out[r.ClassID], r)
	}
	return out, nil
}

// ListViews daftar class-section datar, urut class lalu section.
func ListViews(t *scope.Tenant, classID, sectionID *uuid.UUID) ([]model.ClassSectionView, error) {
	q := views(t).Joins("JOIN classes ON classes.class_id = class_sections.class_section_class_id")
	if classID != nil {
		q = q.Where("class_sections.class_section_class_id = ?", *classID)
	}
	if sectionID != nil {
		q = q.Where("class_sections.class_section_section_id = ?", *sectionID)
	}
	rows := []model.ClassSectionView{}
	err := q.Order("classes.class_order ASC, classes.class_name ASC, class_sections.class_section_order ASC, sections.section_name ASC").
		Scan(&rows).Error
	return rows, err
}

// SyncSections menyamakan ClassSection milik class dengan sectionIDs.
// Section yang dilepas tidak boleh punya siswa terdaftar. Panggil di dalam transaksi.
func SyncSections(tx *scope.Tenant, classID uuid.UUID, sectionIDs []uuid.UUID) error {
	for _, sid := range sectionIDs {
		if err := tx.Owns(&model.SectionModel{}, sid); err != nil {
			return err
		}
	}

	var existing []model.ClassSectionModel
	if err := tx.Query(&model.ClassSectionModel{}).
		Where("class_section_class_id = ?", classID).
		Find(&existing).Error; err != nil {
		return err
	}
	have := lo.Map(existing, func(cs model.ClassSectionModel, _ int) uuid.UUID { return cs.ClassSectionSectionID })
	toAdd, toRemove := lo.Difference(sectionIDs, have)

	for _, cs := range existing {
		if !lo.Contains(toRemove, cs.ClassSectionSectionID) {
			continue
		}
		if err := EnsureNoEnrollment(tx, []uuid.UUID{cs.ClassSectionID}); err != nil {
			return err
		}
		if err := EnsureNotScheduled(tx, []uuid.UUID{cs.ClassSectionID}, "sectionIds"); err != nil {
			return err
		}
		if err := tx.Delete(&model.ClassSectionModel{}, cs.ClassSectionID); err != nil {
			return err
		}
	}
	for i, sid := range toAdd {
		cs := &model.ClassSectionModel{
			ClassSectionClassID:   classID,
			ClassSectionSectionID: sid,
			ClassSectionOrder:     len(existing) + i,
		}
		if err := tx.Create(cs); err != nil {
			return err
		}
	}
	return nil
}

// EnsureNoEnrollment → Conflict bila ada StudentSession di class-section tersebut.
func EnsureNoEnrollment(t *scope.Tenant, classSectionIDs []uuid.UUID) error {
	if len(classSectionIDs) == 0 {
		return nil
	}
	used, err := t.Exists(&studentModel.StudentSessionModel{}, "student_session_class_section_id IN ?", classSectionIDs)
	if err != nil {
		return err
	}
	if used {
		return helper.Conflict("sectionIds", "class section has enrolled students")
	}
	return nil
}

// EnsureNotScheduled → Conflict bila class-section masih dipakai jadwal ujian atau homework.
func EnsureNotScheduled(t *scope.Tenant, classSectionIDs []uuid.UUID, field string) error {
	if len(classSectionIDs) == 0 {
		return nil
	}
	refs := []struct {
		m   scope.Tenanted
		col string
		msg string
	}{
		{&examModel.ExamScheduleModel{}, "exam_schedule_class_section_id", "class section has exam schedules"},
		{&homeworkModel.HomeworkModel{}, "homework_class_section_id", "class section has homework"},
	}
	for _, r := range refs {
		used, err := t.Exists(r.m, r.col+" IN ?", classSectionIDs)
		if err != nil {
			return err
		}
		if used {
			return helper.Conflict(field, r.msg)
		}
	}
	return nil
}

// ClassSectionIDs untuk filter classId/sectionId di modul lain.
func ClassSectionIDs(t *scope.Tenant, classID, sectionID *uuid.UUID) ([]uuid.UUID, error) {
	q := t.Query(&model.ClassSectionModel{})
	if classID != nil {
		q = q.Where("class_section_class_id = ?", *classID)
	}
	if sectionID != nil {
		q = q.Where("class_section_section_id = ?", *sectionID)
	}
	var ids []uuid.UUID
	err := q.Pluck("class_section_id", &ids).Error
	return ids, err
}

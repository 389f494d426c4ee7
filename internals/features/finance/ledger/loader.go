package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/finance/fees/model"
	studentModel "schoolku_backend/internals/features/students/model"
)

type Filter struct {
	ClassID   *uuid.UUID
	SectionID *uuid.UUID
	SessionID *uuid.UUID
	StudentID *uuid.UUID
	OnlyDue   bool
}

func (f Filter) enrollmentScoped() bool {
	return f.ClassID != nil || f.SectionID != nil || f.SessionID != nil
}

type SessionLedger struct {
	StudentSessionID uuid.UUID `json:"studentSessionId"`
	SessionID        uuid.UUID `json:"sessionId"`
	SessionName      string    `json:"sessionName"`
	ClassName        string    `json:"className"`
	SectionName      string    `json:"sectionName"`
	Totals
}

type StudentLedger struct {
	StudentID   uuid.UUID       `json:"studentId"`
	AdmissionNo string          `json:"admissionNo"`
	FirstName   string          `json:"firstName"`
	LastName    *string         `json:"lastName"`
	Sessions    []SessionLedger `json:"sessions"`
	Summary     Totals          `json:"summary"`
}

type studentRow struct {
	StudentID   uuid.UUID `gorm:"column:student_id"`
	AdmissionNo string    `gorm:"column:student_admission_no"`
	FirstName   string    `gorm:"column:student_first_name"`
	LastName    *string   `gorm:"column:student_last_name"`
}

type enrollmentRow struct {
	StudentSessionID uuid.UUID `gorm:"column:student_session_id"`
	StudentID        uuid.UUID `gorm:"column:student_session_student_id"`
	SessionID        uuid.UUID `gorm:"column:student_session_session_id"`
	SessionName      string    `gorm:"column:academic_session_name"`
	ClassName        string    `gorm:"column:class_name"`
	SectionName      string    `gorm:"column:section_name"`
}

type assignmentRow struct {
	StudentFeesMasterID uuid.UUID `gorm:"column:student_fees_master_id"`
	StudentSessionID    uuid.UUID `gorm:"column:student_fees_master_student_session_id"`
	FeeGroupID          uuid.UUID `gorm:"column:fees_master_fee_group_id"`
}

type paymentRow struct {
	StudentFeesMasterID uuid.UUID       `gorm:"column:fee_payment_student_fees_master_id"`
	Amount              decimal.Decimal `gorm:"column:fee_payment_amount"`
	Discount            decimal.Decimal `gorm:"column:fee_payment_discount"`
	Fine                decimal.Decimal `gorm:"column:fee_payment_fine"`
}

// Load membangun ledger semua student yang cocok dengan filter.
// Student tanpa assignment tetap muncul dengan angka nol (kecuali OnlyDue).
func Load(t *scope.Tenant, f Filter, now time.Time) ([]StudentLedger, error) {
	students, err := loadStudents(t, f)
	if err != nil || len(students) == 0 {
		return []StudentLedger{}, err
	}
	studentIDs := lo.Map(students, func(s studentRow, _ int) uuid.UUID { return s.StudentID })

	enrollments, err := loadEnrollments(t, f, studentIDs)
	if err != nil {
		return nil, err
	}
	ssIDs := lo.Map(enrollments, func(e enrollmentRow, _ int) uuid.UUID { return e.StudentSessionID })

	lines, payments, err := loadInputs(t, ssIDs)
	if err != nil {
		return nil, err
	}
	linesBySS := lo.GroupBy(lines, func(l Line) uuid.UUID { return l.StudentSessionID })
	paysBySS := lo.GroupBy(payments, func(p Payment) uuid.UUID { return p.StudentSessionID })
	enrBySt := lo.GroupBy(enrollments, func(e enrollmentRow) uuid.UUID { return e.StudentID })

	out := make([]StudentLedger, 0, len(students))
	for _, s := range students {
		sl := StudentLedger{
			StudentID:   s.StudentID,
			AdmissionNo: s.AdmissionNo,
			FirstName:   s.FirstName,
			LastName:    s.LastName,
			Sessions:    []SessionLedger{},
		}
		per := make([]Totals, 0, len(enrBySt[s.StudentID]))
		for _, e := range enrBySt[s.StudentID] {
			tot := Compute(linesBySS[e.StudentSessionID], paysBySS[e.StudentSessionID], now)
			per = append(per, tot)
			sl.Sessions = append(sl.Sessions, SessionLedger{
				StudentSessionID: e.StudentSessionID,
				SessionID:        e.SessionID,
				SessionName:      e.SessionName,
				ClassName:        e.ClassName,
				SectionName:      e.SectionName,
				Totals:           tot,
			})
		}
		sl.Summary = Summarize(per)
		if f.OnlyDue && !sl.Summary.HasDue() {
			continue
		}
		out = append(out, sl)
	}
	return out, nil
}

func loadStudents(t *scope.Tenant, f Filter) ([]studentRow, error) {
	q := t.Query(&studentModel.StudentModel{}).
		Select("student_id, student_admission_no, student_first_name, student_last_name")
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.enrollmentScoped() {
		sub := enrollmentQuery(t, f).Select("student_sessions.student_session_student_id")
		q = q.Where("student_id IN (?)", sub)
	}
	var rows []studentRow
	err := q.Order("student_admission_no ASC").Scan(&rows).Error
	return rows, err
}

func loadEnrollments(t *scope.Tenant, f Filter, studentIDs []uuid.UUID) ([]enrollmentRow, error) {
	var rows []enrollmentRow
	err := enrollmentQuery(t, f).
		Joins("JOIN academic_sessions ON academic_sessions.academic_session_id = student_sessions.student_session_session_id").
		Joins("JOIN classes ON classes.class_id = class_sections.class_section_class_id").
		Joins("JOIN sections ON sections.section_id = class_sections.class_section_section_id").
		Where("student_sessions.student_session_student_id IN ?", studentIDs).
		Select(`student_sessions.student_session_id, student_sessions.student_session_student_id,
			student_sessions.student_session_session_id, academic_sessions.academic_session_name,
			classes.class_name, sections.section_name`).
		Order("academic_sessions.academic_session_start_date ASC, academic_sessions.academic_session_name ASC").
		Scan(&rows).Error
	return rows, err
}

// enrollmentQuery student_sessions ⨝ class_sections dengan filter class/section/session.
func enrollmentQuery(t *scope.Tenant, f Filter) *gorm.DB {
	q := t.Table(&studentModel.StudentSessionModel{}).
		Joins("JOIN class_sections ON class_sections.class_section_id = student_sessions.student_session_class_section_id")
	if f.ClassID != nil {
		q = q.Where("class_sections.class_section_class_id = ?", *f.ClassID)
	}
	if f.SectionID != nil {
		q = q.Where("class_sections.class_section_section_id = ?", *f.SectionID)
	}
	if f.SessionID != nil {
		q = q.Where("student_sessions.student_session_session_id = ?", *f.SessionID)
	}
	return q
}

// loadInputs: assignment aktif → line per FeeGroupType; payment dipetakan ke student session-nya.
func loadInputs(t *scope.Tenant, ssIDs []uuid.UUID) ([]Line, []Payment, error) {
	if len(ssIDs) == 0 {
		return nil, nil, nil
	}
	var assigns []assignmentRow
	if err := t.Table(&model.StudentFeesMasterModel{}).
		Joins("JOIN fees_masters ON fees_masters.fees_master_id = student_fees_masters.student_fees_master_fees_master_id").
		Where("student_fees_masters.student_fees_master_student_session_id IN ?", ssIDs).
		Where("student_fees_masters.student_fees_master_is_active = ?", true).
		Select(`student_fees_masters.student_fees_master_id,
			student_fees_masters.student_fees_master_student_session_id,
			fees_masters.fees_master_fee_group_id`).
		Scan(&assigns).Error; err != nil {
		return nil, nil, err
	}
	if len(assigns) == 0 {
		return nil, nil, nil
	}

	groupIDs := lo.Uniq(lo.Map(assigns, func(a assignmentRow, _ int) uuid.UUID { return a.FeeGroupID }))
	var gts []model.FeeGroupTypeModel
	if err := t.Query(&model.FeeGroupTypeModel{}).
		Where("fee_group_type_fee_group_id IN ?", groupIDs).
		Find(&gts).Error; err != nil {
		return nil, nil, err
	}
	byGroup := lo.GroupBy(gts, func(g model.FeeGroupTypeModel) uuid.UUID { return g.FeeGroupTypeFeeGroupID })

	var lines []Line
	for _, a := range assigns {
		for _, g := range byGroup[a.FeeGroupID] {
			lines = append(lines, Line{
				StudentSessionID: a.StudentSessionID,
				FeeGroupTypeID:   g.FeeGroupTypeID,
				Amount:           g.FeeGroupTypeAmount,
				DueDate:          g.FeeGroupTypeDueDate,
				FineType:         g.FeeGroupTypeFineType,
				FinePercent:      g.FeeGroupTypeFinePercent,
				FineAmount:       g.FeeGroupTypeFineAmount,
			})
		}
	}

	ssBySFM := lo.SliceToMap(assigns, func(a assignmentRow) (uuid.UUID, uuid.UUID) {
		return a.StudentFeesMasterID, a.StudentSessionID
	})
	var pays []paymentRow
	if err := t.Query(&model.FeePaymentModel{}).
		Where("fee_payment_student_fees_master_id IN ?", lo.Keys(ssBySFM)).
		Select("fee_payment_student_fees_master_id, fee_payment_amount, fee_payment_discount, fee_payment_fine").
		Scan(&pays).Error; err != nil {
		return nil, nil, err
	}
	payments := lo.Map(pays, func(p paymentRow, _ int) Payment {
		return Payment{
			StudentSessionID: ssBySFM[p.StudentFeesMasterID],
			Amount:           p.Amount,
			Discount:         p.Discount,
			Fine:             p.Fine,
		}
	})
	return lines, payments, nil
}

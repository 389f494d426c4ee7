package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/library/dto"
	"schoolku_backend/internals/features/library/model"
	staffModel "schoolku_backend/internals/features/staff/model"
	studentModel "schoolku_backend/internals/features/students/model"
	helper "schoolku_backend/internals/helpers"
)

const cardPrefix = "LIB"

type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db}
}

type MemberView struct {
	model.LibraryMemberModel
	FirstName string  `gorm:"column:first_name" json:"firstName"`
	LastName  *string `gorm:"column:last_name" json:"lastName"`
	OnLoan    int64   `gorm:"column:on_loan" json:"onLoan"`
}

// GET /api/library/members?memberType=&search=
func (ctl *MemberController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Table(&model.LibraryMemberModel{}).
		Joins("LEFT JOIN students ON students.student_id = library_members.library_member_student_id").
		Joins("LEFT JOIN staff ON staff.staff_id = library_members.library_member_staff_id")
	if mt := c.Query("memberType"); mt != "" {
		q = q.Where("library_members.library_member_type = ?", mt)
	}
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where(`LOWER(library_members.library_member_card_no) LIKE ?
			OR LOWER(students.student_first_name) LIKE ? OR LOWER(staff.staff_first_name) LIKE ?`, s, s, s)
	}
	q = q.Select(`library_members.*,
		COALESCE(students.student_first_name, staff.staff_first_name) AS first_name,
		COALESCE(students.student_last_name, staff.staff_last_name) AS last_name,
		(SELECT COUNT(*) FROM book_issues
			WHERE book_issues.book_issue_library_member_id = library_members.library_member_id
			AND book_issues.book_issue_is_returned = ?) AS on_loan`, false)

	rows := []MemberView{}
	pg, err := scope.Page(q, p, "library_members.library_member_card_no ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

// POST /api/library/members: satu keanggotaan per student/staff; cardNo kosong → LIB0001 dst.
func (ctl *MemberController) Create(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateMemberRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := req.Validate(); err != nil {
		return helper.JsonFromError(c, err)
	}

	var dupCond string
	var dupArg uuid.UUID
	if req.StudentID != nil {
		if err := t.Owns(&studentModel.StudentModel{}, *req.StudentID); err != nil {
			return helper.JsonFromError(c, err)
		}
		dupCond, dupArg = "library_member_student_id = ?", *req.StudentID
	} else {
		if err := t.Owns(&staffModel.StaffModel{}, *req.StaffID); err != nil {
			return helper.JsonFromError(c, err)
		}
		dupCond, dupArg = "library_member_staff_id = ?", *req.StaffID
	}
	if dup, err := t.Exists(&model.LibraryMemberModel{}, dupCond, dupArg); err != nil {
		return helper.JsonFromError(c, err)
	} else if dup {
		return helper.JsonFromError(c, helper.Conflict(req.MemberType+"Id", req.MemberType+" is already a library member"))
	}

	m := &model.LibraryMemberModel{
		LibraryMemberType:      req.MemberType,
		LibraryMemberStudentID: req.StudentID,
		LibraryMemberStaffID:   req.StaffID,
		LibraryMemberCardNo:    req.CardNo,
	}
	err = t.Transaction(func(tx *scope.Tenant) error {
		if m.LibraryMemberCardNo == "" {
			no, err := nextCardNo(tx)
			if err != nil {
				return err
			}
			m.LibraryMemberCardNo = no
		} else if err := tx.Unique(&model.LibraryMemberModel{}, "library_member_card_no", m.LibraryMemberCardNo, uuid.Nil, "cardNo"); err != nil {
			return err
		}
		return tx.Create(m)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Library member created", m)
}

func nextCardNo(t *scope.Tenant) (string, error) {
	cards, err := t.Prefixed(&model.LibraryMemberModel{}, "library_member_card_no", cardPrefix)
	if err != nil {
		return "", err
	}
	return helper.NextIdentifier(cardPrefix, helper.HighestIdentifier(cardPrefix, cards), 4, func(s string) (bool, error) {
		return t.Exists(&model.LibraryMemberModel{}, "library_member_card_no = ?", s)
	})
}

// DELETE /api/library/members/:id: ditolak bila masih ada buku dipinjam; riwayat ikut terhapus.
func (ctl *MemberController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.LibraryMemberModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if loan, err := t.Exists(&model.BookIssueModel{},
		"book_issue_library_member_id = ? AND book_issue_is_returned = ?", id, false); err != nil {
		return helper.JsonFromError(c, err)
	} else if loan {
		return helper.JsonFromError(c, helper.Conflict("id", "member has books on loan"))
	}
	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Query(&model.BookIssueModel{}).
			Where("book_issue_library_member_id = ?", id).
			Delete(&model.BookIssueModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.LibraryMemberModel{}, id)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Library member deleted")
}

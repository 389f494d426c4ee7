package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/library/dto"
	"schoolku_backend/internals/features/library/model"
	"schoolku_backend/internals/features/library/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/helpers/dbtime"
)

type IssueController struct {
	DB *gorm.DB
}

func NewIssueController(db *gorm.DB) *IssueController {
	return &IssueController{DB: db}
}

type IssueView struct {
	model.BookIssueModel
	BookTitle string `gorm:"column:book_title" json:"bookTitle"`
	CardNo    string `gorm:"column:library_member_card_no" json:"cardNo"`
	Overdue   bool   `gorm:"-" json:"overdue"`
}

// GET /api/library/issues?memberId=&bookId=&isReturned=&overdue=true
func (ctl *IssueController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	today := dbtime.TodayInSchool(c)

	q := t.Table(&model.BookIssueModel{}).
		Joins("JOIN books ON books.book_id = book_issues.book_issue_book_id").
		Joins("JOIN library_members ON library_members.library_member_id = book_issues.book_issue_library_member_id").
		Select("book_issues.*, books.book_title, library_members.library_member_card_no")
	if id := helper.QueryUUID(c, "memberId"); id != nil {
		q = q.Where("book_issues.book_issue_library_member_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "bookId"); id != nil {
		q = q.Where("book_issues.book_issue_book_id = ?", *id)
	}
	if v := c.Query("isReturned"); v != "" {
		q = q.Where("book_issues.book_issue_is_returned = ?", helper.QueryBool(c, "isReturned"))
	}
	if helper.QueryBool(c, "overdue") {
		q = q.Where("book_issues.book_issue_is_returned = ? AND book_issues.book_issue_due_date < ?", false, today)
	}

	rows := []IssueView{}
	pg, err := scope.Page(q, p, "book_issues.book_issue_issue_date DESC, book_issues.book_issue_created_at DESC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	for i := range rows {
		rows[i].Overdue = isOverdue(&rows[i].BookIssueModel, today)
	}
	return helper.JsonList(c, rows, pg)
}

func isOverdue(m *model.BookIssueModel, today time.Time) bool {
	return !m.BookIssueIsReturned && m.BookIssueDueDate != nil && dbtime.DateOnly(*m.BookIssueDueDate).Before(today)
}

// POST /api/library/issues
func (ctl *IssueController) Create(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())

	var req dto.IssueBookRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	issueDate := dbtime.TodayInSchool(c)
	if d, err := dbtime.OptionalDate("issueDate", req.IssueDate); err != nil {
		return helper.JsonFromError(c, err)
	} else if d != nil {
		issueDate = *d
	}
	due, err := dbtime.OptionalDate("dueDate", req.DueDate)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if due != nil && due.Before(issueDate) {
		return helper.JsonFromError(c, helper.Validation("dueDate", "dueDate must not be before issueDate"))
	}
	if err := t.Owns(&model.LibraryMemberModel{}, req.MemberID); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Owns(&model.BookModel{}, req.BookID); err != nil {
		return helper.JsonFromError(c, err)
	}

	issuer := tc.UserID
	m := &model.BookIssueModel{
		BookIssueBookID:          req.BookID,
		BookIssueLibraryMemberID: req.MemberID,
		BookIssueIssueDate:       issueDate,
		BookIssueDueDate:         due,
		BookIssueIssuedBy:        &issuer,
	}
	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := service.Take(tx, req.BookID); err != nil {
			return err
		}
		return tx.Create(m)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Book issued", m)
}

// POST /api/library/issues/:id/return: hanya sekali; available naik satu.
func (ctl *IssueController) Return(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.ReturnBookRequest
	if len(c.Body()) > 0 {
		if err := helper.ParseAndValidate(c, &req); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	cur, err := scope.First[model.BookIssueModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	returned := dbtime.TodayInSchool(c)
	if d, err := dbtime.OptionalDate("returnDate", req.ReturnDate); err != nil {
		return helper.JsonFromError(c, err)
	} else if d != nil {
		returned = *d
	}
	if returned.Before(dbtime.DateOnly(cur.BookIssueIssueDate)) {
		return helper.JsonFromError(c, helper.Validation("returnDate", "returnDate must not be before issueDate"))
	}

	err = t.Transaction(func(tx *scope.Tenant) error {
		res := tx.Query(&model.BookIssueModel{}).
			Where("book_issue_id = ? AND book_issue_is_returned = ?", id, false).
			Updates(map[string]any{
				"book_issue_is_returned": true,
				"book_issue_return_date": returned,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.Conflict("id", "book is already returned")
		}
		return service.Give(tx, cur.BookIssueBookID)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.BookIssueModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Book returned", m)
}

package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/library/dto"
	"schoolku_backend/internals/features/library/model"
	"schoolku_backend/internals/features/library/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type BookController struct {
	DB *gorm.DB
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{DB: db}
}

func tenantOf(db *gorm.DB, c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(db, tc.SchoolID).WithContext(c.UserContext()), nil
}

// GET /api/library/books?search=&available=true
func (ctl *BookController) List(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)
	q := t.Query(&model.BookModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(book_title) LIKE ? OR LOWER(book_author) LIKE ? OR LOWER(book_isbn) LIKE ?", s, s, s)
	}
	if helper.QueryBool(c, "available") {
		q = q.Where("book_available > 0")
	}
	rows := []model.BookModel{}
	pg, err := scope.Page(q, p, "book_title ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *BookController) Get(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.BookModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

func (ctl *BookController) Create(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateBookRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	m := req.ToModel()
	if err := t.Create(m); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Book created", m)
}

// PUT /api/library/books/:id: quantity baru → available bergeser sebesar delta.
func (ctl *BookController) Update(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	cur, err := scope.First[model.BookModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateBookRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates, err := req.Updates()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	err = t.Transaction(func(tx *scope.Tenant) error {
		if req.Quantity.Set() {
			if err := service.AdjustQuantity(tx, id, req.Quantity.Get()-cur.BookQuantity); err != nil {
				return err
			}
		}
		return tx.Updates(&model.BookModel{}, id, updates)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.BookModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Book updated", m)
}

func (ctl *BookController) Delete(c *fiber.Ctx) error {
	t, err := tenantOf(ctl.DB, c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.BookModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if used, err := t.Exists(&model.BookIssueModel{}, "book_issue_book_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("id", "book has issue records"))
	}
	if err := t.Delete(&model.BookModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Book deleted")
}

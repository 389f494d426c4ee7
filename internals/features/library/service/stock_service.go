package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/library/model"
	helper "schoolku_backend/internals/helpers"
)

// Take mengurangi available satu eksemplar secara atomik.
// Dua issue paralel untuk eksemplar terakhir: hanya satu yang lolos.
func Take(tx *scope.Tenant, bookID uuid.UUID) error {
	res := tx.Query(&model.BookModel{}).
		Where("book_id = ? AND book_available > 0", bookID).
		UpdateColumn("book_available", gorm.Expr("book_available - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.Conflict("bookId", "book is not available")
	}
	return nil
}

// Give kebalikan Take; available tidak pernah melewati quantity.
func Give(tx *scope.Tenant, bookID uuid.UUID) error {
	return tx.Query(&model.BookModel{}).
		Where("book_id = ? AND book_available < book_quantity", bookID).
		UpdateColumn("book_available", gorm.Expr("book_available + 1")).Error
}

// AdjustQuantity menggeser quantity dan available dengan delta yang sama.
// Ditolak bila available akan negatif (eksemplar sedang dipinjam).
func AdjustQuantity(tx *scope.Tenant, bookID uuid.UUID, delta int) error {
	if delta == 0 {
		return nil
	}
	res := tx.Query(&model.BookModel{}).
		Where("book_id = ? AND book_available + ? >= 0", bookID, delta).
		Updates(map[string]any{
			"book_quantity":  gorm.Expr("book_quantity + ?", delta),
			"book_available": gorm.Expr("book_available + ?", delta),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.Conflict("quantity", "quantity cannot be less than copies on loan")
	}
	return nil
}

// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionRoute "schoolku_backend/internals/features/academics/sessions/route"
	classRoute "schoolku_backend/internals/features/academics/classes/route"
	subjectRoute "schoolku_backend/internals/features/academics/subjects/route"
	attendanceRoute "schoolku_backend/internals/features/attendance/route"
	examRoute "schoolku_backend/internals/features/exams/route"
	feeRoute "schoolku_backend/internals/features/finance/fees/route"
	frontOfficeRoute "schoolku_backend/internals/features/front_office/route"
	homeworkRoute "schoolku_backend/internals/features/homework/route"
	libraryRoute "schoolku_backend/internals/features/library/route"
	schoolRoute "schoolku_backend/internals/features/schools/route"
	staffRoute "schoolku_backend/internals/features/staff/route"
	studentRoute "schoolku_backend/internals/features/students/route"
	transportRoute "schoolku_backend/internals/features/transport/route"
	authRoute "schoolku_backend/internals/features/users/auth/route"
	authService "schoolku_backend/internals/features/users/auth/service"
	roleRoute "schoolku_backend/internals/features/users/roles/route"
	userRoute "schoolku_backend/internals/features/users/users/route"
	helperAuth "schoolku_backend/internals/helpers/auth"
	authMiddleware "schoolku_backend/internals/middlewares/auth_school"
)

type Deps struct {
	DB      *gorm.DB
	Login   *authService.LoginService
	Revoker helperAuth.Revoker
	Secret  string
}

func SetupRoutes(app *fiber.App, d Deps) {
	BaseRoutes(app, d.DB)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up public auth routes...")
	authRoute.AuthPublicRoutes(app, d.Login, d.Revoker)

	// ===================== PRIVATE (per school) =====================
	log.Println("[INFO] Setting up /api group (AuthJWT)...")
	api := app.Group("/api", authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              d.Secret,
		DB:                  d.DB,
		Revoker:             d.Revoker,
		AllowCookieFallback: true,
	}))
	RegisterAPI(api, d)
}

// RegisterAPI memasang semua route fitur pada group yang sudah terautentikasi.
func RegisterAPI(api fiber.Router, d Deps) {
	authRoute.AuthRoutes(api, d.Login, d.Revoker)

	log.Println("[INFO] Mounting school & user routes...")
	schoolRoute.SchoolRoutes(api, d.DB)
	roleRoute.RoleRoutes(api, d.DB)
	userRoute.UserRoutes(api, d.DB)

	log.Println("[INFO] Mounting academic routes...")
	sessionRoute.SessionRoutes(api, d.DB)
	classRoute.ClassRoutes(api, d.DB)
	subjectRoute.SubjectRoutes(api, d.DB)
	studentRoute.StudentRoutes(api, d.DB)
	staffRoute.StaffRoutes(api, d.DB)

	log.Println("[INFO] Mounting operational routes...")
	attendanceRoute.AttendanceRoutes(api, d.DB)
	examRoute.ExamRoutes(api, d.DB)
	homeworkRoute.HomeworkRoutes(api, d.DB)
	feeRoute.FeeRoutes(api, d.DB)
	libraryRoute.LibraryRoutes(api, d.DB)
	transportRoute.TransportRoutes(api, d.DB)
	frontOfficeRoute.FrontOfficeRoutes(api, d.DB)
}

package router

import (
	"net/http"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/handler"
	"github.com/edunexus/schoolhub/internal/middleware"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Branch        *handler.BranchHandler
	Class         *handler.ClassHandler
	Student       *handler.StudentHandler
	Staff         *handler.StaffHandler
	Leave         *handler.LeaveHandler
	Timetable     *handler.TimetableHandler
	Hostel        *handler.HostelHandler
	Transport     *handler.TransportHandler
	Library       *handler.LibraryHandler
	Fee           *handler.FeeHandler
	Payment       *handler.PaymentHandler
	Media         *handler.MediaHandler
	Announcement  *handler.AnnouncementHandler
	Rectification *handler.RectificationHandler
	Report        *handler.ReportHandler
	Setting       *handler.SettingHandler
	Refresh       *handler.RefreshHandler
	System        *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", middleware.HeaderBranchID}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log), gin.Recovery())

	router.Use(middleware.Brotli())

	// Sign-in and the pre-signed PUT are the only unauthenticated writes.
	authLimiter := middleware.NewRateLimiter(30, time.Minute)
	uploadLimiter := middleware.NewRateLimiter(60, time.Minute)

	// Serve uploaded media files statically with aggressive caching (1 year).
	// Object keys are random UUIDs, so a key never changes content.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.Immutable(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}
	router.PUT("/uploads/put/:object_key", uploadLimiter.Middleware(), handlers.Media.PutSigned)

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	publicAPI.Use(middleware.CacheControl(60))
	{
		publicAPI.GET("/settings", handlers.Setting.GetPublicSettings)
	}
	// Gateway webhook; authenticated by the notification signature.
	router.POST("/api/v1/payments/notifications", handlers.Payment.Notification)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth", middleware.NoStore())
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)

		signedIn := auth.Group("", middleware.RequireAuth(authService))
		signedIn.POST("/logout", handlers.Auth.Logout)
		signedIn.GET("/me", handlers.Auth.Me)
		signedIn.PUT("/me", handlers.Auth.UpdateProfile)
		signedIn.PUT("/password", handlers.Auth.ChangePassword)
	}

	// ─── 2. WebSocket Group (query token) ──────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/refresh", handlers.Refresh.Stream)
	}

	// ─── 3. Superadmin Group ───────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.NoStore(),
		middleware.RequireAuth(authService),
		middleware.RequireRole(model.RoleSuperadmin),
	)
	{
		branches := adminAPI.Group("/branches", middleware.RequirePermission(model.PermissionBranchesManage))
		branches.GET("", handlers.Branch.ListBranches)
		branches.GET("/:id", handlers.Branch.GetBranch)
		branches.POST("", handlers.Branch.CreateBranch)
		branches.PUT("/:id", handlers.Branch.UpdateBranch)
		branches.DELETE("/:id", handlers.Branch.DeleteBranch)

		users := adminAPI.Group("/users", middleware.RequirePermission(model.PermissionUsersManage))
		users.GET("", handlers.User.ListUsers)
		users.GET("/:id", handlers.User.GetUser)
		users.POST("", handlers.User.CreateUser)
		users.PUT("/:id", handlers.User.UpdateUser)
		users.DELETE("/:id", handlers.User.DeleteUser)

		adminAPI.GET("/system/metrics", handlers.System.SystemMetricsSSE)
	}

	// ─── 4. Branch Group (JWT + branch scope + RBAC) ───────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.NoStore(),
		middleware.RequireAuth(authService),
		middleware.BranchScope(),
	)
	registerBranchRoutes(api, handlers)

	return router
}

func registerBranchRoutes(api *gin.RouterGroup, h *Handlers) {
	perm := middleware.RequirePermission
	anyPerm := middleware.RequireAnyPermission

	api.GET("/dashboard", perm(model.PermissionReportsRead), h.Report.Dashboard)

	// Media
	api.POST("/media/presign", perm(model.PermissionMediaUpload), h.Media.Presign)
	api.POST("/media/upload", perm(model.PermissionMediaUpload), h.Media.UploadMedia)

	// Classes
	classes := api.Group("/classes")
	{
		classes.GET("", perm(model.PermissionClassesRead), h.Class.ListClasses)
		classes.GET("/:id", perm(model.PermissionClassesRead), h.Class.GetClass)
		classes.POST("", perm(model.PermissionClassesWrite), h.Class.CreateClass)
		classes.PUT("/:id", perm(model.PermissionClassesWrite), h.Class.UpdateClass)
		classes.DELETE("/:id", perm(model.PermissionClassesWrite), h.Class.DeleteClass)
		classes.PUT("/:id/mentor", perm(model.PermissionClassesWrite), h.Class.AssignMentor)
		classes.GET("/:id/students", perm(model.PermissionStudentsRead), h.Class.ListStudents)
		classes.POST("/:id/attendance", perm(model.PermissionAttendanceMark), h.Class.MarkAttendance)
		classes.GET("/:id/attendance", perm(model.PermissionAttendanceRead), h.Class.ListAttendance)
		classes.GET("/:id/timetable", perm(model.PermissionTimetableRead), h.Class.Timetable)
	}

	// Students
	students := api.Group("/students")
	{
		students.GET("", perm(model.PermissionStudentsRead), h.Student.ListStudents)
		students.GET("/:id", perm(model.PermissionStudentsRead), h.Student.GetStudent)
		students.POST("", perm(model.PermissionStudentsWrite), h.Student.CreateStudent)
		students.PUT("/:id", perm(model.PermissionStudentsWrite), h.Student.UpdateStudent)
		students.DELETE("/:id", perm(model.PermissionStudentsWrite), h.Student.DeleteStudent)
		students.POST("/import", perm(model.PermissionStudentsWrite), h.Student.ImportStudents)
		students.GET("/import/template.xlsx", perm(model.PermissionStudentsWrite), h.Student.ImportTemplate)
	}
	api.GET("/parent/children", middleware.RequireRole(model.RoleParent), h.Student.Children)

	// Staff and staff attendance
	staff := api.Group("/staff")
	{
		staff.GET("", perm(model.PermissionStaffRead), h.Staff.ListStaff)
		staff.GET("/me/calendar", h.Staff.MyCalendar)
		staff.GET("/:id", perm(model.PermissionStaffRead), h.Staff.GetStaff)
		staff.POST("", perm(model.PermissionStaffWrite), h.Staff.CreateStaff)
		staff.PUT("/:id", perm(model.PermissionStaffWrite), h.Staff.UpdateStaff)
		staff.DELETE("/:id", perm(model.PermissionStaffWrite), h.Staff.DeleteStaff)
		staff.GET("/:id/calendar", perm(model.PermissionAttendanceRead), h.Staff.Calendar)
	}
	api.POST("/staff-attendance", perm(model.PermissionAttendanceMark), h.Staff.MarkAttendance)
	api.GET("/staff-attendance", perm(model.PermissionAttendanceRead), h.Staff.ListAttendance)

	// Leaves
	leaves := api.Group("/leaves")
	{
		leaves.POST("", perm(model.PermissionLeavesApply), h.Leave.Apply)
		leaves.GET("", perm(model.PermissionLeavesRead), h.Leave.List)
		leaves.GET("/mine", perm(model.PermissionLeavesApply), h.Leave.Mine)
		leaves.POST("/:id/approve", perm(model.PermissionLeavesReview), h.Leave.Approve)
		leaves.POST("/:id/reject", perm(model.PermissionLeavesReview), h.Leave.Reject)
		leaves.DELETE("/:id", perm(model.PermissionLeavesApply), h.Leave.Cancel)
	}

	// Timetable
	timetable := api.Group("/timetable")
	{
		timetable.PUT("/slots", perm(model.PermissionTimetableWrite), h.Timetable.UpsertSlot)
		timetable.DELETE("/slots/:id", perm(model.PermissionTimetableWrite), h.Timetable.DeleteSlot)
		timetable.GET("/available-teachers", perm(model.PermissionTimetableWrite), h.Timetable.AvailableTeachers)
	}

	// Hostel
	hostel := api.Group("/hostel")
	{
		read := anyPerm(model.PermissionFacilitiesRead, model.PermissionHostelManage)
		write := perm(model.PermissionHostelManage)
		hostel.GET("/hostels", read, h.Hostel.ListHostels)
		hostel.POST("/hostels", write, h.Hostel.CreateHostel)
		hostel.PUT("/hostels/:id", write, h.Hostel.UpdateHostel)
		hostel.DELETE("/hostels/:id", write, h.Hostel.DeleteHostel)
		hostel.GET("/hostels/:id/rooms", read, h.Hostel.ListRooms)
		hostel.POST("/hostels/:id/rooms", write, h.Hostel.CreateRoom)
		hostel.PUT("/rooms/:id", write, h.Hostel.UpdateRoom)
		hostel.DELETE("/rooms/:id", write, h.Hostel.DeleteRoom)
		hostel.GET("/rooms/:id/occupants", read, h.Hostel.Occupants)
		hostel.POST("/rooms/:id/assign", write, h.Hostel.Assign)
		hostel.DELETE("/assignments/:student_id", write, h.Hostel.Vacate)
	}

	// Transport
	transport := api.Group("/transport")
	{
		read := anyPerm(model.PermissionFacilitiesRead, model.PermissionTransportManage)
		write := perm(model.PermissionTransportManage)
		transport.GET("/routes", read, h.Transport.ListRoutes)
		transport.GET("/routes/:id", read, h.Transport.GetRoute)
		transport.POST("/routes", write, h.Transport.CreateRoute)
		transport.PUT("/routes/:id", write, h.Transport.UpdateRoute)
		transport.DELETE("/routes/:id", write, h.Transport.DeleteRoute)
		transport.POST("/routes/:id/stops", write, h.Transport.CreateStop)
		transport.PUT("/stops/:id", write, h.Transport.UpdateStop)
		transport.DELETE("/stops/:id", write, h.Transport.DeleteStop)
		transport.GET("/routes/:id/riders", read, h.Transport.Riders)
		transport.POST("/routes/:id/assign", write, h.Transport.Assign)
		transport.DELETE("/assignments/:student_id", write, h.Transport.Unassign)
	}

	// Library
	library := api.Group("/library")
	{
		library.GET("/books", perm(model.PermissionLibraryRead), h.Library.ListBooks)
		library.POST("/books", perm(model.PermissionLibraryManage), h.Library.CreateBook)
		library.PUT("/books/:id", perm(model.PermissionLibraryManage), h.Library.UpdateBook)
		library.DELETE("/books/:id", perm(model.PermissionLibraryManage), h.Library.DeleteBook)
		library.GET("/issues", perm(model.PermissionLibraryRead), h.Library.ListIssues)
		library.POST("/issues", perm(model.PermissionLibraryManage), h.Library.Issue)
		library.POST("/issues/:id/return", perm(model.PermissionLibraryManage), h.Library.Return)
	}

	// Fees and payments
	fees := api.Group("/fees")
	{
		fees.GET("/templates", perm(model.PermissionFeesRead), h.Fee.ListTemplates)
		fees.GET("/templates/:id", perm(model.PermissionFeesRead), h.Fee.GetTemplate)
		fees.POST("/templates", perm(model.PermissionFeesManage), h.Fee.CreateTemplate)
		fees.PUT("/templates/:id", perm(model.PermissionFeesManage), h.Fee.UpdateTemplate)
		fees.DELETE("/templates/:id", perm(model.PermissionFeesManage), h.Fee.DeleteTemplate)
		fees.POST("/templates/:id/assign", perm(model.PermissionFeesManage), h.Fee.AssignTemplate)
		fees.GET("/invoices", perm(model.PermissionFeesRead), h.Fee.ListInvoices)
		fees.POST("/invoices/:id/checkout", perm(model.PermissionFeesPay), h.Fee.Checkout)
	}
	api.POST("/payments/:order_id/confirm", anyPerm(model.PermissionFeesPay, model.PermissionFeesManage), h.Payment.Confirm)

	// Communications
	announcements := api.Group("/announcements")
	{
		announcements.GET("/feed", h.Announcement.Feed)
		announcements.GET("", perm(model.PermissionAnnouncementsWrite), h.Announcement.List)
		announcements.POST("", perm(model.PermissionAnnouncementsWrite), h.Announcement.Create)
		announcements.PUT("/:id", perm(model.PermissionAnnouncementsWrite), h.Announcement.Update)
		announcements.DELETE("/:id", perm(model.PermissionAnnouncementsWrite), h.Announcement.Delete)
	}

	// Rectifications
	rect := api.Group("/rectifications")
	{
		rect.POST("", perm(model.PermissionRectificationsSubmit), h.Rectification.Submit)
		rect.GET("", anyPerm(model.PermissionRectificationsSubmit, model.PermissionRectificationsReview), h.Rectification.List)
		rect.POST("/:id/approve", perm(model.PermissionRectificationsReview), h.Rectification.Approve)
		rect.POST("/:id/reject", perm(model.PermissionRectificationsReview), h.Rectification.Reject)
	}

	// Reports
	reports := api.Group("/reports", perm(model.PermissionReportsRead))
	{
		reports.GET("/staff-attendance.xlsx", h.Report.StaffAttendance)
		reports.GET("/fees.xlsx", h.Report.FeeLedger)
	}

	// Settings
	api.GET("/settings", perm(model.PermissionSettingsRead), h.Setting.GetAllSettings)
	api.PUT("/settings", perm(model.PermissionSettingsWrite), h.Setting.UpdateSettings)
}

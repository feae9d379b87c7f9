package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yberk/infirmary/internal/app/controllers"
	"github.com/yberk/infirmary/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	medicineController *controllers.MedicineController,
	treatmentController *controllers.TreatmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/register", authController.Register)
	v1.POST("/login", authController.Login)
	v1.POST("/refresh", authController.Refresh)
	v1.POST("/logout", authController.Logout)
	v1.GET("/get_user", authController.GetUsers)

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
		})
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.GetAllStudents)
			students.GET("/:id", studentController.GetStudentByID)
			students.POST("", studentController.CreateStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		medicines := authenticated.Group("/medicines")
		{
			medicines.GET("", medicineController.GetAllMedicines)
			// Register before /:id so "search" is not captured as an id
			medicines.GET("/search", medicineController.SearchMedicines)
			medicines.GET("/:id", medicineController.GetMedicineByID)
			medicines.POST("", medicineController.CreateMedicine)
			medicines.PUT("/:id", medicineController.UpdateMedicine)
			medicines.DELETE("/:id", medicineController.DeleteMedicine)
		}

		treatments := authenticated.Group("/treatments")
		{
			treatments.GET("", treatmentController.GetAllTreatments)
			treatments.POST("", treatmentController.CreateTreatment)
			treatments.PUT("/:id", treatmentController.UpdateTreatment)
			treatments.DELETE("/:id", treatmentController.DeleteTreatment)
		}

		authenticated.GET("/treated_students", treatmentController.GetTreatedStudents)
		authenticated.GET("/treatment_history/:studentId", treatmentController.GetTreatmentHistory)
	}
}

// @title           PrintPack Back Office API
// @version         1.0
// @description     Production back office for print and packaging jobs - projects, jobs, assignments, estimates, invoices and purchase orders.

// @contact.name   API Support

// @host      localhost:8080

// @BasePath  /api/s1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	_ "printpack/docs"
	"printpack/handlers"
	"printpack/repository"
	"printpack/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var maintenanceRunning int32

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Authorization", "Content-Type", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

func main() {
	authDB := storage.InitDB()
	defer authDB.Close()

	if err := storage.EnsureAuthTables(authDB); err != nil {
		log.Fatalf("Failed to ensure auth tables: %v", err)
	}

	db := storage.InitGormDB()
	if err := storage.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Catch the counters up to any pre-existing document numbers before
	// issuing new ones, otherwise the first create against legacy data
	// collides with a unique index.
	if err := repository.ReconcileCounterFloors(db); err != nil {
		log.Fatalf("Failed to reconcile document counters: %v", err)
	}

	// Daily maintenance at 00:30: drop stale sessions and keep the document
	// counters at or above their floors.
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)
	_, err := c.AddFunc("30 0 * * *", func() {
		if !atomic.CompareAndSwapInt32(&maintenanceRunning, 0, 1) {
			log.Println("Previous maintenance run still in progress, skipping")
			return
		}
		defer atomic.StoreInt32(&maintenanceRunning, 0)

		if err := storage.CleanupExpiredSessions(authDB); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
		if err := repository.ReconcileCounterFloors(db); err != nil {
			log.Printf("Counter reconciliation failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule maintenance cron job: %v", err)
	}
	c.Start()
	defer c.Stop()

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ==================== AUTH ====================
	r.POST("/api/s1/register", handlers.Register(authDB))
	r.POST("/api/s1/login", handlers.Login(authDB))

	auth := r.Group("/api/s1", handlers.AuthRequired(authDB))

	auth.POST("/logout", handlers.Logout(authDB))
	auth.GET("/sessions", handlers.GetSessions(authDB))
	auth.GET("/validate-session", handlers.ValidateSession(authDB))

	// ==================== PROJECTS ====================
	auth.POST("/projects", handlers.CreateProject(db))
	auth.PUT("/projects/:id", handlers.UpdateProject(db))
	auth.DELETE("/projects/:id", handlers.DeleteProject(db))
	auth.GET("/projects/:id", handlers.GetProject(db))
	auth.GET("/projects", handlers.GetProjects(db))
	auth.GET("/projects/status/:status", handlers.GetProjectsByStatus(db))

	// ==================== JOBS ====================
	auth.POST("/jobs", handlers.CreateJob(db))
	auth.PUT("/jobs/:id", handlers.UpdateJob(db))
	auth.DELETE("/jobs/:id", handlers.DeleteJob(db))
	auth.GET("/jobs/:id", handlers.GetJob(db))
	auth.GET("/jobs", handlers.GetJobs(db))
	auth.GET("/jobs/project/:project_id", handlers.GetJobsByProject(db))
	auth.GET("/jobs/history/production/:production_id", handlers.GetJobHistoryByProduction(db))
	auth.GET("/jobs/history/employee/:employee_id", handlers.GetJobHistoryByEmployee(db))

	// ==================== JOB ASSIGNMENTS ====================
	auth.POST("/assignjobs", handlers.CreateAssignJob(db))
	auth.PUT("/assignjobs/production-assign", handlers.ProductionAssignToEmployee(db))
	auth.PUT("/assignjobs/employee-complete/:id", handlers.EmployeeCompleteJob(db))
	auth.PUT("/assignjobs/employee-reject/:id", handlers.EmployeeRejectJob(db))
	auth.PUT("/assignjobs/production-complete/:id", handlers.ProductionCompleteJob(db))
	auth.PUT("/assignjobs/production-return/:id", handlers.ProductionReturnJob(db))
	auth.PUT("/assignjobs/production-reject/:id", handlers.ProductionRejectJob(db))
	auth.DELETE("/assignjobs/:id", handlers.DeleteAssignJob(db))
	auth.GET("/assignjobs", handlers.GetAssignJobs(db))
	auth.GET("/assignjobs/employee/:employee_id", handlers.GetAssignJobsByEmployee(db))
	auth.GET("/assignjobs/production/:production_id", handlers.GetAssignJobsByProduction(db))
	auth.GET("/assignjobs/production/:production_id/in-progress", handlers.GetProductionJobsInProgress(db))
	auth.GET("/assignjobs/production/:production_id/complete", handlers.GetProductionJobsComplete(db))
	auth.GET("/assignjobs/production/:production_id/reject", handlers.GetProductionJobsRejected(db))

	// ==================== COST ESTIMATES ====================
	auth.POST("/costestimates", handlers.CreateEstimate(db))
	auth.PUT("/costestimates/:id", handlers.UpdateEstimate(db))
	auth.DELETE("/costestimates/:id", handlers.DeleteEstimate(db))
	auth.GET("/costestimates/:id", handlers.GetEstimate(db))
	auth.GET("/costestimates", handlers.GetEstimates(db))
	auth.GET("/costestimates/project/:project_id", handlers.GetEstimatesByProject(db))

	// ==================== INVOICES ====================
	auth.POST("/invoices", handlers.CreateInvoice(db))
	auth.POST("/invoices/from-estimate/:estimateId", handlers.CreateInvoiceFromEstimate(db))
	auth.PUT("/invoices/:id", handlers.UpdateInvoice(db))
	auth.DELETE("/invoices/:id", handlers.DeleteInvoice(db))
	auth.GET("/invoices/:id", handlers.GetInvoice(db))
	auth.GET("/invoices", handlers.GetInvoices(db))
	auth.GET("/invoices/:id/pdf", handlers.GenerateInvoicePDF(db))
	auth.GET("/invoices/project/:project_id", handlers.GetInvoicesByProject(db))

	// ==================== PURCHASE ORDERS ====================
	auth.POST("/purchaseorders", handlers.CreatePurchaseOrder(db))
	auth.PUT("/purchaseorders/:id", handlers.UpdatePurchaseOrder(db))
	auth.DELETE("/purchaseorders/:id", handlers.DeletePurchaseOrder(db))
	auth.GET("/purchaseorders/:id", handlers.GetPurchaseOrder(db))
	auth.GET("/purchaseorders", handlers.GetPurchaseOrders(db))
	auth.GET("/purchaseorders/project/:project_id", handlers.GetPurchaseOrdersByProject(db))

	// ==================== TIME LOGS ====================
	auth.POST("/timelogs", handlers.CreateTimeLog(db))
	auth.PUT("/timelogs/:id", handlers.UpdateTimeLog(db))
	auth.DELETE("/timelogs/:id", handlers.DeleteTimeLog(db))
	auth.GET("/timelogs/:id", handlers.GetTimeLog(db))
	auth.GET("/timelogs", handlers.GetTimeLogs(db))

	// ==================== LOOKUPS ====================
	auth.POST("/brands", handlers.CreateBrand(db))
	auth.GET("/brands", handlers.GetBrands(db))
	auth.DELETE("/brands", handlers.DeleteBrands(db))
	auth.DELETE("/brands/:id", handlers.DeleteBrand(db))
	auth.POST("/flavours", handlers.CreateFlavour(db))
	auth.GET("/flavours", handlers.GetFlavours(db))
	auth.DELETE("/flavours/:id", handlers.DeleteFlavour(db))
	auth.POST("/packtypes", handlers.CreatePackType(db))
	auth.GET("/packtypes", handlers.GetPackTypes(db))
	auth.DELETE("/packtypes/:id", handlers.DeletePackType(db))
	auth.POST("/clients", handlers.CreateClient(db))
	auth.PUT("/clients/:id", handlers.UpdateClient(db))
	auth.GET("/clients", handlers.GetClients(db))
	auth.DELETE("/clients/:id", handlers.DeleteClient(db))
	auth.GET("/company", handlers.GetCompanyInfo(db))
	auth.PUT("/company", handlers.UpsertCompanyInfo(db))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}

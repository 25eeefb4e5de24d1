package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/presensi-hr/hris-backend-go/internal/config"
	domainAttendance "github.com/presensi-hr/hris-backend-go/internal/domain/attendance"
	appHTTP "github.com/presensi-hr/hris-backend-go/internal/handler/http"
	"github.com/presensi-hr/hris-backend-go/internal/pkg/cron"
	"github.com/presensi-hr/hris-backend-go/internal/pkg/database"
	"github.com/presensi-hr/hris-backend-go/internal/pkg/jwt"
	"github.com/presensi-hr/hris-backend-go/internal/pkg/zkdevice"
	"github.com/presensi-hr/hris-backend-go/internal/repository/postgresql"
	attendanceService "github.com/presensi-hr/hris-backend-go/internal/service/attendance"
	syncService "github.com/presensi-hr/hris-backend-go/internal/service/devicesync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	entryRepo := postgresql.NewAttendanceEntryRepository(db)
	syncStatusRepo := postgresql.NewSyncStatusRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	loc, err := time.LoadLocation(cfg.Device.Timezone)
	if err != nil {
		log.Fatal("Failed to load device timezone:", err)
	}
	policy, err := domainAttendance.ParsePolicy(cfg.Sync.Policy)
	if err != nil {
		log.Fatal("Invalid SYNC_DEDUP_POLICY:", err)
	}

	gateway := zkdevice.NewGateway(cfg.Device.Host, cfg.Device.Port, cfg.Device.Timeout, zkdevice.Dial)
	normalizer := attendanceService.NewNormalizer(loc, cfg.Device.EarlyMorningBoundaryHour, cfg.LateAfterOffset())
	cache := attendanceService.NewCache()

	attendanceSvc := attendanceService.NewAttendanceService(entryRepo, employeeRepo, cache, normalizer)
	syncSvc := syncService.NewSyncService(
		gateway,
		employeeRepo,
		entryRepo,
		syncStatusRepo,
		normalizer,
		cache,
		policy,
	)

	scheduler := cron.NewSyncScheduler(syncSvc, cfg.Sync.Interval)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(JWTService, cfg.JWT.OperatorKey)
	syncHandler := appHTTP.NewSyncHandler(syncSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	deviceHandler := appHTTP.NewDeviceHandler(gateway)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			FrontendURL: cfg.App.FrontendURL,
			Env:         cfg.App.Env,
		},
		JWTService,
		authHandler,
		syncHandler,
		attendanceHandler,
		deviceHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

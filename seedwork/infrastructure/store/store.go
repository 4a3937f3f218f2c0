package store

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	meetingentities "gitscribe/modules/meeting/domain/entities"
	taskentities "gitscribe/modules/actionitem/domain/entities"
	integrationentities "gitscribe/modules/integration/domain/entities"
	transcriptentities "gitscribe/modules/transcription/domain/entities"
	"gitscribe/seedwork/domain/entities"
	"gitscribe/seedwork/infrastructure/config"
)

// Store is the single persistence interface spec.md §4.6 requires, with
// two implementations sharing one GORM-mapped entity set. This generalizes
// the teacher's seedwork/infrastructure/database/database.go (a single
// global *gorm.DB, env-driven DSN, pool tuning) into an instance-scoped
// store with an embedded/remote switch.
type Store struct {
	DB *gorm.DB
}

// NewEmbeddedStore opens a single-file sqlite database (spec.md §4.6
// "Embedded"), used for development and tests.
func NewEmbeddedStore(cfg config.StoreConfig) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.FilePath), &gorm.Config{
		Logger: gormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("opening embedded store: %w", err)
	}

	s := &Store{DB: db}
	if err := s.autoMigrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewRemoteStore opens a MySQL-wire-compatible connection (spec.md §4.6
// "Remote"; TiDB is the reference deployment target per the module's
// original Scrumy-TiDB-Hackathon provenance) and runs the golang-migrate
// flow the teacher already used for Postgres, re-pointed at the mysql
// sub-driver.
func NewRemoteStore(cfg config.StoreConfig) (*Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("opening remote store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	s := &Store{DB: db}
	if cfg.MigrationsPath != "" {
		if err := RunMigrations(sqlDB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func gormLogger() logger.Interface {
	logLevel := logger.Info
	if os.Getenv("APP_ENV") == "production" {
		logLevel = logger.Error
	}
	return logger.Default.LogMode(logLevel)
}

// autoMigrate is the embedded store's schema setup, standing in for the
// remote store's golang-migrate flow (spec.md §4.6: "same schema").
func (s *Store) autoMigrate() error {
	log.Println("running AutoMigrate for embedded store")
	return s.DB.AutoMigrate(
		&meetingentities.Meeting{},
		&meetingentities.Participant{},
		&transcriptentities.TranscriptChunk{},
		&transcriptentities.Summary{},
		&taskentities.Task{},
		&taskentities.ExternalTaskRef{},
		&integrationentities.IntegrationConfig{},
		&entities.ProcessingJob{},
	)
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB handle: %w", err)
	}
	return sqlDB.Close()
}

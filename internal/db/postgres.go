package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/types"
	"github.com/kindredapp/kindred-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "kindred", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error; err != nil {
		log.Error("Failed to enable pgvector extension", "error", err)
		return nil, fmt.Errorf("failed to enable pgvector extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Profile{},
		&types.PsychProfile{},
		&types.PromptAnswer{},
		&types.ProfileEmbedding{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	for name, ddl := range map[string]string{
		"fk_profile_user_id": `
			ALTER TABLE "profile"
			ADD CONSTRAINT "fk_profile_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE`,
		"fk_psych_profile_user_id": `
			ALTER TABLE "psych_profile"
			ADD CONSTRAINT "fk_psych_profile_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE`,
		"fk_prompt_answer_user_id": `
			ALTER TABLE "prompt_answer"
			ADD CONSTRAINT "fk_prompt_answer_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE`,
		"fk_profile_embedding_user_id": `
			ALTER TABLE "profile_embedding"
			ADD CONSTRAINT "fk_profile_embedding_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE`,
	} {
		if err := s.db.Exec(ddl).Error; err != nil {
			// Re-running against an already-migrated database hits duplicate
			// constraint errors; those are fine.
			s.log.Debug("Skipping FK constraint", "constraint", name, "error", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/danthegoodman1/icegraph/gologger"
	// ensure "pgx" driver is loaded
	_ "github.com/jackc/pgx/v4/stdlib"
	migrate "github.com/rubenv/sql-migrate"
)

var (
	//go:embed *.sql
	migrations embed.FS

	ErrMigrationsNotRun = fmt.Errorf("not all migrations applied")

	logger = gologger.NewLogger()
)

func source() *migrate.EmbedFileSystemMigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations,
		Root:       ".",
	}
}

func migrationSet() migrate.MigrationSet {
	return migrate.MigrationSet{
		TableName: "migrations",
	}
}

func RunMigrations(crdbDsn string) (int, error) {
	db, err := sql.Open("pgx", crdbDsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	ms := migrationSet()
	n, err := ms.Exec(db, "postgres", source(), migrate.Up)
	if err != nil {
		return n, fmt.Errorf("error in migrate Exec: %w", err)
	}
	logger.Info().Int("applied", n).Msg("ran migrations")
	return n, nil
}

func CheckMigrations(crdbDsn string) error {
	db, err := sql.Open("pgx", crdbDsn)
	if err != nil {
		return err
	}
	defer db.Close()
	ms := migrationSet()
	migration, _, err := ms.PlanMigration(db, "postgres", source(), migrate.Up, 0)
	if err != nil {
		return err
	}
	if len(migration) > 0 {
		for _, mig := range migration {
			logger.Warn().Str("migrationID", mig.Id).Msg("missing migration")
		}
		return ErrMigrationsNotRun
	}
	return nil
}

// Names lists the embedded migration ids in apply order
func Names() ([]string, error) {
	found, err := source().FindMigrations()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(found))
	for _, m := range found {
		names = append(names, m.Id)
	}
	return names, nil
}

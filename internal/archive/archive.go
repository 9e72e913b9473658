package archive

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"gitlab.com/medrecord/patients-service/internal/model"
)

// Archive writes snapshots of the in-memory record store to a database, so that
// the records survive a restart of the service. The service itself never reads
// from the archive; it is a one-way export.
type Archive struct {
	db      *sqlx.DB
	replace *sqlx.NamedStmt
}

// CreateDatabase initializes and returns a database connection. The connection
// parameters are taken from the system's environment variables.
func CreateDatabase() *sql.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/test?parseTime=true",
		os.Getenv("DBUSER"), os.Getenv("DBPWD"), os.Getenv("DBHOST"))
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal(err)
	}
	return sqlDB
}

// NewArchive initializes the sqlx database wrapper with the specified sql
// database and prepares the export statement. The database argument can be a
// real database for production use or a mock database within unit tests.
func NewArchive(sqlDB *sql.DB) (*Archive, error) {
	db := sqlx.NewDb(sqlDB, "mysql")

	// REPLACE keeps repeated exports idempotent: the store's ids are stable,
	// so a record that was archived before is simply overwritten.
	replace, err := db.PrepareNamed(`
		REPLACE INTO patients (id, name, date_of_birth, gender, address, phone)
		VALUES (:id, :name, :date_of_birth, :gender, :address, :phone)
	`)
	if err != nil {
		return nil, err
	}
	return &Archive{db: db, replace: replace}, nil
}

// Export writes every given record to the archive table and returns the number
// of records written. It stops at the first failing record.
func (a *Archive) Export(records []model.Patient) (int, error) {
	for i, patient := range records {
		if _, err := a.replace.Exec(&patient); err != nil {
			return i, err
		}
	}
	return len(records), nil
}

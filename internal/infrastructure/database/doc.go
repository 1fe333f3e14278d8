// Package database provides SQLite connectivity for the export journal.
//
// This package manages:
//   - Database connection with WAL mode
//   - Schema migrations embedded in the binary
//   - Connection lifecycle
//
// Security Considerations:
//   - All queries use parameterised statements
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if _, err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Migration files are named YYYYMMDD_HHMMSS_description.up.sql with a
// matching .down.sql.
package database

// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── session.go       # Request-scoped store sessions
//	├── books/           # Book CRUD and search
//	└── audit/           # Audit event persistence
//
// # Sessions
//
// HTTP handlers never use the shared *gorm.DB directly. Each request acquires
// a Session bound to its context and releases it when the request ends:
//
//	sess := db.Acquire(ctx)
//	defer sess.Release()
//
//	gdb, err := sess.DB()
//	if err != nil {
//		return err // ErrSessionClosed
//	}
//	book, err := books.NewRepository(gdb).GetBookByID(1)
//
// Every statement issued through a session carries the request context, so a
// cancelled request stops its pending queries.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Register the entity in the AutoMigrate call in NewDatabase
package database

package model

import "time"

// User represents an application user record as stored in the
// `users` table.  Each field corresponds to a column in the
// database.  The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags so the
// password hash can never leak into a response body.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address, used as the login key.
//  Username     – display name, not unique.
//  PasswordHash – bcrypt hashed password, computed once at registration.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    Username     string    // users.username
    PasswordHash string    // users.password_hash
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

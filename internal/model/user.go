package model

// User is a row of the users table. Password holds a bcrypt hash.
type User struct {
	ID       int64   `db:"id"`
	Email    *string `db:"email"`
	Password *string `db:"password"`
	IsActive bool    `db:"is_active"`
}

// UserRecord is the client-facing projection of a User. The password hash
// never leaves the service.
type UserRecord struct {
	ID       int64   `json:"id"`
	Email    *string `json:"email"`
	IsActive bool    `json:"is_active"`
}

func (u *User) Serialize() UserRecord {
	return UserRecord{
		ID:       u.ID,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}

type UserResult struct {
	User UserRecord `json:"user"`
}

type UsersResult struct {
	Users []UserRecord `json:"users"`
}

// CreateUserRequest is the POST /users body.
type CreateUserRequest struct {
	Email    Field `json:"email"`
	Password Field `json:"password"`
}

func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateUserRequest is the PUT /users/:id body. Only email is mutable.
type UpdateUserRequest struct {
	ID    int64 `param:"id" json:"-" validate:"required,min=1"`
	Email Field `json:"email"`
}

func (r *UpdateUserRequest) Validate() error {
	return validate.Struct(r)
}

// CreateUserParams is what the repository inserts. PasswordHash is already hashed.
type CreateUserParams struct {
	Email        *string
	PasswordHash *string
	IsActive     bool
}

// UpdateUserParams lists the mutable user columns; unset fields are left untouched.
type UpdateUserParams struct {
	Email Field
}

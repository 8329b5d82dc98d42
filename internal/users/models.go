package users

// User represents a registered user of the fitness tracker
type User struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// CreateUserRequest is the payload for creating a user. The same shape is
// used for full replacement (PUT).
type CreateUserRequest struct {
	Name   string `json:"name" binding:"required,max=50"`
	Email  string `json:"email" binding:"required,email,max=255"`
	Age    int    `json:"age" binding:"required,gte=1,lte=150"`
	Gender string `json:"gender" binding:"required,oneof=male female other"`
}

// UpdateUserRequest is the payload for partial update. Only fields present in
// the request body are applied; a nil pointer means "leave unchanged".
type UpdateUserRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=50"`
	Email  *string `json:"email" binding:"omitempty,email,max=255"`
	Age    *int    `json:"age" binding:"omitempty,gte=1,lte=150"`
	Gender *string `json:"gender" binding:"omitempty,oneof=male female other"`
}

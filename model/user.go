package model

// UserEntity represents the users table entity
type UserEntity struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Phone    string `db:"phone" json:"phone"`
	Password string `db:"password" json:"-"`
}

// UserFilter for querying users, empty fields are ignored
type UserFilter struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// UserFields is the editable field set of a user
type UserFields struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// UserReference holds the stored unique values of the record being edited.
// A submitted value equal to its reference is exempt from duplicate rejection.
type UserReference struct {
	Name  string
	Email string
	Phone string
}

// UserForm is the decoded body of the create and update forms
type UserForm struct {
	ID       string `schema:"id"`
	Name     string `schema:"name"`
	Email    string `schema:"email"`
	Phone    string `schema:"phone"`
	Password string `schema:"password"`
	OldName  string `schema:"oldName"`
	OldEmail string `schema:"oldEmail"`
	OldPhone string `schema:"oldPhone"`
}

func (f *UserForm) Fields() UserFields {
	return UserFields{
		Name:     f.Name,
		Email:    f.Email,
		Phone:    f.Phone,
		Password: f.Password,
	}
}

func (f *UserForm) Reference() UserReference {
	return UserReference{
		Name:  f.OldName,
		Email: f.OldEmail,
		Phone: f.OldPhone,
	}
}

// NewUserForm pre-fills an update form from a stored user. The password is never echoed.
func NewUserForm(u *UserEntity) *UserForm {
	if u == nil {
		return &UserForm{}
	}
	return &UserForm{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		OldName:  u.Name,
		OldEmail: u.Email,
		OldPhone: u.Phone,
	}
}

// UpdateUserRequest for overwriting every field of an existing user
type UpdateUserRequest struct {
	ID        string
	Fields    UserFields
	Reference UserReference
}

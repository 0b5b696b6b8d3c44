package constant

type ctxKey string

const (
	SessionIDKey ctxKey = "session_id"
	RequestIDKey ctxKey = "request_id"
)

// FormMode selects how uniqueness checks treat an existing match.
type FormMode int

const (
	ModeCreate FormMode = iota + 1
	ModeUpdate
)

func (m FormMode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Form field names, also used as column names of the users table.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldPassword = "password"
)

// Validation messages shown next to the offending input.
const (
	MsgNameEmpty      = "Nama tidak boleh kosong."
	MsgNameDuplicate  = "Nama sudah terdaftar."
	MsgEmailEmpty     = "Email tidak boleh kosong."
	MsgEmailFormat    = "Email tidak sesuai."
	MsgEmailDuplicate = "Email sudah terdaftar."
	MsgPhoneEmpty     = "Nomor HP tidak boleh kosong."
	MsgPhoneFormat    = "Nomor HP tidak sesuai."
	MsgPhoneDuplicate = "Nomor HP sudah terdaftar."
	MsgPasswordEmpty  = "Password tidak boleh kosong."
)

// DuplicateMessage maps a unique column to its duplicate message.
var DuplicateMessage = map[string]string{
	FieldName:  MsgNameDuplicate,
	FieldEmail: MsgEmailDuplicate,
	FieldPhone: MsgPhoneDuplicate,
}

// Flash messages, stored under FlashKey.
const (
	FlashKey         = "msg"
	FlashUserCreated = "User berhasil dimasukkan."
	FlashUserUpdated = "Data berhasil diperbarui."
	FlashUserDeleted = "User berhasil dihapus."
)

// User lifecycle event types, used as routing keys.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

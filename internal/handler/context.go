package handler

type ContextKey string

var (
	RoleCtxKey    ContextKey = "role"
	SubCtxKey     ContextKey = "sub"
	DSPCodeCtxKey ContextKey = "dspCode"
	LangCtxKey    ContextKey = "lang"
	MyInfoCtx     ContextKey = "myInfo"
	UserInfoCtx   ContextKey = "userInfo"
	EmployeeCtx   ContextKey = "employee"
	ShiftCtx      ContextKey = "shift"
)

package handler

type ContextKey string

var (
	SubCtxKey       ContextKey = "sub"
	OrgCtxKey       ContextKey = "org"
	IsManagerCtxKey ContextKey = "isManager"
	EmployeeCtx     ContextKey = "employee"
	ScheduleCtx     ContextKey = "schedule"
)

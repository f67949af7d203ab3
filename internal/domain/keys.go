package domain

type CtxKey string

const (
	KeyAdminID   CtxKey = "AdminID"
	KeyRequestID CtxKey = "RequestID"
)

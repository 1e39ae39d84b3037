package apierrors

const (
	MsgFailListTask           = "errorListTask"
	MsgInvalidTaskID          = "invalidTaskID"
	MsgInvalidTaskPayload     = "invalidTaskPayload"
	MsgInvalidStatusFilter    = "invalidStatusFilter"
	MsgTaskNotFound           = "taskNotFound"
	MsgFailCreateTask         = "failCreateTask"
	MsgFailUpdateTask         = "failUpdateTask"
	MsgFailDeleteTask         = "failDeleteTask"
	MsgFailExportTasks        = "failExportTasks"
	MsgFailTaskStats          = "failTaskStats"
	MsgInvalidRegisterPayload = "invalidRegisterPayload"
	MsgInvalidLoginPayload    = "invalidLoginPayload"
	MsgUserAlreadyExists      = "userAlreadyExists"
	MsgInvalidLogin           = "invalidLogin"
	MsgFailRegister           = "failRegister"
	MsgFailLogin              = "failLogin"
	MsgUnauthorized           = "unauthorized"
	MsgEmailFailed            = "emailFailed"
)
